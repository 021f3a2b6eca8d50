package converter

import (
	"testing"

	"github.com/binzume/abc2gltf/geom"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMeshToGLTF(t *testing.T) {
	mesh := &geom.Mesh{
		Name:      "quad",
		Vertices:  []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		Normals:   geom.NewFaceVaryingAttribute(3, make([]float32, 12)),
		Texcoords: geom.NewUniformAttribute(2, []float32{0, 0, 1, 0, 1, 1, 0, 1}),
		Faces:     []uint32{0, 1, 2, 0, 2, 3},
	}
	doc := NewGeomToGLTFConverter(&GeomToGLTFOption{Generator: "test", ExportAttributes: true}).ConvertMesh(mesh)

	assert.Equal(t, "test", doc.Asset.Generator)
	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, []uint32{0}, doc.Scenes[0].Nodes)
	assert.Equal(t, "quad", doc.Nodes[0].Name)

	p := doc.Meshes[0].Primitives[0]
	assert.Equal(t, gltf.PrimitiveTriangles, p.Mode)
	require.NotNil(t, p.Indices)
	assert.Equal(t, uint32(6), doc.Accessors[*p.Indices].Count)
	assert.Equal(t, uint32(4), doc.Accessors[p.Attributes["POSITION"]].Count)
	assert.Contains(t, p.Attributes, "TEXCOORD_0")
	assert.NotContains(t, p.Attributes, "NORMAL")
	assert.Len(t, doc.Materials, 1)
}

func TestConvertCurvesToGLTF(t *testing.T) {
	curves := &geom.Curves{
		Name:   "hair",
		Points: []float32{0, 0, 0, 0, 1, 0, 0, 2, 0},
		NVerts: []int32{3},
	}
	doc := NewGeomToGLTFConverter(nil).ConvertCurves(curves)

	require.Len(t, doc.Meshes, 1)
	p := doc.Meshes[0].Primitives[0]
	assert.Equal(t, gltf.PrimitivePoints, p.Mode)
	assert.Nil(t, p.Indices)
	assert.Equal(t, uint32(3), doc.Accessors[p.Attributes["POSITION"]].Count)
	assert.Equal(t, uint32(1), doc.Accessors[p.Attributes["_NVERTS"]].Count)
	assert.Equal(t, map[string]interface{}{"ext_mode": "curves"}, p.Extras)
}

func TestConvertEmptyToGLTF(t *testing.T) {
	c := NewGeomToGLTFConverter(nil)
	assert.Empty(t, c.ConvertMesh(&geom.Mesh{}).Meshes)
	assert.Empty(t, c.ConvertCurves(&geom.Curves{}).Meshes)
}
