package converter

import (
	"github.com/binzume/abc2gltf/geom"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

type GeomToGLTFOption struct {
	Generator        string
	ExportAttributes bool // write per point NORMAL and TEXCOORD_0
	Logger           *zap.Logger
}

type geomToGltf struct {
	*GeomToGLTFOption
	*gltf.Document
	logger *zap.Logger
}

// NewGeomToGLTFConverter returns a converter writing glTF 2.0 documents.
func NewGeomToGLTFConverter(option *GeomToGLTFOption) *geomToGltf {
	if option == nil {
		option = &GeomToGLTFOption{}
	}
	logger := option.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &geomToGltf{GeomToGLTFOption: option, logger: logger}
}

func (c *geomToGltf) newDocument() {
	c.Document = gltf.NewDocument()
	if c.Generator != "" {
		c.Asset.Generator = c.Generator
	}
	c.Materials = append(c.Materials, &gltf.Material{Name: "material_1"})
}

func (c *geomToGltf) addNode(name string, p *gltf.Primitive) {
	p.Material = gltf.Index(0)
	c.Meshes = append(c.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{p}})
	c.Nodes = append(c.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(uint32(len(c.Meshes) - 1))})
	c.Scenes[0].Nodes = append(c.Scenes[0].Nodes, uint32(len(c.Nodes)-1))
}

func (c *geomToGltf) ConvertMesh(mesh *geom.Mesh) *gltf.Document {
	c.newDocument()
	n := mesh.NumVertices()
	if n == 0 {
		c.logger.Warn("mesh has no points", zap.String("name", mesh.Name))
		return c.Document
	}

	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(c.Document, geom.Vector3Arrays(mesh.Vertices)),
	}
	if c.ExportAttributes {
		if v := mesh.Normals.Uniform(); v != nil && mesh.Normals.Count() == n {
			attributes["NORMAL"] = modeler.WriteNormal(c.Document, geom.Vector3Arrays(v))
		}
		if v := mesh.Texcoords.Uniform(); v != nil && mesh.Texcoords.Count() == n {
			attributes["TEXCOORD_0"] = modeler.WriteTextureCoord(c.Document, geom.Vector2Arrays(v))
		}
	}
	p := &gltf.Primitive{Attributes: attributes, Mode: gltf.PrimitiveTriangles}
	if len(mesh.Faces) > 0 {
		p.Indices = gltf.Index(modeler.WriteIndices(c.Document, mesh.Faces))
	}
	c.addNode(mesh.Name, p)
	return c.Document
}

// ConvertCurves writes curves as a POINTS primitive. Per curve vertex counts
// go to the _NVERTS attribute.
func (c *geomToGltf) ConvertCurves(curves *geom.Curves) *gltf.Document {
	c.newDocument()
	if curves.NumPoints() == 0 {
		c.logger.Warn("curves have no points", zap.String("name", curves.Name))
		return c.Document
	}

	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(c.Document, geom.Vector3Arrays(curves.Points)),
	}
	if len(curves.NVerts) > 0 {
		nverts := make([]uint32, len(curves.NVerts))
		for i, v := range curves.NVerts {
			nverts[i] = uint32(v)
		}
		attributes["_NVERTS"] = modeler.WriteAccessor(c.Document, gltf.TargetArrayBuffer, nverts)
	}
	c.addNode(curves.Name, &gltf.Primitive{
		Attributes: attributes,
		Mode:       gltf.PrimitivePoints,
		Extras:     map[string]interface{}{"ext_mode": "curves"},
	})
	return c.Document
}
