package abc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/binzume/abc2gltf/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	archive, err := Open("../testdata/quad.abc.yaml")
	require.NoError(t, err)

	top := archive.Top()
	require.Equal(t, 1, top.NumChildren())
	root := top.FindChild("root")
	require.NotNil(t, root)
	assert.Equal(t, SchemaXform, root.Header().Schema())

	quad := root.FindChild("quad")
	require.NotNil(t, quad)
	assert.Equal(t, "/root/quad", quad.Header().FullName)

	schema, ok := PolyMeshOf(quad)
	require.True(t, ok)
	require.Equal(t, 1, schema.NumSamples())
	s, err := schema.Sample(NearestSample(0))
	require.NoError(t, err)
	assert.Len(t, s.Positions, 4)
	assert.Equal(t, []int32{0, 1, 2, 3}, s.FaceIndices)
	assert.Equal(t, []int32{4}, s.FaceCounts)

	normals := schema.NormalsParam()
	require.NotNil(t, normals)
	assert.Equal(t, ScopeFacevarying, normals.Scope())
	n, err := normals.Expanded(NearestSample(0))
	require.NoError(t, err)
	assert.Len(t, n, 4)

	uvs := schema.UVsParam()
	require.NotNil(t, uvs)
	assert.Equal(t, ScopeVertex, uvs.Scope())
	assert.Equal(t, "st", SourceName(uvs.Metadata()))
}

func TestParseCurves(t *testing.T) {
	archive, err := Open("../testdata/scene.abc.yaml")
	require.NoError(t, err)

	group := archive.Top().FindChild("group")
	require.NotNil(t, group)
	require.Equal(t, 3, group.NumChildren())
	assert.Equal(t, "tri", group.Child(0).Header().Name)
	assert.Equal(t, "hair", group.Child(1).Header().Name)
	assert.Equal(t, "second", group.Child(2).Header().Name)

	curves, ok := CurvesOf(group.Child(1))
	require.True(t, ok)
	s, err := curves.Sample(NearestSample(0))
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumCurves())
	assert.Equal(t, []int32{3, 2}, s.NumVertices)
	assert.Equal(t, []uint8{3, 2}, s.Orders)
	assert.Len(t, s.Knots, 6)
}

func TestParseImplicitParent(t *testing.T) {
	src := "--- !PolyMesh /a/b/mesh\n--- !Xform /a/other\n"
	archive, err := Parse(strings.NewReader(src), "test.abc.yaml")
	require.NoError(t, err)

	a := archive.Top().FindChild("a")
	require.NotNil(t, a)
	assert.Equal(t, "", a.Header().Schema())
	require.Equal(t, 2, a.NumChildren())
	assert.Equal(t, "/a/b/mesh", a.FindChild("b").FindChild("mesh").Header().FullName)
}

func TestParseTagless(t *testing.T) {
	archive, err := Parse(strings.NewReader("--- /node\nmetadata:\n  schema: custom\n"), "x")
	require.NoError(t, err)
	node := archive.Top().FindChild("node")
	require.NotNil(t, node)
	assert.Equal(t, "custom", node.Header().Schema())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"duplicated", "--- !Xform /a\n--- !Xform /a\n"},
		{"no path", "--- !Xform\n"},
		{"bad positions", "--- !PolyMesh /m\nsamples:\n  - positions: [[0, 0]]\n"},
		{"bad uvs", "--- !PolyMesh /m\nuvs:\n  samples:\n    - values: [[0, 0, 0]]\n"},
		{"bad yaml", "--- !PolyMesh /m\nsamples: {\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src), "bad.abc.yaml")
			assert.Error(t, err)
		})
	}
}

func TestSchemaOfTag(t *testing.T) {
	assert.Equal(t, SchemaPolyMesh, schemaOfTag("tag:alembic.io,2011:PolyMesh"))
	assert.Equal(t, SchemaCurves, schemaOfTag("!Curves"))
	assert.Equal(t, SchemaXform, schemaOfTag("Xform"))
	assert.Equal(t, "Camera", schemaOfTag("!abc!Camera"))
	assert.Equal(t, "", schemaOfTag(""))
}

func TestDump(t *testing.T) {
	top := NewRoot()
	mesh := &PolyMesh{}
	mesh.AddSample(0, &PolyMeshSample{Positions: []geom.Vector3{{}}})
	mesh.Normals = NewN3fParam(ScopeVertex, nil)
	top.AddChild(NewNode("group", SchemaXform)).AddChild(NewPolyMeshNode("mesh", mesh))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, top))
	out := buf.String()
	assert.Contains(t, out, "Object: path = /group\n")
	assert.Contains(t, out, "Object: path = /group/mesh\n")
	assert.Contains(t, out, "CompoundProperty name=.geom:schema=AbcGeom_PolyMesh_v1")
	assert.Contains(t, out, "ArrayProperty name=P:interpretation=point:datatype=float32_t[3]:numsamps=1")
	assert.Contains(t, out, "ArrayProperty name=N:interpretation=normal:datatype=float32_t[3]:numsamps=0")
	assert.NotContains(t, out, "path = /\n")
}
