package converter

import (
	"testing"

	"github.com/binzume/abc2gltf/abc"
	"github.com/binzume/abc2gltf/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func triangleMesh(offset float32) *abc.PolyMesh {
	return (&abc.PolyMesh{}).AddSample(0, &abc.PolyMeshSample{
		Positions:   []geom.Vector3{{X: offset}, {X: offset + 1}, {X: offset, Y: 1}},
		FaceIndices: []int32{0, 1, 2},
		FaceCounts:  []int32{3},
	})
}

func hairCurves() *abc.Curves {
	return (&abc.Curves{}).AddSample(0, &abc.CurvesSample{
		Positions:   []geom.Vector3{{}, {Y: 1}},
		NumVertices: []int32{2},
	})
}

func TestExtractQuad(t *testing.T) {
	archive, err := abc.Open("../testdata/quad.abc.yaml")
	require.NoError(t, err)

	res := NewExtractor(nil).Extract(archive.Top())
	require.True(t, res.FoundMesh)
	assert.False(t, res.FoundCurves)
	assert.Equal(t, 3, res.Visited)

	m := res.Mesh
	assert.Equal(t, "quad", m.Name)
	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Faces)
	assert.Equal(t, geom.AttributeFaceVarying, m.Normals.Scope)
	assert.Equal(t, 4, m.Normals.Count())
	assert.Nil(t, m.Normals.Uniform())
	assert.Equal(t, geom.AttributeUniform, m.Texcoords.Scope)
	assert.Equal(t, 4, m.Texcoords.Count())
	for _, f := range m.Faces {
		assert.Less(t, int(f), m.NumVertices())
	}
}

func TestExtractMeshAndCurves(t *testing.T) {
	archive, err := abc.Open("../testdata/scene.abc.yaml")
	require.NoError(t, err)

	res := NewExtractor(nil).Extract(archive.Top())
	require.True(t, res.FoundMesh)
	require.True(t, res.FoundCurves)
	// top, group, tri, hair; /group/second is never visited
	assert.Equal(t, 4, res.Visited)

	// nearest sample to 0 is the one at 0.25
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, res.Mesh.Vertices)
	assert.Equal(t, []uint32{0, 1, 2}, res.Mesh.Faces)
	assert.True(t, res.Mesh.Normals.IsAbsent())

	c := res.Curves
	assert.Equal(t, "hair", c.Name)
	assert.Equal(t, []int32{3, 2}, c.NVerts)
	assert.Equal(t, 5, c.NumPoints())
	assert.Equal(t, []uint8{3, 2}, c.Orders)
	assert.Len(t, c.Knots, 6)
}

func TestExtractSampleTime(t *testing.T) {
	archive, err := abc.Open("../testdata/scene.abc.yaml")
	require.NoError(t, err)
	res := NewExtractor(&ExtractOption{Time: -2}).Extract(archive.Top())
	assert.Equal(t, float32(5), res.Mesh.Vertices[0])
}

func TestExtractNothing(t *testing.T) {
	archive, err := abc.Open("../testdata/empty.abc.yaml")
	require.NoError(t, err)

	res := NewExtractor(nil).Extract(archive.Top())
	assert.False(t, res.FoundMesh)
	assert.False(t, res.FoundCurves)
	assert.Nil(t, res.Mesh)
	assert.Nil(t, res.Curves)
	assert.Equal(t, 3, res.Visited)
}

func TestExtractFirstMatchWins(t *testing.T) {
	top := abc.NewRoot()
	top.AddChild(abc.NewPolyMeshNode("a", triangleMesh(0)))
	top.AddChild(abc.NewPolyMeshNode("b", triangleMesh(10)))
	top.AddChild(abc.NewCurvesNode("c", hairCurves()))

	res := NewExtractor(nil).Extract(top)
	assert.Equal(t, "a", res.Mesh.Name)
	assert.True(t, res.FoundCurves)
	assert.Equal(t, 4, res.Visited)
}

func TestExtractDepthFirst(t *testing.T) {
	top := abc.NewRoot()
	group := top.AddChild(abc.NewNode("group", abc.SchemaXform))
	group.AddChild(abc.NewPolyMeshNode("deep", triangleMesh(0)))
	top.AddChild(abc.NewPolyMeshNode("shallow", triangleMesh(10)))

	res := NewExtractor(nil).Extract(top)
	assert.Equal(t, "deep", res.Mesh.Name)
}

func TestExtractChildOfMatch(t *testing.T) {
	top := abc.NewRoot()
	mesh := top.AddChild(abc.NewPolyMeshNode("mesh", triangleMesh(0)))
	mesh.AddChild(abc.NewCurvesNode("hair", hairCurves()))

	res := NewExtractor(nil).Extract(top)
	assert.True(t, res.FoundMesh)
	assert.True(t, res.FoundCurves)
}

func TestExtractNoSamples(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	top := abc.NewRoot()
	top.AddChild(abc.NewPolyMeshNode("empty", &abc.PolyMesh{}))
	top.AddChild(abc.NewCurvesNode("emptyCurves", &abc.Curves{}))
	top.AddChild(abc.NewNode("schemaOnly", abc.SchemaPolyMesh))
	top.AddChild(abc.NewPolyMeshNode("mesh", triangleMesh(0)))

	res := NewExtractor(&ExtractOption{Logger: zap.New(core)}).Extract(top)
	require.True(t, res.FoundMesh)
	assert.Equal(t, "mesh", res.Mesh.Name)
	assert.False(t, res.FoundCurves)
	assert.Equal(t, 3, logs.FilterMessageSnippet("no samples").Len())
}

func TestExtractBadFaces(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := (&abc.PolyMesh{}).AddSample(0, &abc.PolyMeshSample{
		Positions:   []geom.Vector3{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}},
		FaceIndices: []int32{0, 1, 2, 0, 1, 9, 1, 3, 2},
		FaceCounts:  []int32{3, 3, 3, 3},
	})
	top := abc.NewRoot()
	top.AddChild(abc.NewPolyMeshNode("mesh", m))

	res := NewExtractor(&ExtractOption{Logger: zap.New(core)}).Extract(top)
	require.True(t, res.FoundMesh)
	assert.Equal(t, []uint32{0, 1, 2, 1, 3, 2}, res.Mesh.Faces)
	assert.Equal(t, 1, logs.FilterMessage("face skipped").Len())
	assert.Equal(t, 1, logs.FilterMessage("face set truncated").Len())

	m.Samples[0].FaceCounts = nil
	res = NewExtractor(&ExtractOption{Logger: zap.New(core)}).Extract(top)
	require.True(t, res.FoundMesh)
	assert.Empty(t, res.Mesh.Faces)
	assert.Equal(t, 1, logs.FilterMessage("no faces in polymesh").Len())
}

func TestExtractCurvesMismatch(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := (&abc.Curves{}).AddSample(0, &abc.CurvesSample{
		Positions:   []geom.Vector3{{}, {Y: 1}, {Y: 2}},
		NumVertices: []int32{2},
	})
	top := abc.NewRoot()
	top.AddChild(abc.NewCurvesNode("c", c))

	res := NewExtractor(&ExtractOption{Logger: zap.New(core)}).Extract(top)
	require.True(t, res.FoundCurves)
	assert.Equal(t, 1, logs.FilterMessageSnippet("do not match").Len())
}

func TestExtractorDump(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	archive, err := abc.Open("../testdata/quad.abc.yaml")
	require.NoError(t, err)

	NewExtractor(&ExtractOption{Logger: zap.New(core)}).Dump(archive.Top())
	assert.Equal(t, 1, logs.FilterMessageSnippet("Object: path = /root/quad").Len())
	assert.Equal(t, 1, logs.FilterMessageSnippet("ArrayProperty name=uv:").Len())
}
