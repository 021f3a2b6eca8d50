package abc

import (
	"errors"
	"fmt"
	"path"

	"github.com/binzume/abc2gltf/geom"
)

var ErrNoSamples = errors.New("abc: property has no samples")

// Node is an in-memory Object.
type Node struct {
	header   ObjectHeader
	parent   *Node
	children []*Node
	mesh     *PolyMesh
	curves   *Curves
}

// NewRoot returns the top object of an archive.
func NewRoot() *Node {
	return &Node{header: ObjectHeader{Name: "ABC", FullName: "/", Metadata: Metadata{}}}
}

func NewNode(name, schema string) *Node {
	md := Metadata{}
	if schema != "" {
		md["schema"] = schema
	}
	return &Node{header: ObjectHeader{Name: name, FullName: "/" + name, Metadata: md}}
}

func NewPolyMeshNode(name string, mesh *PolyMesh) *Node {
	n := NewNode(name, SchemaPolyMesh)
	n.mesh = mesh
	return n
}

func NewCurvesNode(name string, curves *Curves) *Node {
	n := NewNode(name, SchemaCurves)
	n.curves = curves
	return n
}

// AddChild appends c and returns it.
func (n *Node) AddChild(c *Node) *Node {
	c.parent = n
	n.children = append(n.children, c)
	c.updateFullName()
	return c
}

func (n *Node) updateFullName() {
	if n.parent != nil {
		n.header.FullName = path.Join(n.parent.header.FullName, n.header.Name)
	}
	for _, c := range n.children {
		c.updateFullName()
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.header.Name == name {
			return c
		}
	}
	return nil
}

func (n *Node) Header() *ObjectHeader {
	return &n.header
}

func (n *Node) NumChildren() int {
	return len(n.children)
}

func (n *Node) Child(i int) Object {
	return n.children[i]
}

func (n *Node) PolyMeshSchema() PolyMeshSchema {
	if n.mesh == nil {
		return nil
	}
	return n.mesh
}

func (n *Node) CurvesSchema() CurvesSchema {
	if n.curves == nil {
		return nil
	}
	return n.curves
}

func (n *Node) Properties() []*PropertyHeader {
	var props []*PropertyHeader
	if n.mesh != nil {
		props = append(props, n.mesh.properties())
	}
	if n.curves != nil {
		props = append(props, n.curves.properties())
	}
	return props
}

// PolyMesh is an in-memory PolyMeshSchema.
type PolyMesh struct {
	Times   []float64
	Samples []*PolyMeshSample
	Normals *N3fParamData
	UVs     *V2fParamData
}

func (m *PolyMesh) AddSample(t float64, s *PolyMeshSample) *PolyMesh {
	m.Times = append(m.Times, t)
	m.Samples = append(m.Samples, s)
	return m
}

func (m *PolyMesh) NumSamples() int {
	return len(m.Samples)
}

func (m *PolyMesh) Sample(sel SampleSelector) (*PolyMeshSample, error) {
	i := sel.Index(m.Times)
	if i < 0 {
		return nil, ErrNoSamples
	}
	return m.Samples[i], nil
}

func (m *PolyMesh) NormalsParam() N3fParam {
	if m.Normals == nil {
		return nil
	}
	return m.Normals
}

func (m *PolyMesh) UVsParam() V2fParam {
	if m.UVs == nil {
		return nil
	}
	return m.UVs
}

func (m *PolyMesh) properties() *PropertyHeader {
	n := len(m.Samples)
	geomProp := newCompoundProperty(".geom", SchemaPolyMesh,
		newArrayProperty("P", "point", "float32_t[3]", n),
		newArrayProperty(".faceIndices", "", "int32_t", n),
		newArrayProperty(".faceCounts", "", "int32_t", n),
	)
	if m.Normals != nil {
		geomProp.Children = append(geomProp.Children, newArrayProperty("N", "normal", "float32_t[3]", m.Normals.NumSamples()))
	}
	if m.UVs != nil {
		geomProp.Children = append(geomProp.Children, newArrayProperty("uv", "vector", "float32_t[2]", m.UVs.NumSamples()))
	}
	return geomProp
}

// Curves is an in-memory CurvesSchema.
type Curves struct {
	Times   []float64
	Samples []*CurvesSample
}

func (c *Curves) AddSample(t float64, s *CurvesSample) *Curves {
	c.Times = append(c.Times, t)
	c.Samples = append(c.Samples, s)
	return c
}

func (c *Curves) NumSamples() int {
	return len(c.Samples)
}

func (c *Curves) Sample(sel SampleSelector) (*CurvesSample, error) {
	i := sel.Index(c.Times)
	if i < 0 {
		return nil, ErrNoSamples
	}
	return c.Samples[i], nil
}

func (c *Curves) properties() *PropertyHeader {
	n := len(c.Samples)
	geomProp := newCompoundProperty(".geom", SchemaCurves,
		newArrayProperty("P", "point", "float32_t[3]", n),
		newArrayProperty("nVertices", "", "int32_t", n),
	)
	if n > 0 && c.Samples[0].Knots != nil {
		geomProp.Children = append(geomProp.Children, newArrayProperty(".knots", "", "float32_t", n))
	}
	if n > 0 && c.Samples[0].Orders != nil {
		geomProp.Children = append(geomProp.Children, newArrayProperty(".orders", "", "uint8_t", n))
	}
	return geomProp
}

type paramSamples struct {
	scope    Scope
	metadata Metadata
	times    []float64
	indices  [][]uint32
}

func (p *paramSamples) Scope() Scope {
	return p.scope
}

func (p *paramSamples) NumSamples() int {
	return len(p.times)
}

func (p *paramSamples) IsConstant() bool {
	return len(p.times) <= 1
}

func (p *paramSamples) Metadata() Metadata {
	return p.metadata
}

func (p *paramSamples) index(sel SampleSelector) (int, error) {
	i := sel.Index(p.times)
	if i < 0 {
		return -1, ErrNoSamples
	}
	return i, nil
}

func checkIndices(indices []uint32, n int) error {
	for i, idx := range indices {
		if int(idx) >= n {
			return fmt.Errorf("abc: param index %d out of range (indices[%d], %d values)", idx, i, n)
		}
	}
	return nil
}

// N3fParamData is an in-memory N3fParam. A sample without indices stores
// its values expanded.
type N3fParamData struct {
	paramSamples
	values [][]geom.Vector3
}

func NewN3fParam(scope Scope, md Metadata) *N3fParamData {
	if md == nil {
		md = Metadata{}
	}
	return &N3fParamData{paramSamples: paramSamples{scope: scope, metadata: md}}
}

func (p *N3fParamData) AddSample(t float64, values []geom.Vector3, indices []uint32) *N3fParamData {
	p.times = append(p.times, t)
	p.values = append(p.values, values)
	p.indices = append(p.indices, indices)
	return p
}

func (p *N3fParamData) Indexed(sel SampleSelector) ([]geom.Vector3, []uint32, error) {
	i, err := p.index(sel)
	if err != nil {
		return nil, nil, err
	}
	return p.values[i], p.indices[i], nil
}

func (p *N3fParamData) Expanded(sel SampleSelector) ([]geom.Vector3, error) {
	values, indices, err := p.Indexed(sel)
	if err != nil || len(indices) == 0 {
		return values, err
	}
	if err := checkIndices(indices, len(values)); err != nil {
		return nil, err
	}
	expanded := make([]geom.Vector3, len(indices))
	for i, idx := range indices {
		expanded[i] = values[idx]
	}
	return expanded, nil
}

// V2fParamData is an in-memory V2fParam.
type V2fParamData struct {
	paramSamples
	values [][]geom.Vector2
}

func NewV2fParam(scope Scope, md Metadata) *V2fParamData {
	if md == nil {
		md = Metadata{}
	}
	return &V2fParamData{paramSamples: paramSamples{scope: scope, metadata: md}}
}

func (p *V2fParamData) AddSample(t float64, values []geom.Vector2, indices []uint32) *V2fParamData {
	p.times = append(p.times, t)
	p.values = append(p.values, values)
	p.indices = append(p.indices, indices)
	return p
}

func (p *V2fParamData) Indexed(sel SampleSelector) ([]geom.Vector2, []uint32, error) {
	i, err := p.index(sel)
	if err != nil {
		return nil, nil, err
	}
	return p.values[i], p.indices[i], nil
}

func (p *V2fParamData) Expanded(sel SampleSelector) ([]geom.Vector2, error) {
	values, indices, err := p.Indexed(sel)
	if err != nil || len(indices) == 0 {
		return values, err
	}
	if err := checkIndices(indices, len(values)); err != nil {
		return nil, err
	}
	expanded := make([]geom.Vector2, len(indices))
	for i, idx := range indices {
		expanded[i] = values[idx]
	}
	return expanded, nil
}
