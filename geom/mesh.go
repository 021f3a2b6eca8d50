package geom

// AttributeScope tells which output slot an attribute stream belongs to.
type AttributeScope int

const (
	AttributeAbsent AttributeScope = iota
	// AttributeUniform values are addressed by point (or primitive).
	AttributeUniform
	// AttributeFaceVarying values are addressed by face corner.
	AttributeFaceVarying
)

func (s AttributeScope) String() string {
	switch s {
	case AttributeUniform:
		return "uniform"
	case AttributeFaceVarying:
		return "facevarying"
	}
	return "absent"
}

// Attribute is a flat float stream tagged with its scope. A stream is
// either uniform or face-varying, never both.
type Attribute struct {
	Scope      AttributeScope
	Components int
	Values     []float32
}

func NewUniformAttribute(components int, values []float32) Attribute {
	return Attribute{Scope: AttributeUniform, Components: components, Values: values}
}

func NewFaceVaryingAttribute(components int, values []float32) Attribute {
	return Attribute{Scope: AttributeFaceVarying, Components: components, Values: values}
}

// Uniform returns the values if the attribute is per point, otherwise nil.
func (a Attribute) Uniform() []float32 {
	if a.Scope != AttributeUniform {
		return nil
	}
	return a.Values
}

// FaceVarying returns the values if the attribute is per face corner, otherwise nil.
func (a Attribute) FaceVarying() []float32 {
	if a.Scope != AttributeFaceVarying {
		return nil
	}
	return a.Values
}

func (a Attribute) IsAbsent() bool {
	return a.Scope == AttributeAbsent
}

// Count returns the number of elements.
func (a Attribute) Count() int {
	if a.Components <= 0 {
		return 0
	}
	return len(a.Values) / a.Components
}

// Mesh is a flattened triangle mesh.
type Mesh struct {
	Name      string
	Vertices  []float32 // x,y,z per point
	Normals   Attribute // 3 components
	Texcoords Attribute // 2 components
	Faces     []uint32  // 3 indices per triangle
}

func (m *Mesh) NumVertices() int {
	return len(m.Vertices) / 3
}

func (m *Mesh) NumTriangles() int {
	return len(m.Faces) / 3
}

// Curves is a set of curves sharing one point array.
// i'th curve has NVerts[i] points.
type Curves struct {
	Name   string
	Points []float32 // x,y,z per point
	NVerts []int32

	// Knots and Orders describe higher order curves. They are kept for
	// callers but no document format writes them yet.
	Knots  []float32
	Orders []uint8
}

func (c *Curves) NumPoints() int {
	return len(c.Points) / 3
}

func (c *Curves) NumCurves() int {
	return len(c.NVerts)
}

// TotalVertices returns sum(NVerts). It is expected to equal NumPoints.
func (c *Curves) TotalVertices() int {
	n := 0
	for _, v := range c.NVerts {
		n += int(v)
	}
	return n
}
