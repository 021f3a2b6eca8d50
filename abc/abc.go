// Package abc models a read-only, time sampled object hierarchy in the
// shape of an Alembic archive: objects with headers, compound properties
// and PolyMesh / Curves schemas whose data is read per sample.
//
// Binary archives are read by external tools. This package provides the
// interfaces the converter consumes, an in-memory implementation and a
// YAML text encoding of it (see Parse).
package abc

import (
	"math"
	"strings"

	"github.com/binzume/abc2gltf/geom"
)

const (
	SchemaXform    = "AbcGeom_Xform_v3"
	SchemaPolyMesh = "AbcGeom_PolyMesh_v1"
	SchemaCurves   = "AbcGeom_Curve_v2"
)

// Metadata is a string key/value table attached to objects and properties.
type Metadata map[string]string

func (m Metadata) Get(key string) string {
	return m[key]
}

// SourceName returns the name a geometry parameter was authored under (e.g. UV set name).
func SourceName(m Metadata) string {
	return m.Get("sourceName")
}

type ObjectHeader struct {
	Name     string
	FullName string
	Metadata Metadata
}

func (h *ObjectHeader) Schema() string {
	return h.Metadata.Get("schema")
}

// MatchesPolyMesh reports whether an object header declares the PolyMesh schema.
func MatchesPolyMesh(h *ObjectHeader) bool {
	return h != nil && h.Schema() == SchemaPolyMesh
}

// MatchesCurves reports whether an object header declares the Curves schema.
func MatchesCurves(h *ObjectHeader) bool {
	return h != nil && h.Schema() == SchemaCurves
}

// Object is a node of the hierarchy.
type Object interface {
	Header() *ObjectHeader
	NumChildren() int
	Child(i int) Object
	Properties() []*PropertyHeader
}

// PolyMeshOf returns the PolyMesh schema carried by obj.
func PolyMeshOf(obj Object) (PolyMeshSchema, bool) {
	o, ok := obj.(interface{ PolyMeshSchema() PolyMeshSchema })
	if !ok {
		return nil, false
	}
	s := o.PolyMeshSchema()
	return s, s != nil
}

// CurvesOf returns the Curves schema carried by obj.
func CurvesOf(obj Object) (CurvesSchema, bool) {
	o, ok := obj.(interface{ CurvesSchema() CurvesSchema })
	if !ok {
		return nil, false
	}
	s := o.CurvesSchema()
	return s, s != nil
}

// Scope is the interpolation granularity of a geometry parameter.
type Scope int

const (
	ScopeConstant Scope = iota
	ScopeUniform
	ScopeVarying
	ScopeVertex
	ScopeFacevarying
	ScopeUnknown
)

var scopeNames = []string{"constant", "uniform", "varying", "vertex", "facevarying"}

func (s Scope) String() string {
	if s >= 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// ParseScope parses a scope name. Unrecognized names give ScopeUnknown.
func ParseScope(name string) Scope {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range scopeNames {
		if n == name {
			return Scope(i)
		}
	}
	return ScopeUnknown
}

// SampleSelector picks one sample out of a time sampled property.
type SampleSelector struct {
	Time float64
}

// NearestSample selects the sample whose time is closest to t.
func NearestSample(t float64) SampleSelector {
	return SampleSelector{Time: t}
}

// Index resolves the selector against sample times. Ties go to the earlier
// sample. It returns -1 when there are no samples.
func (s SampleSelector) Index(times []float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, t := range times {
		if d := math.Abs(t - s.Time); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

type PolyMeshSample struct {
	Positions   []geom.Vector3
	FaceIndices []int32
	FaceCounts  []int32
}

type PolyMeshSchema interface {
	NumSamples() int
	Sample(sel SampleSelector) (*PolyMeshSample, error)
	// NormalsParam and UVsParam return nil when not bound.
	NormalsParam() N3fParam
	UVsParam() V2fParam
}

type CurvesSample struct {
	Positions   []geom.Vector3
	NumVertices []int32
	Knots       []float32 // optional
	Orders      []uint8   // optional
}

func (s *CurvesSample) NumCurves() int {
	return len(s.NumVertices)
}

type CurvesSchema interface {
	NumSamples() int
	Sample(sel SampleSelector) (*CurvesSample, error)
}

// GeomParam is a geometry parameter (normals, uvs) declared with a scope.
type GeomParam interface {
	Scope() Scope
	NumSamples() int
	IsConstant() bool
	Metadata() Metadata
}

// N3fParam is a normal parameter. Expanded resolves indices, Indexed
// returns the stored value table and its indices.
type N3fParam interface {
	GeomParam
	Expanded(sel SampleSelector) ([]geom.Vector3, error)
	Indexed(sel SampleSelector) ([]geom.Vector3, []uint32, error)
}

// V2fParam is a texture coordinate parameter.
type V2fParam interface {
	GeomParam
	Expanded(sel SampleSelector) ([]geom.Vector2, error)
	Indexed(sel SampleSelector) ([]geom.Vector2, []uint32, error)
}
