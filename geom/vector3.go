package geom

import (
	"unsafe"

	"github.com/chewxy/math32"
)

type Element = float32

// Vector3 has the memory layout of [3]float32.
type Vector3 struct {
	X Element
	Y Element
	Z Element
}

func NewVector3(x, y, z float32) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

func NewVector3FromSlice(arr []Element) *Vector3 {
	return &Vector3{X: arr[0], Y: arr[1], Z: arr[2]}
}

func (v *Vector3) Add(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X + v2.X, Y: v.Y + v2.Y, Z: v.Z + v2.Z}
}

func (v *Vector3) Sub(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X - v2.X, Y: v.Y - v2.Y, Z: v.Z - v2.Z}
}

func (v *Vector3) Len() Element {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v *Vector3) ToArray(array []Element) {
	array[0] = v.X
	array[1] = v.Y
	array[2] = v.Z
}

// Vector3Floats copies v into a flat x,y,z float slice.
func Vector3Floats(v []Vector3) []float32 {
	dst := make([]float32, len(v)*3)
	if len(v) > 0 {
		copy(dst, unsafe.Slice((*float32)(unsafe.Pointer(&v[0])), len(v)*3))
	}
	return dst
}

// Vector3Arrays splits a flat x,y,z float slice. Trailing floats that do
// not form a whole vector are dropped.
func Vector3Arrays(f []float32) [][3]float32 {
	dst := make([][3]float32, len(f)/3)
	for i := range dst {
		copy(dst[i][:], f[i*3:i*3+3])
	}
	return dst
}

// Box3 is an axis aligned bounding box.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// NewEmptyBox3 returns a box that contains nothing.
func NewEmptyBox3() *Box3 {
	inf := math32.Inf(1)
	return &Box3{
		Min: Vector3{X: inf, Y: inf, Z: inf},
		Max: Vector3{X: -inf, Y: -inf, Z: -inf},
	}
}

// ComputeBounds returns the bounds of a flat x,y,z float slice.
func ComputeBounds(points []float32) *Box3 {
	b := NewEmptyBox3()
	for i := 0; i+2 < len(points); i += 3 {
		b.Expand(NewVector3FromSlice(points[i : i+3]))
	}
	return b
}

func (b *Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

func (b *Box3) Expand(v *Vector3) {
	b.Min.X = math32.Min(b.Min.X, v.X)
	b.Min.Y = math32.Min(b.Min.Y, v.Y)
	b.Min.Z = math32.Min(b.Min.Z, v.Z)
	b.Max.X = math32.Max(b.Max.X, v.X)
	b.Max.Y = math32.Max(b.Max.Y, v.Y)
	b.Max.Z = math32.Max(b.Max.Z, v.Z)
}

func (b *Box3) Size() *Vector3 {
	if b.IsEmpty() {
		return &Vector3{}
	}
	return b.Max.Sub(&b.Min)
}
