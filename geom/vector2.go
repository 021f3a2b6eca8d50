package geom

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Vector2 has the memory layout of [2]float32.
type Vector2 struct {
	X Element
	Y Element
}

func NewVector2(x, y float32) *Vector2 {
	return &Vector2{X: x, Y: y}
}

func (v *Vector2) Add(v2 *Vector2) *Vector2 {
	return &Vector2{X: v.X + v2.X, Y: v.Y + v2.Y}
}

func (v *Vector2) Sub(v2 *Vector2) *Vector2 {
	return &Vector2{X: v.X - v2.X, Y: v.Y - v2.Y}
}

func (v *Vector2) Len() Element {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Vector2Floats copies v into a flat u,v float slice.
func Vector2Floats(v []Vector2) []float32 {
	dst := make([]float32, len(v)*2)
	if len(v) > 0 {
		copy(dst, unsafe.Slice((*float32)(unsafe.Pointer(&v[0])), len(v)*2))
	}
	return dst
}

// Vector2Arrays splits a flat u,v float slice.
func Vector2Arrays(f []float32) [][2]float32 {
	dst := make([][2]float32, len(f)/2)
	for i := range dst {
		dst[i] = [2]float32{f[i*2], f[i*2+1]}
	}
	return dst
}
