// Package gltf1 writes glTF 1.0 documents. Every section is a map keyed by
// string ids and buffers are embedded as base64 data URIs.
package gltf1

// GL enums used by glTF 1.0.
const (
	ComponentByte          = 5120
	ComponentUnsignedByte  = 5121
	ComponentShort         = 5122
	ComponentUnsignedShort = 5123
	ComponentInt           = 5124
	ComponentUnsignedInt   = 5125
	ComponentFloat         = 5126

	TargetArrayBuffer        = 34962
	TargetElementArrayBuffer = 34963

	ModePoints    = 0
	ModeLines     = 1
	ModeTriangles = 4
)

const (
	AccessorScalar = "SCALAR"
	AccessorVec2   = "VEC2"
	AccessorVec3   = "VEC3"
	AccessorVec4   = "VEC4"
	AccessorMat2   = "MAT2"
	AccessorMat3   = "MAT3"
	AccessorMat4   = "MAT4"
)

const DefaultGenerator = "abc2gltf"

func componentSize(componentType int) int {
	switch componentType {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentInt, ComponentUnsignedInt, ComponentFloat:
		return 4
	}
	return 0
}

func numComponents(typ string) int {
	switch typ {
	case AccessorScalar:
		return 1
	case AccessorVec2:
		return 2
	case AccessorVec3:
		return 3
	case AccessorVec4, AccessorMat2:
		return 4
	case AccessorMat3:
		return 9
	case AccessorMat4:
		return 16
	}
	return 0
}
