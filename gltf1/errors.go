package gltf1

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateKey    = errors.New("gltf1: duplicate key")
	ErrInvalidAccessor = errors.New("gltf1: invalid accessor")
	ErrNotDataURI      = errors.New("gltf1: not an octet-stream data uri")
)

// ReferenceError reports a key that does not resolve in its section.
type ReferenceError struct {
	From    string // referring object, e.g. "meshes/mesh_1"
	Section string
	Key     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("gltf1: %s refers to unknown %s/%s", e.From, e.Section, e.Key)
}

// RangeError reports a view or accessor reading past the end of its data.
type RangeError struct {
	Section string
	Key     string
	Offset  int
	Length  int
	Limit   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("gltf1: %s/%s reads [%d, %d) of %d bytes", e.Section, e.Key, e.Offset, e.Offset+e.Length, e.Limit)
}
