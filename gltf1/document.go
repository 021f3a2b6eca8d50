package gltf1

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
)

type (
	BufferKey     string
	BufferViewKey string
	AccessorKey   string
	MaterialKey   string
	MeshKey       string
	NodeKey       string
	SceneKey      string
)

type Profile struct {
	API     string `json:"api"`
	Version string `json:"version"`
}

type Asset struct {
	Generator          string  `json:"generator"`
	PremultipliedAlpha bool    `json:"premultipliedAlpha"`
	Profile            Profile `json:"profile"`
	Version            string  `json:"version"`
}

// NewAsset returns the asset block of a WebGL 1.0.2 profile document.
func NewAsset(generator string) Asset {
	if generator == "" {
		generator = DefaultGenerator
	}
	return Asset{
		Generator:          generator,
		PremultipliedAlpha: true,
		Profile:            Profile{API: "WebGL", Version: "1.0.2"},
		Version:            "1.0",
	}
}

type Buffer struct {
	ByteLength int    `json:"byteLength"`
	Type       string `json:"type"`
	URI        string `json:"uri"`

	data []byte
}

// Data returns the buffer contents, decoding the data URI if needed.
func (b *Buffer) Data() ([]byte, error) {
	if b.data == nil {
		data, err := ParseDataURI(b.URI)
		if err != nil {
			return nil, err
		}
		b.data = data
	}
	return b.data, nil
}

type BufferView struct {
	Buffer     BufferKey `json:"buffer"`
	ByteOffset int       `json:"byteOffset"`
	ByteLength int       `json:"byteLength"`
	Target     int       `json:"target,omitempty"`
}

type Accessor struct {
	BufferView    BufferViewKey `json:"bufferView"`
	ByteOffset    int           `json:"byteOffset"`
	ByteStride    int           `json:"byteStride,omitempty"`
	ComponentType int           `json:"componentType"`
	Count         int           `json:"count"`
	Type          string        `json:"type"`
}

// ElementSize returns the size in bytes of one element.
func (a *Accessor) ElementSize() int {
	return componentSize(a.ComponentType) * numComponents(a.Type)
}

// ByteSpan returns the number of bytes the accessor reads from its view.
func (a *Accessor) ByteSpan() int {
	if a.Count == 0 {
		return 0
	}
	stride := a.ByteStride
	if stride == 0 {
		stride = a.ElementSize()
	}
	return (a.Count-1)*stride + a.ElementSize()
}

// Material is a default material. Techniques are not emitted.
type Material struct {
	Name string `json:"name,omitempty"`
}

type Primitive struct {
	Attributes map[string]AccessorKey `json:"attributes"`
	Indices    AccessorKey            `json:"indices,omitempty"`
	Material   MaterialKey            `json:"material"`
	Mode       int                    `json:"mode"`
	Extras     map[string]interface{} `json:"extras,omitempty"`
}

type Mesh struct {
	Name       string       `json:"name,omitempty"`
	Primitives []*Primitive `json:"primitives"`
}

type Node struct {
	Name   string    `json:"name,omitempty"`
	Meshes []MeshKey `json:"meshes"`
}

type Scene struct {
	Nodes []NodeKey `json:"nodes"`
}

// Document is a glTF 1.0 document. Shaders, programs, techniques and skins
// are always empty.
type Document struct {
	Accessors   map[AccessorKey]*Accessor     `json:"accessors"`
	Asset       Asset                         `json:"asset"`
	BufferViews map[BufferViewKey]*BufferView `json:"bufferViews"`
	Buffers     map[BufferKey]*Buffer         `json:"buffers"`
	Materials   map[MaterialKey]*Material     `json:"materials"`
	Meshes      map[MeshKey]*Mesh             `json:"meshes"`
	Nodes       map[NodeKey]*Node             `json:"nodes"`
	Programs    map[string]struct{}           `json:"programs"`
	Scene       SceneKey                      `json:"scene,omitempty"`
	Scenes      map[SceneKey]*Scene           `json:"scenes"`
	Shaders     map[string]struct{}           `json:"shaders"`
	Skins       map[string]struct{}           `json:"skins"`
	Techniques  map[string]struct{}           `json:"techniques"`
}

func NewDocument(asset Asset) *Document {
	return &Document{
		Accessors:   map[AccessorKey]*Accessor{},
		Asset:       asset,
		BufferViews: map[BufferViewKey]*BufferView{},
		Buffers:     map[BufferKey]*Buffer{},
		Materials:   map[MaterialKey]*Material{},
		Meshes:      map[MeshKey]*Mesh{},
		Nodes:       map[NodeKey]*Node{},
		Programs:    map[string]struct{}{},
		Scenes:      map[SceneKey]*Scene{},
		Shaders:     map[string]struct{}{},
		Skins:       map[string]struct{}{},
		Techniques:  map[string]struct{}{},
	}
}

func (d *Document) checkBufferView(key BufferViewKey, v *BufferView) error {
	b, ok := d.Buffers[v.Buffer]
	if !ok {
		return &ReferenceError{From: "bufferViews/" + string(key), Section: "buffers", Key: string(v.Buffer)}
	}
	if v.ByteOffset < 0 || v.ByteLength < 0 || v.ByteOffset+v.ByteLength > b.ByteLength {
		return &RangeError{Section: "bufferViews", Key: string(key), Offset: v.ByteOffset, Length: v.ByteLength, Limit: b.ByteLength}
	}
	return nil
}

func (d *Document) checkAccessor(key AccessorKey, a *Accessor) error {
	v, ok := d.BufferViews[a.BufferView]
	if !ok {
		return &ReferenceError{From: "accessors/" + string(key), Section: "bufferViews", Key: string(a.BufferView)}
	}
	if a.ElementSize() == 0 {
		return fmt.Errorf("%w: accessors/%s (componentType = %d, type = %q)", ErrInvalidAccessor, key, a.ComponentType, a.Type)
	}
	if a.ByteOffset < 0 || a.Count < 0 || a.ByteOffset+a.ByteSpan() > v.ByteLength {
		return &RangeError{Section: "accessors", Key: string(key), Offset: a.ByteOffset, Length: a.ByteSpan(), Limit: v.ByteLength}
	}
	return nil
}

func (d *Document) checkMesh(key MeshKey, m *Mesh) error {
	from := "meshes/" + string(key)
	var errs error
	for _, p := range m.Primitives {
		for _, name := range sortedKeys(p.Attributes) {
			if _, ok := d.Accessors[p.Attributes[name]]; !ok {
				errs = multierr.Append(errs, &ReferenceError{From: from, Section: "accessors", Key: string(p.Attributes[name])})
			}
		}
		if _, ok := d.Accessors[p.Indices]; p.Indices != "" && !ok {
			errs = multierr.Append(errs, &ReferenceError{From: from, Section: "accessors", Key: string(p.Indices)})
		}
		if _, ok := d.Materials[p.Material]; !ok {
			errs = multierr.Append(errs, &ReferenceError{From: from, Section: "materials", Key: string(p.Material)})
		}
	}
	return errs
}

func (d *Document) checkNode(key NodeKey, n *Node) error {
	var errs error
	for _, m := range n.Meshes {
		if _, ok := d.Meshes[m]; !ok {
			errs = multierr.Append(errs, &ReferenceError{From: "nodes/" + string(key), Section: "meshes", Key: string(m)})
		}
	}
	return errs
}

func (d *Document) checkScene(key SceneKey, s *Scene) error {
	var errs error
	for _, n := range s.Nodes {
		if _, ok := d.Nodes[n]; !ok {
			errs = multierr.Append(errs, &ReferenceError{From: "scenes/" + string(key), Section: "nodes", Key: string(n)})
		}
	}
	return errs
}

// Validate checks that every key reference resolves and that every view and
// accessor stays inside its data. All problems are returned combined.
func (d *Document) Validate() error {
	var errs error
	for _, k := range sortedKeys(d.BufferViews) {
		errs = multierr.Append(errs, d.checkBufferView(k, d.BufferViews[k]))
	}
	for _, k := range sortedKeys(d.Accessors) {
		errs = multierr.Append(errs, d.checkAccessor(k, d.Accessors[k]))
	}
	for _, k := range sortedKeys(d.Meshes) {
		errs = multierr.Append(errs, d.checkMesh(k, d.Meshes[k]))
	}
	for _, k := range sortedKeys(d.Nodes) {
		errs = multierr.Append(errs, d.checkNode(k, d.Nodes[k]))
	}
	for _, k := range sortedKeys(d.Scenes) {
		errs = multierr.Append(errs, d.checkScene(k, d.Scenes[k]))
	}
	if _, ok := d.Scenes[d.Scene]; d.Scene != "" && !ok {
		errs = multierr.Append(errs, &ReferenceError{From: "scene", Section: "scenes", Key: string(d.Scene)})
	}
	return errs
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
