package gltf1

import "fmt"

// Builder assembles a Document. Each Add method checks the keys the new
// object refers to, so a built document is always closed.
type Builder struct {
	doc *Document
}

func NewBuilder(asset Asset) *Builder {
	return &Builder{doc: NewDocument(asset)}
}

// Document returns the document built so far.
func (b *Builder) Document() *Document {
	return b.doc
}

func duplicated(section, key string) error {
	return fmt.Errorf("%w: %s/%s", ErrDuplicateKey, section, key)
}

// AddBuffer embeds data as a new arraybuffer.
func (b *Builder) AddBuffer(key string, data []byte) (BufferKey, error) {
	k := BufferKey(key)
	if _, ok := b.doc.Buffers[k]; ok {
		return "", duplicated("buffers", key)
	}
	b.doc.Buffers[k] = &Buffer{
		ByteLength: len(data),
		Type:       "arraybuffer",
		URI:        DataURI(data),
		data:       data,
	}
	return k, nil
}

func (b *Builder) AddBufferView(key string, v BufferView) (BufferViewKey, error) {
	k := BufferViewKey(key)
	if _, ok := b.doc.BufferViews[k]; ok {
		return "", duplicated("bufferViews", key)
	}
	if err := b.doc.checkBufferView(k, &v); err != nil {
		return "", err
	}
	b.doc.BufferViews[k] = &v
	return k, nil
}

func (b *Builder) AddAccessor(key string, a Accessor) (AccessorKey, error) {
	k := AccessorKey(key)
	if _, ok := b.doc.Accessors[k]; ok {
		return "", duplicated("accessors", key)
	}
	if err := b.doc.checkAccessor(k, &a); err != nil {
		return "", err
	}
	b.doc.Accessors[k] = &a
	return k, nil
}

func (b *Builder) AddMaterial(key string, m Material) (MaterialKey, error) {
	k := MaterialKey(key)
	if _, ok := b.doc.Materials[k]; ok {
		return "", duplicated("materials", key)
	}
	b.doc.Materials[k] = &m
	return k, nil
}

func (b *Builder) AddMesh(key string, m Mesh) (MeshKey, error) {
	k := MeshKey(key)
	if _, ok := b.doc.Meshes[k]; ok {
		return "", duplicated("meshes", key)
	}
	if err := b.doc.checkMesh(k, &m); err != nil {
		return "", err
	}
	b.doc.Meshes[k] = &m
	return k, nil
}

func (b *Builder) AddNode(key string, n Node) (NodeKey, error) {
	k := NodeKey(key)
	if _, ok := b.doc.Nodes[k]; ok {
		return "", duplicated("nodes", key)
	}
	if err := b.doc.checkNode(k, &n); err != nil {
		return "", err
	}
	b.doc.Nodes[k] = &n
	return k, nil
}

func (b *Builder) AddScene(key string, s Scene) (SceneKey, error) {
	k := SceneKey(key)
	if _, ok := b.doc.Scenes[k]; ok {
		return "", duplicated("scenes", key)
	}
	if err := b.doc.checkScene(k, &s); err != nil {
		return "", err
	}
	b.doc.Scenes[k] = &s
	return k, nil
}

func (b *Builder) SetDefaultScene(key SceneKey) error {
	if _, ok := b.doc.Scenes[key]; !ok {
		return &ReferenceError{From: "scene", Section: "scenes", Key: string(key)}
	}
	b.doc.Scene = key
	return nil
}
