package gltfutil

import (
	"path/filepath"
	"strings"

	"github.com/binzume/abc2gltf/geom"
	"github.com/binzume/abc2gltf/gltf1"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func Load(path string) (*gltf.Document, error) {
	return gltf.Open(path)
}

// EmbedBuffers stores every buffer as a base64 data URI so the document
// can be written as a single .gltf file.
func EmbedBuffers(doc *gltf.Document) {
	for _, b := range doc.Buffers {
		if b.URI == "" || b.IsEmbeddedResource() {
			b.URI = gltf1.DataURI(b.Data)
		}
	}
}

// Save writes doc as .glb or .gltf depending on the extension of path.
func Save(doc *gltf.Document, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		for _, b := range doc.Buffers {
			b.URI = ""
		}
		return gltf.SaveBinary(doc, path)
	}
	EmbedBuffers(doc)
	return gltf.Save(doc, path)
}

// Bounds returns the bounding box of all POSITION attributes.
func Bounds(doc *gltf.Document) (*geom.Box3, error) {
	box := geom.NewEmptyBox3()
	for _, m := range doc.Meshes {
		for _, p := range m.Primitives {
			a, ok := p.Attributes["POSITION"]
			if !ok {
				continue
			}
			pos, err := modeler.ReadPosition(doc, doc.Accessors[a], [][3]float32{})
			if err != nil {
				return nil, err
			}
			for i := range pos {
				box.Expand(geom.NewVector3FromSlice(pos[i][:]))
			}
		}
	}
	return box, nil
}
