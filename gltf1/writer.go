package gltf1

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Write serializes doc as JSON.
func Write(doc *Document, w io.Writer, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}

// Save writes doc to path.
func Save(doc *Document, path string, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gltf1: failed to open %s: %w", path, err)
	}
	if err := Write(doc, f, pretty); err != nil {
		f.Close()
		return fmt.Errorf("gltf1: failed to write %s: %w", path, err)
	}
	return f.Close()
}

func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
