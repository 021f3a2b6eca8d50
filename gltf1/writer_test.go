package gltf1

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	doc, err := EncodeMesh(quadMesh(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(doc, &buf, false))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, k := range []string{"asset", "buffers", "bufferViews", "accessors", "meshes", "materials", "nodes", "scene", "scenes"} {
		assert.Contains(t, raw, k)
	}
	for _, k := range []string{"shaders", "programs", "techniques", "skins"} {
		assert.JSONEq(t, "{}", string(raw[k]), k)
	}
	assert.JSONEq(t, `{"material_1":{}}`, string(raw["materials"]))
	assert.JSONEq(t, `"defaultScene"`, string(raw["scene"]))
	assert.NotContains(t, string(raw["accessors"]), `"byteStride":0`)
}

func TestSaveAndOpen(t *testing.T) {
	doc, err := EncodeMesh(quadMesh(), nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "quad.gltf")
	require.NoError(t, Save(doc, path, true))

	loaded, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, loaded.Validate())
	assert.Equal(t, doc.Accessors, loaded.Accessors)
	data, err := loaded.Buffers["indices"].Data()
	require.NoError(t, err)
	assert.Len(t, data, 24)
}

func TestSaveError(t *testing.T) {
	doc := NewDocument(NewAsset(""))
	err := Save(doc, filepath.Join(t.TempDir(), "missing", "out.gltf"), false)
	assert.Error(t, err)
}
