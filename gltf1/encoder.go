package gltf1

import (
	"github.com/binzume/abc2gltf/geom"
	"github.com/qmuntal/gltf/binary"
	"go.uber.org/zap"
)

type Options struct {
	Generator string // Default: DefaultGenerator
	// ExportAttributes writes per point normals and uvs as NORMAL and TEXCOORD_0.
	ExportAttributes bool
	Logger           *zap.Logger
}

const defaultMaterial = "material_1"

// encoder turns builder errors into a sticky error so encoding code reads
// as a flat sequence of sections.
type encoder struct {
	*Builder
	err error
}

func newEncoder(opt *Options) *encoder {
	return &encoder{Builder: NewBuilder(NewAsset(opt.Generator))}
}

// attribute adds buffer, view and accessor for one tightly packed stream
// named name. data is a flat []float32 or []uint32.
func (e *encoder) attribute(name string, data interface{}, count, componentType int, typ string, target int, stride int) AccessorKey {
	if e.err != nil {
		return ""
	}
	a := Accessor{ByteStride: stride, ComponentType: componentType, Count: count, Type: typ}
	bytes := make([]byte, count*a.ElementSize())
	if len(bytes) > 0 {
		if e.err = binary.Write(bytes, 4, data); e.err != nil {
			return ""
		}
	}

	var buf BufferKey
	if buf, e.err = e.AddBuffer(name, bytes); e.err != nil {
		return ""
	}
	if a.BufferView, e.err = e.AddBufferView("bufferView_"+name, BufferView{Buffer: buf, ByteLength: len(bytes), Target: target}); e.err != nil {
		return ""
	}
	var key AccessorKey
	key, e.err = e.AddAccessor("accessor_"+name, a)
	return key
}

func (e *encoder) finish(p *Primitive) (*Document, error) {
	if e.err != nil {
		return nil, e.err
	}
	var err error
	if p.Material, err = e.AddMaterial(defaultMaterial, Material{}); err != nil {
		return nil, err
	}
	mesh, err := e.AddMesh("mesh_1", Mesh{Primitives: []*Primitive{p}})
	if err != nil {
		return nil, err
	}
	node, err := e.AddNode("node_1", Node{Meshes: []MeshKey{mesh}})
	if err != nil {
		return nil, err
	}
	scene, err := e.AddScene("defaultScene", Scene{Nodes: []NodeKey{node}})
	if err != nil {
		return nil, err
	}
	if err := e.SetDefaultScene(scene); err != nil {
		return nil, err
	}
	return e.Document(), nil
}

// EncodeMesh builds a document holding one triangle mesh.
func EncodeMesh(mesh *geom.Mesh, opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := newEncoder(opt)
	n := mesh.NumVertices()
	p := &Primitive{
		Attributes: map[string]AccessorKey{
			"POSITION": e.attribute("vertices", mesh.Vertices[:n*3], n, ComponentFloat, AccessorVec3, TargetArrayBuffer, 12),
		},
		Indices: e.attribute("indices", mesh.Faces, len(mesh.Faces), ComponentUnsignedInt, AccessorScalar, TargetElementArrayBuffer, 0),
		Mode:    ModeTriangles,
	}

	if opt.ExportAttributes {
		if v := mesh.Normals.Uniform(); v != nil && mesh.Normals.Count() == n {
			p.Attributes["NORMAL"] = e.attribute("normals", v[:n*3], n, ComponentFloat, AccessorVec3, TargetArrayBuffer, 12)
		} else if !mesh.Normals.IsAbsent() {
			logger.Debug("normals are not written", zap.Stringer("scope", mesh.Normals.Scope), zap.Int("count", mesh.Normals.Count()), zap.Int("points", n))
		}
		if v := mesh.Texcoords.Uniform(); v != nil && mesh.Texcoords.Count() == n {
			p.Attributes["TEXCOORD_0"] = e.attribute("texcoords", v[:n*2], n, ComponentFloat, AccessorVec2, TargetArrayBuffer, 8)
		} else if !mesh.Texcoords.IsAbsent() {
			logger.Debug("uvs are not written", zap.Stringer("scope", mesh.Texcoords.Scope), zap.Int("count", mesh.Texcoords.Count()), zap.Int("points", n))
		}
	}
	return e.finish(p)
}

// EncodeCurves builds a document holding a curve set as a points primitive
// with a per curve NVERTS attribute.
func EncodeCurves(curves *geom.Curves, opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}
	e := newEncoder(opt)
	n := curves.NumPoints()
	nverts := make([]uint32, len(curves.NVerts))
	for i, v := range curves.NVerts {
		nverts[i] = uint32(v)
	}
	p := &Primitive{
		Attributes: map[string]AccessorKey{
			"POSITION": e.attribute("points", curves.Points[:n*3], n, ComponentFloat, AccessorVec3, TargetArrayBuffer, 12),
			"NVERTS":   e.attribute("nverts", nverts, len(nverts), ComponentInt, AccessorScalar, TargetArrayBuffer, 4),
		},
		Mode:   ModePoints,
		Extras: map[string]interface{}{"ext_mode": "curves"},
	}
	return e.finish(p)
}
