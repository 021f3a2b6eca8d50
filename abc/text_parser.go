package abc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/binzume/abc2gltf/geom"
	yaml "gopkg.in/yaml.v2"
)

// Archive is a loaded object hierarchy.
type Archive struct {
	Name string
	top  *Node
}

func NewArchive(name string, top *Node) *Archive {
	return &Archive{Name: name, top: top}
}

// Top returns the root object. Its children are the top level objects.
func (a *Archive) Top() *Node {
	return a.top
}

// Open reads a text archive from a file.
func Open(name string) (*Archive, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, name)
}

// Parse reads a text archive. The archive is a YAML stream holding one
// document per object:
//
//	%TAG !abc! tag:alembic.io,2011:
//	--- !abc!PolyMesh /group/mesh
//	samples:
//	  - time: 0
//	    positions: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
//	    faceIndices: [0, 1, 2]
//	    faceCounts: [3]
//
// Parent objects must appear before their children; missing parents are created.
func Parse(r io.Reader, name string) (*Archive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	top := NewRoot()
	objects := map[string]*Node{"/": top}
	for _, doc := range splitTextDocuments(data) {
		node, err := doc.toNode()
		if err != nil {
			return nil, fmt.Errorf("abc: %s:%d: %w", filepath.Base(name), doc.Line, err)
		}
		if _, exists := objects[doc.Path]; exists {
			return nil, fmt.Errorf("abc: %s:%d: duplicated object %s", filepath.Base(name), doc.Line, doc.Path)
		}
		ensureParent(objects, doc.Path).AddChild(node)
		objects[doc.Path] = node
	}
	return NewArchive(name, top), nil
}

func ensureParent(objects map[string]*Node, fullName string) *Node {
	dir := path.Dir(fullName)
	if p, ok := objects[dir]; ok {
		return p
	}
	p := NewNode(path.Base(dir), "")
	ensureParent(objects, dir).AddChild(p)
	objects[dir] = p
	return p
}

type textDoc struct {
	Tag  string
	Path string
	Line int
	Body []byte
}

type textSplitter struct {
	data []byte
	pos  int
	line int
	tags map[string]string
}

func splitTextDocuments(data []byte) []*textDoc {
	s := textSplitter{data: data, line: 1, tags: map[string]string{}}
	docStart := 0
	var doc *textDoc
	var docs []*textDoc

	for s.pos < len(data) {
		rest := data[s.pos:]
		if bytes.HasPrefix(rest, []byte("%TAG")) {
			s.pos += 4
			name := strings.Trim(s.readToken(), "!")
			value := s.readToken()
			s.tags[name] = value
		} else if bytes.HasPrefix(rest, []byte("---")) {
			if doc != nil {
				doc.Body = data[docStart:s.pos]
				docs = append(docs, doc)
			}
			s.pos += 3
			doc = &textDoc{Line: s.line}
			token := s.readToken()
			if strings.HasPrefix(token, "!") {
				doc.Tag = s.expandTag(token)
				token = s.readToken()
			}
			doc.Path = path.Clean("/" + strings.TrimPrefix(token, "&"))
			s.nextLine()
			docStart = s.pos
			continue
		}
		s.nextLine()
	}
	if doc != nil {
		doc.Body = data[docStart:s.pos]
		docs = append(docs, doc)
	}
	return docs
}

func (s *textSplitter) expandTag(tag string) string {
	t := strings.SplitN(tag[1:], "!", 2)
	if v, ok := s.tags[t[0]]; ok && len(t) == 2 {
		return v + t[1]
	}
	return tag
}

func (s *textSplitter) readToken() string {
	for s.pos < len(s.data) && s.data[s.pos] == ' ' {
		s.pos++
	}
	st := s.pos
	for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' && s.data[s.pos] != ' ' {
		s.pos++
	}
	return string(s.data[st:s.pos])
}

func (s *textSplitter) nextLine() int {
	for s.pos < len(s.data) {
		if s.data[s.pos] == '\n' {
			s.pos++
			s.line++
			break
		}
		s.pos++
	}
	return s.pos
}

// schemaOfTag maps "tag:alembic.io,2011:PolyMesh" or "!PolyMesh" to a schema name.
func schemaOfTag(tag string) string {
	kind := tag[strings.LastIndexAny(tag, ":!")+1:]
	switch kind {
	case "PolyMesh":
		return SchemaPolyMesh
	case "Curves", "Curve":
		return SchemaCurves
	case "Xform":
		return SchemaXform
	}
	return kind
}

type textBody struct {
	Metadata map[string]string `yaml:"metadata"`
	Samples  []*textSample     `yaml:"samples"`
	Normals  *textParam        `yaml:"normals"`
	UVs      *textParam        `yaml:"uvs"`
}

type textSample struct {
	Time        float64     `yaml:"time"`
	Positions   [][]float32 `yaml:"positions"`
	FaceIndices []int32     `yaml:"faceIndices"`
	FaceCounts  []int32     `yaml:"faceCounts"`
	NumVertices []int32     `yaml:"numVertices"`
	Knots       []float32   `yaml:"knots"`
	Orders      []uint8     `yaml:"orders"`
}

type textParam struct {
	Scope      string             `yaml:"scope"`
	SourceName string             `yaml:"sourceName"`
	Samples    []*textParamSample `yaml:"samples"`
}

type textParamSample struct {
	Time    float64     `yaml:"time"`
	Values  [][]float32 `yaml:"values"`
	Indices []uint32    `yaml:"indices"`
}

func (d *textDoc) toNode() (*Node, error) {
	if d.Path == "/" {
		return nil, errors.New("object without path")
	}
	var body textBody
	if err := yaml.Unmarshal(d.Body, &body); err != nil {
		return nil, err
	}

	node := NewNode(path.Base(d.Path), schemaOfTag(d.Tag))
	for k, v := range body.Metadata {
		node.header.Metadata[k] = v
	}

	var err error
	switch node.header.Schema() {
	case SchemaPolyMesh:
		node.mesh, err = body.toPolyMesh()
	case SchemaCurves:
		node.curves, err = body.toCurves()
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Path, err)
	}
	return node, nil
}

func (b *textBody) toPolyMesh() (*PolyMesh, error) {
	m := &PolyMesh{}
	for i, s := range b.Samples {
		p, err := toVector3s(s.Positions)
		if err != nil {
			return nil, fmt.Errorf("samples[%d].positions: %w", i, err)
		}
		m.AddSample(s.Time, &PolyMeshSample{Positions: p, FaceIndices: s.FaceIndices, FaceCounts: s.FaceCounts})
	}
	if b.Normals != nil {
		param := NewN3fParam(ParseScope(b.Normals.Scope), b.Normals.metadata())
		for i, s := range b.Normals.Samples {
			v, err := toVector3s(s.Values)
			if err != nil {
				return nil, fmt.Errorf("normals.samples[%d].values: %w", i, err)
			}
			param.AddSample(s.Time, v, s.Indices)
		}
		m.Normals = param
	}
	if b.UVs != nil {
		param := NewV2fParam(ParseScope(b.UVs.Scope), b.UVs.metadata())
		for i, s := range b.UVs.Samples {
			v, err := toVector2s(s.Values)
			if err != nil {
				return nil, fmt.Errorf("uvs.samples[%d].values: %w", i, err)
			}
			param.AddSample(s.Time, v, s.Indices)
		}
		m.UVs = param
	}
	return m, nil
}

func (b *textBody) toCurves() (*Curves, error) {
	c := &Curves{}
	for i, s := range b.Samples {
		p, err := toVector3s(s.Positions)
		if err != nil {
			return nil, fmt.Errorf("samples[%d].positions: %w", i, err)
		}
		c.AddSample(s.Time, &CurvesSample{Positions: p, NumVertices: s.NumVertices, Knots: s.Knots, Orders: s.Orders})
	}
	return c, nil
}

func (p *textParam) metadata() Metadata {
	md := Metadata{}
	if p.SourceName != "" {
		md["sourceName"] = p.SourceName
	}
	return md
}

func toVector3s(values [][]float32) ([]geom.Vector3, error) {
	dst := make([]geom.Vector3, len(values))
	for i, v := range values {
		if len(v) != 3 {
			return nil, fmt.Errorf("[%d] has %d components, want 3", i, len(v))
		}
		dst[i] = geom.Vector3{X: v[0], Y: v[1], Z: v[2]}
	}
	return dst, nil
}

func toVector2s(values [][]float32) ([]geom.Vector2, error) {
	dst := make([]geom.Vector2, len(values))
	for i, v := range values {
		if len(v) != 2 {
			return nil, fmt.Errorf("[%d] has %d components, want 2", i, len(v))
		}
		dst[i] = geom.Vector2{X: v[0], Y: v[1]}
	}
	return dst, nil
}
