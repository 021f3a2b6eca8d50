package converter

import (
	"bufio"
	"bytes"
	"errors"

	"github.com/binzume/abc2gltf/abc"
	"github.com/binzume/abc2gltf/geom"
	"go.uber.org/zap"
)

type ExtractOption struct {
	Logger *zap.Logger // Default: nop
	Time   float64     // nearest sample to Time is read. Default: 0
}

// Result holds the first mesh and the first curves of a hierarchy.
type Result struct {
	Mesh        *geom.Mesh
	Curves      *geom.Curves
	FoundMesh   bool
	FoundCurves bool
	Visited     int // number of objects visited
}

type Extractor struct {
	*ExtractOption
	logger *zap.Logger
}

func NewExtractor(option *ExtractOption) *Extractor {
	if option == nil {
		option = &ExtractOption{}
	}
	logger := option.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{ExtractOption: option, logger: logger}
}

// Extract walks root depth first and converts the first PolyMesh and the
// first Curves object that have samples. The walk stops once both are found.
func (e *Extractor) Extract(root abc.Object) *Result {
	res := &Result{}
	stack := []abc.Object{root}
	for len(stack) > 0 && !(res.FoundMesh && res.FoundCurves) {
		obj := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res.Visited++

		h := obj.Header()
		if !res.FoundMesh && abc.MatchesPolyMesh(h) {
			if m := e.readMesh(obj); m != nil {
				res.Mesh, res.FoundMesh = m, true
			}
		} else if !res.FoundCurves && abc.MatchesCurves(h) {
			if c := e.readCurves(obj); c != nil {
				res.Curves, res.FoundCurves = c, true
			}
		}

		for i := obj.NumChildren() - 1; i >= 0; i-- {
			stack = append(stack, obj.Child(i))
		}
	}
	return res
}

func (e *Extractor) selector() abc.SampleSelector {
	return abc.NearestSample(e.Time)
}

func (e *Extractor) readMesh(obj abc.Object) *geom.Mesh {
	path := obj.Header().FullName
	log := e.logger.With(zap.String("path", path))
	schema, ok := abc.PolyMeshOf(obj)
	if !ok || schema.NumSamples() == 0 {
		log.Warn("polymesh has no samples")
		return nil
	}
	log.Debug("polymesh", zap.Int("samples", schema.NumSamples()))

	sample, err := schema.Sample(e.selector())
	if err != nil {
		log.Warn("failed to read polymesh sample", zap.Error(err))
		return nil
	}

	mesh := &geom.Mesh{
		Name:      obj.Header().Name,
		Vertices:  geom.Vector3Floats(sample.Positions),
		Normals:   ReadNormals(schema.NormalsParam(), e.selector(), log),
		Texcoords: ReadUVs(schema.UVsParam(), e.selector(), log),
	}
	log.Debug("attributes",
		zap.Int("positions", len(sample.Positions)),
		zap.Int("faceCounts", len(sample.FaceCounts)),
		zap.Stringer("normals", mesh.Normals.Scope), zap.Int("numNormals", mesh.Normals.Count()),
		zap.Stringer("uvs", mesh.Texcoords.Scope), zap.Int("numUVs", mesh.Texcoords.Count()))

	fs, err := geom.BuildFaceSet(len(sample.Positions), sample.FaceIndices, sample.FaceCounts)
	if fs != nil {
		for _, skipped := range fs.Skipped {
			log.Warn("face skipped", zap.Error(skipped))
		}
		mesh.Faces = fs.Faces
	}
	var rangeErr *geom.FaceRangeError
	switch {
	case errors.Is(err, geom.ErrInvalidFaceSet):
		log.Info("no faces in polymesh", zap.Error(err))
	case errors.As(err, &rangeErr):
		log.Warn("face set truncated", zap.Error(err), zap.Int("triangles", mesh.NumTriangles()))
	}
	return mesh
}

func (e *Extractor) readCurves(obj abc.Object) *geom.Curves {
	log := e.logger.With(zap.String("path", obj.Header().FullName))
	schema, ok := abc.CurvesOf(obj)
	if !ok || schema.NumSamples() == 0 {
		log.Warn("curves has no samples")
		return nil
	}

	sample, err := schema.Sample(e.selector())
	if err != nil {
		log.Warn("failed to read curves sample", zap.Error(err))
		return nil
	}
	log.Debug("curves",
		zap.Int("samples", schema.NumSamples()),
		zap.Int("curves", sample.NumCurves()),
		zap.Int("knots", len(sample.Knots)),
		zap.Int("orders", len(sample.Orders)))

	curves := &geom.Curves{
		Name:   obj.Header().Name,
		Points: geom.Vector3Floats(sample.Positions),
		NVerts: append([]int32(nil), sample.NumVertices...),
		Knots:  append([]float32(nil), sample.Knots...),
		Orders: append([]uint8(nil), sample.Orders...),
	}
	if n := curves.TotalVertices(); n != curves.NumPoints() {
		log.Warn("curve vertex counts do not match points", zap.Int("nverts", n), zap.Int("points", curves.NumPoints()))
	}
	return curves
}

// Dump logs the object tree of root with property headers at debug level.
func (e *Extractor) Dump(root abc.Object) {
	var buf bytes.Buffer
	if err := abc.Dump(&buf, root); err != nil {
		e.logger.Warn("dump failed", zap.Error(err))
		return
	}
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		e.logger.Debug(sc.Text())
	}
}
