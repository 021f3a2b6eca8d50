package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/abc2gltf/abc"
	"github.com/binzume/abc2gltf/converter"
	"github.com/binzume/abc2gltf/geom"
	"github.com/binzume/abc2gltf/gltf1"
	"github.com/binzume/abc2gltf/gltfutil"
	"github.com/binzume/abc2gltf/internal/config"
	"github.com/binzume/abc2gltf/internal/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func curvesOutputFile(output, suffix string) string {
	ext := filepath.Ext(output)
	return output[0:len(output)-len(ext)] + suffix + ext
}

type writer struct {
	cfg *config.Config
	log *zap.Logger
}

func (w *writer) gltf2(output string) bool {
	return w.cfg.Output.Format == config.FormatGLTF2 || strings.ToLower(filepath.Ext(output)) == ".glb"
}

func (w *writer) saveMesh(mesh *geom.Mesh, output string) error {
	if w.gltf2(output) {
		conv := converter.NewGeomToGLTFConverter(&converter.GeomToGLTFOption{
			Generator:        w.cfg.Output.Generator,
			ExportAttributes: w.cfg.Output.ExportAttributes,
			Logger:           w.log,
		})
		return gltfutil.Save(conv.ConvertMesh(mesh), output)
	}
	doc, err := gltf1.EncodeMesh(mesh, w.options())
	if err != nil {
		return err
	}
	return gltf1.Save(doc, output, w.cfg.Output.Pretty)
}

func (w *writer) saveCurves(curves *geom.Curves, output string) error {
	if w.gltf2(output) {
		conv := converter.NewGeomToGLTFConverter(&converter.GeomToGLTFOption{Generator: w.cfg.Output.Generator, Logger: w.log})
		return gltfutil.Save(conv.ConvertCurves(curves), output)
	}
	doc, err := gltf1.EncodeCurves(curves, w.options())
	if err != nil {
		return err
	}
	return gltf1.Save(doc, output, w.cfg.Output.Pretty)
}

func (w *writer) options() *gltf1.Options {
	return &gltf1.Options{
		Generator:        w.cfg.Output.Generator,
		ExportAttributes: w.cfg.Output.ExportAttributes,
		Logger:           w.log,
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("abc2gltf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: abc2gltf [flags] input.abc.yaml output.gltf\n")
		fs.PrintDefaults()
	}
	var flags config.Flags
	flags.Register(fs)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return 1
	}
	input, output := fs.Arg(0), fs.Arg(1)

	cfg, err := config.Load(flags.ConfigPath, &flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, stderr)
	defer logger.Sync()

	archive, err := abc.Open(input)
	if err != nil {
		log.Error("failed to read input", zap.String("input", input), zap.Error(err))
		return 1
	}
	if flags.Dump {
		if err := abc.Dump(stdout, archive.Top()); err != nil {
			log.Error("dump failed", zap.Error(err))
			return 1
		}
	}

	ext := converter.NewExtractor(&converter.ExtractOption{Logger: log})
	if log.Core().Enabled(zapcore.DebugLevel) {
		ext.Dump(archive.Top())
	}
	res := ext.Extract(archive.Top())
	if !res.FoundMesh && !res.FoundCurves {
		log.Info("No polygon mesh or curves found", zap.String("input", input))
		return 0
	}

	w := &writer{cfg: cfg, log: log}
	if res.FoundMesh {
		if err := w.saveMesh(res.Mesh, output); err != nil {
			log.Error("failed to write mesh", zap.String("output", output), zap.Error(err))
			return 1
		}
		size := geom.ComputeBounds(res.Mesh.Vertices).Size()
		log.Info("mesh written", zap.String("output", output),
			zap.Int("points", res.Mesh.NumVertices()), zap.Int("triangles", res.Mesh.NumTriangles()),
			zap.Float32s("size", []float32{size.X, size.Y, size.Z}))
	}
	if res.FoundCurves {
		curvesOutput := output
		if res.FoundMesh {
			curvesOutput = curvesOutputFile(output, cfg.Output.CurvesSuffix)
		}
		if err := w.saveCurves(res.Curves, curvesOutput); err != nil {
			log.Error("failed to write curves", zap.String("output", curvesOutput), zap.Error(err))
			return 1
		}
		log.Info("curves written", zap.String("output", curvesOutput),
			zap.Int("points", res.Curves.NumPoints()), zap.Int("curves", res.Curves.NumCurves()))
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
