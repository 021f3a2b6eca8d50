package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Format != FormatGLTF1 {
		t.Errorf("expected format gltf1, got %s", cfg.Output.Format)
	}
	if !cfg.Output.Pretty {
		t.Error("expected pretty to be true by default")
	}
	if cfg.Output.ExportAttributes {
		t.Error("expected export_attributes to be false by default")
	}
	if cfg.Output.Generator != "abc2gltf" {
		t.Errorf("expected generator abc2gltf, got %s", cfg.Output.Generator)
	}
	if cfg.Output.CurvesSuffix != ".curves" {
		t.Errorf("expected curves suffix .curves, got %s", cfg.Output.CurvesSuffix)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
output:
  format: gltf2
  pretty: false
  generator: "my-tool"
  export_attributes: true

logging:
  level: "debug"
  log_file: "abc2gltf.log"
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Output.Format != FormatGLTF2 {
		t.Errorf("expected format gltf2, got %s", cfg.Output.Format)
	}
	if cfg.Output.Pretty {
		t.Error("expected pretty to be false")
	}
	if !cfg.Output.ExportAttributes {
		t.Error("expected export_attributes to be true")
	}
	if cfg.Output.Generator != "my-tool" {
		t.Errorf("expected generator my-tool, got %s", cfg.Output.Generator)
	}
	// not in file
	if cfg.Output.CurvesSuffix != ".curves" {
		t.Errorf("expected default curves suffix, got %s", cfg.Output.CurvesSuffix)
	}
	if cfg.Logging.LogFile != "abc2gltf.log" {
		t.Errorf("expected log file 'abc2gltf.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":  "output:\n  pretty: [\n",
		"unknown": "output:\n  colour: red\n",
		"format":  "output:\n  format: obj\n",
	}
	for name, content := range tests {
		if _, err := Load(writeConfig(t, content), nil); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""), nil)
	if err != nil {
		t.Fatalf("failed to load empty config: %v", err)
	}
	if cfg.Output.Format != FormatGLTF1 {
		t.Errorf("expected default format, got %s", cfg.Output.Format)
	}
}

func TestFlagsOverride(t *testing.T) {
	path := writeConfig(t, "output:\n  format: gltf2\n  generator: file\n")

	var flags Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags.Register(fs)
	if err := fs.Parse([]string{"-format", "gltf1", "-compact", "-attributes", "-log-level", "warn"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, &flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Output.Format != FormatGLTF1 {
		t.Errorf("expected flag format gltf1, got %s", cfg.Output.Format)
	}
	if cfg.Output.Generator != "file" {
		t.Errorf("expected generator from file, got %s", cfg.Output.Generator)
	}
	if cfg.Output.Pretty {
		t.Error("expected -compact to disable pretty")
	}
	if !cfg.Output.ExportAttributes {
		t.Error("expected -attributes to enable export_attributes")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
}
