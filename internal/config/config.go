// Package config handles converter configuration loading.
package config

// Config holds all converter settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds document output settings.
type OutputConfig struct {
	Format           string `yaml:"format"` // gltf1 or gltf2
	Pretty           bool   `yaml:"pretty"`
	Generator        string `yaml:"generator"`
	ExportAttributes bool   `yaml:"export_attributes"`
	CurvesSuffix     string `yaml:"curves_suffix"` // inserted before the extension of the curves output
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

const (
	FormatGLTF1 = "gltf1"
	FormatGLTF2 = "gltf2"
)

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:       FormatGLTF1,
			Pretty:       true,
			Generator:    "abc2gltf",
			CurvesSuffix: ".curves",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
