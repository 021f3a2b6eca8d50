package config

import "flag"

// Flags holds command line overrides. Zero values leave the config as is.
type Flags struct {
	ConfigPath string
	Format     string
	Generator  string
	LogLevel   string
	LogFile    string
	Attributes bool
	Pretty     bool
	Compact    bool
	Dump       bool
}

// Register defines the flags on fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.StringVar(&f.Format, "format", "", "Output format: gltf1 or gltf2")
	fs.StringVar(&f.Generator, "generator", "", "asset.generator")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to file")
	fs.BoolVar(&f.Attributes, "attributes", false, "Export per point normals and uvs")
	fs.BoolVar(&f.Pretty, "pretty", false, "Indent output json")
	fs.BoolVar(&f.Compact, "compact", false, "Do not indent output json")
	fs.BoolVar(&f.Dump, "dump", false, "Print object hierarchy")
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.Generator != "" {
		cfg.Output.Generator = f.Generator
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Attributes {
		cfg.Output.ExportAttributes = true
	}
	if f.Pretty {
		cfg.Output.Pretty = true
	}
	if f.Compact {
		cfg.Output.Pretty = false
	}
}
