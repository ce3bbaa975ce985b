// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds settings for producing RBM files.
type ExportConfig struct {
	Output string `yaml:"output"` // Destination .rbm path
	// UpAxis is the up axis of source meshes: "y" (glTF) or "z" (rotated
	// -90 degrees about X into engine space).
	UpAxis                string `yaml:"up_axis"`
	NormalizeTexturePaths bool   `yaml:"normalize_texture_paths"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Output:                "out.rbm",
			UpAxis:                "y",
			NormalizeTexturePaths: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
