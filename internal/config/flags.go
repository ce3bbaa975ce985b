package config

import "github.com/spf13/pflag"

var (
	flagConfig    = pflag.String("config", "", "Path to config file")
	flagDebug     = pflag.Bool("debug", false, "Enable debug logging")
	flagOutput    = pflag.StringP("output", "o", "", "Destination .rbm file")
	flagUpAxis    = pflag.String("up-axis", "", "Up axis of source meshes (y or z)")
	flagNormalize = pflag.Bool("normalize-paths", false, "Apply Unicode NFC to texture paths")
	flagLogFile   = pflag.String("log-file", "", "Also write logs to this file")
	flagSave      = pflag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	pflag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return pflag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SavePath returns the --write-config destination, if any.
func SavePath() string {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOutput != "" {
		cfg.Export.Output = *flagOutput
	}
	if *flagUpAxis != "" {
		cfg.Export.UpAxis = *flagUpAxis
	}
	if *flagNormalize {
		cfg.Export.NormalizeTexturePaths = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
