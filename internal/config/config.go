// Package config handles placegen configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Generate GenerateConfig `yaml:"generate"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// OutputConfig holds where textures are written.
type OutputConfig struct {
	Root     string `yaml:"root"`     // Prefix for every manifest path
	Manifest string `yaml:"manifest"` // Manifest file; empty uses the built-in one
}

// GenerateConfig holds generation behaviour.
type GenerateConfig struct {
	Workers  int      `yaml:"workers"` // 0 uses GOMAXPROCS
	Only     []string `yaml:"only"` // Asset name or group patterns
	DryRun   bool     `yaml:"dry_run"`
	Progress bool     `yaml:"progress"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Root: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
