package config

import (
	flag "github.com/spf13/pflag"
)

// Flags holds CLI overrides. Zero values leave the config untouched.
type Flags struct {
	Config   string
	Output   string
	Manifest string
	Only     []string
	Workers  int
	DryRun   bool
	Progress bool
	Debug    bool
	LogFile  string
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVarP(&f.Config, "config", "c", "", "Path to config file")
	fs.StringVarP(&f.Output, "output", "o", "", "Output root directory")
	fs.StringVarP(&f.Manifest, "manifest", "m", "", "Asset manifest (YAML); built-in manifest if empty")
	fs.StringSliceVar(&f.Only, "only", nil, "Only generate assets matching these name or group patterns")
	fs.IntVarP(&f.Workers, "workers", "j", 0, "Number of parallel workers")
	fs.BoolVarP(&f.DryRun, "dry-run", "n", false, "Log planned files without writing")
	fs.BoolVar(&f.Progress, "progress", false, "Show a progress bar")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Output != "" {
		cfg.Output.Root = f.Output
	}
	if f.Manifest != "" {
		cfg.Output.Manifest = f.Manifest
	}
	if len(f.Only) > 0 {
		cfg.Generate.Only = f.Only
	}
	if f.Workers > 0 {
		cfg.Generate.Workers = f.Workers
	}
	if f.DryRun {
		cfg.Generate.DryRun = true
	}
	if f.Progress {
		cfg.Generate.Progress = true
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
