// placegen writes placeholder PNG textures for the Fabrica mod.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/inhies/go-bytesize"
	flag "github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/placegen/internal/config"
	"github.com/Faultbox/placegen/internal/generator"
	"github.com/Faultbox/placegen/internal/logger"
	"github.com/Faultbox/placegen/internal/manifest"
	"github.com/Faultbox/placegen/internal/placeholder"
	"github.com/Faultbox/placegen/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "generate", "gen":
		err = cmdGenerate(args)
	case "list", "ls":
		err = cmdList(args)
	case "inspect":
		err = cmdInspect(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`placegen - placeholder texture generator

Usage:
  placegen <command> [options]

Commands:
  generate [flags]              Write every texture in the manifest
  list [flags] [pattern]        List manifest assets
  inspect <file.png>...         Show PNG header and chunks, verify CRCs
  config init [path]            Write the default config file

Examples:
  placegen generate
  placegen generate -o build --only gui --progress
  placegen list "Machine_*"
  placegen inspect src/main/resources/Common/UI/Custom/Slot_Background.png`)
}

func cmdGenerate(args []string) error {
	var flags config.Flags
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	flags.Register(fs)
	fs.Parse(args)

	cfg, err := config.Load(&flags)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	assets, err := loadAssets(cfg.Output.Manifest)
	if err != nil {
		return err
	}
	assets = manifest.Filter(assets, cfg.Generate.Only)
	if len(assets) == 0 {
		return fmt.Errorf("no assets match %v", cfg.Generate.Only)
	}

	opts := generator.Options{
		Workers: cfg.Generate.Workers,
		DryRun:  cfg.Generate.DryRun,
	}
	if cfg.Generate.Progress {
		opts.Progress = os.Stderr
	}

	writer := placeholder.NewOsWriter(cfg.Output.Root, logger.Named("writer"))
	gen := generator.New(writer, logger.Named("generator"), opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := gen.Run(ctx, assets)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			logger.Log.Error("asset failed", zap.Error(e))
		}
		return fmt.Errorf("%d of %d textures failed", report.Failed, len(assets))
	}

	if cfg.Generate.DryRun {
		logger.Sugar.Infof("Dry run: %d textures planned under %s", report.Planned, cfg.Output.Root)
		return nil
	}
	logger.Sugar.Infof("Generated %d textures (%s) under %s", report.Written, report.TotalSize(), cfg.Output.Root)
	return nil
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	manifestPath := fs.StringP("manifest", "m", "", "Asset manifest (YAML); built-in manifest if empty")
	fs.Parse(args)

	assets, err := loadAssets(*manifestPath)
	if err != nil {
		return err
	}
	if fs.NArg() > 0 {
		assets = manifest.Filter(assets, fs.Args())
	}

	for _, a := range assets {
		fmt.Printf("%-8s %-60s %s\n", a.Group, a.Path, a)
	}
	fmt.Fprintf(os.Stderr, "\n(%d assets)\n", len(assets))
	return nil
}

func cmdInspect(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: placegen inspect <file.png>...")
	}

	var errs error
	for _, path := range args {
		info, err := formats.InspectPNGFile(path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}

		fmt.Printf("File:   %s\n", path)
		fmt.Printf("Size:   %s\n", bytesize.New(float64(info.Size)))
		fmt.Printf("Image:  %s\n", info.Header)
		fmt.Println("Chunks:")
		for _, c := range info.Chunks {
			fmt.Printf("  %s %8d bytes  crc 0x%08x\n", c.TypeString(), len(c.Data), c.CRC())
		}
		fmt.Println()
	}
	return errs
}

func cmdConfig(args []string) error {
	if len(args) < 1 || args[0] != "init" {
		return fmt.Errorf("usage: placegen config init [path]")
	}

	cfg := config.Default()
	if len(args) > 1 {
		path := args[1]
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	path, err := cfg.Save()
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// loadAssets resolves the manifest at path, or the built-in one when path is empty.
func loadAssets(path string) ([]manifest.Asset, error) {
	var (
		m   *manifest.Manifest
		err error
	)
	if path == "" {
		m, err = manifest.Default()
	} else {
		m, err = manifest.Load(filepath.Clean(path))
	}
	if err != nil {
		return nil, err
	}

	assets, err := m.Resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return assets, nil
}
