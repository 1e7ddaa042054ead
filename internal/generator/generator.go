// Package generator renders a set of manifest assets to disk in parallel.
package generator

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/placegen/internal/manifest"
	"github.com/Faultbox/placegen/internal/placeholder"
)

// Options controls a generation run.
type Options struct {
	Workers int
	DryRun  bool
	// Progress receives a progress bar. Nil disables it.
	Progress io.Writer
}

// Result is the outcome for one asset.
type Result struct {
	Asset manifest.Asset
	Bytes int
	Err   error
}

// Report summarizes a generation run.
// In a dry run successful assets count as Planned, never as Written.
type Report struct {
	Results  []Result
	Written  int
	Planned  int
	Failed   int
	Bytes    int64
	Duration time.Duration
}

// TotalSize returns the bytes written in human-readable form.
func (r *Report) TotalSize() string {
	return bytesize.New(float64(r.Bytes)).String()
}

// Generator writes assets through a placeholder.Writer.
type Generator struct {
	writer *placeholder.Writer
	log    *zap.Logger
	opts   Options
}

// New creates a generator. A nil logger disables logging.
func New(writer *placeholder.Writer, log *zap.Logger, opts Options) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{writer: writer, log: log, opts: opts}
}

// Run generates every asset and returns a report together with the combined
// error of all failed assets. A failure does not stop the remaining assets;
// cancelling ctx stops dispatching new ones.
func (g *Generator) Run(ctx context.Context, assets []manifest.Asset) (*Report, error) {
	start := time.Now()
	results := make([]Result, len(assets))

	var bar *progressbar.ProgressBar
	if g.opts.Progress != nil {
		bar = progressbar.NewOptions(len(assets),
			progressbar.OptionSetWriter(g.opts.Progress),
			progressbar.OptionSetDescription("generating"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	g.log.Info("generating textures",
		zap.Int("assets", len(assets)),
		zap.Int("workers", g.opts.Workers),
		zap.Bool("dry_run", g.opts.DryRun))

	p := startPool(g.opts.Workers)
	for i, a := range assets {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(assets); j++ {
				results[j] = Result{Asset: assets[j], Err: err}
			}
			break
		}

		p.do(func() {
			results[i] = g.generate(a)
			if bar != nil {
				_ = bar.Add(1)
			}
		})
	}
	p.wait()

	if bar != nil {
		_ = bar.Finish()
	}

	report := &Report{Results: results, Duration: time.Since(start)}
	var errs error
	for _, r := range results {
		if r.Err != nil {
			report.Failed++
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.Asset.Path, r.Err))
			continue
		}
		if g.opts.DryRun {
			report.Planned++
			continue
		}
		report.Written++
		report.Bytes += int64(r.Bytes)
	}

	g.log.Info("generation finished",
		zap.Int("written", report.Written),
		zap.Int("planned", report.Planned),
		zap.Int("failed", report.Failed),
		zap.String("size", report.TotalSize()),
		zap.Duration("took", report.Duration))

	return report, errs
}

func (g *Generator) generate(a manifest.Asset) Result {
	log := g.log.With(zap.String("path", a.Path), zap.Stringer("asset", a))
	path := filepath.FromSlash(a.Path)

	if g.opts.DryRun {
		log.Info("would write")
		return Result{Asset: a}
	}

	var (
		n   int
		err error
	)
	if a.Bordered() {
		n, err = g.writer.FillWithBorder(a.Width, a.Height, a.Fill, *a.Border, path)
	} else {
		n, err = g.writer.Fill(a.Width, a.Height, a.Fill, path)
	}
	if err != nil {
		log.Error("failed", zap.Error(err))
		return Result{Asset: a, Err: err}
	}

	log.Info("created", zap.String("size", bytesize.New(float64(n)).String()))
	return Result{Asset: a, Bytes: n}
}
