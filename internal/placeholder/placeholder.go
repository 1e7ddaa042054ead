// Package placeholder writes solid and bordered placeholder textures to disk.
package placeholder

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Faultbox/placegen/pkg/formats"
)

// ErrIO reports a directory creation or file write failure.
var ErrIO = errors.New("placeholder I/O failed")

// Writer encodes textures and writes them through an afero filesystem.
type Writer struct {
	fs  afero.Fs
	log *zap.Logger
}

// NewWriter creates a writer on fs. A nil logger disables logging.
func NewWriter(fs afero.Fs, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{fs: fs, log: log}
}

// NewOsWriter creates a writer rooted at dir on the real filesystem.
func NewOsWriter(dir string, log *zap.Logger) *Writer {
	fs := afero.NewOsFs()
	if dir != "" && dir != "." {
		fs = afero.NewBasePathFs(fs, dir)
	}
	return NewWriter(fs, log)
}

// Fill writes a width x height PNG of a single color to path and returns
// the number of bytes written. An existing file is replaced.
func (w *Writer) Fill(width, height int, c formats.RGB, path string) (int, error) {
	data, err := formats.FillPNG(width, height, c)
	if err != nil {
		return 0, fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := w.write(path, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// FillWithBorder writes a width x height PNG filled with fill and ringed by a
// one-pixel border, and returns the number of bytes written.
func (w *Writer) FillWithBorder(width, height int, fill, border formats.RGB, path string) (int, error) {
	data, err := formats.BorderedPNG(width, height, fill, border)
	if err != nil {
		return 0, fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := w.write(path, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// write stores data at path via a temporary sibling and a rename, so a
// failed write never leaves a truncated file at path.
func (w *Writer) write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIO, dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+xid.New().String()+".tmp")
	if err := afero.WriteFile(w.fs, tmp, data, 0644); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	if err := w.fs.Rename(tmp, path); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("%w: replacing %s: %w", ErrIO, path, err)
	}

	w.log.Debug("texture written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
