// Package manifest describes which placeholder textures to generate.
package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/placegen/pkg/formats"
)

//go:embed default.yaml
var defaultManifest []byte

// Manifest errors.
var (
	ErrUnknownColor   = errors.New("unknown palette color")
	ErrMissingColor   = errors.New("missing fill color")
	ErrDuplicatePath  = errors.New("duplicate output path")
	ErrInvalidAsset   = errors.New("invalid asset")
	ErrInvalidPalette = errors.New("invalid palette entry")
)

// Manifest is a palette plus groups of assets sharing an output directory.
type Manifest struct {
	Palette map[string]ColorRef `yaml:"palette"`
	Groups  []Group             `yaml:"groups"`
}

// Group is a set of assets written to the same directory.
// Width and Height are defaults for assets that omit them.
type Group struct {
	Name   string      `yaml:"name"`
	Dir    string      `yaml:"dir"`
	Width  int         `yaml:"width,omitempty"`
	Height int         `yaml:"height,omitempty"`
	Assets []AssetSpec `yaml:"assets"`
}

// AssetSpec is an asset as written in the manifest.
type AssetSpec struct {
	Name   string    `yaml:"name"`
	Width  int       `yaml:"width,omitempty"`
	Height int       `yaml:"height,omitempty"`
	Fill   ColorRef  `yaml:"fill"`
	Border *ColorRef `yaml:"border,omitempty"`
}

// Asset is a fully resolved texture ready for generation.
type Asset struct {
	Name   string
	Group  string
	Path   string // Slash-separated, relative to the output root
	Width  int
	Height int
	Fill   formats.RGB
	Border *formats.RGB
}

// Bordered reports whether the asset has a border ring.
func (a Asset) Bordered() bool {
	return a.Border != nil
}

// String returns a short description such as "32x32 #708090 border #ff6600".
func (a Asset) String() string {
	if a.Border != nil {
		return fmt.Sprintf("%dx%d %s border %s", a.Width, a.Height, a.Fill, *a.Border)
	}
	return fmt.Sprintf("%dx%d %s", a.Width, a.Height, a.Fill)
}

// Default returns the built-in manifest.
func Default() (*Manifest, error) {
	return Parse(defaultManifest)
}

// Load reads a manifest from a YAML file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest from YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Assets resolves every asset in declaration order.
func (m *Manifest) Assets() ([]Asset, error) {
	for name, ref := range m.Palette {
		if ref.RGB == nil {
			return nil, fmt.Errorf("%w: %s must be a literal color", ErrInvalidPalette, name)
		}
	}

	var assets []Asset
	for _, g := range m.Groups {
		for _, spec := range g.Assets {
			a, err := m.resolve(g, spec)
			if err != nil {
				return nil, fmt.Errorf("group %s: asset %s: %w", g.Name, spec.Name, err)
			}
			assets = append(assets, a)
		}
	}
	return assets, nil
}

// Validate checks that every asset resolves and output paths are unique.
func (m *Manifest) Validate() error {
	_, err := m.Resolve()
	return err
}

// Resolve is Assets plus the uniqueness check of Validate, in one pass.
// Paths are compared case-insensitively.
func (m *Manifest) Resolve() ([]Asset, error) {
	assets, err := m.Assets()
	if err != nil {
		return nil, err
	}

	dups := lo.FindDuplicatesBy(assets, func(a Asset) string {
		return strings.ToLower(a.Path)
	})
	if len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, dups[0].Path)
	}
	return assets, nil
}

func (m *Manifest) resolve(g Group, spec AssetSpec) (Asset, error) {
	if spec.Name == "" {
		return Asset{}, fmt.Errorf("%w: empty name", ErrInvalidAsset)
	}

	a := Asset{
		Name:   spec.Name,
		Group:  g.Name,
		Path:   path.Join(g.Dir, spec.Name+".png"),
		Width:  lo.Ternary(spec.Width > 0, spec.Width, g.Width),
		Height: lo.Ternary(spec.Height > 0, spec.Height, g.Height),
	}
	if a.Width <= 0 || a.Height <= 0 {
		return Asset{}, fmt.Errorf("%w: %w: %dx%d", ErrInvalidAsset, formats.ErrInvalidDimension, a.Width, a.Height)
	}

	if spec.Fill.IsZero() {
		return Asset{}, ErrMissingColor
	}
	fill, err := m.color(spec.Fill)
	if err != nil {
		return Asset{}, err
	}
	a.Fill = fill

	if spec.Border != nil {
		border, err := m.color(*spec.Border)
		if err != nil {
			return Asset{}, err
		}
		a.Border = &border
	}

	return a, nil
}

func (m *Manifest) color(ref ColorRef) (formats.RGB, error) {
	if ref.RGB != nil {
		return *ref.RGB, nil
	}
	entry, ok := m.Palette[ref.Name]
	if !ok || entry.RGB == nil {
		return formats.RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, ref.Name)
	}
	return *entry.RGB, nil
}

// Filter returns the assets matching any of patterns. A pattern matches an
// asset's name, group or path either as a glob or as a case-insensitive
// substring of the name. No patterns selects everything.
func Filter(assets []Asset, patterns []string) []Asset {
	if len(patterns) == 0 {
		return assets
	}
	return lo.Filter(assets, func(a Asset, _ int) bool {
		return lo.SomeBy(patterns, func(p string) bool {
			return matches(a, p)
		})
	})
}

func matches(a Asset, pattern string) bool {
	pattern = strings.ToLower(pattern)
	for _, s := range []string{a.Name, a.Group, a.Path} {
		if ok, _ := path.Match(pattern, strings.ToLower(s)); ok {
			return true
		}
	}
	return strings.Contains(strings.ToLower(a.Name), pattern)
}
