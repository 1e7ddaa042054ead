package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/placegen/pkg/formats"
)

// ColorRef is either a palette name or a literal color.
type ColorRef struct {
	Name string
	RGB  *formats.RGB
}

// Literal returns a ColorRef holding c.
func Literal(c formats.RGB) ColorRef {
	return ColorRef{RGB: &c}
}

// IsZero reports whether the reference is empty.
func (c ColorRef) IsZero() bool {
	return c.Name == "" && c.RGB == nil
}

// UnmarshalYAML accepts a palette name, "#rrggbb" or an [r, g, b] list.
func (c *ColorRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s := strings.TrimSpace(node.Value)
		if strings.HasPrefix(s, "#") {
			rgb, err := formats.ParseHex(s)
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			*c = ColorRef{RGB: &rgb}
			return nil
		}
		if s == "" {
			return fmt.Errorf("line %d: %w: empty color", node.Line, formats.ErrInvalidColor)
		}
		*c = ColorRef{Name: s}
		return nil

	case yaml.SequenceNode:
		var channels []int
		if err := node.Decode(&channels); err != nil {
			return fmt.Errorf("line %d: %w: %v", node.Line, formats.ErrInvalidColor, err)
		}
		if len(channels) != 3 {
			return fmt.Errorf("line %d: %w: expected 3 channels, got %d", node.Line, formats.ErrInvalidColor, len(channels))
		}
		for _, v := range channels {
			if v < 0 || v > 255 {
				return fmt.Errorf("line %d: %w: channel %d out of range", node.Line, formats.ErrInvalidColor, v)
			}
		}
		*c = ColorRef{RGB: &formats.RGB{R: uint8(channels[0]), G: uint8(channels[1]), B: uint8(channels[2])}}
		return nil

	default:
		return fmt.Errorf("line %d: %w: unsupported YAML node", node.Line, formats.ErrInvalidColor)
	}
}
