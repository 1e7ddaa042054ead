package formats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Pixel data errors.
var (
	ErrInvalidDimension = errors.New("invalid image dimensions")
	ErrEncoding         = errors.New("pixel data does not match image size")
	ErrInvalidColor     = errors.New("invalid color")
)

const (
	// maxDimension is the largest width or height a PNG header can carry.
	maxDimension = 1<<31 - 1
	// maxRawBytes caps the filtered scanline buffer built before compression.
	maxRawBytes = 1 << 30
)

// RGB is an opaque 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// String returns the color as "#rrggbb".
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// PixelSource returns the color of the pixel at (x, y).
type PixelSource func(x, y int) RGB

// Solid returns a source that paints every pixel with c.
func Solid(c RGB) PixelSource {
	return func(int, int) RGB {
		return c
	}
}

// Bordered returns a source that paints the outermost ring of a
// width x height image with border and everything else with fill.
// With width or height of 1 every pixel lies on the ring.
func Bordered(width, height int, fill, border RGB) PixelSource {
	return func(x, y int) RGB {
		if x == 0 || y == 0 || x == width-1 || y == height-1 {
			return border
		}
		return fill
	}
}

// PixelBuffer is a row-major grid of RGB pixels.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewPixelBuffer renders src into a new width x height buffer.
func NewPixelBuffer(width, height int, src PixelSource) (*PixelBuffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	buf := &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
	for y := 0; y < height; y++ {
		row := buf.Pix[y*width : (y+1)*width]
		for x := range row {
			row[x] = src(x, y)
		}
	}
	return buf, nil
}

// At returns the pixel at (x, y).
// Returns the zero color if coordinates are out of bounds.
func (b *PixelBuffer) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return RGB{}
	}
	return b.Pix[y*b.Width+x]
}

// Validate checks that the buffer holds exactly Width*Height pixels.
func (b *PixelBuffer) Validate() error {
	if err := checkDimensions(b.Width, b.Height); err != nil {
		return err
	}
	if len(b.Pix) != b.Width*b.Height {
		return fmt.Errorf("%w: expected %d pixels, got %d", ErrEncoding, b.Width*b.Height, len(b.Pix))
	}
	return nil
}

// EncodePNG encodes the buffer as an 8-bit RGB PNG.
func (b *PixelBuffer) EncodePNG() ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return encodePNG(b.Width, b.Height, func(x, y int) RGB {
		return b.Pix[y*b.Width+x]
	})
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	// Computed in uint64 so the product cannot wrap on any platform.
	stride := 1 + 3*uint64(width)
	if stride > maxRawBytes/uint64(height) {
		return fmt.Errorf("%w: %dx%d exceeds %d bytes of pixel data", ErrInvalidDimension, width, height, maxRawBytes)
	}
	return nil
}
