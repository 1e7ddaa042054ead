package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// PNG reader errors.
var (
	ErrInvalidPNGSignature = errors.New("invalid PNG signature")
	ErrTruncatedPNGData    = errors.New("truncated PNG data")
	ErrChunkCRCMismatch    = errors.New("chunk CRC mismatch")
	ErrMissingIHDR         = errors.New("first chunk is not IHDR")
	ErrMissingIEND         = errors.New("missing IEND chunk")
)

// PNGHeader holds the decoded IHDR fields.
type PNGHeader struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// String returns a short description such as "32x32 8-bit RGB".
func (h PNGHeader) String() string {
	return fmt.Sprintf("%dx%d %d-bit %s", h.Width, h.Height, h.BitDepth, colorTypeName(h.ColorType))
}

// IsRGB8 reports whether the header describes non-interlaced 8-bit truecolor.
func (h PNGHeader) IsRGB8() bool {
	return h.BitDepth == pngBitDepth && h.ColorType == pngColorTypeRGB && h.Interlace == pngInterlaceNone
}

func colorTypeName(t uint8) string {
	switch t {
	case 0:
		return "Gray"
	case 2:
		return "RGB"
	case 3:
		return "Indexed"
	case 4:
		return "GrayAlpha"
	case 6:
		return "RGBA"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// ReadChunks splits a PNG stream into chunks, verifying the signature,
// every chunk length and every CRC. Reading stops after IEND.
func ReadChunks(data []byte) ([]Chunk, error) {
	if len(data) < len(PNGSignature) {
		return nil, ErrTruncatedPNGData
	}
	if !bytes.Equal(data[:len(PNGSignature)], PNGSignature[:]) {
		return nil, ErrInvalidPNGSignature
	}

	var chunks []Chunk
	offset := len(PNGSignature)
	for offset < len(data) {
		if len(data)-offset < chunkOverhead {
			return nil, fmt.Errorf("%w: chunk header at offset %d", ErrTruncatedPNGData, offset)
		}

		length := int(binary.BigEndian.Uint32(data[offset:]))
		end := offset + 8 + length
		if length < 0 || end+4 > len(data) || end < offset {
			return nil, fmt.Errorf("%w: chunk at offset %d declares %d bytes", ErrTruncatedPNGData, offset, length)
		}

		var c Chunk
		copy(c.Type[:], data[offset+4:offset+8])
		c.Data = data[offset+8 : end]

		want := binary.BigEndian.Uint32(data[end:])
		if got := c.CRC(); got != want {
			return nil, fmt.Errorf("%w: %s chunk: got 0x%08x, want 0x%08x", ErrChunkCRCMismatch, c.TypeString(), got, want)
		}

		chunks = append(chunks, c)
		offset = end + 4

		if c.TypeString() == ChunkIEND {
			return chunks, nil
		}
	}

	return nil, ErrMissingIEND
}

// ParsePNGHeader reads and validates the chunk stream and returns the IHDR fields.
func ParsePNGHeader(data []byte) (*PNGHeader, error) {
	chunks, err := ReadChunks(data)
	if err != nil {
		return nil, err
	}
	return headerFromChunks(chunks)
}

func headerFromChunks(chunks []Chunk) (*PNGHeader, error) {
	if len(chunks) == 0 || chunks[0].TypeString() != ChunkIHDR {
		return nil, ErrMissingIHDR
	}

	d := chunks[0].Data
	if len(d) != ihdrLength {
		return nil, fmt.Errorf("%w: IHDR has %d bytes", ErrTruncatedPNGData, len(d))
	}

	return &PNGHeader{
		Width:       binary.BigEndian.Uint32(d[0:]),
		Height:      binary.BigEndian.Uint32(d[4:]),
		BitDepth:    d[8],
		ColorType:   d[9],
		Compression: d[10],
		Filter:      d[11],
		Interlace:   d[12],
	}, nil
}

// PNGInfo describes a PNG file for inspection.
type PNGInfo struct {
	Header *PNGHeader
	Chunks []Chunk
	Size   int
}

// InspectPNG parses the header and chunk table of a PNG stream.
func InspectPNG(data []byte) (*PNGInfo, error) {
	chunks, err := ReadChunks(data)
	if err != nil {
		return nil, err
	}
	header, err := headerFromChunks(chunks)
	if err != nil {
		return nil, err
	}
	return &PNGInfo{Header: header, Chunks: chunks, Size: len(data)}, nil
}

// InspectPNGFile reads a PNG file from disk and inspects it.
func InspectPNGFile(path string) (*PNGInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PNG file: %w", err)
	}
	return InspectPNG(data)
}
