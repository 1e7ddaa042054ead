package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"
)

// PNGSignature is the fixed 8-byte prefix of every PNG file.
var PNGSignature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Chunk types written by the encoder.
const (
	ChunkIHDR = "IHDR"
	ChunkIDAT = "IDAT"
	ChunkIEND = "IEND"
)

// IHDR field values for 8-bit truecolor without interlacing.
const (
	pngBitDepth       = 8
	pngColorTypeRGB   = 2
	pngCompression    = 0
	pngFilterMethod   = 0
	pngInterlaceNone  = 0
	pngFilterTypeNone = 0
	ihdrLength        = 13
	chunkOverhead     = 12 // length + type + CRC
)

// Chunk is a single PNG chunk.
type Chunk struct {
	Type [4]byte
	Data []byte
}

// NewChunk builds a chunk from a 4-character type tag.
func NewChunk(typ string, data []byte) Chunk {
	var c Chunk
	copy(c.Type[:], typ)
	c.Data = data
	return c
}

// TypeString returns the chunk type as a string.
func (c Chunk) TypeString() string {
	return string(c.Type[:])
}

// CRC returns the CRC-32 of the chunk type followed by its data.
func (c Chunk) CRC() uint32 {
	h := crc32.NewIEEE()
	h.Write(c.Type[:])
	h.Write(c.Data)
	return h.Sum32()
}

// Append serializes the chunk as length, type, data and CRC and appends it to dst.
func (c Chunk) Append(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(c.Data)))
	dst = append(dst, c.Type[:]...)
	dst = append(dst, c.Data...)
	return binary.BigEndian.AppendUint32(dst, c.CRC())
}

// EncodePNG encodes a width x height 8-bit RGB image whose pixels come from src.
// The output is deterministic for identical inputs.
func EncodePNG(width, height int, src PixelSource) ([]byte, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil pixel source", ErrEncoding)
	}
	return encodePNG(width, height, src)
}

// FillPNG encodes a solid-color image.
func FillPNG(width, height int, c RGB) ([]byte, error) {
	return EncodePNG(width, height, Solid(c))
}

// BorderedPNG encodes an image filled with fill and a one-pixel border ring.
func BorderedPNG(width, height int, fill, border RGB) ([]byte, error) {
	return EncodePNG(width, height, Bordered(width, height, fill, border))
}

func encodePNG(width, height int, src PixelSource) ([]byte, error) {
	idat, err := compressScanlines(width, height, src)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(PNGSignature)+3*chunkOverhead+ihdrLength+len(idat))
	out = append(out, PNGSignature[:]...)
	out = NewChunk(ChunkIHDR, headerData(width, height)).Append(out)
	out = NewChunk(ChunkIDAT, idat).Append(out)
	out = NewChunk(ChunkIEND, nil).Append(out)

	return out, nil
}

// headerData builds the 13-byte IHDR payload.
func headerData(width, height int) []byte {
	data := make([]byte, ihdrLength)
	binary.BigEndian.PutUint32(data[0:], uint32(width))
	binary.BigEndian.PutUint32(data[4:], uint32(height))
	data[8] = pngBitDepth
	data[9] = pngColorTypeRGB
	data[10] = pngCompression
	data[11] = pngFilterMethod
	data[12] = pngInterlaceNone
	return data
}

// compressScanlines builds the filtered scanline buffer and zlib-compresses it.
func compressScanlines(width, height int, src PixelSource) ([]byte, error) {
	stride := 1 + 3*width
	raw := make([]byte, stride*height)

	for y := 0; y < height; y++ {
		row := raw[y*stride : (y+1)*stride]
		row[0] = pngFilterTypeNone
		for x := 0; x < width; x++ {
			c := src(x, y)
			i := 1 + 3*x
			row[i] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
		}
	}

	var compressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressed, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("creating zlib writer: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("compressing scanlines: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("flushing zlib stream: %w", err)
	}
	return compressed.Bytes(), nil
}
