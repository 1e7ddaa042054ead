// Package formats provides the PNG encoder and chunk reader used for placeholder textures.
package formats

// Note: the encoder lives in png.go, the structural reader in png_reader.go
// Note: pixel buffers and pixel sources live in pixels.go
