// Package qoi implements the QOI (Quite OK Image) lossless image format.
//
// The package works on raw pixel buffers: Encode turns width*height*channels
// bytes into a QOI stream and Decode turns a QOI stream back into pixels.
// StreamEncoder and StreamDecoder do the same over arbitrarily small slices
// of input and output while producing byte-identical results.
//
// The format is also registered with the standard image package, so
// image.Decode understands QOI once this package is imported.
package qoi

import (
	"image"
)

const (
	qoiMagic = "qoif"

	qoiHeaderSize    = 14 //size in bytes
	qoiEndMarkerSize = 8
	qoiMaxBufferSize = 64
	qoiMaxRunSize    = 62

	// longest single-pixel chunk (OP_RGBA)
	qoiMaxChunkSize = 5

	// largest image the allocating codecs accept
	qoiMaxPixels = 400_000_000
)

var qoiEndMarker = [qoiEndMarkerSize]byte{0, 0, 0, 0, 0, 0, 0, 1}

const (
	opINDEX uint8 = 0b00000000
	opDIFF  uint8 = 0b01000000
	opLUMA  uint8 = 0b10000000
	opRUN   uint8 = 0b11000000
	opRGB   uint8 = 0b11111110
	opRGBA  uint8 = 0b11111111
)

const (
	maskOP uint8 = 0b11000000
	mask6  uint8 = 0b00111111
	mask4  uint8 = 0b00001111
	mask2  uint8 = 0b00000011
)

const (
	biasDiff   = 2
	biasLumaG  = 32
	biasLumaRB = 8
)

func init() {
	image.RegisterFormat("qoi", qoiMagic, DecodeImage, DecodeConfig)
}

// Pixel is a single non-premultiplied RGBA pixel.
type Pixel struct {
	R, G, B, A uint8
}

// startPixel is the value of the previous pixel before the first one is processed.
var startPixel = Pixel{0, 0, 0, 255}

func hash(p Pixel) uint8 {
	return (3*p.R + 5*p.G + 7*p.B + 11*p.A) % qoiMaxBufferSize
}
