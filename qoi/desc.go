package qoi

import (
	"fmt"
	"math"
	"math/bits"
)

// Channels is the number of bytes per pixel of a raw image.
type Channels uint8

const (
	RGB  Channels = 3
	RGBA Channels = 4
)

func (c Channels) Valid() bool {
	return c == RGB || c == RGBA
}

func (c Channels) String() string {
	switch c {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("Channels(%d)", uint8(c))
	}
}

// Colorspace is informational only; it does not change how pixels are encoded.
type Colorspace uint8

const (
	SRGB   Colorspace = 0 // sRGB with linear alpha
	Linear Colorspace = 1 // all channels linear
)

func (c Colorspace) Valid() bool {
	return c == SRGB || c == Linear
}

func (c Colorspace) String() string {
	switch c {
	case SRGB:
		return "sRGB"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Colorspace(%d)", uint8(c))
	}
}

// Desc describes the geometry and color interpretation of an image.
type Desc struct {
	Width      uint32
	Height     uint32
	Channels   Channels
	Colorspace Colorspace
}

// Valid reports whether d has a non-empty size and known channels and colorspace.
func (d Desc) Valid() bool {
	return d.Width > 0 && d.Height > 0 && d.Channels.Valid() && d.Colorspace.Valid()
}

// ByteCount returns Width*Height*Channels, the size of the raw pixel buffer
// described by d.
func (d Desc) ByteCount() (int, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %+v", ErrInvalidDesc, d)
	}

	pixels, ok := mulSize(uint(d.Width), uint(d.Height))
	if !ok {
		return 0, fmt.Errorf("%w: %dx%d pixels", ErrTooBig, d.Width, d.Height)
	}
	n, ok := mulSize(pixels, uint(d.Channels))
	if !ok {
		return 0, fmt.Errorf("%w: %dx%dx%d bytes", ErrTooBig, d.Width, d.Height, d.Channels)
	}

	return int(n), nil
}

// WorstSize returns the largest possible size of the QOI stream for d: every
// pixel stored as OP_RGB or OP_RGBA, plus header and end marker.
func (d Desc) WorstSize() (int, error) {
	if _, err := d.ByteCount(); err != nil {
		return 0, err
	}

	pixels, _ := mulSize(uint(d.Width), uint(d.Height))
	n, ok := mulSize(pixels, uint(d.Channels)+1)
	if !ok || n > math.MaxInt-qoiHeaderSize-qoiEndMarkerSize {
		return 0, fmt.Errorf("%w: worst case size of %+v", ErrTooBig, d)
	}

	return int(n) + qoiHeaderSize + qoiEndMarkerSize, nil
}

// mulSize multiplies a and b, reporting false if the product does not fit an int.
func mulSize(a, b uint) (uint, bool) {
	hi, lo := bits.Mul(a, b)
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return lo, true
}

// checkPixels rejects images with more than qoiMaxPixels pixels. Buffers
// for such images are never allocated: the runtime cannot report an
// out-of-memory failure as an error.
func (d Desc) checkPixels() error {
	pixels, ok := mulSize(uint(d.Width), uint(d.Height))
	if !ok || pixels > qoiMaxPixels {
		return fmt.Errorf("%w: %dx%d pixels, limit is %d", ErrTooBig, d.Width, d.Height, qoiMaxPixels)
	}
	return nil
}

func (d Desc) pixelCount() int {
	return int(d.Width) * int(d.Height)
}
