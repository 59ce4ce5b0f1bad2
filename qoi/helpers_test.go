package qoi

import (
	"bytes"
	"fmt"
	"image"
	"math/rand"
	"testing"
)

// getEncoded returns header, chunks and end marker for desc.
func getEncoded(t testing.TB, desc Desc, chunks []byte) []byte {
	t.Helper()

	buf := make([]byte, qoiHeaderSize)
	if err := WriteHeader(buf, desc); err != nil {
		t.Fatal(err)
	}

	buf = append(buf, chunks...)
	buf = append(buf, qoiEndMarker[:]...)

	return buf
}

// generateRaw returns a deterministic image for desc that exercises every
// opcode: short and long runs, palette hits, small and medium steps, random
// colors and, for RGBA, alpha changes.
func generateRaw(t testing.TB, desc Desc, seed int64) []byte {
	t.Helper()

	n, err := desc.ByteCount()
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(seed))
	channels := int(desc.Channels)

	palette := make([]Pixel, 6)
	for i := range palette {
		palette[i] = Pixel{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255}
	}

	raw := make([]byte, 0, n)
	px := startPixel
	for len(raw) < n {
		repeat := 1

		switch rng.Intn(8) {
		case 0:
			repeat = 1 + rng.Intn(4)
		case 1:
			repeat = 60 + rng.Intn(20)
		case 2:
			px = palette[rng.Intn(len(palette))]
		case 3:
			px.R += uint8(rng.Intn(4)) - 2
			px.G += uint8(rng.Intn(4)) - 2
			px.B += uint8(rng.Intn(4)) - 2
		case 4:
			dg := uint8(rng.Intn(64)) - 32
			px.R += dg + uint8(rng.Intn(16)) - 8
			px.G += dg
			px.B += dg + uint8(rng.Intn(16)) - 8
		case 5:
			px.A = uint8(rng.Intn(256))
		default:
			px = Pixel{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), px.A}
		}

		for ; repeat > 0 && len(raw) < n; repeat-- {
			rgba := [4]byte{px.R, px.G, px.B, px.A}
			raw = append(raw, rgba[:channels]...)
		}
	}

	return raw
}

func generateImageStub(t testing.TB, width, height int, pix []byte) *image.NRGBA {
	t.Helper()

	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(m.Pix, pix)

	return m
}

func getErrorFormatMsg(call string, expected, actual bool, actualError error) string {
	return fmt.Sprintf("\n") +
		fmt.Sprintf("%s = (%v)\n", call, actualError) +
		fmt.Sprintf("Expected error:\t %t\n", expected) +
		fmt.Sprintf("Actual error:\t %t\n", actual)
}

func assertEqualBytes(t testing.TB, expected, actual []byte, format string) {
	t.Helper()

	if bytes.Equal(expected, actual) {
		return
	}

	if len(expected) != len(actual) {
		t.Fatalf("%sAssert bytes:\t different length: Expected: %d - Actual: %d\n", format, len(expected), len(actual))
	}

	for i := range expected {
		if expected[i] != actual[i] {
			t.Fatalf("%sAssert bytes:\t different byte at %d: Expected: %#02x - Actual: %#02x\n", format, i, expected[i], actual[i])
		}
	}
}

func assertEqualImage(t testing.TB, expected, actual image.Image, format string) {
	t.Helper()

	if expected == nil && actual == nil {
		return
	}

	if expected == nil {
		t.Fatalf("%sAssert image:\t unexpected image", format)
	}

	if actual == nil {
		t.Fatalf("%sAssert image:\t unexpected nil image", format)
	}

	if expected.Bounds() != actual.Bounds() {
		t.Fatalf("%sAssert image:\t different image dimensions: Expected: %+v - Actual: %+v\n", format, expected.Bounds(), actual.Bounds())
	}

	if expected.ColorModel() != actual.ColorModel() {
		t.Fatalf("%sAssert image:\t different color model\n", format)
	}

	for y := expected.Bounds().Min.Y; y < expected.Bounds().Max.Y; y++ {
		for x := expected.Bounds().Min.X; x < expected.Bounds().Max.X; x++ {
			if expected.At(x, y) != actual.At(x, y) {
				t.Fatalf("%sAssert image:\t different pixel at x=%d, y=%d: Expected: %+v - Actual: %+v\n", format, x, y, expected.At(x, y), actual.At(x, y))
			}
		}
	}
}
