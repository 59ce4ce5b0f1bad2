package imgconv

import (
	"image"
	"image/color"
)

// ToNRGBA converts any image m to an *image.NRGBA image.
// Any Image may be converted, but images that are not image.NRGBA might be converted lossily.
func ToNRGBA(m image.Image) *image.NRGBA {
	if img, ok := m.(*image.NRGBA); ok {
		return img
	}

	b := m.Bounds()
	img := image.NewNRGBA(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA))
		}
	}

	return img
}

// Opaque reports whether every pixel of m has full alpha.
func Opaque(m image.Image) bool {
	if o, ok := m.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}

	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := m.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}

	return true
}

// ToRaw returns the pixels of m as tightly packed rows of channels bytes per
// pixel. channels must be 3 (alpha is dropped) or 4.
func ToRaw(m image.Image, channels int) []byte {
	img := ToNRGBA(m)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	raw := make([]byte, 0, w*h*channels)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):][:w*4]
		if channels == 4 {
			raw = append(raw, row...)
			continue
		}
		for i := 0; i < len(row); i += 4 {
			raw = append(raw, row[i], row[i+1], row[i+2])
		}
	}

	return raw
}

// FromRaw wraps tightly packed rows of channels bytes per pixel into an
// *image.NRGBA. Three channel pixels get full alpha.
func FromRaw(raw []byte, width, height, channels int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if channels == 4 {
		copy(img.Pix, raw)
		return img
	}

	for i, j := 0, 0; i+2 < len(raw) && j < len(img.Pix); i, j = i+3, j+4 {
		img.Pix[j+0] = raw[i+0]
		img.Pix[j+1] = raw[i+1]
		img.Pix[j+2] = raw[i+2]
		img.Pix[j+3] = 255
	}

	return img
}
