package imgconv

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestToNRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 4, 4))
	src.SetRGBA(2, 3, color.RGBA{100, 50, 0, 200})
	src.SetRGBA(3, 3, color.RGBA{1, 2, 3, 255})

	img := ToNRGBA(src)
	if img.Bounds() != src.Bounds() {
		t.Fatalf("ToNRGBA bounds = %v, expected %v", img.Bounds(), src.Bounds())
	}

	expected := color.NRGBAModel.Convert(src.At(2, 3)).(color.NRGBA)
	if actual := img.NRGBAAt(2, 3); actual != expected {
		t.Errorf("ToNRGBA pixel = %+v, expected %+v", actual, expected)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if ToNRGBA(nrgba) != nrgba {
		t.Error("ToNRGBA copied an *image.NRGBA")
	}
}

func TestOpaque(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	if Opaque(m) {
		t.Error("Opaque(transparent) = true")
	}

	for i := 3; i < len(m.Pix); i += 4 {
		m.Pix[i] = 255
	}
	if !Opaque(m) {
		t.Error("Opaque(full alpha) = false")
	}

	if !Opaque(image.NewGray(image.Rect(0, 0, 2, 2))) {
		t.Error("Opaque(gray) = false")
	}
}

func TestToRawFromRaw(t *testing.T) {
	pix := []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}
	m := &image.NRGBA{Pix: pix, Stride: 8, Rect: image.Rect(0, 0, 2, 2)}

	rgba := ToRaw(m, 4)
	if !bytes.Equal(rgba, pix) {
		t.Errorf("ToRaw(4) = %v, expected %v", rgba, pix)
	}

	rgb := ToRaw(m, 3)
	expected := []byte{1, 2, 3, 5, 6, 7, 9, 10, 11, 13, 14, 15}
	if !bytes.Equal(rgb, expected) {
		t.Errorf("ToRaw(3) = %v, expected %v", rgb, expected)
	}

	if back := FromRaw(rgba, 2, 2, 4); !bytes.Equal(back.Pix, pix) {
		t.Errorf("FromRaw(4) = %v, expected %v", back.Pix, pix)
	}

	back := FromRaw(rgb, 2, 2, 3)
	for i := 0; i < 4; i++ {
		if !bytes.Equal(back.Pix[i*4:i*4+3], rgb[i*3:i*3+3]) || back.Pix[i*4+3] != 255 {
			t.Errorf("FromRaw(3) pixel %d = %v", i, back.Pix[i*4:i*4+4])
		}
	}
}

func TestToRawSubImage(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range m.Pix {
		m.Pix[i] = uint8(i)
	}

	sub := m.SubImage(image.Rect(1, 1, 3, 3))
	raw := ToRaw(sub, 4)

	expected := append(append([]byte{}, m.Pix[20:28]...), m.Pix[36:44]...)
	if !bytes.Equal(raw, expected) {
		t.Errorf("ToRaw(sub image) = %v, expected %v", raw, expected)
	}
}
