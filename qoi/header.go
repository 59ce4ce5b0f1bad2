package qoi

import (
	"encoding/binary"
	"fmt"
)

// ReadHeader parses the 14 byte QOI header at the start of data.
func ReadHeader(data []byte) (Desc, error) {
	if len(data) == 0 {
		return Desc{}, ErrEmpty
	}
	if len(data) < qoiHeaderSize {
		return Desc{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTooShort, qoiHeaderSize, len(data))
	}

	if string(data[:4]) != qoiMagic {
		return Desc{}, fmt.Errorf("%w: magic %q", ErrNotQoi, data[:4])
	}

	d := Desc{
		Width:      binary.BigEndian.Uint32(data[4:8]),
		Height:     binary.BigEndian.Uint32(data[8:12]),
		Channels:   Channels(data[12]),
		Colorspace: Colorspace(data[13]),
	}

	if !d.Valid() {
		return Desc{}, fmt.Errorf("%w: %+v", ErrInvalidDesc, d)
	}

	return d, nil
}

// WriteHeader writes the 14 byte QOI header for desc to the start of dst.
func WriteHeader(dst []byte, desc Desc) error {
	if len(dst) == 0 {
		return ErrEmpty
	}
	if len(dst) < qoiHeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, got %d", ErrTooShort, qoiHeaderSize, len(dst))
	}
	if !desc.Valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidDesc, desc)
	}

	putHeader(dst, desc)
	return nil
}

// WriteEndMarker writes the 8 byte end marker to the start of dst.
func WriteEndMarker(dst []byte) error {
	if len(dst) == 0 {
		return ErrEmpty
	}
	if len(dst) < qoiEndMarkerSize {
		return fmt.Errorf("%w: end marker needs %d bytes, got %d", ErrTooShort, qoiEndMarkerSize, len(dst))
	}

	copy(dst, qoiEndMarker[:])
	return nil
}

func putHeader(dst []byte, desc Desc) {
	copy(dst[0:4], qoiMagic)
	binary.BigEndian.PutUint32(dst[4:8], desc.Width)
	binary.BigEndian.PutUint32(dst[8:12], desc.Height)
	dst[12] = uint8(desc.Channels)
	dst[13] = uint8(desc.Colorspace)
}
