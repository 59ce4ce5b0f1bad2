package qoi

import (
	"fmt"
)

// pixelSource yields the pixels of an image in scan order.
type pixelSource interface {
	pixel(i int) Pixel
}

type bytesSource struct {
	data     []byte
	channels Channels
}

func (s bytesSource) pixel(i int) Pixel {
	return readPixel(s.data[i*int(s.channels):], s.channels)
}

type funcSource struct {
	gen      func(i int) Pixel
	channels Channels
}

func (s funcSource) pixel(i int) Pixel {
	px := s.gen(i)
	if s.channels == RGB {
		px.A = 255
	}
	return px
}

type encoder struct {
	cw    *chunkWriter
	src   pixelSource
	desc  Desc
	state encoderState
}

func (e *encoder) encode() {
	e.encodeHeader()
	e.encodeBody()
	e.encodeEndMarker()
}

func (e *encoder) encodeHeader() {
	e.cw.writeHeader(e.desc)
}

func (e *encoder) encodeBody() {
	if !e.cw.ok() {
		return
	}

	e.state = newEncoderState(e.desc.Channels)

	pxLen := e.desc.pixelCount()
	for pxPos := 0; pxPos < pxLen; pxPos++ {
		if !e.state.push(e.cw, e.src.pixel(pxPos)) {
			return
		}
	}

	e.state.flush(e.cw)
}

func (e *encoder) encodeEndMarker() {
	if !e.cw.ok() {
		return
	}

	e.cw.writeEndMarker()
}

// Encode encodes the raw pixels in data, laid out as described by desc, into
// a newly allocated QOI stream.
func Encode(data []byte, desc Desc) ([]byte, error) {
	if err := checkRaw(data, desc); err != nil {
		return nil, err
	}

	return encodeAlloc(bytesSource{data: data, channels: desc.Channels}, desc)
}

// EncodeFunc is like Encode but asks gen for the pixel at each index. The
// alpha returned by gen is ignored for RGB images.
func EncodeFunc(gen func(i int) Pixel, desc Desc) ([]byte, error) {
	if _, err := desc.ByteCount(); err != nil {
		return nil, err
	}
	if err := desc.checkPixels(); err != nil {
		return nil, err
	}

	return encodeAlloc(funcSource{gen: gen, channels: desc.Channels}, desc)
}

// EncodeInto encodes data into dst and returns the number of bytes written.
// If dst is too small, the bytes that did fit are left in dst and
// ErrNotEnoughSpace is returned together with their count. Desc.WorstSize is
// always enough.
func EncodeInto(dst, data []byte, desc Desc) (int, error) {
	if err := checkRaw(data, desc); err != nil {
		return 0, err
	}

	cw := newChunkWriter(&sliceWriter{buf: dst})
	e := encoder{
		cw:   cw,
		src:  bytesSource{data: data, channels: desc.Channels},
		desc: desc,
	}
	e.encode()

	if !cw.ok() {
		return cw.count(), fmt.Errorf("%w: %d bytes written to a buffer of %d", ErrNotEnoughSpace, cw.count(), len(dst))
	}
	return cw.count(), nil
}

// EncodeFuncTo encodes the pixels produced by gen and hands every output
// byte to sink. It returns the number of bytes produced.
func EncodeFuncTo(sink func(b byte), gen func(i int) Pixel, desc Desc) (int, error) {
	if _, err := desc.ByteCount(); err != nil {
		return 0, err
	}
	if err := desc.checkPixels(); err != nil {
		return 0, err
	}

	cw := newChunkWriter(funcWriter(sink))
	e := encoder{
		cw:   cw,
		src:  funcSource{gen: gen, channels: desc.Channels},
		desc: desc,
	}
	e.encode()

	return cw.count(), nil
}

func encodeAlloc(src pixelSource, desc Desc) ([]byte, error) {
	size, err := desc.WorstSize()
	if err != nil {
		return nil, err
	}

	buf, err := allocate(size)
	if err != nil {
		return nil, err
	}

	cw := newChunkWriter(&sliceWriter{buf: buf})
	e := encoder{
		cw:   cw,
		src:  src,
		desc: desc,
	}
	e.encode()

	n := cw.count()
	return buf[:n:n], nil
}

func checkRaw(data []byte, desc Desc) error {
	if len(data) == 0 {
		return ErrEmpty
	}

	n, err := desc.ByteCount()
	if err != nil {
		return err
	}
	if len(data) != n {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrMismatchedDesc, n, len(data))
	}

	return desc.checkPixels()
}

// allocate is the single allocation site of the one-shot codecs. A length
// the runtime rejects outright is reported as ErrBadAlloc. Running out of
// memory is fatal and cannot be recovered, so callers cap sizes with
// checkPixels first.
func allocate(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%w: %d bytes: %v", ErrBadAlloc, size, r)
		}
	}()

	return make([]byte, size), nil
}
