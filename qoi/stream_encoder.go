package qoi

import (
	"fmt"
)

// StreamResult reports the progress of one streaming call.
type StreamResult struct {
	Processed int // input bytes consumed
	Written   int // output bytes produced
}

// StreamEncoder encodes an image from input and into output of arbitrary
// slicing. The bytes produced by Initialize, every Encode and Finalize
// concatenate to exactly what Encode produces for the same image.
//
// The zero value is ready to use. A StreamEncoder must not be used by more
// than one goroutine at a time.
type StreamEncoder struct {
	state encoderState
}

func (e *StreamEncoder) initialized() bool {
	return e.state.channels != 0
}

// Initialize writes the header for desc to dst and prepares the encoder for
// the pixels. It returns the number of bytes written.
func (e *StreamEncoder) Initialize(dst []byte, desc Desc) (int, error) {
	if e.initialized() {
		return 0, ErrAlreadyInitialized
	}
	if len(dst) == 0 {
		return 0, ErrEmpty
	}
	if len(dst) < qoiHeaderSize {
		return 0, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTooShort, qoiHeaderSize, len(dst))
	}
	if _, err := desc.ByteCount(); err != nil {
		return 0, err
	}

	putHeader(dst, desc)
	e.state = newEncoderState(desc.Channels)

	return qoiHeaderSize, nil
}

// Encode consumes whole pixels from src for as long as their chunks fit into
// dst. dst must hold at least 5 bytes, the longest chunk a single pixel can
// produce. Processed is always a multiple of the channel count; the pixels
// behind it are left for the next call.
func (e *StreamEncoder) Encode(dst, src []byte) (StreamResult, error) {
	if !e.initialized() {
		return StreamResult{}, ErrNotInitialized
	}
	if len(dst) == 0 || len(src) == 0 {
		return StreamResult{}, ErrEmpty
	}
	if len(dst) < qoiMaxChunkSize {
		return StreamResult{}, fmt.Errorf("%w: output needs at least %d bytes, got %d", ErrTooShort, qoiMaxChunkSize, len(dst))
	}

	channels := int(e.state.channels)
	src = src[:len(src)-len(src)%channels]

	cw := newChunkWriter(&sliceWriter{buf: dst})

	var processed int
	for processed < len(src) {
		px := readPixel(src[processed:], e.state.channels)
		if !e.state.push(cw, px) {
			break
		}
		processed += channels
	}

	return StreamResult{Processed: processed, Written: cw.count()}, nil
}

// Finalize flushes the pending run and writes the end marker. dst must hold
// 8 bytes, plus one if HasRunCount reports true. Afterwards the encoder is
// uninitialized and may be reused.
func (e *StreamEncoder) Finalize(dst []byte) (int, error) {
	if !e.initialized() {
		return 0, ErrNotInitialized
	}
	if len(dst) == 0 {
		return 0, ErrEmpty
	}

	need := qoiEndMarkerSize
	if e.HasRunCount() {
		need++
	}
	if len(dst) < need {
		return 0, fmt.Errorf("%w: finalize needs %d bytes, got %d", ErrTooShort, need, len(dst))
	}

	cw := newChunkWriter(&sliceWriter{buf: dst})
	e.state.flush(cw)
	cw.writeEndMarker()

	e.Reset()
	return cw.count(), nil
}

// HasRunCount reports whether a run is pending and Finalize will emit it.
func (e *StreamEncoder) HasRunCount() bool {
	return e.state.run > 0
}

// Reset returns the encoder to the uninitialized state.
func (e *StreamEncoder) Reset() {
	e.state = encoderState{}
}
