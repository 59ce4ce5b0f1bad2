package qoi

import (
	"fmt"
)

// StreamDecoder decodes a chunk stream delivered in arbitrary slices. Feed it
// the header once through Initialize and then the bytes between the header
// and the end marker through Decode; the pixels it produces concatenate to
// exactly what Decode returns for the whole stream.
//
// The zero value is ready to use. A StreamDecoder must not be used by more
// than one goroutine at a time.
type StreamDecoder struct {
	channels Channels
	target   Channels
	run      int
	state    decoderState
}

func (d *StreamDecoder) initialized() bool {
	return d.channels != 0
}

// Initialize parses the 14 byte header at the start of header. A zero target
// keeps the channels of the image. The returned Desc carries the target
// channels.
func (d *StreamDecoder) Initialize(header []byte, target Channels) (Desc, error) {
	if d.initialized() {
		return Desc{}, ErrAlreadyInitialized
	}

	desc, err := ReadHeader(header)
	if err != nil {
		return Desc{}, err
	}

	if target == 0 {
		target = desc.Channels
	}
	if !target.Valid() {
		return Desc{}, fmt.Errorf("%w: target channels %d", ErrInvalidDesc, target)
	}

	d.channels = desc.Channels
	d.target = target
	d.run = 0
	d.state = newDecoderState()

	desc.Channels = target
	return desc, nil
}

// Decode consumes complete chunks from src for as long as their pixels fit
// into dst. A chunk cut off at the end of src is left for the next call. A
// run that does not fit is kept and written out before any further chunk.
func (d *StreamDecoder) Decode(dst, src []byte) (StreamResult, error) {
	if !d.initialized() {
		return StreamResult{}, ErrNotInitialized
	}
	if len(dst) == 0 || len(src) == 0 {
		return StreamResult{}, ErrEmpty
	}
	if len(dst) < int(d.target) {
		return StreamResult{}, fmt.Errorf("%w: output needs at least %d bytes, got %d", ErrTooShort, d.target, len(dst))
	}

	written := d.drain(dst)
	if d.run > 0 {
		return StreamResult{Written: written}, nil
	}

	pixelSize := int(d.target)
	processed := 0
	for processed < len(src) && len(dst)-written >= pixelSize {
		n := chunkSize(src[processed])
		if processed+n > len(src) {
			break
		}

		run := d.state.next(src[processed : processed+n])
		processed += n

		if run > 0 {
			d.run = run
			written += d.drain(dst[written:])
			continue
		}

		d.put(dst[written:])
		written += pixelSize
	}

	return StreamResult{Processed: processed, Written: written}, nil
}

// DrainRun writes as much of the pending run as fits into dst. It is used
// once the input is exhausted to finish a trailing run.
func (d *StreamDecoder) DrainRun(dst []byte) (int, error) {
	if !d.initialized() {
		return 0, ErrNotInitialized
	}
	if len(dst) == 0 {
		return 0, ErrEmpty
	}

	return d.drain(dst), nil
}

// HasRunCount reports whether part of a run is still waiting to be written.
func (d *StreamDecoder) HasRunCount() bool {
	return d.run > 0
}

// Reset returns the decoder to the uninitialized state.
func (d *StreamDecoder) Reset() {
	*d = StreamDecoder{}
}

func (d *StreamDecoder) drain(dst []byte) int {
	pixelSize := int(d.target)

	written := 0
	for d.run > 0 && len(dst)-written >= pixelSize {
		d.put(dst[written:])
		written += pixelSize
		d.run--
	}
	return written
}

func (d *StreamDecoder) put(dst []byte) {
	putPixel(dst, d.state.prev, d.target, d.channels == RGB)
}
