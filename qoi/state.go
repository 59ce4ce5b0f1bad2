package qoi

// encoderState is the running state of an encoder: the previous pixel, the
// table of recently seen pixels and the length of the pending run.
type encoderState struct {
	channels Channels
	prev     Pixel
	seen     [qoiMaxBufferSize]Pixel
	run      uint8
}

func newEncoderState(channels Channels) encoderState {
	return encoderState{
		channels: channels,
		prev:     startPixel,
	}
}

// push encodes px into cw.
//
// If cw rejects a chunk, push returns false and px is left unconsumed: the
// state is what it was before the call, except that a pending run which was
// flushed successfully stays flushed.
func (s *encoderState) push(cw *chunkWriter, px Pixel) bool {
	if px == s.prev {
		s.run++
		if s.run == qoiMaxRunSize {
			cw.writeRun(s.run)
			if !cw.ok() {
				s.run--
				return false
			}
			s.run = 0
		}
		return true
	}

	if s.run > 0 {
		cw.writeRun(s.run)
		if !cw.ok() {
			return false
		}
		s.run = 0
	}

	indexPos := hash(px)
	if s.seen[indexPos] == px {
		cw.writeIndex(indexPos)
		if !cw.ok() {
			return false
		}
		s.prev = px
		return true
	}

	seenPrev := s.seen[indexPos]
	s.seen[indexPos] = px

	s.writeColor(cw, px)
	if !cw.ok() {
		s.seen[indexPos] = seenPrev
		return false
	}

	s.prev = px
	return true
}

// writeColor picks the smallest of OP_RGBA, OP_DIFF, OP_LUMA and OP_RGB for px.
func (s *encoderState) writeColor(cw *chunkWriter, px Pixel) {
	if s.channels == RGBA && px.A != s.prev.A {
		cw.writeRGBA(px)
		return
	}

	vr := int8(px.R - s.prev.R)
	vg := int8(px.G - s.prev.G)
	vb := int8(px.B - s.prev.B)

	vgR := vr - vg
	vgB := vb - vg

	switch {
	case shouldDiff(vr, vg, vb):
		cw.writeDiff(vr, vg, vb)
	case shouldLuma(vg, vgR, vgB):
		cw.writeLuma(vg, vgR, vgB)
	default:
		cw.writeRGB(px)
	}
}

// flush writes the pending run, if any.
func (s *encoderState) flush(cw *chunkWriter) {
	if s.run > 0 {
		cw.writeRun(s.run)
		s.run = 0
	}
}

// decoderState is the running state of a decoder.
type decoderState struct {
	prev Pixel
	seen [qoiMaxBufferSize]Pixel
}

func newDecoderState() decoderState {
	return decoderState{prev: startPixel}
}

// next applies one chunk. chunk must hold exactly chunkSize(chunk[0]) bytes.
// The decoded pixel is left in s.prev. For OP_RUN the run length is returned
// and the state is not touched.
func (s *decoderState) next(chunk []byte) (run int) {
	b1 := chunk[0]
	px := s.prev

	switch {
	case b1 == opRGB:
		px.R = chunk[1]
		px.G = chunk[2]
		px.B = chunk[3]

	case b1 == opRGBA:
		px.R = chunk[1]
		px.G = chunk[2]
		px.B = chunk[3]
		px.A = chunk[4]

	case b1&maskOP == opINDEX:
		px = s.seen[b1&mask6]

	case b1&maskOP == opDIFF:
		px.R += (b1>>4)&mask2 - biasDiff
		px.G += (b1>>2)&mask2 - biasDiff
		px.B += (b1>>0)&mask2 - biasDiff

	case b1&maskOP == opLUMA:
		b2 := chunk[1]
		vg := (b1 & mask6) - biasLumaG

		px.R += vg - biasLumaRB + (b2>>4)&mask4
		px.G += vg
		px.B += vg - biasLumaRB + (b2>>0)&mask4

	default: // opRUN
		return int(b1&mask6) + 1
	}

	s.seen[hash(px)] = px
	s.prev = px
	return 0
}

func readPixel(data []byte, channels Channels) Pixel {
	px := Pixel{data[0], data[1], data[2], 255}
	if channels == RGBA {
		px.A = data[3]
	}
	return px
}

// putPixel stores px at the start of dst using channels bytes. opaque forces
// the alpha byte to 255.
func putPixel(dst []byte, px Pixel, channels Channels, opaque bool) {
	dst[0] = px.R
	dst[1] = px.G
	dst[2] = px.B
	if channels == RGBA {
		if opaque {
			dst[3] = 255
		} else {
			dst[3] = px.A
		}
	}
}
