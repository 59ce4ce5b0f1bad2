package qoi

import (
	"fmt"
)

// DecodeOptions configures Decode and DecodeInto. A nil *DecodeOptions means
// the defaults.
type DecodeOptions struct {
	// Target is the number of channels of the decoded pixels. Zero keeps
	// the channels stored in the header. Decoding RGB into RGBA sets every
	// alpha to 255; decoding RGBA into RGB drops alpha.
	Target Channels

	// FlipVertically stores the rows bottom-up.
	FlipVertically bool
}

func (o *DecodeOptions) target(source Channels) (Channels, error) {
	if o == nil || o.Target == 0 {
		return source, nil
	}
	if !o.Target.Valid() {
		return 0, fmt.Errorf("%w: target channels %d", ErrInvalidDesc, o.Target)
	}
	return o.Target, nil
}

func (o *DecodeOptions) flip() bool {
	return o != nil && o.FlipVertically
}

// pixelSink receives decoded pixels in scan order.
type pixelSink interface {
	put(i int, px Pixel)
}

type bytesSink struct {
	buf      []byte
	channels Channels
	opaque   bool
}

func (s bytesSink) put(i int, px Pixel) {
	putPixel(s.buf[i*int(s.channels):], px, s.channels, s.opaque)
}

type funcSink func(px Pixel)

func (f funcSink) put(_ int, px Pixel) {
	f(px)
}

type decoder struct {
	data  []byte
	desc  Desc
	sink  pixelSink
	state decoderState
}

// byteAt returns data[i], or zero past the end of data.
func (d *decoder) byteAt(i int) byte {
	if i < len(d.data) {
		return d.data[i]
	}
	return 0
}

// decode walks the chunks between the header and the end marker. It stops
// when every pixel is written or the chunks run out; pixels never reached
// are left untouched.
func (d *decoder) decode() {
	d.state = newDecoderState()

	var chunk [qoiMaxChunkSize]byte

	maxPixel := d.desc.pixelCount()
	chunksEnd := len(d.data) - qoiEndMarkerSize
	dataPos := qoiHeaderSize

	for pxPos := 0; pxPos < maxPixel && dataPos < chunksEnd; {
		n := chunkSize(d.data[dataPos])
		for i := 0; i < n; i++ {
			chunk[i] = d.byteAt(dataPos + i)
		}
		dataPos += n

		if run := d.state.next(chunk[:n]); run > 0 {
			for ; run > 0 && pxPos < maxPixel; run-- {
				d.sink.put(pxPos, d.state.prev)
				pxPos++
			}
			continue
		}

		d.sink.put(pxPos, d.state.prev)
		pxPos++
	}
}

// Decode decodes a QOI stream into a newly allocated raw pixel buffer. The
// returned Desc carries the channels of the returned pixels.
//
// Truncated or malformed chunk data never fails: the pixel buffer always has
// the size announced by the header, with pixels that could not be decoded
// left zero.
func Decode(data []byte, opts *DecodeOptions) ([]byte, Desc, error) {
	desc, target, err := decodeHeader(data, opts)
	if err != nil {
		return nil, Desc{}, err
	}

	out := desc
	out.Channels = target

	n, err := out.ByteCount()
	if err != nil {
		return nil, Desc{}, err
	}

	buf, err := allocate(n)
	if err != nil {
		return nil, Desc{}, err
	}

	decodeRaw(buf, data, desc, target, opts.flip())
	return buf, out, nil
}

// DecodeInto is like Decode but writes the pixels to dst, which must hold at
// least ByteCount of the returned Desc.
func DecodeInto(dst, data []byte, opts *DecodeOptions) (Desc, error) {
	desc, target, err := decodeHeader(data, opts)
	if err != nil {
		return Desc{}, err
	}

	out := desc
	out.Channels = target

	n, err := out.ByteCount()
	if err != nil {
		return Desc{}, err
	}
	if len(dst) < n {
		return Desc{}, fmt.Errorf("%w: need %d bytes, got %d", ErrNotEnoughSpace, n, len(dst))
	}

	decodeRaw(dst[:n], data, desc, target, opts.flip())
	return out, nil
}

// DecodeFunc decodes data and hands every pixel to sink in scan order.
func DecodeFunc(data []byte, sink func(px Pixel)) (Desc, error) {
	desc, _, err := decodeHeader(data, nil)
	if err != nil {
		return Desc{}, err
	}
	if _, err := desc.ByteCount(); err != nil {
		return Desc{}, err
	}

	d := decoder{
		data: data,
		desc: desc,
		sink: funcSink(sink),
	}
	d.decode()

	return desc, nil
}

func decodeHeader(data []byte, opts *DecodeOptions) (Desc, Channels, error) {
	if len(data) == 0 {
		return Desc{}, 0, ErrEmpty
	}
	if len(data) <= qoiHeaderSize+qoiEndMarkerSize {
		return Desc{}, 0, fmt.Errorf("%w: %d bytes cannot hold any chunk", ErrTooShort, len(data))
	}

	desc, err := ReadHeader(data)
	if err != nil {
		return Desc{}, 0, err
	}
	if err := desc.checkPixels(); err != nil {
		return Desc{}, 0, err
	}

	target, err := opts.target(desc.Channels)
	if err != nil {
		return Desc{}, 0, err
	}

	return desc, target, nil
}

func decodeRaw(dst, data []byte, desc Desc, target Channels, flip bool) {
	d := decoder{
		data: data,
		desc: desc,
		sink: bytesSink{
			buf:      dst,
			channels: target,
			opaque:   desc.Channels == RGB,
		},
	}
	d.decode()

	if flip {
		flipVertically(dst, int(desc.Width)*int(target), int(desc.Height))
	}
}

// flipVertically swaps row y with row height-1-y.
func flipVertically(pix []byte, stride, height int) {
	for y := 0; y < height/2; y++ {
		top := pix[y*stride : (y+1)*stride]
		bottom := pix[(height-1-y)*stride : (height-y)*stride]
		for i := range top {
			top[i], bottom[i] = bottom[i], top[i]
		}
	}
}
