package qoi

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/LukiDS/qoi/imgconv"
)

const (
	imageBufferSize = 4096

	// consecutive (0, nil) reads tolerated before giving up, as in bufio
	maxEmptyReads = 100
)

// EncodeOptions configures EncodeImage. A nil *EncodeOptions means the
// defaults.
type EncodeOptions struct {
	// Channels stored in the stream. Zero picks RGB for opaque images and
	// RGBA otherwise.
	Channels Channels

	// Colorspace written to the header. It does not change the pixels.
	Colorspace Colorspace
}

type imageEncoder struct {
	w    io.Writer
	m    *image.NRGBA
	desc Desc
	se   StreamEncoder
	buf  [imageBufferSize]byte
	err  error
}

// EncodeImage writes the Image m to w in QOI format. Any Image may be
// encoded, but images that are not image.NRGBA might be encoded lossily.
func EncodeImage(w io.Writer, m image.Image, o *EncodeOptions) error {
	e := imageEncoder{
		w: w,
		m: imgconv.ToNRGBA(m),
	}

	e.desc.Channels = RGBA
	if imgconv.Opaque(m) {
		e.desc.Channels = RGB
	}
	if o != nil {
		if o.Channels != 0 {
			e.desc.Channels = o.Channels
		}
		e.desc.Colorspace = o.Colorspace
	}

	e.encodeHeader()
	e.encodeBody()
	e.encodeEndMarker()

	return e.err
}

func (e *imageEncoder) encodeHeader() {
	mw, mh := e.m.Bounds().Dx(), e.m.Bounds().Dy()
	if mw <= 0 || mh <= 0 {
		e.err = fmt.Errorf("%w: image size %dx%d", ErrInvalidDesc, mw, mh)
		return
	}
	if mw > qoiMaxPixels || mh > qoiMaxPixels {
		e.err = fmt.Errorf("%w: %dx%d pixels", ErrTooBig, mw, mh)
		return
	}

	e.desc.Width = uint32(mw)
	e.desc.Height = uint32(mh)
	if e.err = e.desc.checkPixels(); e.err != nil {
		return
	}

	n, err := e.se.Initialize(e.buf[:], e.desc)
	if err != nil {
		e.err = err
		return
	}
	e.writeBytes(e.buf[:n])
}

func (e *imageEncoder) encodeBody() {
	if e.err != nil {
		return
	}

	b := e.m.Bounds()
	width := b.Dx()

	var row []byte
	if e.desc.Channels == RGB {
		row = make([]byte, width*int(RGB))
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		pix := e.m.Pix[e.m.PixOffset(b.Min.X, y):][:width*4]

		if e.desc.Channels == RGB {
			for i, j := 0, 0; i < len(pix); i, j = i+4, j+3 {
				row[j+0] = pix[i+0]
				row[j+1] = pix[i+1]
				row[j+2] = pix[i+2]
			}
			pix = row
		}

		e.encodeRow(pix)
		if e.err != nil {
			return
		}
	}
}

func (e *imageEncoder) encodeRow(pix []byte) {
	for len(pix) > 0 {
		res, err := e.se.Encode(e.buf[:], pix)
		if err != nil {
			e.err = err
			return
		}

		e.writeBytes(e.buf[:res.Written])
		if e.err != nil {
			return
		}

		pix = pix[res.Processed:]
	}
}

func (e *imageEncoder) encodeEndMarker() {
	if e.err != nil {
		return
	}

	n, err := e.se.Finalize(e.buf[:])
	if err != nil {
		e.err = err
		return
	}
	e.writeBytes(e.buf[:n])
}

func (e *imageEncoder) writeBytes(p []byte) {
	if _, err := e.w.Write(p); err != nil {
		e.err = fmt.Errorf("%w: %w", ErrIO, err)
	}
}

type imageDecoder struct {
	r       io.Reader
	desc    Desc
	sd      StreamDecoder
	m       *image.NRGBA
	buf     [imageBufferSize]byte
	pending []byte
	err     error
}

func (d *imageDecoder) decodeHeader() {
	h := make([]byte, qoiHeaderSize)
	if _, err := io.ReadFull(d.r, h); err != nil {
		d.err = readError(err)
		return
	}

	d.desc, d.err = d.sd.Initialize(h, RGBA)
	if d.err != nil {
		return
	}

	d.err = d.desc.checkPixels()
}

func (d *imageDecoder) decode() {
	if d.err != nil {
		return
	}
	d.m = image.NewNRGBA(image.Rect(0, 0, int(d.desc.Width), int(d.desc.Height)))

	pix := d.m.Pix
	written := 0

	for written < len(pix) {
		if d.sd.HasRunCount() {
			n, _ := d.sd.DrainRun(pix[written:])
			written += n
			continue
		}

		if len(d.pending) > 0 {
			res, err := d.sd.Decode(pix[written:], d.pending)
			if err != nil {
				d.err = err
				return
			}

			d.pending = d.pending[res.Processed:]
			written += res.Written
			if res.Processed > 0 || res.Written > 0 {
				continue
			}
		}

		if d.fill(); d.err != nil {
			return
		}
	}
}

func (d *imageDecoder) decodePadding() {
	if d.err != nil {
		return
	}

	padding := make([]byte, qoiEndMarkerSize)
	n := copy(padding, d.pending)
	d.pending = d.pending[n:]

	if _, err := io.ReadFull(d.r, padding[n:]); err != nil {
		d.err = readError(err)
		return
	}

	if !bytes.Equal(padding, qoiEndMarker[:]) {
		d.err = fmt.Errorf("%w: bad end marker % x", ErrNotQoi, padding)
		return
	}

	var lastByte [1]byte
	if len(d.pending) > 0 {
		d.err = fmt.Errorf("%w: data after end marker", ErrNotQoi)
		return
	}
	if _, err := io.ReadFull(d.r, lastByte[:]); err != io.EOF {
		d.err = fmt.Errorf("%w: data after end marker", ErrNotQoi)
		return
	}
}

// fill moves the pending bytes to the front of buf and reads at least one
// more byte behind them.
func (d *imageDecoder) fill() {
	n := copy(d.buf[:], d.pending)

	m, err := io.ReadAtLeast(d.r, d.buf[n:], 1)
	d.pending = d.buf[:n+m]

	if m == 0 {
		d.err = readError(err)
	}
}

// progressReader fails with io.ErrNoProgress once r keeps returning no data
// and no error.
type progressReader struct {
	r     io.Reader
	empty int
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 || err != nil || len(b) == 0 {
		p.empty = 0
		return n, err
	}

	p.empty++
	if p.empty >= maxEmptyReads {
		return 0, io.ErrNoProgress
	}
	return 0, nil
}

func readError(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %w", ErrTooShort, io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// DecodeConfig returns the color model and dimensions of a QOI image without
// decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d := imageDecoder{
		r: &progressReader{r: r},
	}

	d.decodeHeader()
	if d.err != nil {
		return image.Config{}, d.err
	}

	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(d.desc.Width),
		Height:     int(d.desc.Height),
	}, nil
}

// DecodeImage reads a QOI image from r and returns it as an *image.NRGBA.
// Unlike Decode it insists on a complete stream: the end marker must follow
// the last pixel and nothing may follow the end marker.
func DecodeImage(r io.Reader) (image.Image, error) {
	d := imageDecoder{
		r: &progressReader{r: r},
	}

	d.decodeHeader()
	d.decode()
	d.decodePadding()

	if d.err != nil {
		return nil, d.err
	}

	return d.m, nil
}
