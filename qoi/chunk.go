package qoi

// byteWriter receives whole chunks. write must either take all of p or
// nothing; it reports false in the latter case.
type byteWriter interface {
	write(p []byte) bool
}

// sliceWriter writes into a fixed caller buffer.
type sliceWriter struct {
	buf []byte
	n   int
}

func (w *sliceWriter) write(p []byte) bool {
	if len(w.buf)-w.n < len(p) {
		return false
	}
	w.n += copy(w.buf[w.n:], p)
	return true
}

// funcWriter hands every byte to a callback and never runs out of space.
type funcWriter func(b byte)

func (f funcWriter) write(p []byte) bool {
	for _, b := range p {
		f(b)
	}
	return true
}

// chunkWriter packs opcodes into bytes. After the first rejected chunk every
// following write is dropped and ok reports false.
type chunkWriter struct {
	w      byteWriter
	n      int
	failed bool
	buf    [qoiHeaderSize]byte
}

func newChunkWriter(w byteWriter) *chunkWriter {
	return &chunkWriter{w: w}
}

func (c *chunkWriter) ok() bool {
	return !c.failed
}

// count returns the number of bytes accepted so far.
func (c *chunkWriter) count() int {
	return c.n
}

func (c *chunkWriter) put(p []byte) {
	if c.failed {
		return
	}
	if !c.w.write(p) {
		c.failed = true
		return
	}
	c.n += len(p)
}

func (c *chunkWriter) writeHeader(desc Desc) {
	putHeader(c.buf[:qoiHeaderSize], desc)
	c.put(c.buf[:qoiHeaderSize])
}

func (c *chunkWriter) writeEndMarker() {
	c.put(qoiEndMarker[:])
}

func (c *chunkWriter) writeRGB(p Pixel) {
	c.buf[0] = opRGB
	c.buf[1] = p.R
	c.buf[2] = p.G
	c.buf[3] = p.B
	c.put(c.buf[:4])
}

func (c *chunkWriter) writeRGBA(p Pixel) {
	c.buf[0] = opRGBA
	c.buf[1] = p.R
	c.buf[2] = p.G
	c.buf[3] = p.B
	c.buf[4] = p.A
	c.put(c.buf[:5])
}

func (c *chunkWriter) writeIndex(index uint8) {
	c.buf[0] = opINDEX | (index & mask6)
	c.put(c.buf[:1])
}

// writeDiff expects every difference in [-2, 1].
func (c *chunkWriter) writeDiff(dr, dg, db int8) {
	c.buf[0] = opDIFF | uint8(dr+biasDiff)<<4 | uint8(dg+biasDiff)<<2 | uint8(db+biasDiff)
	c.put(c.buf[:1])
}

// writeLuma expects dg in [-32, 31] and drdg, dbdg in [-8, 7].
func (c *chunkWriter) writeLuma(dg, drdg, dbdg int8) {
	c.buf[0] = opLUMA | uint8(dg+biasLumaG)
	c.buf[1] = uint8(drdg+biasLumaRB)<<4 | uint8(dbdg+biasLumaRB)
	c.put(c.buf[:2])
}

// writeRun expects run in [1, 62].
func (c *chunkWriter) writeRun(run uint8) {
	c.buf[0] = opRUN | (run - 1)
	c.put(c.buf[:1])
}

// chunkSize returns the length in bytes of the chunk that starts with tag.
func chunkSize(tag uint8) int {
	switch {
	case tag == opRGB:
		return 4
	case tag == opRGBA:
		return 5
	case tag&maskOP == opLUMA:
		return 2
	default:
		return 1
	}
}

func shouldDiff(dr, dg, db int8) bool {
	return dr > -3 && dr < 2 &&
		dg > -3 && dg < 2 &&
		db > -3 && db < 2
}

func shouldLuma(dg, drdg, dbdg int8) bool {
	return dg > -33 && dg < 32 &&
		drdg > -9 && drdg < 8 &&
		dbdg > -9 && dbdg < 8
}
