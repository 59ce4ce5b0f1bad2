package qoi

import (
	"testing"
)

func TestChunkWriter(t *testing.T) {
	tests := []struct {
		name         string
		write        func(cw *chunkWriter)
		expectedData []byte
	}{
		{
			name:         "should write rgb",
			write:        func(cw *chunkWriter) { cw.writeRGB(Pixel{1, 2, 3, 4}) },
			expectedData: []byte{opRGB, 1, 2, 3},
		},
		{
			name:         "should write rgba",
			write:        func(cw *chunkWriter) { cw.writeRGBA(Pixel{1, 2, 3, 4}) },
			expectedData: []byte{opRGBA, 1, 2, 3, 4},
		},
		{
			name:         "should write index",
			write:        func(cw *chunkWriter) { cw.writeIndex(63) },
			expectedData: []byte{0x3f},
		},
		{
			name:         "should write diff with bias 2",
			write:        func(cw *chunkWriter) { cw.writeDiff(-2, 0, 1) },
			expectedData: []byte{opDIFF | 0<<4 | 2<<2 | 3},
		},
		{
			name:         "should write luma with bias 32 and 8",
			write:        func(cw *chunkWriter) { cw.writeLuma(-32, 7, -8) },
			expectedData: []byte{opLUMA | 0, 15<<4 | 0},
		},
		{
			name:         "should write run with bias -1",
			write:        func(cw *chunkWriter) { cw.writeRun(62) },
			expectedData: []byte{0xfd},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := &sliceWriter{buf: make([]byte, qoiMaxChunkSize)}
			cw := newChunkWriter(w)

			test.write(cw)

			if !cw.ok() || cw.count() != len(test.expectedData) {
				t.Fatalf("ok() = %t, count() = %d, expected %d bytes", cw.ok(), cw.count(), len(test.expectedData))
			}
			assertEqualBytes(t, test.expectedData, w.buf[:cw.count()], "\n"+test.name+"\n")

			if size := chunkSize(test.expectedData[0]); size != len(test.expectedData) {
				t.Errorf("chunkSize(%#02x) = %d, expected %d", test.expectedData[0], size, len(test.expectedData))
			}
		})
	}
}

func TestChunkWriterAllOrNothing(t *testing.T) {
	w := &sliceWriter{buf: make([]byte, 6)}
	cw := newChunkWriter(w)

	cw.writeRGB(Pixel{1, 2, 3, 255})
	cw.writeRGB(Pixel{4, 5, 6, 255})

	if cw.ok() {
		t.Fatal("ok() = true after a chunk that does not fit")
	}
	if cw.count() != 4 || w.n != 4 {
		t.Fatalf("count() = %d, w.n = %d, expected 4", cw.count(), w.n)
	}

	cw.writeIndex(1)
	if cw.count() != 4 {
		t.Errorf("count() = %d after a failed chunk, expected 4", cw.count())
	}
}

func TestHash(t *testing.T) {
	tests := []struct {
		px       Pixel
		expected uint8
	}{
		{Pixel{0, 0, 0, 0}, 0},
		{Pixel{0, 0, 0, 255}, 53},
		{Pixel{1, 0, 0, 255}, 56},
		{Pixel{10, 10, 10, 255}, 11},
		{Pixel{10, 10, 10, 128}, 22},
		{Pixel{17, 42, 99, 255}, 47},
	}

	for _, test := range tests {
		if actual := hash(test.px); actual != test.expected {
			t.Errorf("hash(%+v) = %d, expected %d", test.px, actual, test.expected)
		}
	}
}
