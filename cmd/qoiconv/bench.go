package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"text/tabwriter"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/LukiDS/qoi/imgconv"
	"github.com/LukiDS/qoi/qoi"
)

var errRoundTrip = errors.New("decoded pixels differ from the input")

var benchFlags struct {
	runs int
}

var benchCmd = &cobra.Command{
	Use:   "bench IMAGE...",
	Short: "Compare QOI with zstd on the raw pixels of images",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if benchFlags.runs < 1 {
			return fmt.Errorf("--runs must be positive, got %d", benchFlags.runs)
		}

		z, err := newZstdCodec()
		if err != nil {
			return err
		}
		defer z.Close()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "file\traw\tqoi\tqoi enc\tqoi dec\tzstd\tzstd enc\tzstd dec\t")

		for _, path := range args {
			raw, desc, err := loadRaw(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			res, err := benchImage(raw, desc, benchFlags.runs, z)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			logf("%s: %d runs", path, benchFlags.runs)
			fmt.Fprintf(tw, "%s\t%d\t%d\t%v\t%v\t%d\t%v\t%v\t\n", path, len(raw),
				res.qoiSize, res.qoiEncode, res.qoiDecode,
				res.zstdSize, res.zstdEncode, res.zstdDecode)
		}

		return tw.Flush()
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchFlags.runs, "runs", 1, "number of times every image is encoded and decoded")

	rootCmd.AddCommand(benchCmd)
}

type benchResult struct {
	qoiSize    int
	qoiEncode  time.Duration
	qoiDecode  time.Duration
	zstdSize   int
	zstdEncode time.Duration
	zstdDecode time.Duration
}

// zstdCodec is the general purpose baseline QOI is measured against.
type zstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newZstdCodec() (*zstdCodec, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		enc.Close()
		return nil, err
	}

	return &zstdCodec{enc: enc, dec: dec}, nil
}

func (z *zstdCodec) Close() {
	z.enc.Close()
	z.dec.Close()
}

// loadRaw decodes any registered image format, QOI included, into raw pixels.
func loadRaw(path string) ([]byte, qoi.Desc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, qoi.Desc{}, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, qoi.Desc{}, err
	}

	desc := qoi.Desc{
		Width:    uint32(m.Bounds().Dx()),
		Height:   uint32(m.Bounds().Dy()),
		Channels: qoi.RGBA,
	}
	if imgconv.Opaque(m) {
		desc.Channels = qoi.RGB
	}

	return imgconv.ToRaw(m, int(desc.Channels)), desc, nil
}

// benchImage encodes and decodes raw runs times with both codecs and
// reports the average time per run. Both round trips must reproduce raw.
func benchImage(raw []byte, desc qoi.Desc, runs int, z *zstdCodec) (benchResult, error) {
	var (
		res     benchResult
		encoded []byte
		decoded []byte
		err     error
	)

	start := time.Now()
	for i := 0; i < runs; i++ {
		if encoded, err = qoi.Encode(raw, desc); err != nil {
			return benchResult{}, err
		}
	}
	res.qoiEncode = time.Since(start) / time.Duration(runs)
	res.qoiSize = len(encoded)

	start = time.Now()
	for i := 0; i < runs; i++ {
		if decoded, _, err = qoi.Decode(encoded, nil); err != nil {
			return benchResult{}, err
		}
	}
	res.qoiDecode = time.Since(start) / time.Duration(runs)

	if !bytes.Equal(decoded, raw) {
		return benchResult{}, fmt.Errorf("qoi: %w", errRoundTrip)
	}

	start = time.Now()
	for i := 0; i < runs; i++ {
		encoded = z.enc.EncodeAll(raw, encoded[:0])
	}
	res.zstdEncode = time.Since(start) / time.Duration(runs)
	res.zstdSize = len(encoded)

	start = time.Now()
	for i := 0; i < runs; i++ {
		if decoded, err = z.dec.DecodeAll(encoded, decoded[:0]); err != nil {
			return benchResult{}, err
		}
	}
	res.zstdDecode = time.Since(start) / time.Duration(runs)

	if !bytes.Equal(decoded, raw) {
		return benchResult{}, fmt.Errorf("zstd: %w", errRoundTrip)
	}

	return res, nil
}
