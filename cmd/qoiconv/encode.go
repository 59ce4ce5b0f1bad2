package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/LukiDS/qoi/imgconv"
	"github.com/LukiDS/qoi/qoi"
)

var encodeFlags struct {
	output     string
	channels   int
	colorspace int
	force      bool
}

var encodeCmd = &cobra.Command{
	Use:   "encode IMAGE...",
	Short: "Encode PNG, JPEG or GIF images as QOI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if encodeFlags.output != "" && len(args) > 1 {
			return fmt.Errorf("--output needs exactly one input, got %d", len(args))
		}

		for _, path := range args {
			if err := encodeFile(path, outputPath(path, encodeFlags.output, ".qoi")); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	},
}

func init() {
	f := encodeCmd.Flags()
	f.StringVarP(&encodeFlags.output, "output", "o", "", "output file (default: input with a .qoi extension)")
	f.IntVar(&encodeFlags.channels, "channels", 0, "channels to store, 3 or 4 (default: 3 for opaque images)")
	f.IntVar(&encodeFlags.colorspace, "colorspace", 0, "colorspace to record, 0 for sRGB or 1 for linear")
	f.BoolVarP(&encodeFlags.force, "force", "f", false, "overwrite existing files")

	rootCmd.AddCommand(encodeCmd)
}

func encodeFile(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, format, err := image.Decode(f)
	if err != nil {
		return err
	}

	channels := qoi.Channels(encodeFlags.channels)
	if channels == 0 {
		channels = qoi.RGBA
		if imgconv.Opaque(m) {
			channels = qoi.RGB
		}
	}

	desc := qoi.Desc{
		Width:      uint32(m.Bounds().Dx()),
		Height:     uint32(m.Bounds().Dy()),
		Channels:   channels,
		Colorspace: qoi.Colorspace(encodeFlags.colorspace),
	}
	if !desc.Valid() {
		return fmt.Errorf("%w: %+v", qoi.ErrInvalidDesc, desc)
	}

	raw := imgconv.ToRaw(m, int(channels))

	n, err := qoi.EncodeFile(out, raw, desc, encodeFlags.force)
	if err != nil {
		return err
	}

	logf("%s (%s, %d bytes raw) -> %s (%d bytes)", in, format, len(raw), out, n)
	return nil
}
