package main

import (
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/LukiDS/qoi/imgconv"
	"github.com/LukiDS/qoi/qoi"
)

var decodeFlags struct {
	output string
	flip   bool
	force  bool
}

var decodeCmd = &cobra.Command{
	Use:   "decode QOI_IMG...",
	Short: "Decode QOI images to PNG",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if decodeFlags.output != "" && len(args) > 1 {
			return fmt.Errorf("--output needs exactly one input, got %d", len(args))
		}

		for _, path := range args {
			if err := decodeFile(path, outputPath(path, decodeFlags.output, ".png")); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	},
}

func init() {
	f := decodeCmd.Flags()
	f.StringVarP(&decodeFlags.output, "output", "o", "", "output file (default: input with a .png extension)")
	f.BoolVar(&decodeFlags.flip, "flip", false, "store the rows bottom-up")
	f.BoolVarP(&decodeFlags.force, "force", "f", false, "overwrite existing files")

	rootCmd.AddCommand(decodeCmd)
}

func decodeFile(in, out string) error {
	if !decodeFlags.force {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("%w: %s", qoi.ErrFileExists, out)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	raw, desc, err := qoi.DecodeFile(in, &qoi.DecodeOptions{
		Target:         qoi.RGBA,
		FlipVertically: decodeFlags.flip,
	})
	if err != nil {
		return err
	}

	m := imgconv.FromRaw(raw, int(desc.Width), int(desc.Height), int(desc.Channels))

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return err
	}

	logf("%s (%dx%d) -> %s", in, desc.Width, desc.Height, out)
	return f.Close()
}
