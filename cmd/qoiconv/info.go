package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LukiDS/qoi/qoi"
)

var infoCmd = &cobra.Command{
	Use:   "info QOI_IMG...",
	Short: "Print the header of QOI images",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			desc, err := qoi.ReadHeaderFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			size, err := desc.ByteCount()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d %s %s, %d bytes raw\n",
				path, desc.Width, desc.Height, desc.Channels, desc.Colorspace, size)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
