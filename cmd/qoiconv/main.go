// Command qoiconv converts images to and from the QOI format and compares
// QOI against a general purpose compressor.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "qoiconv",
	Short:         "Convert images to and from QOI",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print a line for every processed file")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("qoiconv: ")

	if err := rootCmd.Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func logf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}
