package main

import (
	"path/filepath"
	"strings"
)

// outputPath returns in with its extension replaced by ext, unless out is set.
func outputPath(in, out, ext string) string {
	if out != "" {
		return out
	}
	return strings.TrimSuffix(in, filepath.Ext(in)) + ext
}
