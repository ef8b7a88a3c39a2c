// Package buildinfo exposes version metadata injected at link time.
package buildinfo

import (
	"fmt"
	"io"
)

// Set via -ldflags "-X github.com/arvo-app/arvo/internal/buildinfo.Version=... ".
var (
	Version = "N/A"
	Date    = "N/A"
)

// PrintBuildData writes the build version and date to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
}
