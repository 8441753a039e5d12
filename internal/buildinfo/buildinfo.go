// Package buildinfo exposes build-time metadata stamped in via ldflags:
//
//	go build -ldflags "-X github.com/decolog/decolog/internal/buildinfo.buildVersion=v1.2.0 \
//	  -X 'github.com/decolog/decolog/internal/buildinfo.buildDate=2026-08-25' \
//	  -X github.com/decolog/decolog/internal/buildinfo.buildCommit=abc1234"
//
// Unset values default to "N/A".
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// PrintBuildData writes the build version, date and commit to w, one per line.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}

// Version returns the stamped build version. Support messages include it so
// reports can be matched to the app release that produced them.
func Version() string {
	return buildVersion
}
