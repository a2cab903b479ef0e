// Package buildinfo exposes build-time metadata stamped via -ldflags:
//
//	-X 'github.com/ryuvi/carchat/core/buildinfo.Version=v1.2.3'
//	-X 'github.com/ryuvi/carchat/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/ryuvi/carchat/core/buildinfo.Date=2026-01-02T15:04:05Z'
package buildinfo

var (
	// Version is the semantic version of the binary.
	Version = "dev"
	// Commit is the VCS revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
