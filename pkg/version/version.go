// Package version reports the batchplan build version.
package version

import "runtime/debug"

// Set at build time with -ldflags "-X github.com/apflab/batchplan/pkg/version.version=...".
//
//nolint:gochecknoglobals // populated by the linker
var (
	version = ""
	commit  = ""
)

const devVersion = "dev"

// GetVersion returns the linked version, the module version recorded in the
// build info, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}

// GetCommit returns the linked commit hash, or "".
func GetCommit() string {
	return commit
}
