// Package settings provides build metadata and run configuration shared
// across the jed CLI packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "jed"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration for a single execution of the application.
type Run struct {
	MinLogLevel int8
	LogFile     string
	NoColor     bool
	WriteBack   bool
}

// NewCliParams returns Run defaults for CLI invocation.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
		WriteBack:   false,
	}
}
