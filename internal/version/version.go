// Package version provides build-time version information for laextract.
//
// Variables in this package are set at build time using ldflags:
//
//	go build -ldflags "-X github.com/radlab-hd/laextract/internal/version.Version=1.0.0 ..."
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables set via ldflags
var (
	// Version is the semantic version (e.g., "1.0.0")
	Version = "dev"

	// Commit is the git commit SHA
	Commit = "unknown"

	// BuildDate is the UTC build timestamp in RFC3339 format
	BuildDate = "unknown"
)

// Info contains structured version information
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a single-line version string
func String() string {
	return Version
}

// Full returns a multi-line version string with all details
func Full() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("laextract %s\n", Version))
	sb.WriteString(fmt.Sprintf("  Commit:     %s\n", Commit))
	sb.WriteString(fmt.Sprintf("  Built:      %s\n", BuildDate))
	sb.WriteString(fmt.Sprintf("  Go version: %s\n", runtime.Version()))
	sb.WriteString(fmt.Sprintf("  OS/Arch:    %s/%s", runtime.GOOS, runtime.GOARCH))
	return sb.String()
}
