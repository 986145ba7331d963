// Package version provides centralized version information for seqapi.
package version

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X seqapi/internal/version.Version=1.0.0 -X seqapi/internal/version.Commit=abc123"
var (
	// Version is the semantic version of seqapi
	Version = "1.0.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

// Info returns a formatted version string
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns complete version information
func Full() string {
	return "seqapi version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate
}

// BuildInfo is the version information reported by the health endpoint and
// the version command.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
}

// Current returns the build information of the running binary.
func Current() BuildInfo {
	return BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate}
}
