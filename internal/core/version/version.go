// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information of the API binary
func Info() BuildInfo { return InfoFor("spamguard-api") }

// InfoFor stamps the build variables, set at link time via -ldflags, with a service name
func InfoFor(service string) BuildInfo {
	// Set via -ldflags "-X 'spamguard/internal/core/version.version=v0.0.1'
	// -X 'spamguard/internal/core/version.commit=abcd' -X 'spamguard/internal/core/version.date=2025-09-02'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
