// Package constant defines immutable application-level identifiers and defaults.
package constant

const (
	// Malgo is the canonical application identifier used for filesystem paths,
	// keyring entries and CLI branding.
	Malgo = "malgo"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the HTTP User-Agent string sent with every catalog request.
	UserAgent = "malgo/" + Version + " (+https://github.com/malgo-cli/malgo)"
)

// Build metadata, overridden at release time via ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
