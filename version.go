package seed

import "strings"

var (
	Version    = "0.0.0"
	Prerelease = ""
)

// SemVer returns the semantic version of seed as
// built from Version and Prerelease.
func SemVer() string {
	if Prerelease != "" {
		return strings.Join([]string{Version, Prerelease}, "-")
	}

	return Version
}
