package seedregexp

import "regexp"

var (
	BundleID = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*(\.[a-zA-Z0-9_-]+)+$`)
	TeamID   = regexp.MustCompile("^[A-Z0-9]{10}$")

	// BuildNumber is what both Android's versionCode and iOS's
	// CFBundleVersion accept: dot-separated integers.
	BuildNumber = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}$`)

	DevelopmentTeam       = regexp.MustCompile(`DEVELOPMENT_TEAM = [^;]*;`)
	CurrentProjectVersion = regexp.MustCompile(`CURRENT_PROJECT_VERSION = [^;]+;`)
	MarketingVersion      = regexp.MustCompile(`MARKETING_VERSION = [^;]+;`)
)
