package ios

import (
	"path/filepath"

	"github.com/frantjc/seed/internal/seedregexp"
)

var PBXProjPath = filepath.Join("ios", "apptileSeed.xcodeproj", "project.pbxproj")

// BuildSettings are the project.pbxproj build settings that are
// rewritten. Empty fields are left alone.
type BuildSettings struct {
	DevelopmentTeam       string
	CurrentProjectVersion string
	MarketingVersion      string
}

// UpdatePBXProj rewrites every existing assignment of the non-empty
// settings in a project.pbxproj. Settings that are not already
// assigned somewhere are not added.
func UpdatePBXProj(pbxproj []byte, settings BuildSettings) []byte {
	out := pbxproj

	if settings.DevelopmentTeam != "" {
		out = seedregexp.DevelopmentTeam.ReplaceAllLiteral(out, []byte("DEVELOPMENT_TEAM = "+settings.DevelopmentTeam+";"))
	}

	if settings.CurrentProjectVersion != "" {
		out = seedregexp.CurrentProjectVersion.ReplaceAllLiteral(out, []byte("CURRENT_PROJECT_VERSION = "+settings.CurrentProjectVersion+";"))
	}

	if settings.MarketingVersion != "" {
		out = seedregexp.MarketingVersion.ReplaceAllLiteral(out, []byte("MARKETING_VERSION = "+settings.MarketingVersion+";"))
	}

	return out
}
