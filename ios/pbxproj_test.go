package ios_test

import (
	_ "embed"
	"strings"
	"testing"

	"github.com/frantjc/seed/ios"
	"github.com/stretchr/testify/assert"
)

//go:embed testdata/project.pbxproj
var pbxproj []byte

func TestUpdatePBXProj(t *testing.T) {
	settings := ios.BuildSettings{
		DevelopmentTeam:       "TEAM123456",
		CurrentProjectVersion: "42",
		MarketingVersion:      "2.3.4",
	}

	once := ios.UpdatePBXProj(pbxproj, settings)
	twice := ios.UpdatePBXProj(once, settings)
	assert.Equal(t, string(once), string(twice))

	out := string(once)
	assert.Equal(t, 2, strings.Count(out, "DEVELOPMENT_TEAM = TEAM123456;"))
	assert.Equal(t, 2, strings.Count(out, "CURRENT_PROJECT_VERSION = 42;"))
	assert.Equal(t, 2, strings.Count(out, "MARKETING_VERSION = 2.3.4;"))
	assert.Contains(t, out, "PRODUCT_BUNDLE_IDENTIFIER = com.apptile.apptilepreviewdemo;")
}

func TestUpdatePBXProjEmptySettings(t *testing.T) {
	assert.Equal(t, string(pbxproj), string(ios.UpdatePBXProj(pbxproj, ios.BuildSettings{})))
}
