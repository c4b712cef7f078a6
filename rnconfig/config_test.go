package rnconfig_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/frantjc/seed/rnconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reactNativeConfig = `// Generated once, then kept up to date by seed.
const path = "ignored";

module.exports = {
  project: {
    ios: {},
    android: {},
  },
  assets: ["./assets/fonts/"],
  dependencies: {
    "react-native-video": {
      platforms: {
        android: {
          sourceDir: "../node_modules/react-native-video/android-exoplayer"
        }
      }
    }
  }
};
`

func TestParse(t *testing.T) {
	c, err := rnconfig.Parse([]byte(reactNativeConfig))
	require.NoError(t, err)

	assert.Equal(t, "// Generated once, then kept up to date by seed.\nconst path = \"ignored\";\n\n", c.Preamble)
	assert.Empty(t, c.Unlinked(rnconfig.Android))
	assert.False(t, c.IsUnlinked("react-native-video", rnconfig.Android))

	again, err := rnconfig.Parse(c.Bytes())
	require.NoError(t, err)
	assert.Equal(t, c.Exports, again.Exports)
	assert.Equal(t, string(c.Bytes()), string(again.Bytes()))
}

func TestParseEmpty(t *testing.T) {
	c, err := rnconfig.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, c.Unlinked(rnconfig.IOS))

	require.NoError(t, c.Unlink("react-native-onesignal", rnconfig.IOS))

	out := string(c.Bytes())
	assert.True(t, strings.HasPrefix(out, "module.exports = {\n  \"dependencies\""))
	assert.True(t, strings.HasSuffix(out, "};\n"))

	again, err := rnconfig.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, []string{"react-native-onesignal"}, again.Unlinked(rnconfig.IOS))
	assert.Empty(t, again.Unlinked(rnconfig.Android))
}

func TestParseMalformed(t *testing.T) {
	for name, data := range map[string]string{
		"no exports":   `const a = 1;`,
		"not assigned": `module.exports;`,
		"not object":   `module.exports = ["a"];`,
		"broken":       `module.exports = {dependencies: {;`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := rnconfig.Parse([]byte(data))
			require.Error(t, err)

			perr := &rnconfig.ParseError{}
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestUnlinkLink(t *testing.T) {
	c, err := rnconfig.Parse([]byte(reactNativeConfig))
	require.NoError(t, err)
	before := string(c.Bytes())

	require.NoError(t, c.Unlink("clevertap-react-native", rnconfig.Android))
	once := string(c.Bytes())
	require.NoError(t, c.Unlink("clevertap-react-native", rnconfig.Android))
	assert.Equal(t, once, string(c.Bytes()))

	assert.True(t, c.IsUnlinked("clevertap-react-native", rnconfig.Android))
	assert.False(t, c.IsUnlinked("clevertap-react-native", rnconfig.IOS))
	assert.Equal(t, []string{"clevertap-react-native"}, c.Unlinked(rnconfig.Android))

	c.Link("clevertap-react-native", rnconfig.Android)
	c.Link("clevertap-react-native", rnconfig.Android)
	assert.False(t, c.IsUnlinked("clevertap-react-native", rnconfig.Android))
	assert.Equal(t, before, string(c.Bytes()))
}

func TestPlatformsAreIndependent(t *testing.T) {
	c, err := rnconfig.Parse(nil)
	require.NoError(t, err)

	require.NoError(t, c.Unlink("react-native-moengage", rnconfig.Android))
	require.NoError(t, c.Unlink("react-native-moengage", rnconfig.IOS))

	c.Link("react-native-moengage", rnconfig.IOS)
	assert.True(t, c.IsUnlinked("react-native-moengage", rnconfig.Android))
	assert.False(t, c.IsUnlinked("react-native-moengage", rnconfig.IOS))
}

func TestLinkKeepsOtherConfiguration(t *testing.T) {
	c, err := rnconfig.Parse([]byte(reactNativeConfig))
	require.NoError(t, err)

	require.NoError(t, c.Unlink("react-native-video", rnconfig.IOS))
	c.Link("react-native-video", rnconfig.IOS)
	c.Link("react-native-video", rnconfig.Android)

	again, err := rnconfig.Parse(c.Bytes())
	require.NoError(t, err)

	deps := again.Exports["dependencies"].(map[string]any)
	video := deps["react-native-video"].(map[string]any)
	platforms := video["platforms"].(map[string]any)
	android := platforms["android"].(map[string]any)
	assert.Equal(t, "../node_modules/react-native-video/android-exoplayer", android["sourceDir"])
	assert.NotContains(t, platforms, "ios")
}

func TestUnlinkStructuralError(t *testing.T) {
	c, err := rnconfig.Parse([]byte(`module.exports = {dependencies: "oops"};`))
	require.NoError(t, err)

	assert.Error(t, c.Unlink("react-native-onesignal", rnconfig.Android))
}
