package setup_test

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/setup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(opts *setup.Options, name, content string) error {
	return os.WriteFile(filepath.Join(opts.ProjectRoot, name), []byte(content), 0o644)
}

func TestStatus(t *testing.T) {
	var (
		srv  = newBackend(t, http.StatusOK)
		opts = newProject(t, srv.URL, seed.FlagCleverTap)
		ctx  = newContext(new(bytes.Buffer))
	)

	require.NoError(t, setup.RunAndroid(ctx, opts))

	statuses, err := setup.Status(ctx, opts)
	require.NoError(t, err)
	require.Len(t, statuses, 7)

	byName := map[string]setup.IntegrationStatus{}
	for _, status := range statuses {
		byName[status.Name] = status
	}

	cleverTap := byName["CleverTap"]
	assert.True(t, cleverTap.Enabled)
	require.NotNil(t, cleverTap.Android)
	require.NotNil(t, cleverTap.IOS)
	assert.True(t, cleverTap.Android.Linked)
	assert.False(t, cleverTap.Android.Drift)
	assert.True(t, cleverTap.IOS.Linked)
	assert.False(t, cleverTap.IOS.Drift)

	// iOS has not been set up, so disabled integrations are still linked.
	facebook := byName["Facebook"]
	assert.False(t, facebook.Enabled)
	assert.False(t, facebook.Android.Linked)
	assert.False(t, facebook.Android.Drift)
	assert.True(t, facebook.IOS.Linked)
	assert.True(t, facebook.IOS.Drift)

	assert.Equal(t, []string{"react-native-klaviyo", "react-native-push-notification"}, byName["Klaviyo"].Android.Packages)
	assert.Equal(t, []string{"react-native-klaviyo", "@react-native-community/push-notification-ios"}, byName["Klaviyo"].IOS.Packages)

	// Flip the flag without running setup.
	writeConfig(t, opts.ProjectRoot, srv.URL)

	statuses, err = setup.Status(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, "CleverTap", statuses[0].Name)
	assert.True(t, statuses[0].Android.Drift)
}
