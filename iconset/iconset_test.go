package iconset_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/frantjc/seed/iconset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) iconset.Command {
	t.Helper()

	name := filepath.Join(t.TempDir(), "iconset-generator.sh")
	require.NoError(t, os.WriteFile(name, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	return iconset.Command(name)
}

func TestGenerate(t *testing.T) {
	var (
		ctx  = context.Background()
		dir  = t.TempDir()
		icon = filepath.Join(dir, "assets", "icon.png")
		cmd  = writeScript(t, `mkdir -p "$2/res/mipmap" && cp "$1" "$2/res/mipmap/ic_launcher.png"`)
	)
	require.NoError(t, os.MkdirAll(filepath.Dir(icon), 0o755))
	require.NoError(t, os.WriteFile(icon, []byte("png"), 0o644))

	require.NoError(t, cmd.Generate(ctx, dir, icon, "./android/app/src/main"))

	b, err := os.ReadFile(filepath.Join(dir, "android", "app", "src", "main", "res", "mipmap", "ic_launcher.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(b))
}

func TestGenerateFailure(t *testing.T) {
	cmd := writeScript(t, `echo "no icon" >&2; exit 3`)

	err := cmd.Generate(context.Background(), t.TempDir(), "icon.png", "./")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no icon")
}

func TestSDKPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("sdk", "packages", "apptile-app", "devops", "scripts", "android", "iconset-generator.sh"), iconset.Android("sdk").String())
	assert.Equal(t, filepath.Join("sdk", "packages", "apptile-app", "devops", "scripts", "ios", "iconset-generator.sh"), iconset.IOS("sdk").String())
}
