// Package iconset runs the icon-set generator scripts shipped with the
// Apptile SDK.
package iconset

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
)

var (
	AndroidScript = filepath.Join("packages", "apptile-app", "devops", "scripts", "android", "iconset-generator.sh")
	IOSScript     = filepath.Join("packages", "apptile-app", "devops", "scripts", "ios", "iconset-generator.sh")
)

// Command represents the path to an icon-set generator script.
type Command string

// Android returns the Android generator inside the SDK at sdkPath.
func Android(sdkPath string) Command {
	return Command(filepath.Join(sdkPath, AndroidScript))
}

// IOS returns the iOS generator inside the SDK at sdkPath.
func IOS(sdkPath string) Command {
	return Command(filepath.Join(sdkPath, IOSScript))
}

func (c Command) String() string {
	return string(c)
}

// Generate runs the script found at Command from dir, rendering the
// icon at icon into output. output is relative to dir.
func (c Command) Generate(ctx context.Context, dir, icon, output string) error {
	//nolint:gosec
	cmd := exec.CommandContext(ctx, c.String(), icon, output)
	cmd.Dir = dir

	if out, err := cmd.CombinedOutput(); err != nil {
		if out = bytes.TrimSpace(out); len(out) > 0 {
			return fmt.Errorf("%s: %w: %s", c, err, out)
		}

		return fmt.Errorf("%s: %w", c, err)
	}

	return nil
}
