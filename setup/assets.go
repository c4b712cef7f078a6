package setup

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/iconset"
	"golang.org/x/sync/errgroup"
)

const (
	AssetsDir = "assets"
	IconName  = "icon.png"
)

// SplashFormat is the kind of image a splash screen asset holds.
type SplashFormat string

const (
	SplashPNG    SplashFormat = "png"
	SplashGIF    SplashFormat = "gif"
	SplashLottie SplashFormat = "json"
)

// SplashNames maps each SplashFormat to the file under assets/ that the
// app loads it from.
var SplashNames = map[SplashFormat]string{
	SplashPNG:    "splash.png",
	SplashGIF:    "splash.gif",
	SplashLottie: "splash.json",
}

// SplashFormatOf picks the SplashFormat of asset from its file name,
// falling back to its URL. Unknown extensions are SplashPNG.
func SplashFormatOf(asset *seed.Asset) SplashFormat {
	name := asset.FileName
	if name == "" {
		name = asset.URL
		if u, err := url.Parse(asset.URL); err == nil {
			name = u.Path
		}
	}

	format := SplashFormat(strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")))
	if _, ok := SplashNames[format]; ok {
		return format
	}

	return SplashPNG
}

// downloadAssets fetches the icon and splash screen into assets/
// concurrently. It reports whether the icon was downloaded. Failures
// are logged and otherwise ignored.
func (o *Options) downloadAssets(ctx context.Context, cfg *seed.Config) bool {
	var (
		log  = seed.LoggerFrom(ctx)
		eg   errgroup.Group
		icon bool
	)

	if asset, ok := cfg.Asset(seed.AssetClassIcon); ok {
		eg.Go(func() error {
			if err := o.Downloader.Download(ctx, asset.URL, o.path(AssetsDir, IconName)); err != nil {
				log.Info("could not download icon", "url", asset.URL, "warning", err)
				return nil
			}

			icon = true
			return nil
		})
	}

	if asset, ok := cfg.Asset(seed.AssetClassSplash); ok {
		eg.Go(func() error {
			name := SplashNames[SplashFormatOf(asset)]
			if err := o.Downloader.Download(ctx, asset.URL, o.path(AssetsDir, name)); err != nil {
				log.Info("could not download splash", "url", asset.URL, "warning", err)
			}

			return nil
		})
	}

	_ = eg.Wait()

	return icon
}

func (o *Options) iconset(cfg *seed.Config, sdk func(string) iconset.Command) (iconset.Command, bool) {
	if o.IconsetScript != "" {
		return iconset.Command(o.IconsetScript), true
	}

	if cfg.SDKPath == "" {
		return "", false
	}

	return sdk(cfg.SDKPath), true
}

// generateAndroidIcons downloads the assets and renders the launcher
// icons into android/app/src/main.
func (o *Options) generateAndroidIcons(ctx context.Context, cfg *seed.Config) {
	log := seed.LoggerFrom(ctx)

	if !o.downloadAssets(ctx, cfg) {
		return
	}

	cmd, ok := o.iconset(cfg, iconset.Android)
	if !ok {
		log.Info("no icon set generator, skipping icon generation")
		return
	}

	icon, err := filepath.Abs(o.path(AssetsDir, IconName))
	if err != nil {
		log.Info("could not generate icons", "warning", err)
		return
	}

	if err = cmd.Generate(ctx, o.ProjectRoot, icon, "./"+filepath.ToSlash(filepath.Join("android", "app", "src", "main"))); err != nil {
		log.Info("could not generate icons", "warning", err)
		return
	}

	log.Info("generated icons", "script", cmd.String())
}

// generateIOSIcons downloads the assets and replaces the app's asset
// catalog with one rendered from the icon. The generator only runs on
// macOS unless a script is given explicitly.
func (o *Options) generateIOSIcons(ctx context.Context, cfg *seed.Config) {
	log := seed.LoggerFrom(ctx)

	if !o.downloadAssets(ctx, cfg) {
		return
	}

	if runtime.GOOS != "darwin" && o.IconsetScript == "" {
		log.Info("icon set generation requires darwin, skipping")
		return
	}

	cmd, ok := o.iconset(cfg, iconset.IOS)
	if !ok {
		log.Info("no icon set generator, skipping icon generation")
		return
	}

	if err := func() error {
		icon, err := filepath.Abs(o.path(AssetsDir, IconName))
		if err != nil {
			return err
		}

		if err = cmd.Generate(ctx, o.ProjectRoot, icon, "./"); err != nil {
			return err
		}

		generated := o.path(XCAssetsName)
		if _, err = os.Stat(generated); err != nil {
			return fmt.Errorf("generator did not create %s: %w", XCAssetsName, err)
		}

		if err = os.RemoveAll(o.path(XCAssetsPath)); err != nil {
			return err
		}

		return os.Rename(generated, o.path(XCAssetsPath))
	}(); err != nil {
		log.Info("could not generate icons", "warning", err)
		return
	}

	log.Info("generated icons", "script", cmd.String())
}
