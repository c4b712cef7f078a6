package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/android"
	"github.com/frantjc/seed/integration"
	"github.com/frantjc/seed/internal/seederr"
	"github.com/frantjc/seed/rnconfig"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

var (
	VersionPropertiesPath = filepath.Join("android", "app", "version.properties")
	GoogleServicesPath    = filepath.Join("android", "app", "google-services.json")
)

var androidClientInfoPath = jp.MustParseString("$.client[0].client_info.android_client_info")

// RunAndroid brings the Android project in line with the config.
func RunAndroid(ctx context.Context, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	opts.init()

	log := seed.LoggerFrom(ctx).WithValues("platform", rnconfig.Android)
	ctx = seed.WithLogger(ctx, log)

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	opts.generateAndroidIcons(ctx, cfg)

	project, registry, err := opts.loadAndroid()
	if err != nil {
		return err
	}

	applyAndroidBase(project, cfg)

	if _, err = integration.Apply(ctx, integration.Android, project, cfg, registry, rnconfig.Android); err != nil {
		return seederr.Fatal(err)
	}

	if err = opts.writeFiles(ctx,
		file{Path: android.StringsPath, Data: project.Strings.Bytes()},
		file{Path: android.ManifestPath, Data: project.Manifest.Bytes()},
		file{Path: rnconfig.Name, Data: registry.Bytes()},
	); err != nil {
		return err
	}

	tracker, err := opts.trackerFile(ctx, cfg, androidTrackerTarget)
	if err != nil {
		return seederr.Fatal(err)
	}

	files := []file{tracker}
	if versionProperties := versionProperties(cfg); versionProperties != nil {
		files = append(files, file{Path: VersionPropertiesPath, Data: versionProperties})
	}

	if googleServices := opts.googleServices(ctx, cfg); googleServices != nil {
		files = append(files, *googleServices)
	}

	return opts.writeFiles(ctx, files...)
}

func (o *Options) loadAndroid() (*android.Project, *rnconfig.Config, error) {
	b, err := o.readFile(android.ManifestPath)
	if err != nil {
		return nil, nil, err
	}

	manifest, err := android.ParseManifest(b)
	if err != nil {
		return nil, nil, seederr.Fatal(err)
	}

	if _, err = manifest.MainActivity(); err != nil {
		return nil, nil, seederr.Fatal(fmt.Errorf("%s: %w", android.ManifestPath, err))
	}

	if b, err = o.readFile(android.StringsPath); err != nil {
		return nil, nil, err
	}

	values, err := android.ParseStrings(b)
	if err != nil {
		return nil, nil, seederr.Fatal(err)
	}

	registry, err := o.loadRegistry()
	if err != nil {
		return nil, nil, err
	}

	return &android.Project{Manifest: manifest, Strings: values}, registry, nil
}

func applyAndroidBase(p *android.Project, cfg *seed.Config) {
	for _, kv := range [][2]string{
		{"app_name", cfg.AppName},
		{"APPTILE_API_ENDPOINT", cfg.BackendURL},
		{"APP_ID", cfg.AppID},
		{"APPTILE_UPDATE_ENDPOINT", cfg.AppConfigServerURL},
	} {
		if kv[1] != "" {
			p.Strings.UpsertString(kv[0], kv[1])
		}
	}
}

// versionProperties renders android/app/version.properties, or nil if
// neither a build number nor a version is configured.
func versionProperties(cfg *seed.Config) []byte {
	if cfg.Android == nil || (cfg.Android.BuildNumber == "" && cfg.Android.Version == "") {
		return nil
	}

	b := new(strings.Builder)
	if cfg.Android.BuildNumber != "" {
		fmt.Fprintf(b, "VERSION_CODE=%s\n", cfg.Android.BuildNumber)
	}

	if cfg.Android.Version != "" {
		fmt.Fprintf(b, "VERSION_NAME=%s\n", cfg.Android.Version)
	}

	return []byte(b.String())
}

// googleServices downloads google-services.json if the config has one.
// Otherwise the checked-in template gets the Android bundle ID as its
// package name. Failures are logged and yield nil.
func (o *Options) googleServices(ctx context.Context, cfg *seed.Config) *file {
	log := seed.LoggerFrom(ctx)

	if asset, ok := cfg.Asset(seed.AssetClassAndroidFirebaseServiceFile); ok {
		err := o.Downloader.Download(ctx, asset.URL, o.path(GoogleServicesPath))
		if err == nil {
			log.Info("downloaded " + GoogleServicesPath)
			return nil
		}

		log.Info("could not download "+GoogleServicesPath+", using the template", "warning", err)
	}

	if cfg.Android == nil || cfg.Android.BundleID == "" {
		return nil
	}

	b, err := os.ReadFile(o.path(GoogleServicesPath))
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("no " + GoogleServicesPath + " template, skipping")
		return nil
	} else if err != nil {
		log.Info("could not read "+GoogleServicesPath, "warning", err)
		return nil
	}

	data, err := oj.Parse(b)
	if err != nil {
		log.Info("could not parse "+GoogleServicesPath, "warning", err)
		return nil
	}

	clientInfo, ok := androidClientInfoPath.First(data).(map[string]any)
	if !ok {
		log.Info(GoogleServicesPath + " has no client[0].client_info.android_client_info, skipping")
		return nil
	}
	clientInfo["package_name"] = cfg.Android.BundleID

	return &file{
		Path: GoogleServicesPath,
		Data: []byte(oj.JSON(data, &oj.Options{Indent: 2, Sort: true, HTMLUnsafe: true}) + "\n"),
	}
}
