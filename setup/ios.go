package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/integration"
	"github.com/frantjc/seed/internal/seederr"
	"github.com/frantjc/seed/ios"
	"github.com/frantjc/seed/rnconfig"
)

const XCAssetsName = "Images.xcassets"

var XCAssetsPath = filepath.Join("ios", "apptileSeed", XCAssetsName)

// RunIOS brings the iOS project in line with the config.
func RunIOS(ctx context.Context, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	opts.init()

	log := seed.LoggerFrom(ctx).WithValues("platform", rnconfig.IOS)
	ctx = seed.WithLogger(ctx, log)

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	opts.generateIOSIcons(ctx, cfg)

	project, registry, err := opts.loadIOS()
	if err != nil {
		return err
	}

	applyIOSBase(project, cfg)

	if _, err = integration.Apply(ctx, integration.IOS, project, cfg, registry, rnconfig.IOS); err != nil {
		return seederr.Fatal(err)
	}

	files := []file{}
	for _, doc := range project.Documents() {
		b, err := doc.Document.Bytes()
		if err != nil {
			return seederr.Fatal(fmt.Errorf("serialize %s: %w", doc.Path, err))
		}

		files = append(files, file{Path: doc.Path, Data: b})
	}
	files = append(files, file{Path: rnconfig.Name, Data: registry.Bytes()})

	if err = opts.writeFiles(ctx, files...); err != nil {
		return err
	}

	tracker, err := opts.trackerFile(ctx, cfg, iosTrackerTarget)
	if err != nil {
		return seederr.Fatal(err)
	}

	files = []file{tracker}
	if pbxproj := opts.pbxproj(ctx, cfg); pbxproj != nil {
		files = append(files, *pbxproj)
	}

	return opts.writeFiles(ctx, files...)
}

func (o *Options) loadIOS() (*ios.Project, *rnconfig.Config, error) {
	project := &ios.Project{}

	for _, target := range []struct {
		Path     string
		Document **ios.Document
	}{
		{ios.InfoPath, &project.Info},
		{ios.ImageNotificationInfoPath, &project.ImageNotification},
		{ios.NotificationContentInfoPath, &project.NotificationContent},
		{ios.EntitlementsPath, &project.Entitlements},
		{ios.ImageNotificationEntitlementsPath, &project.ImageNotificationEntitlements},
		{ios.NotificationContentEntitlementsPath, &project.NotificationContentEntitlements},
	} {
		b, err := o.readFile(target.Path)
		if err != nil {
			return nil, nil, err
		}

		doc, err := ios.Parse(b)
		if err != nil {
			return nil, nil, seederr.Fatal(named(err, target.Path))
		}

		*target.Document = doc
	}

	registry, err := o.loadRegistry()
	if err != nil {
		return nil, nil, err
	}

	return project, registry, nil
}

func named(err error, name string) error {
	perr := &ios.ParseError{}
	if errors.As(err, &perr) && perr.Name == "" {
		perr.Name = name
	}

	return err
}

func applyIOSBase(p *ios.Project, cfg *seed.Config) {
	var (
		version     = seed.DefaultVersion
		buildNumber = seed.DefaultBuildNumber
	)
	if cfg.IOS != nil {
		if cfg.IOS.Version != "" {
			version = string(cfg.IOS.Version)
		}

		if cfg.IOS.BuildNumber != "" {
			buildNumber = string(cfg.IOS.BuildNumber)
		}
	}

	for _, doc := range []*ios.Document{p.Info, p.ImageNotification, p.NotificationContent} {
		doc.Upsert("CFBundleShortVersionString", version)
		doc.Upsert("CFBundleVersion", buildNumber)
	}

	for _, kv := range [][2]string{
		{"APPTILE_API_ENDPOINT", cfg.BackendURL},
		{"APPTILE_UPDATE_ENDPOINT", cfg.AppConfigServerURL},
		{"APP_ID", cfg.AppID},
	} {
		if kv[1] != "" {
			p.Info.Upsert(kv[0], kv[1])
		}
	}
	p.Info.Upsert("CFBundleDisplayName", cfg.DisplayName())

	appGroups := []any{ios.ApplicationGroup(cfg.IOSBundleID())}
	p.Entitlements.Upsert(ios.ApplicationGroupsKey, appGroups)
	p.ImageNotificationEntitlements.Upsert(ios.ApplicationGroupsKey, appGroups)
}

// pbxproj rewrites the team and versions in the Xcode project. A
// missing project is logged and yields nil.
func (o *Options) pbxproj(ctx context.Context, cfg *seed.Config) *file {
	log := seed.LoggerFrom(ctx)

	if cfg.IOS == nil {
		return nil
	}

	settings := ios.BuildSettings{
		DevelopmentTeam:       cfg.IOS.TeamID,
		CurrentProjectVersion: string(cfg.IOS.BuildNumber),
		MarketingVersion:      string(cfg.IOS.Version),
	}
	if settings == (ios.BuildSettings{}) {
		return nil
	}

	b, err := os.ReadFile(o.path(ios.PBXProjPath))
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("no " + ios.PBXProjPath + ", skipping")
		return nil
	} else if err != nil {
		log.Info("could not read "+ios.PBXProjPath, "warning", err)
		return nil
	}

	return &file{Path: ios.PBXProjPath, Data: ios.UpdatePBXProj(b, settings)}
}
