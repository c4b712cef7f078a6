package setup

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"

	"github.com/frantjc/seed"
)

var (
	AndroidTrackerPath   = filepath.Join("android", "app", "src", "main", "assets", "localBundleTracker.json")
	AndroidAppConfigPath = filepath.Join("android", "app", "src", "main", "assets", "appConfig.json")
	IOSTrackerPath       = filepath.Join("ios", "localBundleTracker.json")
	IOSAppConfigPath     = filepath.Join("ios", "appConfig.json")
)

// Tracker is the local bundle tracker. The app falls back to its
// embedded bundle when the IDs are null.
type Tracker struct {
	PublishedCommitID *int64
	BundleID          *int64
}

type androidTracker struct {
	PublishedCommitID *int64 `json:"publishedCommitId"`
	AndroidBundleID   *int64 `json:"androidBundleId"`
}

type iosTracker struct {
	PublishedCommitID *int64 `json:"publishedCommitId"`
	IOSBundleID       *int64 `json:"iosBundleId"`
}

type trackerTarget struct {
	TrackerPath   string
	AppConfigPath string
	BundleID      func(*seed.Manifest) *int64
	Marshal       func(*Tracker) ([]byte, error)
}

var (
	androidTrackerTarget = trackerTarget{
		TrackerPath:   AndroidTrackerPath,
		AppConfigPath: AndroidAppConfigPath,
		BundleID: func(m *seed.Manifest) *int64 {
			return m.AndroidBundleID
		},
		Marshal: func(t *Tracker) ([]byte, error) {
			return json.Marshal(&androidTracker{PublishedCommitID: t.PublishedCommitID, AndroidBundleID: t.BundleID})
		},
	}
	iosTrackerTarget = trackerTarget{
		TrackerPath:   IOSTrackerPath,
		AppConfigPath: IOSAppConfigPath,
		BundleID: func(m *seed.Manifest) *int64 {
			return m.IOSBundleID
		},
		Marshal: func(t *Tracker) ([]byte, error) {
			return json.Marshal(&iosTracker{PublishedCommitID: t.PublishedCommitID, IOSBundleID: t.BundleID})
		},
	}
)

var errNoPublishedCommit = errors.New("published app config not found")

// fetchTracker resolves the published commit of the app and downloads
// its app config. Any failure yields the null Tracker.
func (o *Options) fetchTracker(ctx context.Context, cfg *seed.Config, target trackerTarget) *Tracker {
	log := seed.LoggerFrom(ctx)

	tracker, err := func() (*Tracker, error) {
		manifest, err := o.Fetcher.GetManifest(ctx, cfg.BackendURL, cfg.AppID)
		if err != nil {
			return nil, err
		}

		if manifest.PublishedCommitID == nil {
			return nil, errNoPublishedCommit
		}

		urlstr, err := seed.AppConfigURL(cfg.AppConfigServerURL, cfg.AppID, *manifest.PublishedCommitID)
		if err != nil {
			return nil, err
		}

		log.Info("downloading app config", "url", urlstr)
		if err = o.Downloader.Download(ctx, urlstr, o.path(target.AppConfigPath)); err != nil {
			return nil, err
		}

		return &Tracker{PublishedCommitID: manifest.PublishedCommitID, BundleID: target.BundleID(manifest)}, nil
	}()
	if err != nil {
		log.Info("could not download app config, falling back to the embedded bundle", "warning", err)
		return &Tracker{}
	}

	return tracker
}

func (o *Options) trackerFile(ctx context.Context, cfg *seed.Config, target trackerTarget) (file, error) {
	b, err := target.Marshal(o.fetchTracker(ctx, cfg, target))
	if err != nil {
		return file{}, err
	}

	return file{Path: target.TrackerPath, Data: b}, nil
}
