// Package setup brings the native projects of a React Native checkout
// in line with its apptile.config.json.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/internal/seederr"
	"github.com/frantjc/seed/internal/seedutil"
	"github.com/frantjc/seed/rnconfig"
	"github.com/opencontainers/go-digest"
)

// Downloader fetches the object at a URL into a local file.
type Downloader interface {
	Download(ctx context.Context, urlstr, name string) error
}

// Fetcher fetches an app's published manifest.
type Fetcher interface {
	GetManifest(ctx context.Context, backendURL, appID string) (*seed.Manifest, error)
}

// Options configure a run. The zero value runs against the current
// directory with a default seed.Client.
type Options struct {
	ProjectRoot string
	// ConfigPath defaults to apptile.config.json in ProjectRoot.
	ConfigPath string
	Downloader Downloader
	Fetcher    Fetcher
	// IconsetScript overrides the generator script found in SDK_PATH.
	IconsetScript string
}

func (o *Options) init() {
	if o.ProjectRoot == "" {
		o.ProjectRoot = "."
	}

	if o.ConfigPath == "" {
		o.ConfigPath = filepath.Join(o.ProjectRoot, seed.ConfigName)
	}

	if o.Downloader == nil || o.Fetcher == nil {
		cli := &seed.Client{}
		if o.Downloader == nil {
			o.Downloader = cli
		}
		if o.Fetcher == nil {
			o.Fetcher = cli
		}
	}
}

func (o *Options) path(elem ...string) string {
	return filepath.Join(append([]string{o.ProjectRoot}, elem...)...)
}

func (o *Options) loadConfig() (*seed.Config, error) {
	cfg, err := seed.LoadConfig(o.ConfigPath)
	if err != nil {
		return nil, seederr.Fatal(err)
	}

	return cfg, nil
}

// readFile reads a project file that must exist.
func (o *Options) readFile(name string) ([]byte, error) {
	b, err := os.ReadFile(o.path(name))
	if err != nil {
		return nil, seederr.Fatal(err)
	}

	return b, nil
}

func (o *Options) loadRegistry() (*rnconfig.Config, error) {
	b, err := os.ReadFile(o.path(rnconfig.Name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, seederr.Fatal(err)
	}

	registry, err := rnconfig.Parse(b)
	if err != nil {
		return nil, seederr.Fatal(err)
	}

	return registry, nil
}

// file is a serialized project file waiting to be written.
type file struct {
	Path string
	Data []byte
}

// writeFiles writes every file whose content changed. Unchanged files
// are not touched.
func (o *Options) writeFiles(ctx context.Context, files ...file) error {
	log := seed.LoggerFrom(ctx)

	for _, f := range files {
		wrote, err := seedutil.WriteFileIfChanged(o.path(f.Path), f.Data, 0o644)
		if err != nil {
			return seederr.Fatal(fmt.Errorf("write %s: %w", f.Path, err))
		}

		if wrote {
			log.Info("wrote "+f.Path, "digest", digest.FromBytes(f.Data))
		} else {
			log.V(1).Info("unchanged " + f.Path)
		}
	}

	return nil
}
