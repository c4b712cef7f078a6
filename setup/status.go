package setup

import (
	"context"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/integration"
	"github.com/frantjc/seed/rnconfig"
	xslice "github.com/frantjc/x/slice"
)

// IntegrationStatus compares an integration's feature flag with what
// react-native.config.js currently autolinks.
type IntegrationStatus struct {
	Name    string          `yaml:"name"`
	Flag    string          `yaml:"flag"`
	Enabled bool            `yaml:"enabled"`
	Android *PlatformStatus `yaml:"android,omitempty"`
	IOS     *PlatformStatus `yaml:"ios,omitempty"`
}

type PlatformStatus struct {
	Packages []string `yaml:"packages"`
	Linked   bool     `yaml:"linked"`
	// Drift is set when Linked disagrees with the flag, i.e. the
	// platform has not been set up since the config changed.
	Drift bool `yaml:"drift,omitempty"`
}

func platformStatus(registry *rnconfig.Config, platform rnconfig.Platform, packages []string, enabled bool) *PlatformStatus {
	linked := xslice.Every(packages, func(pkg string, _ int) bool {
		return !registry.IsUnlinked(pkg, platform)
	})

	return &PlatformStatus{
		Packages: packages,
		Linked:   linked,
		Drift:    linked != enabled,
	}
}

// Status reports every integration in Android order followed by any
// that only iOS knows of.
func Status(ctx context.Context, opts *Options) ([]IntegrationStatus, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.init()

	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}

	registry, err := opts.loadRegistry()
	if err != nil {
		return nil, err
	}

	var (
		statuses = []IntegrationStatus{}
		index    = map[string]int{}
	)

	for _, d := range integration.Android {
		enabled := cfg.Enabled(d.Flag)
		index[d.Name] = len(statuses)
		statuses = append(statuses, IntegrationStatus{
			Name:    d.Name,
			Flag:    d.Flag,
			Enabled: enabled,
			Android: platformStatus(registry, rnconfig.Android, d.Packages, enabled),
		})
	}

	for _, d := range integration.IOS {
		enabled := cfg.Enabled(d.Flag)
		status := platformStatus(registry, rnconfig.IOS, d.Packages, enabled)

		if i, ok := index[d.Name]; ok {
			statuses[i].IOS = status
			continue
		}

		statuses = append(statuses, IntegrationStatus{
			Name:    d.Name,
			Flag:    d.Flag,
			Enabled: enabled,
			IOS:     status,
		})
	}

	seed.LoggerFrom(ctx).V(1).Info("read status", "integrations", len(statuses))

	return statuses, nil
}
