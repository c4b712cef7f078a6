// Package integration describes how each third-party SDK is added to
// and removed from the native projects.
package integration

import (
	"context"
	"fmt"

	"github.com/frantjc/seed"
	"github.com/frantjc/seed/rnconfig"
)

// Sentinel replaces the values of a removed integration. The keys are
// kept because native build files reference them unconditionally.
const Sentinel = "xxx"

// Descriptor is one integration on one platform. P is the platform's
// project.
type Descriptor[P any] struct {
	Name string
	// Flag is the feature flag that enables the integration.
	Flag string
	// Packages are the React Native packages that are autolinked only
	// while the integration is enabled.
	Packages []string
	Add      func(P, *seed.Config) error
	Remove   func(P) error
}

type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Result records what Apply did with one descriptor.
type Result struct {
	Name     string
	Action   Action
	Packages []string
}

// Apply runs Add for every descriptor whose flag is enabled in cfg and
// Remove for every other, in order, keeping registry in step on
// platform. Nothing is skipped: an integration that is already in the
// desired state is applied again.
func Apply[P any](ctx context.Context, descriptors []Descriptor[P], project P, cfg *seed.Config, registry *rnconfig.Config, platform rnconfig.Platform) ([]Result, error) {
	var (
		log     = seed.LoggerFrom(ctx).WithValues("platform", platform)
		results = make([]Result, 0, len(descriptors))
	)

	for _, d := range descriptors {
		result := Result{Name: d.Name, Packages: d.Packages}

		if cfg.Enabled(d.Flag) {
			result.Action = ActionAdd

			if d.Add != nil {
				if err := d.Add(project, cfg); err != nil {
					return results, fmt.Errorf("add %s: %w", d.Name, err)
				}
			}

			for _, pkg := range d.Packages {
				registry.Link(pkg, platform)
			}
		} else {
			result.Action = ActionRemove

			if d.Remove != nil {
				if err := d.Remove(project); err != nil {
					return results, fmt.Errorf("remove %s: %w", d.Name, err)
				}
			}

			for _, pkg := range d.Packages {
				if err := registry.Unlink(pkg, platform); err != nil {
					return results, fmt.Errorf("remove %s: %w", d.Name, err)
				}
			}
		}

		log.Info(string(result.Action)+" "+d.Name, "flag", d.Flag, "packages", d.Packages)
		results = append(results, result)
	}

	return results, nil
}
