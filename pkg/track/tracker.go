package track

import (
	"github.com/arthur-debert/configma/pkg/filesystem"
	"github.com/arthur-debert/configma/pkg/logging"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/arthur-debert/configma/pkg/syncer"
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Tracker
type Options struct {
	FS       types.FS
	Resolver *paths.Resolver
	DryRun   bool
}

// Tracker adds paths to and removes paths from a profile
type Tracker struct {
	fs       types.FS
	resolver *paths.Resolver
	engine   *syncer.Engine
	dryRun   bool
	logger   zerolog.Logger
}

// New creates a Tracker
func New(opts Options) *Tracker {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	return &Tracker{
		fs:       opts.FS,
		resolver: opts.Resolver,
		engine: syncer.New(syncer.Options{
			FS:       opts.FS,
			Resolver: opts.Resolver,
			DryRun:   opts.DryRun,
		}),
		dryRun: opts.DryRun,
		logger: logging.GetLogger("track"),
	}
}

// AddAll adds each path in order, stopping at the first error. Results for
// paths added before the error are returned with it.
func (t *Tracker) AddAll(profile string, systemPaths []string) ([]types.TrackResult, error) {
	results := make([]types.TrackResult, 0, len(systemPaths))
	for _, path := range systemPaths {
		res, err := t.Add(profile, path)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RemoveAll removes each path in order, stopping at the first error
func (t *Tracker) RemoveAll(profile string, targets []string) ([]types.TrackResult, error) {
	results := make([]types.TrackResult, 0, len(targets))
	for _, path := range targets {
		res, err := t.Remove(profile, path)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
