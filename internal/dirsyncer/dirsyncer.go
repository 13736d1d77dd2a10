package dirsyncer

import (
	"context"
	"dirmirror/internal/log"
	"dirmirror/internal/model"
	"dirmirror/internal/settings"
	"dirmirror/pkg/helpers/run"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

type DirSyncer struct {
	log      log.Logger
	settings settings.Settings
	fs       afero.Fs
	clock    clockwork.Clock
}

type Option func(*DirSyncer)

//WithFs replaces the OS filesystem, e.g. with an in-memory one in tests.
func WithFs(fsys afero.Fs) Option {
	return func(d *DirSyncer) { d.fs = fsys }
}

//WithClock replaces the real clock used for the pause between passes.
func WithClock(clock clockwork.Clock) Option {
	return func(d *DirSyncer) { d.clock = clock }
}

func New(logger log.Logger, stg settings.Settings, opts ...Option) *DirSyncer {
	d := &DirSyncer{log: logger, settings: stg, fs: afero.NewOsFs(), clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

//SyncOnce runs one complete pass over the whole tree pair. A panic during the pass is returned as an error.
func (d *DirSyncer) SyncOnce() (model.PassStats, error) {
	var stats model.PassStats
	err := run.WithError(func() (err error) {
		stats, err = newReconciler(d.log, d.fs).reconcile(d.settings.SrcDir, d.settings.ReplicaDir)
		return err
	})
	d.log.Debug("synchronization pass finished", log.String("stats", stats.String()),
		log.Duration("took", stats.Duration))
	return stats, err
}

//Start runs passes separated by the configured interval until ctx is canceled.
//A failed pass is logged and the next one is attempted as usual; a running pass is never interrupted,
//the cancellation is noticed before the next pass and during the pause.
//In the once mode exactly one pass is run, and its error is returned.
func (d *DirSyncer) Start(ctx context.Context) error {
	if d.settings.Once {
		d.log.Info(fmt.Sprintf("Starting one-time synchronization from %s to %s.",
			d.settings.SrcDir, d.settings.ReplicaDir))
		if _, err := d.SyncOnce(); err != nil {
			d.log.Error(fmt.Sprintf("Synchronization pass failed: %v", err))
			return err
		}
		return nil
	}

	d.log.Info(fmt.Sprintf("Starting synchronization from %s to %s every %d seconds.",
		d.settings.SrcDir, d.settings.ReplicaDir, int64(d.settings.Interval.Seconds())))
	for {
		if ctx.Err() != nil {
			return d.stopped()
		}
		if _, err := d.SyncOnce(); err != nil {
			d.log.Error(fmt.Sprintf("Synchronization pass failed: %v", err))
		}

		select {
		case <-ctx.Done():
			return d.stopped()
		case <-d.clock.After(d.settings.Interval):
		}
	}
}

func (d *DirSyncer) stopped() error {
	d.log.Info("Synchronization stopped by user.")
	return nil
}
