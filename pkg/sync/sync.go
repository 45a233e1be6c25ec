//go:generate mockgen -source=sync.go -destination=mocks/sync.go -package=mocks

// Package sync drives a full pass over a media catalog: it scans the
// managed directory, frees space where a floor is configured, and
// downloads or repairs every file that is not already valid.
package sync

import (
	"context"
	"io"

	"github.com/samber/lo"

	"github.com/okrause/mediasync/internal/logger"
	"github.com/okrause/mediasync/pkg/config"
	"github.com/okrause/mediasync/pkg/download"
	"github.com/okrause/mediasync/pkg/hooks"
	"github.com/okrause/mediasync/pkg/model"
	"github.com/okrause/mediasync/pkg/space"
)

// Transferer is the subset of the download client the orchestrator
// uses.
type Transferer interface {
	Transfer(ctx context.Context, url, dest string, opts download.Options) error
}

// SpaceEnsurer is the subset of the evictor the orchestrator uses.
type SpaceEnsurer interface {
	Ensure(dir string, ref space.Reference) (space.Result, error)
}

// Orchestrator ties the transfer engine, the evictor and the
// verification rules together for one sync pass.
type Orchestrator struct {
	Settings *config.Settings
	Transfer Transferer

	// Space frees room before each download. Nil disables eviction.
	Space SpaceEnsurer

	// Hooks runs optional user scripts. Nil disables them.
	Hooks *hooks.Executor

	// Progress receives the transfer progress bar. Callers pass a
	// terminal or nil.
	Progress io.Writer
}

// New constructs an Orchestrator from existing components. Helper for
// wiring; Space, Hooks and Progress may be nil.
func New(settings *config.Settings, transfer Transferer, ensurer SpaceEnsurer, executor *hooks.Executor, progress io.Writer) *Orchestrator {
	return &Orchestrator{
		Settings: settings,
		Transfer: transfer,
		Space:    ensurer,
		Hooks:    executor,
		Progress: progress,
	}
}

// SyncAll downloads or repairs every media file that is not already
// valid locally. Existing files are scanned up front so the progress
// counters reflect only real work. A Halt from the evictor ends the
// pass; per-item transfer failures do not.
func (o *Orchestrator) SyncAll(ctx context.Context, mediaList []model.Media) error {
	s := o.Settings

	logger.Debug("scanning local files")
	pending := lo.Filter(mediaList, func(m model.Media, _ int) bool {
		return !o.IsValid(m)
	})

	for i, m := range pending {
		if o.Space != nil && s.EvictionEnabled() {
			result, err := o.Space.Ensure(s.MediaDir, space.Reference{
				Name:      m.Name,
				Size:      m.Size,
				Published: m.Published,
			})
			if err != nil {
				return err
			}
			switch result {
			case space.Skip:
				logger.Infof("low disk space and missing metadata, skipping: %s", m.Name)
				continue
			case space.Halt:
				logger.Debug("disk limit reached, all media up to date")
				return nil
			case space.Proceed:
			}
		}

		logger.Debugf("[%d/%d] %s", i+1, len(pending), m.Name)
		if err := o.SyncOne(ctx, m); err != nil {
			logger.Warnf("sync failed: %s: %v", m.Filename, err)
		}
	}

	return nil
}

func (o *Orchestrator) transferOpts(resume bool) download.Options {
	return download.Options{
		Resume:        resume,
		RateLimitMBps: o.Settings.RateLimitMBps,
		Progress:      o.Progress,
	}
}

// notify runs a hook and logs a failure without propagating it.
func (o *Orchestrator) notify(hookType hooks.HookType, ctx hooks.HookContext) {
	if err := o.Hooks.Execute(hookType, ctx); err != nil {
		logger.Warnf("%s hook: %v", hookType, err)
	}
}
