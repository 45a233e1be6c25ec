package sync

import (
	"context"
	"os"
	"path/filepath"

	"github.com/okrause/mediasync/internal/logger"
	"github.com/okrause/mediasync/pkg/errors"
	"github.com/okrause/mediasync/pkg/fsutil"
	"github.com/okrause/mediasync/pkg/hooks"
	"github.com/okrause/mediasync/pkg/integrity"
	"github.com/okrause/mediasync/pkg/model"
)

// IsValid reports whether the local copy of m is already correct.
// Without fix-broken mode an existing file is trusted unconditionally;
// auditing a whole media library is expensive, so it is opt-in.
func (o *Orchestrator) IsValid(m model.Media) bool {
	s := o.Settings
	path := filepath.Join(s.MediaDir, m.Filename)

	if !fsutil.FileExists(path) {
		return false
	}

	if !s.FixBroken {
		return true
	}

	if m.Size > 0 {
		size, err := fsutil.FileSize(path)
		if err != nil || size != m.Size {
			logger.Infof("size mismatch: %s", path)
			return false
		}
	}

	if s.VerifyChecksums && m.Checksum != "" {
		sum, err := integrity.FileChecksum(path)
		if err != nil || sum != m.Checksum {
			logger.Infof("checksum mismatch: %s", path)
			return false
		}
	}

	return true
}

// SyncOne downloads m into the managed directory. A staging file left
// over from an interrupted run is resumed and strictly validated; a
// fresh download is accepted once it is non-empty, with mismatches
// only logged.
func (o *Orchestrator) SyncOne(ctx context.Context, m model.Media) error {
	s := o.Settings
	final := filepath.Join(s.MediaDir, m.Filename)
	staging := filepath.Join(s.MediaDir, model.StagingName(m.Filename))

	if fsutil.FileExists(staging) {
		return o.resumeStaged(ctx, m, staging, final)
	}

	logger.Debugf("downloading: %s (%s)", m.Filename, m.Name)
	if err := o.Transfer.Transfer(ctx, m.URL, staging, o.transferOpts(false)); err != nil {
		return err
	}

	size, err := fsutil.FileSize(staging)
	if err != nil {
		return errors.Wrapf(err, "download failed: %s", m.Filename)
	}
	if size == 0 {
		_ = os.Remove(staging)
		return errors.Wrapf(errors.ErrEmptyDownload, "%s", m.Filename)
	}

	if err := o.promote(m, staging, final); err != nil {
		return err
	}

	// Audit for diagnostics only. The file has already been accepted
	// as the best available copy; deleting it here would invite an
	// endless redownload loop against a permanently bad source.
	if m.Size > 0 && size != m.Size {
		logger.Warnf("size mismatch: %s", final)
	} else if s.VerifyChecksums && m.Checksum != "" {
		if sum, err := integrity.FileChecksum(final); err == nil && sum != m.Checksum {
			logger.Warnf("checksum mismatch: %s", final)
		}
	}

	return nil
}

// resumeStaged finishes an interrupted transfer. A resumed file's
// correctness is unproven until checked, so size and checksum are
// validated strictly and the staging file is deleted on any mismatch.
func (o *Orchestrator) resumeStaged(ctx context.Context, m model.Media, staging, final string) error {
	size, err := fsutil.FileSize(staging)
	if err != nil {
		return err
	}

	if m.Size > 0 && size < m.Size {
		logger.Debugf("resuming: %s (%s)", m.Filename, m.Name)
		if err := o.Transfer.Transfer(ctx, m.URL, staging, o.transferOpts(true)); err != nil {
			return err
		}
		if size, err = fsutil.FileSize(staging); err != nil {
			return err
		}
	}

	if m.Size > 0 && size != m.Size {
		logger.Infof("size mismatch, deleting: %s", staging)
		_ = os.Remove(staging)
		return errors.Wrapf(errors.ErrSizeMismatch, "%s", staging)
	}

	if m.Checksum != "" {
		sum, err := integrity.FileChecksum(staging)
		if err != nil {
			return err
		}
		if sum != m.Checksum {
			logger.Infof("checksum mismatch, deleting: %s", staging)
			_ = os.Remove(staging)
			return errors.Wrapf(errors.ErrChecksumMismatch, "%s", staging)
		}
	}

	return o.promote(m, staging, final)
}

// promote stamps the publish date as mtime and atomically renames the
// staging file to its final name. The publish date, not download time,
// is what later orders files by age during eviction.
func (o *Orchestrator) promote(m model.Media, staging, final string) error {
	if !m.Published.IsZero() {
		if err := fsutil.SetModTime(staging, m.Published); err != nil {
			return errors.Wrapf(err, "failed to stamp publish date on %s", staging)
		}
	}
	if err := os.Rename(staging, final); err != nil {
		return errors.Wrapf(err, "failed to promote %s", staging)
	}

	o.notify(hooks.PostDownload, hooks.HookContext{File: final, Name: m.Name, URL: m.URL})
	return nil
}
