package sync

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mholt/archives"

	"github.com/okrause/mediasync/internal/logger"
	"github.com/okrause/mediasync/pkg/errors"
	"github.com/okrause/mediasync/pkg/fsutil"
	"github.com/okrause/mediasync/pkg/model"
	"github.com/okrause/mediasync/pkg/space"
)

// importCandidate is one file to bring into the managed directory.
type importCandidate struct {
	// name is the path inside the source (directory entry name or
	// archive member path).
	name    string
	size    int64
	modTime time.Time
}

// Import copies media files from a secondary source into the managed
// directory, subject to the same eviction policy as downloads. The
// source may be a directory or an archive file. Only files whose
// counterpart is absent or differs in size are copied, newest first;
// per-file errors are skipped, not fatal to the batch.
func (o *Orchestrator) Import(ctx context.Context, source string) error {
	info, err := os.Stat(source)
	if err != nil {
		return errors.Wrapf(err, "cannot read import source %s", source)
	}

	if info.IsDir() {
		return o.importFS(os.DirFS(source), func(c importCandidate, dest string) error {
			return fsutil.Copy(filepath.Join(source, c.name), dest)
		})
	}

	fsys, err := archives.FileSystem(ctx, source, nil)
	if err != nil {
		return errors.Wrapf(err, "cannot open archive %s", source)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer closer.Close()
	}

	return o.importFS(fsys, func(c importCandidate, dest string) error {
		return extractFile(fsys, c, dest)
	})
}

// importFS collects, orders and copies candidates from a source
// filesystem using the provided copy function.
func (o *Orchestrator) importFS(fsys fs.FS, copyFn func(importCandidate, string) error) error {
	s := o.Settings

	var candidates []importCandidate
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() || !model.IsMediaFile(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		// Just a simple size check, no checksum.
		destSize, err := fsutil.FileSize(filepath.Join(s.MediaDir, d.Name()))
		if err == nil && destSize == info.Size() {
			return nil
		}
		candidates = append(candidates, importCandidate{
			name:    path,
			size:    info.Size(),
			modTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return err
	}

	// Newest file first.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})

	for i, c := range candidates {
		if o.Space != nil && s.EvictionEnabled() {
			result, err := o.Space.Ensure(s.MediaDir, space.Reference{
				Name:      filepath.Base(c.name),
				Size:      c.size,
				Published: c.modTime,
			})
			if err != nil {
				return err
			}
			switch result {
			case space.Skip:
				continue
			case space.Halt:
				logger.Debug("disk limit reached, remaining files are older")
				return nil
			case space.Proceed:
			}
		}

		logger.Debugf("copying [%d/%d]: %s", i+1, len(candidates), filepath.Base(c.name))
		dest := filepath.Join(s.MediaDir, filepath.Base(c.name))
		if err := copyFn(c, dest); err != nil {
			logger.Warnf("import failed: %s: %v", c.name, err)
		}
	}

	return nil
}

// extractFile copies one archive member to dest, preserving its
// modification time.
func extractFile(fsys fs.FS, c importCandidate, dest string) error {
	src, err := fsys.Open(c.name)
	if err != nil {
		return errors.Wrapf(err, "failed to open archive member %s", c.name)
	}
	defer src.Close()

	dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", dest)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Wrapf(err, "failed to extract %s", c.name)
	}
	if err := dst.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", dest)
	}

	return fsutil.SetModTime(dest, c.modTime)
}
