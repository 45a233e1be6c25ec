package space

import (
	"time"

	"github.com/samber/lo"

	"github.com/okrause/mediasync/internal/logger"
	"github.com/okrause/mediasync/pkg/errors"
)

// Result is the outcome of an eviction round.
type Result int

const (
	// Proceed means enough space is free; the caller may download the
	// reference item.
	Proceed Result = iota

	// Skip means the reference item has no usable publish date, so
	// age-based eviction cannot safely run; the caller should skip
	// just this item.
	Skip

	// Halt means the stored media is at least as new as the reference
	// item; nothing was deleted and the caller should stop the pass.
	Halt
)

// Reference carries the properties of the item that space is being
// made for. Its publish date is the age basis for eviction decisions.
type Reference struct {
	Name      string
	Size      int64
	Published time.Time
}

// Evictor frees space in a managed directory by deleting the oldest
// stored media file, one at a time, until the floor is satisfied.
type Evictor struct {
	vol      Volume
	keepFree int64

	// OnEvict, when set, is called just before each deletion.
	OnEvict func(FileInfo)
}

// NewEvictor creates an evictor that keeps at least keepFree bytes
// available on vol.
func NewEvictor(vol Volume, keepFree int64) *Evictor {
	return &Evictor{vol: vol, keepFree: keepFree}
}

// Ensure frees space in dir until ref.Size plus the floor fits. It
// deletes only files strictly older than the reference's publish date.
// A nil error with Proceed means the caller may go ahead; Skip and
// Halt are the recoverable refusals described on the Result values.
// ErrNoEvictionCandidates is returned when space is still insufficient
// and nothing is left to delete; callers treat that as fatal.
func (e *Evictor) Ensure(dir string, ref Reference) (Result, error) {
	for {
		free, err := e.vol.Free(dir)
		if err != nil {
			return Proceed, err
		}

		needed := ref.Size + e.keepFree
		if free > needed {
			return Proceed, nil
		}
		logger.Debugf("free space: %d MiB, needed: %d MiB", free/(1024*1024), needed/(1024*1024))

		// We dare not delete files if we don't know whether they are
		// older or newer than this one.
		if ref.Published.IsZero() {
			return Skip, nil
		}

		files, err := e.vol.MediaFiles(dir)
		if err != nil {
			return Proceed, err
		}
		if len(files) == 0 {
			return Proceed, errors.Wrapf(errors.ErrNoEvictionCandidates, "in %s", dir)
		}

		oldest := lo.MinBy(files, func(a, b FileInfo) bool {
			return a.ModTime.Before(b.ModTime)
		})

		// Never delete something at least as new as what we are
		// making room for.
		if !ref.Published.After(oldest.ModTime) {
			return Halt, nil
		}

		logger.Infof("removing old media: %s", oldest.Path)
		if e.OnEvict != nil {
			e.OnEvict(oldest)
		}
		if err := e.vol.Remove(oldest.Path); err != nil {
			return Proceed, err
		}
	}
}
