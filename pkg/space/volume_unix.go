//go:build !windows

package space

import (
	"golang.org/x/sys/unix"

	"github.com/okrause/mediasync/pkg/errors"
)

// Free returns the bytes available to the current user on the volume
// holding path.
func (OSVolume) Free(path string) (int64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, errors.Wrapf(err, "failed to get filesystem statistics for %s", path)
	}
	// Bavail is what non-privileged users can actually use.
	return int64(stat.Bavail) * int64(stat.Bsize), nil //nolint:gosec // system-provided disk stats
}
