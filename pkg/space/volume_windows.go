//go:build windows

package space

import (
	"golang.org/x/sys/windows"

	"github.com/okrause/mediasync/pkg/errors"
)

// Free returns the bytes available to the current user on the volume
// holding path.
func (OSVolume) Free(path string) (int64, error) {
	dir, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid path %s", path)
	}
	var freeToCaller, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(dir, &freeToCaller, &total, &free); err != nil {
		return 0, errors.Wrapf(err, "failed to get filesystem statistics for %s", path)
	}
	return int64(freeToCaller), nil //nolint:gosec // system-provided disk stats
}
