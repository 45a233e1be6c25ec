//go:generate mockgen -source=volume.go -destination=mocks/volume.go -package=mocks

// Package space enforces the disk-space budget of the managed
// directory. It frees space by evicting the oldest stored media files,
// but never evicts past the point where it would delete something at
// least as new as the file it is making room for.
package space

import (
	"os"
	"path/filepath"
	"time"

	"github.com/okrause/mediasync/pkg/model"
)

// FileInfo describes one stored media file considered for eviction.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Volume abstracts the filesystem queries the evictor needs, so the
// eviction loop can be tested against an in-memory implementation.
type Volume interface {
	// Free returns the number of bytes available to the current user
	// on the volume holding path.
	Free(path string) (int64, error)

	// MediaFiles lists the final media files in dir. Staging files and
	// non-media files are excluded.
	MediaFiles(dir string) ([]FileInfo, error)

	// Remove deletes the file at path.
	Remove(path string) error
}

// OSVolume is the Volume backed by the real filesystem.
type OSVolume struct{}

// MediaFiles lists the final media files in dir.
func (OSVolume) MediaFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !model.IsMediaFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

// Remove deletes the file at path.
func (OSVolume) Remove(path string) error {
	return os.Remove(path)
}
