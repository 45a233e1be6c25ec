// Package model defines the media descriptor consumed by the sync and
// import paths, and the naming rules shared between them.
package model

import (
	"path/filepath"
	"strings"
	"time"
)

// StagingSuffix is appended to a media filename while the file is being
// downloaded. A staging file present at rest means a previous run was
// interrupted mid-transfer and the download can be resumed.
const StagingSuffix = ".part"

// Media describes one remote file to sync. It is produced by the catalog
// and immutable for the duration of a sync pass.
type Media struct {
	// URL is the remote location of the file.
	URL string

	// Filename is the canonical local name of the file.
	Filename string

	// Name is the human readable display name.
	Name string

	// Size is the expected size in bytes. Zero means unknown.
	Size int64

	// Checksum is the expected hex MD5 digest. Empty means unknown.
	Checksum string

	// Published is the publish date. It doubles as the eviction age
	// reference and as the mtime stamped on the final file. The zero
	// value means unknown.
	Published time.Time

	// Subtitles maps a catalog language tag to a caption file URL.
	Subtitles map[string]string
}

// StagingName returns the staging variant of a media filename.
func StagingName(filename string) string {
	return filename + StagingSuffix
}

// Stem returns the filename without its extension, used to derive
// subtitle filenames.
func Stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// IsMediaFile reports whether name looks like a managed media file.
// Staging files are not media files.
func IsMediaFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4", ".m4v":
		return true
	default:
		return false
	}
}
