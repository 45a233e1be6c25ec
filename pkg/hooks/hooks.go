// Package hooks runs optional user-supplied Tengo scripts at
// well-defined points of a sync pass. Hook failures are reported to
// the caller but are never meant to stop a pass.
package hooks

// HookType identifies when a script runs.
type HookType string

const (
	// PostDownload runs after a media file has been accepted and
	// promoted to its final name.
	PostDownload HookType = "post_download"

	// PreEvict runs just before a stored media file is deleted to
	// free space.
	PreEvict HookType = "pre_evict"
)

// validHookTypes lists every hook type a config may reference.
var validHookTypes = map[HookType]bool{
	PostDownload: true,
	PreEvict:     true,
}

// HookContext carries the variables exposed to a script.
type HookContext struct {
	// File is the absolute path of the media file concerned.
	File string

	// Name is the display name of the media item, when known.
	Name string

	// URL is the remote source, when the hook concerns a download.
	URL string

	// Vars holds additional variables.
	Vars map[string]interface{}
}
