package sync

import (
	"context"
	"net/url"
	"path"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/okrause/mediasync/internal/logger"
	"github.com/okrause/mediasync/pkg/download"
	"github.com/okrause/mediasync/pkg/fsutil"
	"github.com/okrause/mediasync/pkg/model"
)

type subtitleJob struct {
	url  string
	dest string
	name string
}

// SyncSubtitles downloads caption files for the configured languages,
// naming them after the media file plus the ISO 639 code. This pass is
// independent of the eviction and resume machinery; existing subtitle
// files are only re-fetched in fix-broken mode.
func (o *Orchestrator) SyncSubtitles(ctx context.Context, mediaList []model.Media) error {
	s := o.Settings

	var queue []subtitleJob
	for _, m := range mediaList {
		stem := model.Stem(m.Filename)
		for lang, rawURL := range m.Subtitles {
			if !lo.Contains(s.SubtitleLanguages, lang) {
				continue
			}
			iso, err := model.ISO639(lang)
			if err != nil {
				logger.Warnf("skipping subtitle for %s: %v", m.Name, err)
				continue
			}
			name := stem + "." + iso + subtitleExt(rawURL)
			dest := filepath.Join(s.MediaDir, name)
			if s.FixBroken || !fsutil.FileExists(dest) {
				queue = append(queue, subtitleJob{url: rawURL, dest: dest, name: m.Name})
			}
		}
	}

	for i, job := range queue {
		logger.Debugf("[%d/%d] downloading: %s (%s)", i+1, len(queue), filepath.Base(job.dest), job.name)
		if err := o.Transfer.Transfer(ctx, job.url, job.dest, download.Options{}); err != nil {
			logger.Warnf("subtitle download failed: %s: %v", filepath.Base(job.dest), err)
		}
	}

	return nil
}

// subtitleExt returns the extension of the caption file referenced by
// rawURL.
func subtitleExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".vtt"
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return ".vtt"
}
