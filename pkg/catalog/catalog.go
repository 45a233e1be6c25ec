// Package catalog loads the media manifest that drives a sync pass. The
// manifest is a JSON document served next to the media files (or kept
// locally) listing every file with its expected size, checksum, publish
// date and caption URLs.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"
	"github.com/okrause/mediasync/internal/logger"
	"github.com/okrause/mediasync/pkg/errors"
	"github.com/okrause/mediasync/pkg/model"
)

// SchemaConstraint is the range of manifest schema versions this build
// understands.
const SchemaConstraint = ">= 1.0, < 2.0"

const userAgent = "mediasync/1.0"

type manifest struct {
	Schema string  `json:"schema"`
	Media  []entry `json:"media"`
}

type entry struct {
	URL       string            `json:"url"`
	Filename  string            `json:"filename,omitempty"`
	Name      string            `json:"name,omitempty"`
	Size      int64             `json:"size,omitempty"`
	Checksum  string            `json:"checksum,omitempty"`
	Published string            `json:"published,omitempty"`
	Subtitles map[string]string `json:"subtitles,omitempty"`
}

// Load reads a manifest from a local path or an HTTP(S) URL.
func Load(ctx context.Context, source string, timeout time.Duration) ([]model.Media, error) {
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return loadURL(ctx, source, timeout)
	}
	return LoadFile(source)
}

// LoadFile reads a manifest from a local file.
func LoadFile(path string) ([]model.Media, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog %s", path)
	}
	defer file.Close()

	return Parse(file)
}

func loadURL(ctx context.Context, rawURL string, timeout time.Duration) ([]model.Media, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to download catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return Parse(resp.Body)
}

// Parse decodes a manifest and converts it into media descriptors.
func Parse(r io.Reader) ([]model.Media, error) {
	var m manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCatalogParse, err.Error())
	}

	if err := checkSchema(m.Schema); err != nil {
		return nil, err
	}

	media := make([]model.Media, 0, len(m.Media))
	for i, e := range m.Media {
		if e.URL == "" {
			return nil, errors.Wrapf(errors.ErrCatalogParse, "media entry %d has no url", i)
		}

		filename := e.Filename
		if filename == "" {
			filename = urlBasename(e.URL)
		}
		if filename == "" {
			return nil, errors.Wrapf(errors.ErrCatalogParse, "media entry %d has no usable filename", i)
		}

		name := e.Name
		if name == "" {
			name = model.Stem(filename)
		}

		var published time.Time
		if e.Published != "" {
			var parseErr error
			published, parseErr = time.Parse(time.RFC3339, e.Published)
			if parseErr != nil {
				// The item stays usable, but without an age it cannot
				// take part in eviction decisions.
				logger.Warnf("ignoring invalid publish date for %s: %q", filename, e.Published)
				published = time.Time{}
			}
		}

		media = append(media, model.Media{
			URL:       e.URL,
			Filename:  filename,
			Name:      name,
			Size:      e.Size,
			Checksum:  strings.ToLower(e.Checksum),
			Published: published,
			Subtitles: e.Subtitles,
		})
	}

	return media, nil
}

func checkSchema(schema string) error {
	if schema == "" {
		return errors.Wrap(errors.ErrCatalogSchema, "manifest has no schema version")
	}
	v, err := goversion.NewVersion(schema)
	if err != nil {
		return errors.Wrapf(errors.ErrCatalogSchema, "%q", schema)
	}
	constraint, err := goversion.NewConstraint(SchemaConstraint)
	if err != nil {
		return errors.Wrap(err, "invalid schema constraint")
	}
	if !constraint.Check(v) {
		return errors.Wrapf(errors.ErrCatalogSchema, "%s (supported: %s)", schema, SchemaConstraint)
	}
	return nil
}

// urlBasename returns the last path element of a URL, without query
// parameters.
func urlBasename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
