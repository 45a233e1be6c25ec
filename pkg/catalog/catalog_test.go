package catalog

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okrause/mediasync/internal/logger"
	"github.com/okrause/mediasync/pkg/errors"
)

const sampleManifest = `{
	"schema": "1.1",
	"media": [
		{
			"url": "https://cdn.example.org/files/video_072.mp4",
			"name": "Episode 72",
			"size": 1048576,
			"checksum": "5EB63BBBE01EEED093CB22BB8F5ACDC3",
			"published": "2023-04-01T00:00:00Z",
			"subtitles": {"E": "https://cdn.example.org/files/video_072_en.vtt"}
		},
		{
			"url": "https://cdn.example.org/files/video_073.mp4?x=1"
		}
	]
}`

func TestParse(t *testing.T) {
	media, err := Parse(strings.NewReader(sampleManifest))
	require.NoError(t, err)
	require.Len(t, media, 2)

	first := media[0]
	assert.Equal(t, "video_072.mp4", first.Filename, "filename derives from URL")
	assert.Equal(t, "Episode 72", first.Name)
	assert.EqualValues(t, 1048576, first.Size)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", first.Checksum, "checksum is lowercased")
	assert.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), first.Published)
	assert.Equal(t, "https://cdn.example.org/files/video_072_en.vtt", first.Subtitles["E"])

	second := media[1]
	assert.Equal(t, "video_073.mp4", second.Filename, "query parameters are dropped")
	assert.Equal(t, "video_073", second.Name, "display name falls back to the stem")
	assert.True(t, second.Published.IsZero())
}

func TestParseInvalidPublishDate(t *testing.T) {
	var logs bytes.Buffer
	logger.SetTestOutput(&logs)
	t.Cleanup(logger.UnsetTestOutput)
	logger.InitLogger(0)

	media, err := Parse(strings.NewReader(`{
		"schema": "1.0",
		"media": [{"url": "https://x/a.mp4", "published": "yesterday-ish"}]
	}`))
	require.NoError(t, err)
	require.Len(t, media, 1)

	assert.True(t, media[0].Published.IsZero(), "bad dates degrade to unknown")
	assert.Contains(t, logs.String(), "invalid publish date")
	assert.Contains(t, logs.String(), "a.mp4")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"not json", "nope", errors.ErrCatalogParse},
		{"missing schema", `{"media": []}`, errors.ErrCatalogSchema},
		{"schema too new", `{"schema": "2.0", "media": []}`, errors.ErrCatalogSchema},
		{"schema garbage", `{"schema": "latest", "media": []}`, errors.ErrCatalogSchema},
		{"entry without url", `{"schema": "1.0", "media": [{"name": "x"}]}`, errors.ErrCatalogParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.payload))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o644))

	media, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, media, 2)
}

func TestLoadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(sampleManifest))
	}))
	defer server.Close()

	media, err := Load(context.Background(), server.URL+"/catalog.json", 5*time.Second)
	require.NoError(t, err)
	assert.Len(t, media, 2)
}

func TestLoadURLBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Load(context.Background(), server.URL, 5*time.Second)
	assert.ErrorContains(t, err, "unexpected status code")
}
