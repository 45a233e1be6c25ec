// Package testutil provides helpers for transfer tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// FileServer serves named blobs over HTTP with enough Range support to
// exercise resumed transfers (open-ended "bytes=N-" ranges only).
type FileServer struct {
	*httptest.Server

	mu    sync.Mutex
	files map[string][]byte
}

// NewFileServer starts a FileServer that shuts down with the test.
func NewFileServer(t *testing.T) *FileServer {
	t.Helper()

	fs := &FileServer{files: make(map[string][]byte)}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.Close)
	return fs
}

// Add registers a blob under the given name.
func (fs *FileServer) Add(name string, content []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[name] = content
}

// FileURL returns the URL the blob is served under.
func (fs *FileServer) FileURL(name string) string {
	return fs.Server.URL + "/" + name
}

func (fs *FileServer) handle(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	content, ok := fs.files[strings.TrimPrefix(r.URL.Path, "/")]
	fs.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	offset := 0
	if rangeHdr := r.Header.Get("Range"); rangeHdr != "" {
		spec := strings.TrimPrefix(rangeHdr, "bytes=")
		spec = strings.TrimSuffix(spec, "-")
		n, err := strconv.Atoi(spec)
		if err != nil || n < 0 || n > len(content) {
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
			return
		}
		offset = n
	}

	rest := content[offset:]
	w.Header().Set("Content-Length", strconv.Itoa(len(rest)))
	if offset > 0 {
		w.Header().Set("Content-Range",
			"bytes "+strconv.Itoa(offset)+"-"+strconv.Itoa(len(content)-1)+"/"+strconv.Itoa(len(content)))
		w.WriteHeader(http.StatusPartialContent)
	}
	w.Write(rest) //nolint:errcheck
}
