// Package download implements the throttled, resumable HTTP transfer
// engine. A transfer always writes into a caller-chosen destination
// (normally a staging file); promotion to the final name is the
// caller's job.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/okrause/mediasync/pkg/errors"
	"github.com/okrause/mediasync/pkg/fsutil"
)

// DefaultChunkSize bounds how much data is lost if a transfer is
// aborted. With a rate limit set, the chunk size is the per-second
// byte budget instead.
const DefaultChunkSize = 1024 * 1024

const userAgent = "mediasync/1.0"

// Options control a single transfer.
type Options struct {
	// Resume appends to the destination starting at its current size
	// instead of truncating it.
	Resume bool

	// RateLimitMBps throttles the transfer, in MB per second. Zero
	// means unlimited.
	RateLimitMBps float64

	// Progress receives the updating progress bar. Nil disables it.
	// Callers should only pass a terminal here.
	Progress io.Writer
}

// Client performs HTTP(S) transfers.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a transfer client. No overall request timeout is
// set: media transfers are expected to run for a long time, and
// cancellation goes through the context.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

// NewClientWithHTTPClient creates a transfer client around a custom
// HTTP client.
func NewClientWithHTTPClient(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

// Transfer downloads rawURL into dest. When resuming, the request asks
// the server to skip the bytes already on disk. The response is read
// in chunks; with a rate limit configured each chunk has a one-second
// budget and the remainder of that budget is slept off.
func (c *Client) Transfer(ctx context.Context, rawURL, dest string, opts Options) error {
	flags := os.O_CREATE | os.O_WRONLY
	var done int64
	if opts.Resume {
		if size, err := fsutil.FileSize(dest); err == nil {
			done = size
		}
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	chunkSize := DefaultChunkSize
	if opts.RateLimitMBps > 0 {
		chunkSize = int(opts.RateLimitMBps * 1024 * 1024)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	// Ask the server to skip the first N bytes.
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-", done))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusPartialContent:
	default:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var bar *progressBar
	if opts.Progress != nil && resp.ContentLength > 0 {
		bar = newProgressBar(opts.Progress, resp.ContentLength+done)
	}

	file, err := os.OpenFile(dest, flags, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", dest, err)
	}

	buf := make([]byte, chunkSize)
	var received int64
	for {
		bar.Draw(done)

		started := time.Now()
		n, readErr := io.ReadFull(resp.Body, buf)
		if n > 0 {
			if _, err := file.Write(buf[:n]); err != nil {
				file.Close()
				return fmt.Errorf("failed to write %s: %w", dest, err)
			}
			done += int64(n)
			received += int64(n)
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			// A short final chunk also reads as ErrUnexpectedEOF, so
			// the byte count against Content-Length is what tells a
			// finished body from a dropped connection. The partial
			// file is kept for a later resume.
			if resp.ContentLength >= 0 && received < resp.ContentLength {
				file.Close()
				return errors.Wrapf(errors.ErrTruncatedDownload,
					"%s: got %d of %d bytes", dest, received, resp.ContentLength)
			}
			bar.Finish(done)
			break
		}
		if readErr != nil {
			file.Close()
			return fmt.Errorf("read failed: %w", readErr)
		}

		if opts.RateLimitMBps > 0 {
			time.Sleep(Pace(time.Since(started), time.Second))
		}
	}

	return file.Close()
}

// Pace returns how long to wait after processing a chunk so that the
// chunk ends up taking the full budget. It never returns a negative
// duration.
func Pace(elapsed, budget time.Duration) time.Duration {
	if wait := budget - elapsed; wait > 0 {
		return wait
	}
	return 0
}
