package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/handiism/xkcd-downloader/internal/config"
	"github.com/handiism/xkcd-downloader/internal/model"
)

// StatusError is returned when the catalog answers with anything but 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// IsStatus reports whether err is a *StatusError carrying code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Client wraps HTTP operations with catalog-specific configuration.
//
// Client provides:
//   - The configured User-Agent header on every request
//   - Timeout handling
//   - Buffered JSON fetches for comic metadata
//   - Streaming file downloads with progress tracking for images
//
// Example usage:
//
//	client := NewClient(config.DefaultSettings())
//
//	// Fetch metadata
//	status, meta, err := client.GetJSON(ctx, "https://xkcd.com/614/info.0.json")
//
//	// Download image straight to disk
//	err = client.DownloadFile(ctx, imgURL, "614.png", nil)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client from settings.
//
// The client is configured with:
//   - settings.RequestTimeout as the overall request timeout
//   - settings.UserAgent() as the User-Agent header
func NewClient(settings *config.Settings) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: settings.TimeoutDuration(),
		},
		userAgent: settings.UserAgent(),
	}
}

// UserAgent returns the header value sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	// It is -1 when the server did not announce a length.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// GetJSON performs a buffered GET and decodes the body as comic metadata.
//
// A non-200 answer is not an error: the status is returned with nil
// metadata so the caller can report it and skip the comic. The error is
// only set when the request itself fails or a 200 body is not valid JSON.
//
// Example:
//
//	status, meta, err := client.GetJSON(ctx, url)
//	switch {
//	case err != nil:
//	    // network or decode failure
//	case status != http.StatusOK:
//	    // catalog refused, e.g. 404
//	}
func (c *Client) GetJSON(ctx context.Context, url string) (int, model.Metadata, error) {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s: %w", url, err)
	}

	var meta model.Metadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("decode %s: %w", url, err)
	}
	if meta == nil {
		return resp.StatusCode, nil, fmt.Errorf("decode %s: empty document", url)
	}
	return resp.StatusCode, meta, nil
}

// DownloadFile downloads a file to the specified path with optional progress callback.
//
// The content is streamed directly to disk, avoiding loading the entire
// file into memory. The destination is only created once the server has
// answered 200 OK, and it is removed again if streaming fails, so a failed
// attempt never leaves a truncated image behind.
//
// Returns a *StatusError for non-200 answers.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes)
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (err error) {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(destPath)
		}
	}()

	writer := &ProgressWriter{
		Writer:   file,
		Total:    resp.ContentLength,
		OnUpdate: onProgress,
	}

	if _, err = io.Copy(writer, resp.Body); err != nil {
		return fmt.Errorf("stream %s: %w", url, err)
	}
	return nil
}
