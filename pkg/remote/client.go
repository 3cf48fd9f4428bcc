package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/coolbeans/rulehub/pkg/manual"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultCacheTTL is the default time-to-live for cached documents.
const DefaultCacheTTL = 24 * time.Hour

const userAgent = "rulehub/0.1"

// Client fetches manual documents and rulebook PDFs. A nil cache disables
// caching; PDFs always bypass the cache and stream straight to disk.
type Client struct {
	httpClient *http.Client
	cache      *DiskCache
}

// NewClient creates a client with the given request timeout and optional
// disk cache. A zero timeout selects DefaultTimeout.
func NewClient(timeout time.Duration, cache *DiskCache) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
	}
}

// Fetch retrieves a URL, serving from the cache when a fresh entry exists.
func (c *Client) Fetch(ctx context.Context, url string) (FetchResult, error) {
	if c.cache != nil {
		if result, ok := c.cache.Get(url); ok {
			return result, nil
		}
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return FetchResult{}, err
	}

	result := FetchResult{URL: url, Body: body, FetchedAt: time.Now().UTC()}
	if c.cache != nil {
		// Cache write failures are not fatal; the fetch already succeeded.
		_ = c.cache.Set(url, result)
	}
	return result, nil
}

// FetchManual fetches and decodes a game-manual document. The raw bytes
// are returned alongside the decoded manual so callers can store the
// source verbatim.
func (c *Client) FetchManual(ctx context.Context, url string) (*manual.GameManual, []byte, error) {
	result, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	m, err := manual.Load(bytes.NewReader(result.Body))
	if err != nil {
		return nil, nil, fmt.Errorf("manual document at %s: %w", url, err)
	}
	return m, result.Body, nil
}

// Download streams a URL (typically a rulebook PDF) to dest, writing via a
// temporary file so a failed download never leaves a truncated file.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("moving download into place: %w", err)
	}
	return nil
}

// get performs a plain GET and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	return body, nil
}
