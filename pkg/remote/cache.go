// Package remote fetches game-manual documents and rulebook PDFs over
// HTTP, with a persistent TTL disk cache so repeated loads of the same
// season's manual avoid the network.
package remote

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FetchResult is the outcome of one successful HTTP fetch.
type FetchResult struct {
	URL       string    `json:"url"`
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
}

// DiskCache provides persistent, file-based caching for fetch results.
// Each entry is stored as a JSON file keyed by a SHA-256 hash of the URL.
type DiskCache struct {
	cacheDir string
	cacheTTL time.Duration
}

// diskCacheEntry wraps a FetchResult with an expiration timestamp.
type diskCacheEntry struct {
	Result    FetchResult `json:"result"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// NewDiskCache creates a disk cache in the given directory with the
// specified TTL, creating the directory if needed.
func NewDiskCache(cacheDir string, cacheTTL time.Duration) (*DiskCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", cacheDir, err)
	}
	return &DiskCache{cacheDir: cacheDir, cacheTTL: cacheTTL}, nil
}

// Get retrieves the cached result for a URL. Returns false when the entry
// is absent or expired; expired entries are removed on read.
func (cache *DiskCache) Get(url string) (FetchResult, bool) {
	data, err := os.ReadFile(cache.pathFor(url))
	if err != nil {
		return FetchResult{}, false
	}

	var entry diskCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return FetchResult{}, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(cache.pathFor(url))
		return FetchResult{}, false
	}
	return entry.Result, true
}

// Set stores a fetch result for a URL.
func (cache *DiskCache) Set(url string, result FetchResult) error {
	entry := diskCacheEntry{
		Result:    result,
		ExpiresAt: time.Now().Add(cache.cacheTTL),
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	path := cache.pathFor(url)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache file %s: %w", path, err)
	}
	return nil
}

// keyFor returns the SHA-256 hash of the URL, used as the cache filename.
func (cache *DiskCache) keyFor(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}

// pathFor returns the full file path for a cached URL.
func (cache *DiskCache) pathFor(url string) string {
	return filepath.Join(cache.cacheDir, cache.keyFor(url)+".json")
}
