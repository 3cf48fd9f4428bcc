package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDiskCache_RoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}

	result := FetchResult{URL: "https://example.org/manual.json", Body: []byte("doc"), FetchedAt: time.Now().UTC()}
	if err := cache.Set(result.URL, result); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := cache.Get(result.URL)
	if !ok {
		t.Fatal("Get returned miss for fresh entry")
	}
	if string(got.Body) != "doc" {
		t.Errorf("Body = %q", got.Body)
	}

	if _, ok := cache.Get("https://example.org/other"); ok {
		t.Error("Get returned hit for unknown URL")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir(), -time.Second)
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	url := "https://example.org/manual.json"
	if err := cache.Set(url, FetchResult{URL: url, Body: []byte("stale")}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := cache.Get(url); ok {
		t.Error("expired entry must miss")
	}
	// The stale file is removed on read.
	if _, err := os.Stat(cache.pathFor(url)); !os.IsNotExist(err) {
		t.Error("expired cache file should be removed")
	}
}

func TestClient_FetchManual(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"program":"V5RC","season":"2025-2026","title":"T","groups":[]}`))
	}))
	defer server.Close()

	cache, err := NewDiskCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	client := NewClient(0, cache)

	m, raw, err := client.FetchManual(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchManual: %v", err)
	}
	if m.Season != "2025-2026" || len(raw) == 0 {
		t.Errorf("manual = %+v", m)
	}

	// Second fetch is served from cache.
	if _, _, err := client.FetchManual(context.Background(), server.URL); err != nil {
		t.Fatalf("FetchManual (cached): %v", err)
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
}

func TestClient_FetchManual_BadDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"season":"x"}`))
	}))
	defer server.Close()

	client := NewClient(0, nil)
	if _, _, err := client.FetchManual(context.Background(), server.URL); err == nil {
		t.Error("FetchManual should fail on an invalid document")
	}
}

func TestClient_FetchStatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := NewClient(0, nil)
	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Error("Fetch should fail on a non-200 status")
	}
}

func TestClient_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "manuals", "rulebook.pdf")
	client := NewClient(0, nil)
	if err := client.Download(context.Background(), server.URL, dest); err != nil {
		t.Fatalf("Download: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if string(data) != "%PDF-1.7 fake" {
		t.Errorf("downloaded = %q", data)
	}
}
