package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/coolbeans/rulehub/pkg/search"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	cfg := Load()

	if cfg.Program != "V5RC" {
		t.Errorf("expected default program V5RC, got %s", cfg.Program)
	}
	if cfg.LinkDomain != "https://content.rulehub.dev" {
		t.Errorf("unexpected default link domain: %s", cfg.LinkDomain)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("expected 24h cache TTL, got %s", cfg.CacheTTL)
	}
	if cfg.DataDir == "" {
		t.Error("expected non-empty default data dir")
	}
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	viper.Set("program", "VIQRC")
	viper.Set("season", "2024-2025")
	defer viper.Reset()

	cfg := Load()
	if cfg.Program != "VIQRC" {
		t.Errorf("expected overridden program VIQRC, got %s", cfg.Program)
	}
	if cfg.Season != "2024-2025" {
		t.Errorf("expected overridden season, got %s", cfg.Season)
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Config{DataDir: "/tmp/rh"}
	if got := cfg.LibraryDir(); got != filepath.Join("/tmp/rh", "library") {
		t.Errorf("unexpected library dir: %s", got)
	}
	if got := cfg.NotesDB(); got != filepath.Join("/tmp/rh", "rulehub.db") {
		t.Errorf("unexpected notes db path: %s", got)
	}
}

func TestLoadOrderingMissingFile(t *testing.T) {
	ord, err := LoadOrdering(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrdering failed: %v", err)
	}
	if len(ord.Canonical) != len(search.DefaultCanonicalOrder) {
		t.Errorf("expected default canonical order, got %v", ord.Canonical)
	}
	if len(ord.Denylist) != len(search.DefaultDenylist) {
		t.Errorf("expected default denylist, got %v", ord.Denylist)
	}
}

func TestLoadOrderingOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ordering.yaml")
	data := "canonical:\n  - Robot Rules\n  - Safety Rules\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write ordering file: %v", err)
	}

	ord, err := LoadOrdering(path)
	if err != nil {
		t.Fatalf("LoadOrdering failed: %v", err)
	}
	if len(ord.Canonical) != 2 || ord.Canonical[0] != "Robot Rules" {
		t.Errorf("expected overridden canonical order, got %v", ord.Canonical)
	}
	// Denylist not set in the file keeps the default.
	if len(ord.Denylist) != len(search.DefaultDenylist) {
		t.Errorf("expected default denylist preserved, got %v", ord.Denylist)
	}
}

func TestLoadOrderingBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ordering.yaml")
	if err := os.WriteFile(path, []byte("canonical: [unclosed"), 0644); err != nil {
		t.Fatalf("write ordering file: %v", err)
	}
	if _, err := LoadOrdering(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
