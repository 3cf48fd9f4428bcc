// Package library manages a persistent local collection of downloaded
// game manuals. Each manual's source document (and optionally its
// rulebook PDF) is stored under a content directory keyed by a hash of
// the manual ID; a JSON manifest indexes the collection.
package library

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/coolbeans/rulehub/pkg/manual"
)

const (
	manifestFileName = "library.json"
	manualsDir       = "manuals"
	documentFileName = "manual.json"
	pdfFileName      = "rulebook.pdf"
	manifestVersion  = "1.0.0"
)

// Library manages a persistent collection of game manuals.
type Library struct {
	mu       sync.RWMutex
	path     string
	manifest *Manifest
}

// Init creates a new library at the given path. An existing library at
// the path is opened instead.
func Init(libraryPath string) (*Library, error) {
	if _, err := os.Stat(filepath.Join(libraryPath, manifestFileName)); err == nil {
		return Open(libraryPath)
	}

	if err := os.MkdirAll(filepath.Join(libraryPath, manualsDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	lib := &Library{
		path: libraryPath,
		manifest: &Manifest{
			Version:   manifestVersion,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
			Manuals:   []*ManualEntry{},
		},
	}
	if err := lib.saveManifest(); err != nil {
		return nil, fmt.Errorf("saving manifest: %w", err)
	}
	return lib, nil
}

// Open loads an existing library from disk.
func Open(libraryPath string) (*Library, error) {
	data, err := os.ReadFile(filepath.Join(libraryPath, manifestFileName))
	if err != nil {
		return nil, fmt.Errorf("reading library manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing library manifest: %w", err)
	}
	return &Library{path: libraryPath, manifest: &manifest}, nil
}

// AddManual stores a manual document in the library. The raw source bytes
// are persisted verbatim so the stored document round-trips exactly.
// Adding an existing ID is idempotent unless opts.Force is set.
func (lib *Library) AddManual(m *manual.GameManual, sourceText []byte, opts AddOptions) (*ManualEntry, error) {
	lib.mu.Lock()
	defer lib.mu.Unlock()

	if m == nil {
		return nil, fmt.Errorf("manual is required")
	}
	id := m.ID()

	existing := lib.findEntry(id)
	if existing != nil && !opts.Force {
		return existing, nil
	}

	storageHash := hashManualID(id)
	if err := lib.writeManualFile(storageHash, documentFileName, sourceText); err != nil {
		entry := &ManualEntry{
			ID:          id,
			Program:     m.Program,
			Season:      m.Season,
			Title:       m.Title,
			Status:      StatusFailed,
			FetchedAt:   time.Now().UTC(),
			UpdatedAt:   time.Now().UTC(),
			StorageHash: storageHash,
			Error:       err.Error(),
		}
		lib.upsertEntry(entry)
		_ = lib.saveManifest()
		return nil, fmt.Errorf("storing manual %s: %w", id, err)
	}

	stats := m.Statistics()
	entry := &ManualEntry{
		ID:          id,
		Program:     m.Program,
		Season:      m.Season,
		Title:       m.Title,
		SourceURL:   firstNonEmpty(opts.SourceURL, m.SourceURL),
		Version:     m.Version,
		Status:      StatusReady,
		FetchedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
		StorageHash: storageHash,
		Stats:       &stats,
	}
	if existing != nil && existing.PDFFile != "" {
		entry.PDFFile = existing.PDFFile
	}
	lib.upsertEntry(entry)
	if err := lib.saveManifest(); err != nil {
		return nil, fmt.Errorf("saving manifest: %w", err)
	}
	return entry, nil
}

// AttachPDF copies a downloaded rulebook PDF into the manual's storage
// directory and records it on the entry.
func (lib *Library) AttachPDF(id, pdfPath string) error {
	lib.mu.Lock()
	defer lib.mu.Unlock()

	entry := lib.findEntry(id)
	if entry == nil {
		return fmt.Errorf("manual %s is not in the library", id)
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("reading PDF %s: %w", pdfPath, err)
	}
	if err := lib.writeManualFile(entry.StorageHash, pdfFileName, data); err != nil {
		return fmt.Errorf("storing PDF for %s: %w", id, err)
	}
	entry.PDFFile = pdfFileName
	entry.UpdatedAt = time.Now().UTC()
	return lib.saveManifest()
}

// GetManual loads a stored manual document by ID.
func (lib *Library) GetManual(id string) (*manual.GameManual, error) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	entry := lib.findEntry(id)
	if entry == nil {
		return nil, fmt.Errorf("manual %s is not in the library", id)
	}
	if entry.Status != StatusReady {
		return nil, fmt.Errorf("manual %s is not ready (status %s)", id, entry.Status)
	}
	data, err := os.ReadFile(lib.manualFilePath(entry.StorageHash, documentFileName))
	if err != nil {
		return nil, fmt.Errorf("reading stored manual %s: %w", id, err)
	}
	return manual.Load(bytes.NewReader(data))
}

// PDFPath returns the path of the stored rulebook PDF for a manual, or an
// error when none is attached.
func (lib *Library) PDFPath(id string) (string, error) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	entry := lib.findEntry(id)
	if entry == nil {
		return "", fmt.Errorf("manual %s is not in the library", id)
	}
	if entry.PDFFile == "" {
		return "", fmt.Errorf("manual %s has no stored PDF", id)
	}
	return lib.manualFilePath(entry.StorageHash, entry.PDFFile), nil
}

// DocumentPath returns the path of the stored manual document for an ID.
func (lib *Library) DocumentPath(id string) (string, error) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	entry := lib.findEntry(id)
	if entry == nil {
		return "", fmt.Errorf("manual %s is not in the library", id)
	}
	return lib.manualFilePath(entry.StorageHash, documentFileName), nil
}

// List returns all manual entries sorted by ID.
func (lib *Library) List() []*ManualEntry {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	entries := make([]*ManualEntry, len(lib.manifest.Manuals))
	copy(entries, lib.manifest.Manuals)
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Get returns the entry for a manual ID, or nil.
func (lib *Library) Get(id string) *ManualEntry {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	return lib.findEntry(id)
}

// Remove deletes a manual and its stored files from the library.
func (lib *Library) Remove(id string) error {
	lib.mu.Lock()
	defer lib.mu.Unlock()

	entry := lib.findEntry(id)
	if entry == nil {
		return fmt.Errorf("manual %s is not in the library", id)
	}
	if err := os.RemoveAll(filepath.Join(lib.path, manualsDir, entry.StorageHash)); err != nil {
		return fmt.Errorf("removing stored files for %s: %w", id, err)
	}
	kept := lib.manifest.Manuals[:0]
	for _, e := range lib.manifest.Manuals {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	lib.manifest.Manuals = kept
	return lib.saveManifest()
}

// Stats aggregates counts across the library.
func (lib *Library) Stats() Stats {
	lib.mu.RLock()
	defer lib.mu.RUnlock()

	stats := Stats{
		ByProgram: make(map[string]int),
		ByStatus:  make(map[string]int),
	}
	for _, entry := range lib.manifest.Manuals {
		stats.TotalManuals++
		stats.ByProgram[string(entry.Program)]++
		stats.ByStatus[string(entry.Status)]++
		if entry.Stats != nil {
			stats.TotalRules += entry.Stats.Rules
		}
	}
	return stats
}

// findEntry returns the entry for an ID. Callers hold lib.mu.
func (lib *Library) findEntry(id string) *ManualEntry {
	for _, entry := range lib.manifest.Manuals {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}

// upsertEntry replaces or appends an entry. Callers hold lib.mu.
func (lib *Library) upsertEntry(entry *ManualEntry) {
	for i, existing := range lib.manifest.Manuals {
		if existing.ID == entry.ID {
			lib.manifest.Manuals[i] = entry
			return
		}
	}
	lib.manifest.Manuals = append(lib.manifest.Manuals, entry)
}

// saveManifest writes the manifest to disk. Callers hold lib.mu.
func (lib *Library) saveManifest() error {
	lib.manifest.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(lib.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(lib.path, manifestFileName), data, 0o644)
}

// writeManualFile writes one file under a manual's storage directory.
func (lib *Library) writeManualFile(storageHash, name string, data []byte) error {
	dir := filepath.Join(lib.path, manualsDir, storageHash)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}

// manualFilePath returns the path of one stored file for a manual.
func (lib *Library) manualFilePath(storageHash, name string) string {
	return filepath.Join(lib.path, manualsDir, storageHash, name)
}

// hashManualID returns the storage hash for a manual ID.
func hashManualID(id string) string {
	hash := sha256.Sum256([]byte(id))
	return hex.EncodeToString(hash[:8])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
