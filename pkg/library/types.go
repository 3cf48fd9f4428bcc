package library

import (
	"time"

	"github.com/coolbeans/rulehub/pkg/manual"
)

// ManualStatus represents the state of a manual in the library.
type ManualStatus string

const (
	// StatusReady indicates the manual is stored and available.
	StatusReady ManualStatus = "ready"

	// StatusFailed indicates the last add attempt failed.
	StatusFailed ManualStatus = "failed"
)

// Manifest is the top-level index of all manuals in the library.
type Manifest struct {
	Version   string         `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Manuals   []*ManualEntry `json:"manuals"`
}

// ManualEntry describes one stored game manual.
type ManualEntry struct {
	ID          string             `json:"id"`
	Program     manual.Program     `json:"program"`
	Season      string             `json:"season"`
	Title       string             `json:"title"`
	SourceURL   string             `json:"source_url,omitempty"`
	Version     string             `json:"version,omitempty"`
	Status      ManualStatus       `json:"status"`
	FetchedAt   time.Time          `json:"fetched_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	StorageHash string             `json:"storage_hash"`
	PDFFile     string             `json:"pdf_file,omitempty"`
	Stats       *manual.Statistics `json:"stats,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// AddOptions configures how a manual is added to the library.
type AddOptions struct {
	// SourceURL records where the document came from.
	SourceURL string

	// Force overwrites an existing manual with the same ID.
	Force bool
}

// Stats aggregates statistics across all manuals in the library.
type Stats struct {
	TotalManuals int            `json:"total_manuals"`
	TotalRules   int            `json:"total_rules"`
	ByProgram    map[string]int `json:"by_program"`
	ByStatus     map[string]int `json:"by_status"`
}
