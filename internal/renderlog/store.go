// Package renderlog records every icon file the tool writes, so render
// history can be listed, summarized, and served by the dashboard.
package renderlog

import (
	"time"

	"github.com/MS8080/iconforge/internal/export"
)

// Entry is one recorded icon file write.
type Entry struct {
	Time     time.Time
	RunID    string
	Style    string
	Size     int
	File     string
	Bytes    int
	Duration time.Duration
}

// RunSummary condenses one render run: every file written by a single
// command invocation shares a run ID.
type RunSummary struct {
	RunID    string
	Style    string
	Start    time.Time
	Files    int
	Bytes    int64
	Duration time.Duration
}

// Store abstracts render history storage.
type Store interface {
	// Write
	LogRender(runID string, r export.Result) error
	LogRun(run export.Run) error

	// Read
	Entries(days int) ([]Entry, error)              // newest last, 0 = all
	EntriesSince(cutoff time.Time) ([]Entry, error) // entries at or after cutoff
	Runs(days int) ([]RunSummary, error)            // newest first, 0 = all

	// Maintenance
	Clean(days int) (int, error) // remove old entries, return removed count
	Clear() error                // delete all data

	// Metadata
	Path() string
}
