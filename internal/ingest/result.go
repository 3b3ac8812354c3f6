// Package ingest loads match documents into the relational store. Each
// document commits in its own transaction; a failing document is recorded and
// the batch continues.
package ingest

import "fmt"

// Result tracks counts, warnings and errors from an ingestion run.
type Result struct {
	RunID              string   `json:"run_id"`
	DocumentsProcessed int      `json:"documents_processed"`
	DocumentsFailed    int      `json:"documents_failed"`
	PlayersInserted    int      `json:"players_inserted"`
	BattingRows        int      `json:"batting_rows"`
	BowlingRows        int      `json:"bowling_rows"`
	MatchesInserted    int      `json:"matches_inserted"`
	DuplicatesSkipped  int      `json:"duplicates_skipped"`
	Warnings           []string `json:"warnings,omitempty"`
	Errors             []string `json:"errors,omitempty"`
}

// Add merges another Result into this one. RunID is kept.
func (r *Result) Add(other Result) {
	r.DocumentsProcessed += other.DocumentsProcessed
	r.DocumentsFailed += other.DocumentsFailed
	r.PlayersInserted += other.PlayersInserted
	r.BattingRows += other.BattingRows
	r.BowlingRows += other.BowlingRows
	r.MatchesInserted += other.MatchesInserted
	r.DuplicatesSkipped += other.DuplicatesSkipped
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddWarningf records a formatted warning message.
func (r *Result) AddWarningf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"documents=%d failed=%d players=%d batting=%d bowling=%d matches=%d duplicates=%d warnings=%d errors=%d",
		r.DocumentsProcessed, r.DocumentsFailed, r.PlayersInserted,
		r.BattingRows, r.BowlingRows, r.MatchesInserted,
		r.DuplicatesSkipped, len(r.Warnings), len(r.Errors),
	)
}
