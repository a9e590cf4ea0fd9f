// Package history persists population-run snapshots to a local sqlite
// database. The snapshots are operational telemetry - how long runs take,
// how many files fail - and are never read back into the semantic model.
package history

import "time"

const SchemaVersion = 1

// Run is one completed population batch.
type Run struct {
	RunID          string
	ProjectKey     string
	SchemaVersion  int
	Mode           string // "all" or "affected"
	Timestamp      time.Time
	FileCount      int
	PopulatedCount int
	ErrorCount     int
	SymbolCount    int
	EdgeCount      int
	DurationMS     int64
}
