// Package repository stores analysis run history in a relational database.
// The analysis core never persists anything; the CLI layer writes a run
// record after results are produced so past analyses can be listed later.
package repository

import (
	"context"

	"github.com/heapscope/pkg/model"
)

// RunRepository is the interface for analysis run history operations.
type RunRepository interface {
	// SaveRun records a completed analysis run.
	SaveRun(ctx context.Context, result *model.AnalysisResult, summary map[string]interface{}) error

	// GetRunByUUID retrieves a run record by its UUID.
	GetRunByUUID(ctx context.Context, runUUID string) (*RunRecord, error)

	// ListRecentRuns returns the most recent runs, newest first.
	ListRecentRuns(ctx context.Context, limit int) ([]*RunRecord, error)

	// DeleteRunsForSnapshot removes all run records for a snapshot.
	DeleteRunsForSnapshot(ctx context.Context, snapshotID string) (int64, error)
}
