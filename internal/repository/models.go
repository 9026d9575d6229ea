package repository

import (
	"encoding/json"
	"time"

	"github.com/heapscope/pkg/model"
)

// RunRecord is the domain view of one stored analysis run.
type RunRecord struct {
	RunUUID    string                 `json:"run_uuid"`
	SnapshotID string                 `json:"snapshot_id"`
	ResultType model.ResultType       `json:"result_type"`
	Summary    map[string]interface{} `json:"summary"`
	DurationMS int64                  `json:"duration_ms"`
	CreatedAt  time.Time              `json:"created_at"`
}

// analysisRun is the database row for a run record. The summary is stored as
// a JSON blob so schema changes in the formatters never require a migration.
type analysisRun struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	RunUUID    string    `gorm:"column:run_uuid;size:64;uniqueIndex"`
	SnapshotID string    `gorm:"column:snapshot_id;size:255;index"`
	ResultType string    `gorm:"column:result_type;size:32"`
	Summary    string    `gorm:"column:summary;type:text"`
	DurationMS int64     `gorm:"column:duration_ms"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName returns the database table name for analysis runs.
func (analysisRun) TableName() string {
	return "heapscope_runs"
}

// newAnalysisRun builds a row from a result and its formatted summary.
func newAnalysisRun(result *model.AnalysisResult, summary map[string]interface{}) (*analysisRun, error) {
	blob, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}
	return &analysisRun{
		RunUUID:    result.RunUUID,
		SnapshotID: result.SnapshotID,
		ResultType: string(result.ResultType),
		Summary:    string(blob),
		DurationMS: result.Duration,
		CreatedAt:  result.GeneratedAt,
	}, nil
}

// toRecord converts the row to its domain view.
func (r *analysisRun) toRecord() (*RunRecord, error) {
	summary := make(map[string]interface{})
	if r.Summary != "" {
		if err := json.Unmarshal([]byte(r.Summary), &summary); err != nil {
			return nil, err
		}
	}
	return &RunRecord{
		RunUUID:    r.RunUUID,
		SnapshotID: r.SnapshotID,
		ResultType: model.ResultType(r.ResultType),
		Summary:    summary,
		DurationMS: r.DurationMS,
		CreatedAt:  r.CreatedAt,
	}, nil
}
