package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/heapscope/pkg/errors"

	"github.com/heapscope/pkg/model"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// SaveRun records a completed analysis run. Re-saving the same run UUID
// overwrites the previous record.
func (r *GormRunRepository) SaveRun(ctx context.Context, result *model.AnalysisResult, summary map[string]interface{}) error {
	if result == nil || result.RunUUID == "" {
		return apperrors.New(apperrors.CodeInvalidInput, "result with run UUID is required")
	}

	row, err := newAnalysisRun(result, summary)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to encode run summary", err)
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "run_uuid"}},
			UpdateAll: true,
		}).
		Create(row).Error
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDatabaseError, "failed to save run", err)
	}
	return nil
}

// GetRunByUUID retrieves a run record by its UUID.
func (r *GormRunRepository) GetRunByUUID(ctx context.Context, runUUID string) (*RunRecord, error) {
	var row analysisRun

	err := r.db.WithContext(ctx).Where("run_uuid = ?", runUUID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeDatabaseError,
				fmt.Sprintf("run not found: %s", runUUID))
		}
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to get run", err)
	}

	return row.toRecord()
}

// ListRecentRuns returns the most recent runs, newest first.
func (r *GormRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []analysisRun
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to list runs", err)
	}

	records := make([]*RunRecord, 0, len(rows))
	for i := range rows {
		record, err := rows[i].toRecord()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to decode run summary", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// DeleteRunsForSnapshot removes all run records for a snapshot.
func (r *GormRunRepository) DeleteRunsForSnapshot(ctx context.Context, snapshotID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("snapshot_id = ?", snapshotID).
		Delete(&analysisRun{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.CodeDatabaseError, "failed to delete runs", result.Error)
	}
	return result.RowsAffected, nil
}
