package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/heapscope/pkg/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&analysisRun{}))
	return db
}

func testResult(runUUID, snapshotID string, resultType model.ResultType) *model.AnalysisResult {
	return &model.AnalysisResult{
		RunUUID:     runUUID,
		SnapshotID:  snapshotID,
		ResultType:  resultType,
		GeneratedAt: time.Now(),
		Duration:    42,
	}
}

func TestGormRunRepository_SaveAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRunRepository(db)
	ctx := context.Background()

	summary := map[string]interface{}{"findings_count": 2}
	require.NoError(t, repo.SaveRun(ctx, testResult("run-1", "snap-a", model.ResultGlobalScope), summary))

	record, err := repo.GetRunByUUID(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "snap-a", record.SnapshotID)
	assert.Equal(t, model.ResultGlobalScope, record.ResultType)
	assert.Equal(t, int64(42), record.DurationMS)
	// JSON round-trips numbers as float64.
	assert.Equal(t, float64(2), record.Summary["findings_count"])
}

func TestGormRunRepository_SaveRun_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRunRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveRun(ctx, testResult("run-1", "snap-a", model.ResultExplore), nil))
	require.NoError(t, repo.SaveRun(ctx, testResult("run-1", "snap-b", model.ResultExplore), nil))

	record, err := repo.GetRunByUUID(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "snap-b", record.SnapshotID)

	var count int64
	require.NoError(t, db.Model(&analysisRun{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormRunRepository_SaveRun_Invalid(t *testing.T) {
	repo := NewGormRunRepository(setupTestDB(t))

	assert.Error(t, repo.SaveRun(context.Background(), nil, nil))
	assert.Error(t, repo.SaveRun(context.Background(), &model.AnalysisResult{}, nil))
}

func TestGormRunRepository_GetRunByUUID_NotFound(t *testing.T) {
	repo := NewGormRunRepository(setupTestDB(t))

	record, err := repo.GetRunByUUID(context.Background(), "absent")
	assert.Error(t, err)
	assert.Nil(t, record)
	assert.Contains(t, err.Error(), "run not found")
}

func TestGormRunRepository_ListRecentRuns(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRunRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, uuid := range []string{"run-1", "run-2", "run-3"} {
		result := testResult(uuid, "snap-a", model.ResultExplore)
		result.GeneratedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.SaveRun(ctx, result, nil))
	}

	records, err := repo.ListRecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-3", records[0].RunUUID)
	assert.Equal(t, "run-2", records[1].RunUUID)
}

func TestGormRunRepository_DeleteRunsForSnapshot(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRunRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveRun(ctx, testResult("run-1", "snap-a", model.ResultExplore), nil))
	require.NoError(t, repo.SaveRun(ctx, testResult("run-2", "snap-a", model.ResultTrace), nil))
	require.NoError(t, repo.SaveRun(ctx, testResult("run-3", "snap-b", model.ResultExplore), nil))

	deleted, err := repo.DeleteRunsForSnapshot(ctx, "snap-a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	records, err := repo.ListRecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "run-3", records[0].RunUUID)
}

// setupMockDB opens a GORM connection over a mocked MySQL driver so tests can
// assert the SQL issued against a server backend.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormRunRepository_ListRecentRuns_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormRunRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "run_uuid", "snapshot_id", "result_type", "summary", "duration_ms", "created_at",
	}).AddRow(uint(1), "run-1", "snap-a", "explore", `{"root":"window"}`, int64(10), time.Now())

	mock.ExpectQuery("SELECT \\* FROM `heapscope_runs`").WillReturnRows(rows)

	records, err := repo.ListRecentRuns(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "run-1", records[0].RunUUID)
	assert.Equal(t, "window", records[0].Summary["root"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRunRepository_DeleteRunsForSnapshot_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormRunRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `heapscope_runs`").
		WithArgs("snap-a").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	deleted, err := repo.DeleteRunsForSnapshot(context.Background(), "snap-a")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
