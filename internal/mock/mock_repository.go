package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/heapscope/internal/repository"
	"github.com/heapscope/pkg/model"
)

// MockRunRepository is a mock implementation of repository.RunRepository.
type MockRunRepository struct {
	mock.Mock
}

// SaveRun mocks the SaveRun method.
func (m *MockRunRepository) SaveRun(ctx context.Context, result *model.AnalysisResult, summary map[string]interface{}) error {
	args := m.Called(ctx, result, summary)
	return args.Error(0)
}

// GetRunByUUID mocks the GetRunByUUID method.
func (m *MockRunRepository) GetRunByUUID(ctx context.Context, runUUID string) (*repository.RunRecord, error) {
	args := m.Called(ctx, runUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RunRecord), args.Error(1)
}

// ListRecentRuns mocks the ListRecentRuns method.
func (m *MockRunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*repository.RunRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.RunRecord), args.Error(1)
}

// DeleteRunsForSnapshot mocks the DeleteRunsForSnapshot method.
func (m *MockRunRepository) DeleteRunsForSnapshot(ctx context.Context, snapshotID string) (int64, error) {
	args := m.Called(ctx, snapshotID)
	return args.Get(0).(int64), args.Error(1)
}
