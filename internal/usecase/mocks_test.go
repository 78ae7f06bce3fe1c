package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

type mockRunRepo struct{ mock.Mock }

func (m *mockRunRepo) SaveReport(ctx context.Context, report *entity.AnalysisReport) error {
	return m.Called(ctx, report).Error(0)
}

func (m *mockRunRepo) GetReport(ctx context.Context, runID string) (*entity.AnalysisReport, error) {
	args := m.Called(ctx, runID)
	report, _ := args.Get(0).(*entity.AnalysisReport)
	return report, args.Error(1)
}

func (m *mockRunRepo) ListRuns(ctx context.Context, limit int) ([]*entity.AnalysisRun, error) {
	args := m.Called(ctx, limit)
	runs, _ := args.Get(0).([]*entity.AnalysisRun)
	return runs, args.Error(1)
}

type mockRecordRepo struct{ mock.Mock }

func (m *mockRecordRepo) CreateBatch(ctx context.Context, source string, records []*entity.QueryRecord) error {
	return m.Called(ctx, source, records).Error(0)
}

func (m *mockRecordRepo) FindRecent(ctx context.Context, source string, limit int) ([]*entity.QueryRecord, error) {
	args := m.Called(ctx, source, limit)
	records, _ := args.Get(0).([]*entity.QueryRecord)
	return records, args.Error(1)
}

func (m *mockRecordRepo) StatementTypeStats(ctx context.Context) (map[string]entity.StatementTypeStat, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(map[string]entity.StatementTypeStat)
	return stats, args.Error(1)
}

func (m *mockRecordRepo) Prune(ctx context.Context, source string, maxLimit int) error {
	return m.Called(ctx, source, maxLimit).Error(0)
}

type mockSuppressionRepo struct{ mock.Mock }

func (m *mockSuppressionRepo) Create(ctx context.Context, s *entity.Suppression) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSuppressionRepo) FindAll(ctx context.Context) ([]*entity.Suppression, error) {
	args := m.Called(ctx)
	suppressions, _ := args.Get(0).([]*entity.Suppression)
	return suppressions, args.Error(1)
}

func (m *mockSuppressionRepo) FindByID(ctx context.Context, id int64) (*entity.Suppression, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Suppression)
	return s, args.Error(1)
}

func (m *mockSuppressionRepo) FindByPatternKey(ctx context.Context, patternKey string) (*entity.Suppression, error) {
	args := m.Called(ctx, patternKey)
	s, _ := args.Get(0).(*entity.Suppression)
	return s, args.Error(1)
}

func (m *mockSuppressionRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockExistingIndexRepo struct{ mock.Mock }

func (m *mockExistingIndexRepo) Create(ctx context.Context, index *entity.ExistingIndex) error {
	return m.Called(ctx, index).Error(0)
}

func (m *mockExistingIndexRepo) FindAll(ctx context.Context) ([]*entity.ExistingIndex, error) {
	args := m.Called(ctx)
	indexes, _ := args.Get(0).([]*entity.ExistingIndex)
	return indexes, args.Error(1)
}

func (m *mockExistingIndexRepo) FindByID(ctx context.Context, id int64) (*entity.ExistingIndex, error) {
	args := m.Called(ctx, id)
	index, _ := args.Get(0).(*entity.ExistingIndex)
	return index, args.Error(1)
}

func (m *mockExistingIndexRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

const mockLogSource = "mock-log"

type mockQueryLog struct{ mock.Mock }

func (m *mockQueryLog) Source() string {
	return mockLogSource
}

func (m *mockQueryLog) ReadQueryLog(ctx context.Context, lookback time.Duration, limit int) ([]*entity.QueryRecord, error) {
	args := m.Called(ctx, lookback, limit)
	records, _ := args.Get(0).([]*entity.QueryRecord)
	return records, args.Error(1)
}

func (m *mockQueryLog) ServerVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishAnomalies(ctx context.Context, runID string, flags []entity.AnomalyFlag) error {
	return m.Called(ctx, runID, flags).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}
