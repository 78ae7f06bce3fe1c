package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

type mockAdvisorUsecase struct{ mock.Mock }

func (m *mockAdvisorUsecase) Analyze(ctx context.Context, source string, records []*entity.QueryRecord) (*entity.AnalysisReport, error) {
	args := m.Called(ctx, source, records)
	report, _ := args.Get(0).(*entity.AnalysisReport)
	return report, args.Error(1)
}

func (m *mockAdvisorUsecase) AnalyzeQueryLog(ctx context.Context, lookback time.Duration) (*entity.AnalysisReport, error) {
	args := m.Called(ctx, lookback)
	report, _ := args.Get(0).(*entity.AnalysisReport)
	return report, args.Error(1)
}

func (m *mockAdvisorUsecase) Predict(ctx context.Context, statementType string, rowsHint int64) (*entity.PerformancePrediction, error) {
	args := m.Called(ctx, statementType, rowsHint)
	p, _ := args.Get(0).(*entity.PerformancePrediction)
	return p, args.Error(1)
}

type mockReportUsecase struct{ mock.Mock }

func (m *mockReportUsecase) GetReport(ctx context.Context, runID string) (*entity.AnalysisReport, error) {
	args := m.Called(ctx, runID)
	report, _ := args.Get(0).(*entity.AnalysisReport)
	return report, args.Error(1)
}

func (m *mockReportUsecase) ListRuns(ctx context.Context, limit int) ([]*entity.AnalysisRun, error) {
	args := m.Called(ctx, limit)
	runs, _ := args.Get(0).([]*entity.AnalysisRun)
	return runs, args.Error(1)
}

type mockSuppressionUsecase struct{ mock.Mock }

func (m *mockSuppressionUsecase) Create(ctx context.Context, s *entity.Suppression) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSuppressionUsecase) List(ctx context.Context) ([]*entity.Suppression, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Suppression)
	return list, args.Error(1)
}

func (m *mockSuppressionUsecase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockIndexCatalogUsecase struct{ mock.Mock }

func (m *mockIndexCatalogUsecase) Create(ctx context.Context, index *entity.ExistingIndex) error {
	return m.Called(ctx, index).Error(0)
}

func (m *mockIndexCatalogUsecase) List(ctx context.Context) ([]*entity.ExistingIndex, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.ExistingIndex)
	return list, args.Error(1)
}

func (m *mockIndexCatalogUsecase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockQueryLog struct{ mock.Mock }

func (m *mockQueryLog) Source() string {
	return "mock-log"
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

func (m *mockReportUsecase) RecentRecords(ctx context.Context, source string, limit int) ([]*entity.QueryRecord, error) {
	args := m.Called(ctx, source, limit)
	records, _ := args.Get(0).([]*entity.QueryRecord)
	return records, args.Error(1)
}
