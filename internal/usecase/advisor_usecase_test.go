package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
	"github.com/rahmatrdn/go-query-advisor/internal/metrics"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/querylog"
)

type advisorFixture struct {
	runs         *mockRunRepo
	records      *mockRecordRepo
	suppressions *mockSuppressionRepo
	indexes      *mockExistingIndexRepo
	queryLog     *mockQueryLog
	publisher    *mockPublisher
	metrics      *metrics.Metrics
	usecase      AdvisorUsecase
}

func newAdvisorFixture(t *testing.T, withQueryLog bool) *advisorFixture {
	t.Helper()
	f := &advisorFixture{
		runs:         &mockRunRepo{},
		records:      &mockRecordRepo{},
		suppressions: &mockSuppressionRepo{},
		indexes:      &mockExistingIndexRepo{},
		queryLog:     &mockQueryLog{},
		publisher:    &mockPublisher{},
		metrics:      metrics.NewMetrics(prometheus.NewRegistry()),
	}

	f.indexes.On("FindAll", mock.Anything).Return(nil, nil).Maybe()

	cfg := DefaultAnalysisConfig()
	cfg.Recommender.SlownessThreshold = 100
	cfg.Recommender.FrequencyThreshold = 1
	cfg.HistoryLimit = 1000

	var reader querylog.Reader
	if withQueryLog {
		reader = f.queryLog
	}
	uc, err := NewAdvisorUsecase(cfg, f.runs, f.records, f.suppressions, f.indexes, reader, f.publisher, f.metrics, nil)
	require.NoError(t, err)
	f.usecase = uc
	return f
}

func (f *advisorFixture) assertExpectations(t *testing.T) {
	f.runs.AssertExpectations(t)
	f.records.AssertExpectations(t)
	f.suppressions.AssertExpectations(t)
	f.indexes.AssertExpectations(t)
	f.queryLog.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func scenarioRecords() []*entity.QueryRecord {
	return []*entity.QueryRecord{
		{Query: "SELECT * FROM users WHERE id = 1", ExecutionTimeMs: 150, Tables: []string{"users"}, RowsScanned: 1000},
		{Query: "SELECT * FROM users WHERE id = 2", ExecutionTimeMs: 250, Tables: []string{"users"}, RowsScanned: 1000},
		{Query: "INSERT INTO audit (event) VALUES ('login')", ExecutionTimeMs: 50, Tables: []string{"audit"}},
	}
}

// driftingRecords is 10 steady executions followed by 5 slow ones for two
// patterns.
func driftingRecords() []*entity.QueryRecord {
	var records []*entity.QueryRecord
	for _, q := range []string{"SELECT * FROM a WHERE id = 1", "SELECT * FROM b WHERE id = 1"} {
		for i := 0; i < 10; i++ {
			records = append(records, &entity.QueryRecord{Query: q, ExecutionTimeMs: 100})
		}
		for i := 0; i < 5; i++ {
			records = append(records, &entity.QueryRecord{Query: q, ExecutionTimeMs: 1000})
		}
	}
	return records
}

func TestAdvisorUsecase_Analyze(t *testing.T) {
	f := newAdvisorFixture(t, false)
	f.runs.On("SaveReport", mock.Anything, mock.AnythingOfType("*entity.AnalysisReport")).Return(nil).Once()
	f.records.On("CreateBatch", mock.Anything, "upload", mock.MatchedBy(func(rs []*entity.QueryRecord) bool {
		return len(rs) == 3
	})).Return(nil).Once()
	f.records.On("Prune", mock.Anything, "upload", 1000).Return(nil).Once()

	report, err := f.usecase.Analyze(context.Background(), "", scenarioRecords())
	require.NoError(t, err)

	assert.NotEmpty(t, report.Run.ID)
	assert.Equal(t, "upload", report.Run.Source)
	assert.EqualValues(t, 3, report.Run.RecordCount)
	assert.EqualValues(t, 2, report.Run.PatternCount)

	require.Len(t, report.Patterns, 2)
	assert.Equal(t, entity.StatementSelect, report.Patterns[0].StatementType)
	assert.InDelta(t, 400.0, report.Patterns[0].SlownessScore, 1e-9)

	require.Len(t, report.Recommendations, 1)
	assert.Equal(t, "users", report.Recommendations[0].Table)
	assert.Equal(t, "id", report.Recommendations[0].Column)
	assert.Equal(t, entity.IndexBTree, report.Recommendations[0].IndexType)

	assert.Empty(t, report.Anomalies)
	assert.EqualValues(t, 3, report.Summary.TotalQueries)
	assert.Empty(t, report.Recommendations[0].Conflicts)
	assert.InDelta(t, 200.0, report.Recommendations[0].Simulation.CurrentTimeMs, 1e-9)
	assert.NotNil(t, report.PartialIndexes)

	f.assertExpectations(t)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Analyses.WithLabelValues("ok")))
	assert.Equal(t, float64(3), testutil.ToFloat64(f.metrics.RecordsAnalyzed.WithLabelValues("upload")))
}

func TestAdvisorUsecase_AnalyzeChecksExistingIndexes(t *testing.T) {
	f := newAdvisorFixture(t, false)
	f.indexes.ExpectedCalls = nil
	f.indexes.On("FindAll", mock.Anything).Return([]*entity.ExistingIndex{
		{Name: "users_pkey", Table: "users", Columns: []string{"id"}},
		{Name: "idx_users_email_name", Table: "users", Columns: []string{"email", "name"}},
	}, nil).Once()
	f.runs.On("SaveReport", mock.Anything, mock.Anything).Return(nil).Once()
	f.records.On("CreateBatch", mock.Anything, "upload", mock.Anything).Return(nil).Once()
	f.records.On("Prune", mock.Anything, "upload", 1000).Return(nil).Once()

	records := scenarioRecords()
	for i := 0; i < 3; i++ {
		records = append(records, &entity.QueryRecord{
			Query:           fmt.Sprintf("SELECT * FROM users WHERE email = 'u%d@example.com' AND deleted_at IS NULL", i),
			ExecutionTimeMs: 300,
			RowsScanned:     50_000,
		})
	}
	report, err := f.usecase.Analyze(context.Background(), "", records)
	require.NoError(t, err)

	byColumn := map[string]entity.IndexRecommendation{}
	for _, r := range report.Recommendations {
		byColumn[r.Column] = r
	}
	require.Contains(t, byColumn, "id")
	require.Len(t, byColumn["id"].Conflicts, 1)
	assert.Equal(t, entity.ConflictDuplicate, byColumn["id"].Conflicts[0].ConflictType)
	require.Contains(t, byColumn, "email")
	assert.Equal(t, entity.ConflictRedundant, byColumn["email"].Conflicts[0].ConflictType)
	assert.Empty(t, byColumn["deleted_at"].Conflicts)

	require.Len(t, report.PartialIndexes, 1)
	partial := report.PartialIndexes[0]
	assert.Equal(t, []string{"email"}, partial.Columns)
	assert.Equal(t, "deleted_at IS NULL", partial.Condition)
	require.Len(t, partial.Conflicts, 1)
	assert.Equal(t, entity.ConflictRedundant, partial.Conflicts[0].ConflictType)

	assert.Contains(t, report.Summary.Insights, "2 of 3 index recommendations are already served by existing indexes")
	f.assertExpectations(t)
}

func TestAdvisorUsecase_AnalyzeIgnoresUnreadableIndexCatalog(t *testing.T) {
	f := newAdvisorFixture(t, false)
	f.indexes.ExpectedCalls = nil
	f.indexes.On("FindAll", mock.Anything).Return(nil, errors.New("disk I/O error")).Once()
	f.runs.On("SaveReport", mock.Anything, mock.Anything).Return(nil).Once()
	f.records.On("CreateBatch", mock.Anything, "upload", mock.Anything).Return(nil).Once()
	f.records.On("Prune", mock.Anything, "upload", 1000).Return(nil).Once()

	report, err := f.usecase.Analyze(context.Background(), "", scenarioRecords())
	require.NoError(t, err)
	require.Len(t, report.Recommendations, 1)
	assert.Empty(t, report.Recommendations[0].Conflicts)
	f.assertExpectations(t)
}

func TestAdvisorUsecase_AnalyzeNormalizesRecords(t *testing.T) {
	f := newAdvisorFixture(t, false)
	var stored []*entity.QueryRecord
	f.runs.On("SaveReport", mock.Anything, mock.Anything).Return(nil)
	f.records.On("CreateBatch", mock.Anything, "api", mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(2).([]*entity.QueryRecord) }).
		Return(nil)
	f.records.On("Prune", mock.Anything, "api", 1000).Return(nil)

	input := []*entity.QueryRecord{{ID: 42, Query: "  SELECT 1  ", ExecutionTimeMs: -3}, nil}
	report, err := f.usecase.Analyze(context.Background(), "api", input)
	require.NoError(t, err)

	require.Len(t, stored, 1)
	assert.Zero(t, stored[0].ID)
	assert.Equal(t, "SELECT 1", stored[0].Query)
	assert.Zero(t, stored[0].ExecutionTimeMs)
	assert.EqualValues(t, 1, report.Run.RecordCount)
	// input is not modified
	assert.EqualValues(t, -3, input[0].ExecutionTimeMs)
}

func TestAdvisorUsecase_AnalyzePublishesUnsuppressedAnomalies(t *testing.T) {
	f := newAdvisorFixture(t, false)
	f.runs.On("SaveReport", mock.Anything, mock.Anything).Return(nil)
	f.records.On("CreateBatch", mock.Anything, "upload", mock.Anything).Return(nil)
	f.records.On("Prune", mock.Anything, "upload", 1000).Return(nil)
	f.suppressions.On("FindAll", mock.Anything).Return([]*entity.Suppression{
		{PatternKey: "SELECT * FROM b WHERE id = ?"},
	}, nil)
	f.publisher.On("PublishAnomalies", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(flags []entity.AnomalyFlag) bool {
		return len(flags) == 1 && flags[0].PatternKey == "SELECT * FROM a WHERE id = ?"
	})).Return(nil).Once()

	report, err := f.usecase.Analyze(context.Background(), "", driftingRecords())
	require.NoError(t, err)
	require.Len(t, report.Anomalies, 2)
	assert.Equal(t, entity.SeverityCritical, report.Anomalies[0].Severity)

	f.assertExpectations(t)
	assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.Anomalies.WithLabelValues(entity.SeverityCritical)))
}

func TestAdvisorUsecase_PublishFailureDoesNotFailRun(t *testing.T) {
	f := newAdvisorFixture(t, false)
	f.runs.On("SaveReport", mock.Anything, mock.Anything).Return(nil)
	f.records.On("CreateBatch", mock.Anything, "upload", mock.Anything).Return(nil)
	f.records.On("Prune", mock.Anything, "upload", 1000).Return(errors.New("locked"))
	f.suppressions.On("FindAll", mock.Anything).Return(nil, errors.New("no such table"))
	f.publisher.On("PublishAnomalies", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	report, err := f.usecase.Analyze(context.Background(), "", driftingRecords())
	require.NoError(t, err)
	assert.Len(t, report.Anomalies, 2)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.PublishFailures))
}

func TestAdvisorUsecase_AnalyzeSaveFailure(t *testing.T) {
	f := newAdvisorFixture(t, false)
	boom := errors.New("disk full")
	f.runs.On("SaveReport", mock.Anything, mock.Anything).Return(boom)

	_, err := f.usecase.Analyze(context.Background(), "", scenarioRecords())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	f.records.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Analyses.WithLabelValues("error")))
}

func TestAdvisorUsecase_AnalyzeEmpty(t *testing.T) {
	f := newAdvisorFixture(t, false)
	f.runs.On("SaveReport", mock.Anything, mock.Anything).Return(nil)
	f.records.On("CreateBatch", mock.Anything, "upload", mock.Anything).Return(nil)
	f.records.On("Prune", mock.Anything, "upload", 1000).Return(nil)

	report, err := f.usecase.Analyze(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Empty(t, report.Patterns)
	assert.NotNil(t, report.Recommendations)
	assert.NotNil(t, report.PartialIndexes)
	assert.NotNil(t, report.Anomalies)
	assert.Zero(t, report.Run.RecordCount)
}

func TestAdvisorUsecase_AnalyzeQueryLog(t *testing.T) {
	f := newAdvisorFixture(t, true)
	f.queryLog.On("ReadQueryLog", mock.Anything, 2*time.Hour, querylog.DefaultLimit).Return(scenarioRecords(), nil).Once()
	f.runs.On("SaveReport", mock.Anything, mock.Anything).Return(nil)
	f.records.On("CreateBatch", mock.Anything, mockLogSource, mock.Anything).Return(nil)
	f.records.On("Prune", mock.Anything, mockLogSource, 1000).Return(nil)

	report, err := f.usecase.AnalyzeQueryLog(context.Background(), 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, mockLogSource, report.Run.Source)
	f.assertExpectations(t)

	boom := errors.New("timeout")
	f.queryLog.On("ReadQueryLog", mock.Anything, time.Minute, querylog.DefaultLimit).Return(nil, boom).Once()
	_, err = f.usecase.AnalyzeQueryLog(context.Background(), time.Minute)
	assert.ErrorIs(t, err, boom)
}

func TestAdvisorUsecase_AnalyzeQueryLogDisabled(t *testing.T) {
	f := newAdvisorFixture(t, false)
	_, err := f.usecase.AnalyzeQueryLog(context.Background(), time.Hour)
	assert.ErrorIs(t, err, ErrQueryLogDisabled)
}

func TestAdvisorUsecase_Predict(t *testing.T) {
	f := newAdvisorFixture(t, false)
	f.records.On("StatementTypeStats", mock.Anything).Return(map[string]entity.StatementTypeStat{
		entity.StatementSelect: {StatementType: entity.StatementSelect, Count: 2, TotalTimeMs: 400, TotalRowsScanned: 2000},
	}, nil).Once()

	pred, err := f.usecase.Predict(context.Background(), "select", 1000)
	require.NoError(t, err)
	assert.Equal(t, entity.StatementSelect, pred.StatementType)
	assert.InDelta(t, 200.0, pred.EstimatedTimeMs, 1e-9)
	assert.InDelta(t, 0.2, pred.Confidence, 1e-9)

	boom := errors.New("db closed")
	f.records.On("StatementTypeStats", mock.Anything).Return(nil, boom).Once()
	_, err = f.usecase.Predict(context.Background(), "SELECT", 0)
	assert.ErrorIs(t, err, boom)
}

func TestNewAdvisorUsecase_InvalidConfig(t *testing.T) {
	cfg := DefaultAnalysisConfig()
	cfg.Anomaly.RatioThreshold = 0.5
	_, err := NewAdvisorUsecase(cfg, &mockRunRepo{}, &mockRecordRepo{}, &mockSuppressionRepo{}, &mockExistingIndexRepo{}, nil, nil, nil, nil)
	assert.ErrorIs(t, err, helper.ErrInvalidConfig)

	cfg = DefaultAnalysisConfig()
	cfg.SampleLimit = -1
	_, err = NewAdvisorUsecase(cfg, &mockRunRepo{}, &mockRecordRepo{}, &mockSuppressionRepo{}, &mockExistingIndexRepo{}, nil, nil, nil, nil)
	assert.ErrorIs(t, err, helper.ErrInvalidConfig)
}
