package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	errwrap "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/analyzer"
	"github.com/rahmatrdn/go-query-advisor/internal/anomaly"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
	"github.com/rahmatrdn/go-query-advisor/internal/metrics"
	"github.com/rahmatrdn/go-query-advisor/internal/predictor"
	"github.com/rahmatrdn/go-query-advisor/internal/publisher"
	"github.com/rahmatrdn/go-query-advisor/internal/recommender"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/querylog"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/sqlite"
)

// DefaultSource tags runs whose caller did not name a source.
const DefaultSource = "upload"

var ErrQueryLogDisabled = errwrap.New("no query log source is configured")

type AnalysisConfig struct {
	Recommender recommender.Config
	Anomaly     anomaly.Config
	Predictor   predictor.Config

	SampleLimit   int `validate:"gte=0"`
	QueryLogLimit int `validate:"gte=0"`
	// HistoryLimit caps stored records per source; 0 keeps everything.
	HistoryLimit int `validate:"gte=0"`
}

func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Recommender:   recommender.DefaultConfig(),
		Anomaly:       anomaly.DefaultConfig(),
		Predictor:     predictor.DefaultConfig(),
		SampleLimit:   5,
		QueryLogLimit: querylog.DefaultLimit,
		HistoryLimit:  100_000,
	}
}

type AdvisorUsecase interface {
	Analyze(ctx context.Context, source string, records []*entity.QueryRecord) (*entity.AnalysisReport, error)
	AnalyzeQueryLog(ctx context.Context, lookback time.Duration) (*entity.AnalysisReport, error)
	Predict(ctx context.Context, statementType string, rowsHint int64) (*entity.PerformancePrediction, error)
}

type advisorUsecase struct {
	cfg         AnalysisConfig
	recommender *recommender.Recommender
	detector    *anomaly.Detector

	runRepo         sqlite.RunRepository
	recordRepo      sqlite.QueryRecordRepository
	suppressionRepo sqlite.SuppressionRepository
	indexRepo       sqlite.ExistingIndexRepository
	queryLog        querylog.Reader
	publisher       publisher.Publisher
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewAdvisorUsecase validates cfg up front so a bad threshold fails at start
// rather than on the first run. queryLog, pub and m may be nil.
func NewAdvisorUsecase(
	cfg AnalysisConfig,
	runRepo sqlite.RunRepository,
	recordRepo sqlite.QueryRecordRepository,
	suppressionRepo sqlite.SuppressionRepository,
	indexRepo sqlite.ExistingIndexRepository,
	queryLog querylog.Reader,
	pub publisher.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) (AdvisorUsecase, error) {
	if err := helper.ValidateConfig("analysis", cfg); err != nil {
		return nil, err
	}
	rec, err := recommender.New(cfg.Recommender)
	if err != nil {
		return nil, err
	}
	det, err := anomaly.New(cfg.Anomaly)
	if err != nil {
		return nil, err
	}
	if _, err := predictor.New(cfg.Predictor, nil); err != nil {
		return nil, err
	}
	if pub == nil {
		pub = publisher.Noop{}
	}

	return &advisorUsecase{
		cfg:             cfg,
		recommender:     rec,
		detector:        det,
		runRepo:         runRepo,
		recordRepo:      recordRepo,
		suppressionRepo: suppressionRepo,
		indexRepo:       indexRepo,
		queryLog:        queryLog,
		publisher:       pub,
		metrics:         m,
		logger:          helper.OrNop(logger),
	}, nil
}

// Analyze runs the whole pipeline over records, stores the report and the
// records, then publishes unsuppressed anomalies. Publishing failures are
// logged and never fail the run.
func (u *advisorUsecase) Analyze(ctx context.Context, source string, records []*entity.QueryRecord) (*entity.AnalysisReport, error) {
	funcName := "AdvisorUsecase.Analyze"
	started := time.Now()
	if source == "" {
		source = DefaultSource
	}

	normalized := make([]*entity.QueryRecord, 0, len(records))
	agg := analyzer.New(
		analyzer.WithSampleLimit(u.cfg.SampleLimit),
		analyzer.WithRecentWindow(u.detector.Window()),
	)
	for _, r := range records {
		if r == nil {
			continue
		}
		rec := r.Normalize()
		rec.ID = 0
		normalized = append(normalized, &rec)
		agg.Add(rec)
	}

	patterns := agg.Analyze()
	columns := agg.ColumnUsage()
	recs := u.recommender.Recommend(patterns, columns)
	partial := u.recommender.Partial(patterns, columns)
	u.checkExisting(ctx, recs, partial)

	summary := agg.Summary(patterns)
	summary.Insights = append(summary.Insights, recommender.Insights(recs, partial)...)

	report := &entity.AnalysisReport{
		Run: entity.AnalysisRun{
			ID:           uuid.NewString(),
			Source:       source,
			RecordCount:  agg.TotalRecords(),
			PatternCount: int64(len(patterns)),
			CreatedAt:    started.UTC(),
		},
		Summary:         summary,
		Patterns:        patterns,
		Recommendations: recs,
		PartialIndexes:  partial,
		Anomalies:       u.detector.DetectAll(patterns, agg.Recent),
		Joins:           agg.Joins(),
		TimeBuckets:     agg.TimeBuckets(),
	}

	if err := u.runRepo.SaveReport(ctx, report); err != nil {
		u.metrics.ObserveFailure()
		return nil, errwrap.Wrap(err, funcName)
	}
	if err := u.recordRepo.CreateBatch(ctx, source, normalized); err != nil {
		u.metrics.ObserveFailure()
		return nil, errwrap.Wrap(err, funcName)
	}
	if u.cfg.HistoryLimit > 0 {
		if err := u.recordRepo.Prune(ctx, source, u.cfg.HistoryLimit); err != nil {
			u.logger.Warn("prune record history", zap.String("source", source), zap.Error(err))
		}
	}

	u.publish(ctx, report)
	u.metrics.ObserveReport(report, time.Since(started))

	u.logger.Info("analysis finished",
		zap.String("run_id", report.Run.ID),
		zap.String("source", source),
		zap.Int64("records", report.Run.RecordCount),
		zap.Int("patterns", len(report.Patterns)),
		zap.Int("recommendations", len(report.Recommendations)),
		zap.Int("partial_indexes", len(report.PartialIndexes)),
		zap.Int("anomalies", len(report.Anomalies)),
		zap.Duration("elapsed", time.Since(started)))
	return report, nil
}

// checkExisting marks recommendations an existing index already serves. An
// unreadable catalog leaves them unmarked.
func (u *advisorUsecase) checkExisting(ctx context.Context, recs []entity.IndexRecommendation, partial []entity.PartialIndexRecommendation) {
	if len(recs) == 0 && len(partial) == 0 {
		return
	}
	existing, err := u.indexRepo.FindAll(ctx)
	if err != nil {
		u.logger.Warn("load existing indexes", zap.Error(err))
		return
	}
	recommender.CheckExisting(recs, partial, existing)
}

func (u *advisorUsecase) publish(ctx context.Context, report *entity.AnalysisReport) {
	if len(report.Anomalies) == 0 {
		return
	}

	muted := map[string]struct{}{}
	suppressions, err := u.suppressionRepo.FindAll(ctx)
	if err != nil {
		u.logger.Warn("load suppressions", zap.Error(err))
	}
	for _, s := range suppressions {
		muted[s.PatternKey] = struct{}{}
	}

	flags := make([]entity.AnomalyFlag, 0, len(report.Anomalies))
	for _, f := range report.Anomalies {
		if _, ok := muted[f.PatternKey]; !ok {
			flags = append(flags, f)
		}
	}
	if len(flags) == 0 {
		return
	}

	if err := u.publisher.PublishAnomalies(ctx, report.Run.ID, flags); err != nil {
		u.metrics.ObservePublishFailure()
		u.logger.Error("publish anomalies",
			zap.String("run_id", report.Run.ID),
			zap.Int("flags", len(flags)),
			zap.Error(err))
	}
}

func (u *advisorUsecase) AnalyzeQueryLog(ctx context.Context, lookback time.Duration) (*entity.AnalysisReport, error) {
	funcName := "AdvisorUsecase.AnalyzeQueryLog"
	if u.queryLog == nil {
		return nil, ErrQueryLogDisabled
	}

	records, err := u.queryLog.ReadQueryLog(ctx, lookback, u.cfg.QueryLogLimit)
	if err != nil {
		u.metrics.ObserveFailure()
		return nil, errwrap.Wrap(err, funcName)
	}
	return u.Analyze(ctx, u.queryLog.Source(), records)
}

// Predict forecasts from every stored record, across all sources.
func (u *advisorUsecase) Predict(ctx context.Context, statementType string, rowsHint int64) (*entity.PerformancePrediction, error) {
	funcName := "AdvisorUsecase.Predict"

	history, err := u.recordRepo.StatementTypeStats(ctx)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	p, err := predictor.New(u.cfg.Predictor, history)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	prediction := p.Predict(statementType, rowsHint)
	return &prediction, nil
}
