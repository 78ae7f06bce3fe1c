// Package scheduler re-runs the configured query log analysis on an interval.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	errwrap "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

const jobName = "query-log-analysis"

// QueryLogAnalyzer is the part of the advisor usecase the job drives.
type QueryLogAnalyzer interface {
	AnalyzeQueryLog(ctx context.Context, lookback time.Duration) (*entity.AnalysisReport, error)
}

type Config struct {
	Interval time.Duration `validate:"gt=0"`
	Lookback time.Duration `validate:"gt=0"`
	// Timeout bounds a single run; 0 means the interval.
	Timeout time.Duration `validate:"gte=0"`
	// RunOnStart fires the first analysis immediately instead of after one interval.
	RunOnStart bool
}

type Scheduler struct {
	cfg       Config
	scheduler gocron.Scheduler
	analyzer  QueryLogAnalyzer
	logger    *zap.Logger
}

func New(cfg Config, analyzer QueryLogAnalyzer, logger *zap.Logger) (*Scheduler, error) {
	funcName := "Scheduler.New"
	if err := helper.ValidateConfig("scheduler", cfg); err != nil {
		return nil, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = cfg.Interval
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	sch := &Scheduler{
		cfg:       cfg,
		scheduler: s,
		analyzer:  analyzer,
		logger:    helper.OrNop(logger),
	}

	opts := []gocron.JobOption{
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if cfg.RunOnStart {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}
	if _, err := s.NewJob(gocron.DurationJob(cfg.Interval), gocron.NewTask(sch.run), opts...); err != nil {
		_ = s.Shutdown()
		return nil, errwrap.Wrap(err, funcName)
	}
	return sch, nil
}

func (s *Scheduler) Start() {
	s.logger.Info("scheduler started",
		zap.String("job", jobName),
		zap.Duration("interval", s.cfg.Interval),
		zap.Duration("lookback", s.cfg.Lookback))
	s.scheduler.Start()
}

// Shutdown waits for a running job to finish.
func (s *Scheduler) Shutdown() error {
	return errwrap.Wrap(s.scheduler.Shutdown(), "Scheduler.Shutdown")
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	report, err := s.analyzer.AnalyzeQueryLog(ctx, s.cfg.Lookback)
	if err != nil {
		s.logger.Error("scheduled analysis failed", zap.String("job", jobName), zap.Error(err))
		return
	}
	s.logger.Debug("scheduled analysis finished",
		zap.String("run_id", report.Run.ID),
		zap.Int64("records", report.Run.RecordCount))
}
