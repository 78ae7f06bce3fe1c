package usecase

import (
	"context"

	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/sqlite"
)

const (
	DefaultRunLimit = 20
	MaxRunLimit     = 100

	DefaultRecordLimit = 100
	MaxRecordLimit     = 1000
)

var ErrRunNotFound = errwrap.New("analysis run not found")

type ReportUsecase interface {
	GetReport(ctx context.Context, runID string) (*entity.AnalysisReport, error)
	ListRuns(ctx context.Context, limit int) ([]*entity.AnalysisRun, error)
	RecentRecords(ctx context.Context, source string, limit int) ([]*entity.QueryRecord, error)
}

type reportUsecase struct {
	runRepo    sqlite.RunRepository
	recordRepo sqlite.QueryRecordRepository
}

func NewReportUsecase(runRepo sqlite.RunRepository, recordRepo sqlite.QueryRecordRepository) ReportUsecase {
	return &reportUsecase{
		runRepo:    runRepo,
		recordRepo: recordRepo,
	}
}

func (u *reportUsecase) GetReport(ctx context.Context, runID string) (*entity.AnalysisReport, error) {
	report, err := u.runRepo.GetReport(ctx, runID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrRunNotFound
	}
	return report, nil
}

// ListRuns returns the newest runs first. Out of range limits fall back to
// the default.
func (u *reportUsecase) ListRuns(ctx context.Context, limit int) ([]*entity.AnalysisRun, error) {
	if limit <= 0 || limit > MaxRunLimit {
		limit = DefaultRunLimit
	}
	runs, err := u.runRepo.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []*entity.AnalysisRun{}
	}
	return runs, nil
}

// RecentRecords lists the stored history the predictor draws from, newest
// first. An empty source spans every source.
func (u *reportUsecase) RecentRecords(ctx context.Context, source string, limit int) ([]*entity.QueryRecord, error) {
	if limit <= 0 || limit > MaxRecordLimit {
		limit = DefaultRecordLimit
	}
	records, err := u.recordRepo.FindRecent(ctx, source, limit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*entity.QueryRecord{}
	}
	return records, nil
}
