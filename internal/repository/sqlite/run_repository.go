package sqlite

import (
	"context"

	errwrap "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

type RunRepository interface {
	SaveReport(ctx context.Context, report *entity.AnalysisReport) error
	GetReport(ctx context.Context, runID string) (*entity.AnalysisReport, error)
	ListRuns(ctx context.Context, limit int) ([]*entity.AnalysisRun, error)
}

type runRepo struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepo{db: db}
}

// SaveReport stores the run and everything it produced in one transaction.
// Join and time bucket statistics are not persisted.
func (r *runRepo) SaveReport(ctx context.Context, report *entity.AnalysisReport) error {
	funcName := "RunRepository.SaveReport"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	report.Run.Summary = report.Summary
	runID := report.Run.ID
	for i := range report.Patterns {
		report.Patterns[i].RunID = runID
	}
	for i := range report.Recommendations {
		report.Recommendations[i].RunID = runID
	}
	for i := range report.PartialIndexes {
		report.PartialIndexes[i].RunID = runID
	}
	for i := range report.Anomalies {
		report.Anomalies[i].RunID = runID
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report.Run).Error; err != nil {
			return errwrap.Wrap(err, funcName)
		}
		if len(report.Patterns) > 0 {
			if err := tx.CreateInBatches(&report.Patterns, recordBatchSize).Error; err != nil {
				return errwrap.Wrap(err, funcName)
			}
		}
		if len(report.Recommendations) > 0 {
			if err := tx.Create(&report.Recommendations).Error; err != nil {
				return errwrap.Wrap(err, funcName)
			}
		}
		if len(report.PartialIndexes) > 0 {
			if err := tx.Create(&report.PartialIndexes).Error; err != nil {
				return errwrap.Wrap(err, funcName)
			}
		}
		if len(report.Anomalies) > 0 {
			if err := tx.Create(&report.Anomalies).Error; err != nil {
				return errwrap.Wrap(err, funcName)
			}
		}
		return nil
	})
}

// GetReport loads a stored run. A missing run yields (nil, nil).
func (r *runRepo) GetReport(ctx context.Context, runID string) (*entity.AnalysisReport, error) {
	funcName := "RunRepository.GetReport"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	db := r.db.WithContext(ctx)
	var run entity.AnalysisRun
	if err := db.Where("id = ?", runID).First(&run).Error; err != nil {
		if errwrap.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errwrap.Wrap(err, funcName)
	}

	report := &entity.AnalysisReport{
		Run:             run,
		Summary:         run.Summary,
		Patterns:        []entity.Pattern{},
		Recommendations: []entity.IndexRecommendation{},
		PartialIndexes:  []entity.PartialIndexRecommendation{},
		Anomalies:       []entity.AnomalyFlag{},
	}
	if err := db.Where("run_id = ?", runID).Order("slowness_score desc").Order("id").Find(&report.Patterns).Error; err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	if err := db.Where("run_id = ?", runID).Order("priority desc").Order("id").Find(&report.Recommendations).Error; err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	if err := db.Where("run_id = ?", runID).Order("priority desc").Order("id").Find(&report.PartialIndexes).Error; err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	if err := db.Where("run_id = ?", runID).Order("score desc").Order("id").Find(&report.Anomalies).Error; err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return report, nil
}

func (r *runRepo) ListRuns(ctx context.Context, limit int) ([]*entity.AnalysisRun, error) {
	funcName := "RunRepository.ListRuns"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var runs []*entity.AnalysisRun
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return runs, nil
}
