package sqlite

import (
	"context"

	errwrap "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

const recordBatchSize = 500

type QueryRecordRepository interface {
	CreateBatch(ctx context.Context, source string, records []*entity.QueryRecord) error
	FindRecent(ctx context.Context, source string, limit int) ([]*entity.QueryRecord, error)
	StatementTypeStats(ctx context.Context) (map[string]entity.StatementTypeStat, error)
	Prune(ctx context.Context, source string, maxLimit int) error
}

type QueryRecord struct {
	db *gorm.DB
}

func NewQueryRecordRepository(db *gorm.DB) *QueryRecord {
	return &QueryRecord{db: db}
}

func (r *QueryRecord) CreateBatch(ctx context.Context, source string, records []*entity.QueryRecord) error {
	funcName := "QueryRecordRepository.CreateBatch"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}
	if len(records) == 0 {
		return nil
	}

	for _, rec := range records {
		rec.Source = source
		rec.Statement = rec.StatementType()
	}
	if err := r.db.WithContext(ctx).CreateInBatches(records, recordBatchSize).Error; err != nil {
		return errwrap.Wrap(err, funcName)
	}
	return nil
}

// FindRecent returns the newest records of source, newest first. An empty
// source matches every source.
func (r *QueryRecord) FindRecent(ctx context.Context, source string, limit int) ([]*entity.QueryRecord, error) {
	funcName := "QueryRecordRepository.FindRecent"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var records []*entity.QueryRecord
	q := r.db.WithContext(ctx)
	if source != "" {
		q = q.Where("source = ?", source)
	}
	err := q.Order("timestamp desc").Order("id desc").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return records, nil
}

// StatementTypeStats sums the stored history per statement type.
func (r *QueryRecord) StatementTypeStats(ctx context.Context) (map[string]entity.StatementTypeStat, error) {
	funcName := "QueryRecordRepository.StatementTypeStats"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var rows []entity.StatementTypeStat
	err := r.db.WithContext(ctx).
		Model(&entity.QueryRecord{}).
		Select("statement_type, COUNT(*) AS count, SUM(execution_time_ms) AS total_time_ms, SUM(rows_scanned) AS total_rows_scanned").
		Group("statement_type").
		Scan(&rows).Error
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	stats := make(map[string]entity.StatementTypeStat, len(rows))
	for _, row := range rows {
		stats[row.StatementType] = row
	}
	return stats, nil
}

// Prune keeps the newest maxLimit records of source and deletes the rest.
func (r *QueryRecord) Prune(ctx context.Context, source string, maxLimit int) error {
	funcName := "QueryRecordRepository.Prune"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	err := r.db.WithContext(ctx).
		Where("source = ? AND id NOT IN (?)", source,
			r.db.Model(&entity.QueryRecord{}).
				Select("id").
				Where("source = ?", source).
				Order("timestamp desc").Order("id desc").
				Limit(maxLimit),
		).
		Delete(&entity.QueryRecord{}).Error
	if err != nil {
		return errwrap.Wrap(err, funcName)
	}
	return nil
}
