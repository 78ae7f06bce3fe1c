package sqlite

import (
	"context"

	errwrap "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

type SuppressionRepository interface {
	Create(ctx context.Context, suppression *entity.Suppression) error
	FindAll(ctx context.Context) ([]*entity.Suppression, error)
	FindByID(ctx context.Context, id int64) (*entity.Suppression, error)
	FindByPatternKey(ctx context.Context, patternKey string) (*entity.Suppression, error)
	Delete(ctx context.Context, id int64) error
}

type suppressionRepository struct {
	db *gorm.DB
}

func NewSuppressionRepository(db *gorm.DB) SuppressionRepository {
	return &suppressionRepository{db: db}
}

func (r *suppressionRepository) Create(ctx context.Context, suppression *entity.Suppression) error {
	funcName := "SuppressionRepository.Create"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	if err := r.db.WithContext(ctx).Create(suppression).Error; err != nil {
		if errwrap.Is(err, gorm.ErrDuplicatedKey) {
			return errwrap.Wrap(ErrDuplicate, funcName)
		}
		return errwrap.Wrap(err, funcName)
	}
	return nil
}

func (r *suppressionRepository) FindAll(ctx context.Context) ([]*entity.Suppression, error) {
	funcName := "SuppressionRepository.FindAll"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var suppressions []*entity.Suppression
	err := r.db.WithContext(ctx).
		Order("created_at desc").Order("id desc").
		Find(&suppressions).Error

	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return suppressions, nil
}

func (r *suppressionRepository) FindByID(ctx context.Context, id int64) (*entity.Suppression, error) {
	funcName := "SuppressionRepository.FindByID"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var suppression entity.Suppression
	err := r.db.WithContext(ctx).
		First(&suppression, id).Error

	if err != nil {
		if errwrap.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errwrap.Wrap(err, funcName)
	}
	return &suppression, nil
}

func (r *suppressionRepository) FindByPatternKey(ctx context.Context, patternKey string) (*entity.Suppression, error) {
	funcName := "SuppressionRepository.FindByPatternKey"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var suppression entity.Suppression
	err := r.db.WithContext(ctx).
		Where("pattern_key = ?", patternKey).
		First(&suppression).Error

	if err != nil {
		if errwrap.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errwrap.Wrap(err, funcName)
	}
	return &suppression, nil
}

func (r *suppressionRepository) Delete(ctx context.Context, id int64) error {
	funcName := "SuppressionRepository.Delete"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	if err := r.db.WithContext(ctx).Delete(&entity.Suppression{}, id).Error; err != nil {
		return errwrap.Wrap(err, funcName)
	}
	return nil
}
