package sqlite

import (
	"context"

	errwrap "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
)

type ExistingIndexRepository interface {
	Create(ctx context.Context, index *entity.ExistingIndex) error
	FindAll(ctx context.Context) ([]*entity.ExistingIndex, error)
	FindByID(ctx context.Context, id int64) (*entity.ExistingIndex, error)
	Delete(ctx context.Context, id int64) error
}

type existingIndexRepository struct {
	db *gorm.DB
}

func NewExistingIndexRepository(db *gorm.DB) ExistingIndexRepository {
	return &existingIndexRepository{db: db}
}

func (r *existingIndexRepository) Create(ctx context.Context, index *entity.ExistingIndex) error {
	funcName := "ExistingIndexRepository.Create"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	if err := r.db.WithContext(ctx).Create(index).Error; err != nil {
		if errwrap.Is(err, gorm.ErrDuplicatedKey) {
			return errwrap.Wrap(ErrDuplicate, funcName)
		}
		return errwrap.Wrap(err, funcName)
	}
	return nil
}

func (r *existingIndexRepository) FindAll(ctx context.Context) ([]*entity.ExistingIndex, error) {
	funcName := "ExistingIndexRepository.FindAll"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var indexes []*entity.ExistingIndex
	err := r.db.WithContext(ctx).
		Order("table_name").Order("name").
		Find(&indexes).Error

	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	return indexes, nil
}

func (r *existingIndexRepository) FindByID(ctx context.Context, id int64) (*entity.ExistingIndex, error) {
	funcName := "ExistingIndexRepository.FindByID"
	if err := helper.CheckDeadline(ctx); err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}

	var index entity.ExistingIndex
	if err := r.db.WithContext(ctx).First(&index, id).Error; err != nil {
		if errwrap.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errwrap.Wrap(err, funcName)
	}
	return &index, nil
}

func (r *existingIndexRepository) Delete(ctx context.Context, id int64) error {
	funcName := "ExistingIndexRepository.Delete"
	if err := helper.CheckDeadline(ctx); err != nil {
		return errwrap.Wrap(err, funcName)
	}

	if err := r.db.WithContext(ctx).Delete(&entity.ExistingIndex{}, id).Error; err != nil {
		return errwrap.Wrap(err, funcName)
	}
	return nil
}
