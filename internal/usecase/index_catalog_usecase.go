package usecase

import (
	"context"
	"strings"

	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/sqlite"
)

var (
	ErrExistingIndexNotFound = errwrap.New("existing index not found")
	ErrExistingIndexExists   = errwrap.New("an index with this name is already registered for the table")
)

// IndexCatalogUsecase maintains the indexes known to exist, which analyses
// check their recommendations against.
type IndexCatalogUsecase interface {
	Create(ctx context.Context, index *entity.ExistingIndex) error
	List(ctx context.Context) ([]*entity.ExistingIndex, error)
	Delete(ctx context.Context, id int64) error
}

type indexCatalogUsecase struct {
	repo sqlite.ExistingIndexRepository
}

func NewIndexCatalogUsecase(repo sqlite.ExistingIndexRepository) IndexCatalogUsecase {
	return &indexCatalogUsecase{repo: repo}
}

// Create lower-cases the table and columns so they compare with extracted
// identifiers.
func (u *indexCatalogUsecase) Create(ctx context.Context, index *entity.ExistingIndex) error {
	index.Name = strings.TrimSpace(index.Name)
	index.Table = strings.ToLower(strings.TrimSpace(index.Table))
	for i, c := range index.Columns {
		index.Columns[i] = strings.ToLower(strings.TrimSpace(c))
	}
	index.Condition = strings.TrimSpace(index.Condition)
	if err := helper.ValidateInput(index); err != nil {
		return err
	}

	index.ID = 0
	if err := u.repo.Create(ctx, index); err != nil {
		if errwrap.Is(err, sqlite.ErrDuplicate) {
			return ErrExistingIndexExists
		}
		return err
	}
	return nil
}

func (u *indexCatalogUsecase) List(ctx context.Context) ([]*entity.ExistingIndex, error) {
	indexes, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if indexes == nil {
		indexes = []*entity.ExistingIndex{}
	}
	return indexes, nil
}

func (u *indexCatalogUsecase) Delete(ctx context.Context, id int64) error {
	existing, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrExistingIndexNotFound
	}
	return u.repo.Delete(ctx, id)
}
