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
	ErrSuppressionNotFound = errwrap.New("suppression not found")
	ErrSuppressionExists   = errwrap.New("pattern is already suppressed")
)

type SuppressionUsecase interface {
	Create(ctx context.Context, s *entity.Suppression) error
	List(ctx context.Context) ([]*entity.Suppression, error)
	Delete(ctx context.Context, id int64) error
}

type suppressionUsecase struct {
	repo sqlite.SuppressionRepository
}

func NewSuppressionUsecase(repo sqlite.SuppressionRepository) SuppressionUsecase {
	return &suppressionUsecase{repo: repo}
}

func (u *suppressionUsecase) Create(ctx context.Context, s *entity.Suppression) error {
	s.PatternKey = strings.TrimSpace(s.PatternKey)
	if err := helper.ValidateInput(s); err != nil {
		return err
	}

	existing, err := u.repo.FindByPatternKey(ctx, s.PatternKey)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrSuppressionExists
	}
	s.ID = 0
	// a concurrent create of the same key can still lose on the unique index
	if err := u.repo.Create(ctx, s); err != nil {
		if errwrap.Is(err, sqlite.ErrDuplicate) {
			return ErrSuppressionExists
		}
		return err
	}
	return nil
}

func (u *suppressionUsecase) List(ctx context.Context) ([]*entity.Suppression, error) {
	suppressions, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if suppressions == nil {
		suppressions = []*entity.Suppression{}
	}
	return suppressions, nil
}

func (u *suppressionUsecase) Delete(ctx context.Context, id int64) error {
	existing, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrSuppressionNotFound
	}
	return u.repo.Delete(ctx, id)
}
