package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "tienda/internal/errors"
)

// translate maps GORM errors onto the error taxonomy in internal/errors.
// notFound builds the error for a missing row; nil means apperrors.ErrNotFound.
func translate(err error, notFound func() error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if notFound != nil {
			return notFound()
		}
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", apperrors.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", apperrors.ErrConstraint, err)
	default:
		return err
	}
}

func findByID[T any](ctx context.Context, db *gorm.DB, id uint, notFound func() error, preloads ...string) (*T, error) {
	var out T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&out, id).Error; err != nil {
		return nil, translate(err, notFound)
	}
	return &out, nil
}

func listAll[T any](ctx context.Context, db *gorm.DB, preloads ...string) ([]T, error) {
	out := make([]T, 0)
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint, notFound func() error) error {
	res := db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return translate(res.Error, notFound)
	}
	if res.RowsAffected == 0 {
		return notFound()
	}
	return nil
}
