package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "tienda/internal/errors"
	"tienda/internal/model"
)

// CategoriaRepository defines categoria persistence operations.
type CategoriaRepository interface {
	List(ctx context.Context) ([]model.Categoria, error)
	FindByID(ctx context.Context, id uint) (*model.Categoria, error)
	Create(ctx context.Context, categoria *model.Categoria) error
	Update(ctx context.Context, categoria *model.Categoria) error
	Delete(ctx context.Context, id uint) error
}

type categoriaRepository struct {
	db *gorm.DB
}

// NewCategoriaRepository creates a new categoria repository.
func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepository{db: db}
}

func categoriaNotFound(id uint) func() error {
	return func() error { return apperrors.NewNotFoundFem("Categoría", id) }
}

func (r *categoriaRepository) List(ctx context.Context) ([]model.Categoria, error) {
	return listAll[model.Categoria](ctx, r.db)
}

func (r *categoriaRepository) FindByID(ctx context.Context, id uint) (*model.Categoria, error) {
	return findByID[model.Categoria](ctx, r.db, id, categoriaNotFound(id))
}

func (r *categoriaRepository) Create(ctx context.Context, categoria *model.Categoria) error {
	return translate(r.db.WithContext(ctx).Create(categoria).Error, nil)
}

func (r *categoriaRepository) Update(ctx context.Context, categoria *model.Categoria) error {
	return translate(r.db.WithContext(ctx).Save(categoria).Error, nil)
}

// Delete removes the categoria; its productos go with it.
func (r *categoriaRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Categoria](ctx, r.db, id, categoriaNotFound(id))
}

// MarcaRepository defines marca persistence operations.
type MarcaRepository interface {
	List(ctx context.Context) ([]model.Marca, error)
	FindByID(ctx context.Context, id uint) (*model.Marca, error)
	Create(ctx context.Context, marca *model.Marca) error
	Update(ctx context.Context, marca *model.Marca) error
	Delete(ctx context.Context, id uint) error
}

type marcaRepository struct {
	db *gorm.DB
}

// NewMarcaRepository creates a new marca repository.
func NewMarcaRepository(db *gorm.DB) MarcaRepository {
	return &marcaRepository{db: db}
}

func marcaNotFound(id uint) func() error {
	return func() error { return apperrors.NewNotFoundFem("Marca", id) }
}

func (r *marcaRepository) List(ctx context.Context) ([]model.Marca, error) {
	return listAll[model.Marca](ctx, r.db)
}

func (r *marcaRepository) FindByID(ctx context.Context, id uint) (*model.Marca, error) {
	return findByID[model.Marca](ctx, r.db, id, marcaNotFound(id))
}

func (r *marcaRepository) Create(ctx context.Context, marca *model.Marca) error {
	return translate(r.db.WithContext(ctx).Create(marca).Error, nil)
}

func (r *marcaRepository) Update(ctx context.Context, marca *model.Marca) error {
	return translate(r.db.WithContext(ctx).Save(marca).Error, nil)
}

// Delete removes the marca together with its garantias and productos.
func (r *marcaRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Marca](ctx, r.db, id, marcaNotFound(id))
}

// GarantiaRepository defines garantia persistence operations.
type GarantiaRepository interface {
	List(ctx context.Context) ([]model.Garantia, error)
	FindByID(ctx context.Context, id uint) (*model.Garantia, error)
	Create(ctx context.Context, garantia *model.Garantia) error
	Update(ctx context.Context, garantia *model.Garantia) error
	Delete(ctx context.Context, id uint) error
}

type garantiaRepository struct {
	db *gorm.DB
}

// NewGarantiaRepository creates a new garantia repository.
func NewGarantiaRepository(db *gorm.DB) GarantiaRepository {
	return &garantiaRepository{db: db}
}

func garantiaNotFound(id uint) func() error {
	return func() error { return apperrors.NewNotFoundFem("Garantía", id) }
}

func (r *garantiaRepository) List(ctx context.Context) ([]model.Garantia, error) {
	return listAll[model.Garantia](ctx, r.db, "Marca")
}

func (r *garantiaRepository) FindByID(ctx context.Context, id uint) (*model.Garantia, error) {
	return findByID[model.Garantia](ctx, r.db, id, garantiaNotFound(id), "Marca")
}

func (r *garantiaRepository) Create(ctx context.Context, garantia *model.Garantia) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(garantia).Error, nil)
}

func (r *garantiaRepository) Update(ctx context.Context, garantia *model.Garantia) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(garantia).Error, nil)
}

func (r *garantiaRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Garantia](ctx, r.db, id, garantiaNotFound(id))
}
