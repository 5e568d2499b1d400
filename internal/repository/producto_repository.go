package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "tienda/internal/errors"
	"tienda/internal/model"
)

// ErrInsufficientStock is returned by DecrementStock when the product has fewer units than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

var productoPreloads = []string{"Categoria", "Marca", "Garantia"}

// ProductoRepository defines producto persistence operations.
type ProductoRepository interface {
	List(ctx context.Context) ([]model.Producto, error)
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	Create(ctx context.Context, producto *model.Producto) error
	Update(ctx context.Context, producto *model.Producto) error
	UpdateImageURL(ctx context.Context, id uint, url string) error
	Delete(ctx context.Context, id uint) error
	DecrementStock(ctx context.Context, id uint, n uint) error
	IncrementStock(ctx context.Context, id uint, n uint) error
}

type productoRepository struct {
	db *gorm.DB
}

// NewProductoRepository creates a new producto repository.
func NewProductoRepository(db *gorm.DB) ProductoRepository {
	return &productoRepository{db: db}
}

func productoNotFound(id uint) func() error {
	return func() error { return apperrors.NewNotFound("Producto", id) }
}

func (r *productoRepository) List(ctx context.Context) ([]model.Producto, error) {
	return listAll[model.Producto](ctx, r.db, productoPreloads...)
}

// FindByID loads a producto with its categoria, marca and garantia.
func (r *productoRepository) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	return findByID[model.Producto](ctx, r.db, id, productoNotFound(id), productoPreloads...)
}

func (r *productoRepository) Create(ctx context.Context, producto *model.Producto) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(producto).Error, nil)
}

// Update writes every column, so a nil GarantiaID clears the warranty.
func (r *productoRepository) Update(ctx context.Context, producto *model.Producto) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(producto).Error, nil)
}

func (r *productoRepository) UpdateImageURL(ctx context.Context, id uint, url string) error {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("image_url", url)
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return productoNotFound(id)()
	}
	return nil
}

func (r *productoRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Producto](ctx, r.db, id, productoNotFound(id))
}

// DecrementStock takes n units only if at least n are available. The check and
// the write are one statement, so concurrent sales cannot oversell.
func (r *productoRepository) DecrementStock(ctx context.Context, id uint, n uint) error {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ? AND stock >= ?", id, n).
		Update("stock", gorm.Expr("stock - ?", n))
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

// IncrementStock returns n units to the producto.
func (r *productoRepository) IncrementStock(ctx context.Context, id uint, n uint) error {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", n))
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return productoNotFound(id)()
	}
	return nil
}
