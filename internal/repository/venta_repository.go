package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "tienda/internal/errors"
	"tienda/internal/model"
)

// ErrNotaAnulada is returned by AnularNota when the note was already annulled.
var ErrNotaAnulada = errors.New("nota already annulled")

// VentaRepository defines persistence for payment methods and sale notes.
type VentaRepository interface {
	ListMetodosPago(ctx context.Context) ([]model.MetodoPago, error)
	FindMetodoPago(ctx context.Context, id uint) (*model.MetodoPago, error)
	CreateMetodoPago(ctx context.Context, metodo *model.MetodoPago) error
	CreateNota(ctx context.Context, nota *model.NotaVenta) error
	FindNota(ctx context.Context, id uint) (*model.NotaVenta, error)
	// ListNotas lists every note when usuarioID is nil, otherwise only that usuario's notes.
	ListNotas(ctx context.Context, usuarioID *uint) ([]model.NotaVenta, error)
	// AnularNota flips an active note to annulled. Only one caller can win for a given note.
	AnularNota(ctx context.Context, id uint) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, ventas VentaRepository, productos ProductoRepository) error) error
}

type ventaRepository struct {
	db *gorm.DB
}

// NewVentaRepository creates a new venta repository.
func NewVentaRepository(db *gorm.DB) VentaRepository {
	return &ventaRepository{db: db}
}

func metodoPagoNotFound(id uint) func() error {
	return func() error { return apperrors.NewNotFound("Método de pago", id) }
}

func notaNotFound(id uint) func() error {
	return func() error { return apperrors.NewNotFoundFem("Nota de venta", id) }
}

func (r *ventaRepository) ListMetodosPago(ctx context.Context) ([]model.MetodoPago, error) {
	return listAll[model.MetodoPago](ctx, r.db)
}

func (r *ventaRepository) FindMetodoPago(ctx context.Context, id uint) (*model.MetodoPago, error) {
	return findByID[model.MetodoPago](ctx, r.db, id, metodoPagoNotFound(id))
}

func (r *ventaRepository) CreateMetodoPago(ctx context.Context, metodo *model.MetodoPago) error {
	return translate(r.db.WithContext(ctx).Create(metodo).Error, nil)
}

// CreateNota inserts the note and its detalles. Detalle.Producto must be nil.
func (r *ventaRepository) CreateNota(ctx context.Context, nota *model.NotaVenta) error {
	return translate(r.db.WithContext(ctx).
		Omit("MetodoPago", "Usuario").
		Create(nota).Error, nil)
}

func (r *ventaRepository) FindNota(ctx context.Context, id uint) (*model.NotaVenta, error) {
	return findByID[model.NotaVenta](ctx, r.db, id, notaNotFound(id), "MetodoPago", "Detalles", "Detalles.Producto")
}

func (r *ventaRepository) ListNotas(ctx context.Context, usuarioID *uint) ([]model.NotaVenta, error) {
	notas := make([]model.NotaVenta, 0)
	q := r.db.WithContext(ctx).Preload("MetodoPago").Preload("Detalles").Preload("Detalles.Producto")
	if usuarioID != nil {
		q = q.Where("usuario_id = ?", *usuarioID)
	}
	if err := q.Order("id").Find(&notas).Error; err != nil {
		return nil, err
	}
	return notas, nil
}

func (r *ventaRepository) AnularNota(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.NotaVenta{}).
		Where("id = ? AND estado = ?", id, true).
		Update("estado", false)
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindNota(ctx, id); err != nil {
			return err
		}
		return ErrNotaAnulada
	}
	return nil
}

// WithTransaction runs fn with sale and product repositories bound to one transaction.
func (r *ventaRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, ventas VentaRepository, productos ProductoRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &ventaRepository{db: tx}, &productoRepository{db: tx})
	})
}
