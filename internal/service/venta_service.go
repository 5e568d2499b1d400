package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/repository"
)

// MetodoPagoInput carries the fields of a new payment method.
type MetodoPagoInput struct {
	Nombre      *string
	Descripcion *string
	Estado      *bool
}

// ItemInput is one requested sale line.
type ItemInput struct {
	ProductoID uint `json:"producto_id"`
	Cantidad   uint `json:"cantidad"`
}

// CreateNotaInput describes a sale.
type CreateNotaInput struct {
	MetodoPagoID uint
	Items        []ItemInput
}

// VentaService records sales against product stock.
type VentaService interface {
	ListMetodosPago(ctx context.Context) ([]model.MetodoPago, error)
	CreateMetodoPago(ctx context.Context, in MetodoPagoInput) (*model.MetodoPago, error)
	CreateNotaVenta(ctx context.Context, actor *model.Usuario, in CreateNotaInput) (*model.NotaVenta, error)
	GetNotaVenta(ctx context.Context, actor *model.Usuario, id uint) (*model.NotaVenta, error)
	ListNotasVenta(ctx context.Context, actor *model.Usuario) ([]model.NotaVenta, error)
	AnularNotaVenta(ctx context.Context, actor *model.Usuario, id uint) (*model.NotaVenta, error)
}

type ventaService struct {
	repo repository.VentaRepository
}

// NewVentaService builds a VentaService.
func NewVentaService(repo repository.VentaRepository) VentaService {
	return &ventaService{repo: repo}
}

func (s *ventaService) ListMetodosPago(ctx context.Context) ([]model.MetodoPago, error) {
	return s.repo.ListMetodosPago(ctx)
}

func (s *ventaService) CreateMetodoPago(ctx context.Context, in MetodoPagoInput) (*model.MetodoPago, error) {
	nombre := trimmed(in.Nombre)
	if nombre == "" {
		return nil, apperrors.NewValidationError("nombre", "El nombre del método de pago es obligatorio")
	}
	metodo := &model.MetodoPago{Nombre: nombre, Descripcion: in.Descripcion, Estado: true}
	if in.Estado != nil {
		metodo.Estado = *in.Estado
	}
	if err := s.repo.CreateMetodoPago(ctx, metodo); err != nil {
		return nil, err
	}
	return metodo, nil
}

// CreateNotaVenta takes stock for every item and records the sale in one transaction.
// Unit prices are copied from the products at sale time.
func (s *ventaService) CreateNotaVenta(ctx context.Context, actor *model.Usuario, in CreateNotaInput) (*model.NotaVenta, error) {
	if in.MetodoPagoID == 0 {
		return nil, apperrors.NewValidationError("metodo_pago_id", "Debe especificar un método de pago")
	}
	if len(in.Items) == 0 {
		return nil, apperrors.NewValidationError("detalles", "La venta debe tener al menos un producto")
	}
	for _, it := range in.Items {
		if it.ProductoID == 0 {
			return nil, apperrors.NewValidationError("producto_id", "Debe especificar un producto")
		}
		if it.Cantidad == 0 {
			return nil, apperrors.NewValidationError("cantidad", "La cantidad debe ser mayor a 0")
		}
	}

	var notaID uint
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, ventas repository.VentaRepository, productos repository.ProductoRepository) error {
		metodo, err := mustExist(ctx, "metodo_pago_id", in.MetodoPagoID, ventas.FindMetodoPago)
		if err != nil {
			return err
		}
		if !metodo.Estado {
			return apperrors.NewValidationError("metodo_pago_id", "El método de pago %s no está activo", metodo.Nombre)
		}

		nota := &model.NotaVenta{
			Estado:       true,
			MetodoPagoID: metodo.ID,
			UsuarioID:    actor.ID,
			Total:        decimal.Zero,
		}
		for _, it := range in.Items {
			producto, err := mustExist(ctx, "producto_id", it.ProductoID, productos.FindByID)
			if err != nil {
				return err
			}
			if err := productos.DecrementStock(ctx, producto.ID, it.Cantidad); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					// earlier lines of this sale may already have taken from the same producto
					if current, ferr := productos.FindByID(ctx, producto.ID); ferr == nil {
						producto = current
					}
					return apperrors.NewValidationError("cantidad",
						"Stock insuficiente para %s (disponible: %d)", producto.Nombre, producto.Stock)
				}
				return err
			}
			detalle := model.DetalleVenta{
				ProductoID:     producto.ID,
				Cantidad:       it.Cantidad,
				PrecioUnitario: producto.Precio,
			}
			nota.Total = nota.Total.Add(detalle.Subtotal())
			nota.Detalles = append(nota.Detalles, detalle)
		}

		if err := ventas.CreateNota(ctx, nota); err != nil {
			return fmt.Errorf("create nota: %w", err)
		}
		notaID = nota.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindNota(ctx, notaID)
}

func (s *ventaService) GetNotaVenta(ctx context.Context, actor *model.Usuario, id uint) (*model.NotaVenta, error) {
	nota, err := s.repo.FindNota(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSee(actor, nota) {
		return nil, apperrors.ErrForbidden
	}
	return nota, nil
}

// ListNotasVenta returns every note to admins and the actor's own notes to anyone else.
func (s *ventaService) ListNotasVenta(ctx context.Context, actor *model.Usuario) ([]model.NotaVenta, error) {
	if actor.Rol == model.RoleAdmin {
		return s.repo.ListNotas(ctx, nil)
	}
	return s.repo.ListNotas(ctx, &actor.ID)
}

// AnularNotaVenta marks the note annulled and gives the stock back.
func (s *ventaService) AnularNotaVenta(ctx context.Context, actor *model.Usuario, id uint) (*model.NotaVenta, error) {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, ventas repository.VentaRepository, productos repository.ProductoRepository) error {
		nota, err := ventas.FindNota(ctx, id)
		if err != nil {
			return err
		}
		if !canSee(actor, nota) {
			return apperrors.ErrForbidden
		}
		if !nota.Estado {
			return apperrors.NewValidationError("estado", "La nota de venta %d ya está anulada", id)
		}
		if err := ventas.AnularNota(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotaAnulada) {
				return apperrors.NewValidationError("estado", "La nota de venta %d ya está anulada", id)
			}
			return err
		}
		for _, d := range nota.Detalles {
			if err := productos.IncrementStock(ctx, d.ProductoID, d.Cantidad); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindNota(ctx, id)
}

func canSee(actor *model.Usuario, nota *model.NotaVenta) bool {
	return actor.Rol == model.RoleAdmin || actor.ID == nota.UsuarioID
}
