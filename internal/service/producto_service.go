package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/repository"
	"tienda/internal/storage"
)

// MaxImageSize bounds product image uploads.
const MaxImageSize = 5 << 20

// ProductoInput carries producto fields; nil means "not sent".
// GarantiaID 0 clears the warranty on update.
type ProductoInput struct {
	Nombre      *string
	Descripcion *string
	Precio      *decimal.Decimal
	Stock       *int
	CategoriaID *uint
	MarcaID     *uint
	GarantiaID  *uint
	ImageURL    *string
}

// ProductoService exposes producto CRUD and image upload.
type ProductoService interface {
	List(ctx context.Context) ([]model.Producto, error)
	Get(ctx context.Context, id uint) (*model.Producto, error)
	Create(ctx context.Context, in ProductoInput) (*model.Producto, error)
	Update(ctx context.Context, id uint, in ProductoInput) (*model.Producto, error)
	Delete(ctx context.Context, id uint) error
	AttachImage(ctx context.Context, id uint, filename string, data []byte) (*model.Producto, error)
}

type productoService struct {
	repo       repository.ProductoRepository
	categorias repository.CategoriaRepository
	marcas     repository.MarcaRepository
	garantias  repository.GarantiaRepository
	images     storage.ImageStore
}

// NewProductoService builds a ProductoService. images may be nil, in which
// case AttachImage fails with apperrors.ErrStorageUnavailable.
func NewProductoService(
	repo repository.ProductoRepository,
	categorias repository.CategoriaRepository,
	marcas repository.MarcaRepository,
	garantias repository.GarantiaRepository,
	images storage.ImageStore,
) ProductoService {
	return &productoService{
		repo:       repo,
		categorias: categorias,
		marcas:     marcas,
		garantias:  garantias,
		images:     images,
	}
}

func (s *productoService) List(ctx context.Context) ([]model.Producto, error) {
	return s.repo.List(ctx)
}

func (s *productoService) Get(ctx context.Context, id uint) (*model.Producto, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *productoService) Create(ctx context.Context, in ProductoInput) (*model.Producto, error) {
	p := &model.Producto{
		Nombre:      trimmed(in.Nombre),
		Descripcion: trimmed(in.Descripcion),
		ImageURL:    in.ImageURL,
	}
	switch {
	case p.Nombre == "":
		return nil, apperrors.NewValidationError("nombre", "El nombre del producto es obligatorio")
	case p.Descripcion == "":
		return nil, apperrors.NewValidationError("descripcion", "La descripción del producto es obligatoria")
	case in.Precio == nil || !in.Precio.IsPositive():
		return nil, invalidPrecio()
	case in.Stock == nil:
		return nil, apperrors.Required("stock")
	case *in.Stock < 0:
		return nil, invalidStock()
	case in.CategoriaID == nil || *in.CategoriaID == 0:
		return nil, apperrors.NewValidationError("categoria_id", "Debe especificar una categoría")
	case in.MarcaID == nil || *in.MarcaID == 0:
		return nil, apperrors.NewValidationError("marca_id", "Debe especificar una marca")
	}
	p.Precio = *in.Precio
	p.Stock = *in.Stock

	if err := s.resolveRefs(ctx, p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productoService) Update(ctx context.Context, id uint, in ProductoInput) (*model.Producto, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := setNonEmpty("nombre", in.Nombre, &p.Nombre); err != nil {
		return nil, err
	}
	if err := setNonEmpty("descripcion", in.Descripcion, &p.Descripcion); err != nil {
		return nil, err
	}
	if in.Precio != nil {
		if !in.Precio.IsPositive() {
			return nil, invalidPrecio()
		}
		p.Precio = *in.Precio
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, invalidStock()
		}
		p.Stock = *in.Stock
	}
	if in.ImageURL != nil {
		p.ImageURL = in.ImageURL
	}
	if err := s.resolveRefs(ctx, p, in); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// resolveRefs checks and attaches every reference present in in.
func (s *productoService) resolveRefs(ctx context.Context, p *model.Producto, in ProductoInput) error {
	if in.CategoriaID != nil {
		categoria, err := mustExist(ctx, "categoria_id", *in.CategoriaID, s.categorias.FindByID)
		if err != nil {
			return err
		}
		p.CategoriaID, p.Categoria = categoria.ID, categoria
	}
	if in.MarcaID != nil {
		marca, err := mustExist(ctx, "marca_id", *in.MarcaID, s.marcas.FindByID)
		if err != nil {
			return err
		}
		p.MarcaID, p.Marca = marca.ID, marca
	}
	if in.GarantiaID != nil {
		if *in.GarantiaID == 0 {
			p.GarantiaID, p.Garantia = nil, nil
			return nil
		}
		garantia, err := mustExist(ctx, "garantia_id", *in.GarantiaID, s.garantias.FindByID)
		if err != nil {
			return err
		}
		p.GarantiaID, p.Garantia = &garantia.ID, garantia
	}
	return nil
}

func (s *productoService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// AttachImage stores data as the producto image and records its public URL.
// The type is sniffed from the bytes; filename only supplies a fallback extension.
func (s *productoService) AttachImage(ctx context.Context, id uint, filename string, data []byte) (*model.Producto, error) {
	if s.images == nil {
		return nil, apperrors.ErrStorageUnavailable
	}
	if len(data) == 0 {
		return nil, apperrors.Required("imagen")
	}
	if len(data) > MaxImageSize {
		return nil, apperrors.NewValidationError("imagen", "La imagen no puede superar %d MB", MaxImageSize>>20)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, apperrors.NewValidationError("imagen", "Tipo de archivo no permitido: %s", mt.String())
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	ext := mt.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	key := fmt.Sprintf("productos/%d/%s%s", id, uuid.NewString(), ext)

	url, err := s.images.Put(ctx, key, mt.String(), data)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	if err := s.repo.UpdateImageURL(ctx, id, url); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func invalidPrecio() error {
	return apperrors.NewValidationError("precio", "El precio debe ser mayor a 0")
}

func invalidStock() error {
	return apperrors.NewValidationError("stock", "El stock no puede ser negativo")
}
