package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tienda/internal/cache"
	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/repository"
)

const catalogCacheTTL = 5 * time.Minute

// CategoriaInput carries categoria fields; nil means "not sent".
type CategoriaInput struct {
	Nombre      *string
	Descripcion *string
}

// CategoriaService exposes categoria CRUD.
type CategoriaService interface {
	List(ctx context.Context) ([]model.Categoria, error)
	Get(ctx context.Context, id uint) (*model.Categoria, error)
	Create(ctx context.Context, in CategoriaInput) (*model.Categoria, error)
	Update(ctx context.Context, id uint, in CategoriaInput) (*model.Categoria, error)
	Delete(ctx context.Context, id uint) error
}

type categoriaService struct {
	repo  repository.CategoriaRepository
	cache *cache.Client
}

// NewCategoriaService builds a CategoriaService with repository and cache.
func NewCategoriaService(repo repository.CategoriaRepository, cache *cache.Client) CategoriaService {
	return &categoriaService{repo: repo, cache: cache}
}

func (s *categoriaService) List(ctx context.Context) ([]model.Categoria, error) {
	return s.repo.List(ctx)
}

func (s *categoriaService) Get(ctx context.Context, id uint) (*model.Categoria, error) {
	key := cache.Key("categoria", id)
	var cached model.Categoria
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}
	categoria, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, categoria, catalogCacheTTL)
	return categoria, nil
}

func (s *categoriaService) Create(ctx context.Context, in CategoriaInput) (*model.Categoria, error) {
	nombre := trimmed(in.Nombre)
	if nombre == "" {
		return nil, apperrors.NewValidationError("nombre", "El nombre de la categoría es obligatorio")
	}
	categoria := &model.Categoria{Nombre: nombre, Descripcion: in.Descripcion}
	if err := s.repo.Create(ctx, categoria); err != nil {
		return nil, err
	}
	return categoria, nil
}

func (s *categoriaService) Update(ctx context.Context, id uint, in CategoriaInput) (*model.Categoria, error) {
	categoria, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := setNonEmpty("nombre", in.Nombre, &categoria.Nombre); err != nil {
		return nil, err
	}
	if in.Descripcion != nil {
		categoria.Descripcion = in.Descripcion
	}
	if err := s.repo.Update(ctx, categoria); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, cache.Key("categoria", id))
	return categoria, nil
}

func (s *categoriaService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.Key("categoria", id))
	return nil
}

// MarcaInput carries marca fields.
type MarcaInput struct {
	Nombre *string
}

// MarcaService exposes marca CRUD.
type MarcaService interface {
	List(ctx context.Context) ([]model.Marca, error)
	Get(ctx context.Context, id uint) (*model.Marca, error)
	Create(ctx context.Context, in MarcaInput) (*model.Marca, error)
	Update(ctx context.Context, id uint, in MarcaInput) (*model.Marca, error)
	Delete(ctx context.Context, id uint) error
}

type marcaService struct {
	repo  repository.MarcaRepository
	cache *cache.Client
}

// NewMarcaService builds a MarcaService with repository and cache.
func NewMarcaService(repo repository.MarcaRepository, cache *cache.Client) MarcaService {
	return &marcaService{repo: repo, cache: cache}
}

func (s *marcaService) List(ctx context.Context) ([]model.Marca, error) {
	return s.repo.List(ctx)
}

func (s *marcaService) Get(ctx context.Context, id uint) (*model.Marca, error) {
	key := cache.Key("marca", id)
	var cached model.Marca
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}
	marca, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, marca, catalogCacheTTL)
	return marca, nil
}

func (s *marcaService) Create(ctx context.Context, in MarcaInput) (*model.Marca, error) {
	nombre := trimmed(in.Nombre)
	if nombre == "" {
		return nil, apperrors.NewValidationError("nombre", "El nombre de la marca es obligatorio")
	}
	marca := &model.Marca{Nombre: nombre}
	if err := s.repo.Create(ctx, marca); err != nil {
		return nil, err
	}
	return marca, nil
}

func (s *marcaService) Update(ctx context.Context, id uint, in MarcaInput) (*model.Marca, error) {
	marca, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := setNonEmpty("nombre", in.Nombre, &marca.Nombre); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, marca); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, cache.Key("marca", id))
	return marca, nil
}

func (s *marcaService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.Key("marca", id))
	return nil
}

// GarantiaInput carries garantia fields.
type GarantiaInput struct {
	Cobertura *int
	MarcaID   *uint
}

// GarantiaService exposes garantia CRUD.
type GarantiaService interface {
	List(ctx context.Context) ([]model.Garantia, error)
	Get(ctx context.Context, id uint) (*model.Garantia, error)
	Create(ctx context.Context, in GarantiaInput) (*model.Garantia, error)
	Update(ctx context.Context, id uint, in GarantiaInput) (*model.Garantia, error)
	Delete(ctx context.Context, id uint) error
}

type garantiaService struct {
	repo   repository.GarantiaRepository
	marcas repository.MarcaRepository
}

// NewGarantiaService builds a GarantiaService.
func NewGarantiaService(repo repository.GarantiaRepository, marcas repository.MarcaRepository) GarantiaService {
	return &garantiaService{repo: repo, marcas: marcas}
}

func (s *garantiaService) List(ctx context.Context) ([]model.Garantia, error) {
	return s.repo.List(ctx)
}

func (s *garantiaService) Get(ctx context.Context, id uint) (*model.Garantia, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *garantiaService) Create(ctx context.Context, in GarantiaInput) (*model.Garantia, error) {
	if in.Cobertura == nil || *in.Cobertura <= 0 {
		return nil, invalidCobertura()
	}
	if in.MarcaID == nil || *in.MarcaID == 0 {
		return nil, apperrors.NewValidationError("marca_id", "Debe especificar una marca")
	}
	marca, err := mustExist(ctx, "marca_id", *in.MarcaID, s.marcas.FindByID)
	if err != nil {
		return nil, err
	}

	garantia := &model.Garantia{Cobertura: *in.Cobertura, MarcaID: marca.ID}
	if err := s.repo.Create(ctx, garantia); err != nil {
		return nil, err
	}
	garantia.Marca = marca
	return garantia, nil
}

func (s *garantiaService) Update(ctx context.Context, id uint, in GarantiaInput) (*model.Garantia, error) {
	garantia, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Cobertura != nil {
		if *in.Cobertura <= 0 {
			return nil, invalidCobertura()
		}
		garantia.Cobertura = *in.Cobertura
	}
	if in.MarcaID != nil {
		marca, err := mustExist(ctx, "marca_id", *in.MarcaID, s.marcas.FindByID)
		if err != nil {
			return nil, err
		}
		garantia.MarcaID = marca.ID
		garantia.Marca = marca
	}
	if err := s.repo.Update(ctx, garantia); err != nil {
		return nil, err
	}
	return garantia, nil
}

func (s *garantiaService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func invalidCobertura() error {
	return apperrors.NewValidationError("cobertura", "La cobertura debe ser mayor a 0 meses")
}

// mustExist loads a referenced entity; a missing one is a ValidationError on field.
func mustExist[T any](ctx context.Context, field string, id uint, find func(context.Context, uint) (*T, error)) (*T, error) {
	v, err := find(ctx, id)
	if err != nil {
		var nf *apperrors.NotFoundError
		if errors.As(err, &nf) {
			return nil, apperrors.NewValidationError(field, "%s", nf.Error())
		}
		return nil, err
	}
	return v, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
