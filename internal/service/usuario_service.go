package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tienda/internal/cache"
	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/repository"
)

const usuarioCacheTTL = 5 * time.Minute

// UpdateUsuarioInput holds optional credential changes; nil leaves a field as is.
type UpdateUsuarioInput struct {
	Correo   *string
	Password *string
}

// UpdateClienteInput holds optional changes to a cliente and its usuario.
type UpdateClienteInput struct {
	UpdateUsuarioInput
	Nombres         *string
	ApellidoPaterno *string
	ApellidoMaterno *string
	CI              *string
	Telefono        *string
}

// UpdateAdminInput holds optional changes to an administrador and its usuario.
type UpdateAdminInput struct {
	UpdateUsuarioInput
	Nombre *string
}

// UsuarioService manages accounts after registration.
type UsuarioService interface {
	ListUsuarios(ctx context.Context) ([]model.Usuario, error)
	GetUsuario(ctx context.Context, id uint) (*model.Usuario, error)
	UpdateUsuario(ctx context.Context, id uint, in UpdateUsuarioInput) (*model.Usuario, error)
	DeleteUsuario(ctx context.Context, id uint) error

	ListClientes(ctx context.Context) ([]model.Usuario, error)
	GetCliente(ctx context.Context, id uint) (*model.Usuario, error)
	UpdateCliente(ctx context.Context, id uint, in UpdateClienteInput) (*model.Usuario, error)
	DeleteCliente(ctx context.Context, id uint) error

	ListAdmins(ctx context.Context) ([]model.Usuario, error)
	GetAdmin(ctx context.Context, id uint) (*model.Usuario, error)
	UpdateAdmin(ctx context.Context, id uint, in UpdateAdminInput) (*model.Usuario, error)
	DeleteAdmin(ctx context.Context, id uint) error
}

type usuarioService struct {
	repo  repository.UsuarioRepository
	cache *cache.Client
}

// NewUsuarioService builds a UsuarioService with repository and cache.
func NewUsuarioService(repo repository.UsuarioRepository, cache *cache.Client) UsuarioService {
	return &usuarioService{repo: repo, cache: cache}
}

func (s *usuarioService) cacheKey(id uint) string {
	return cache.Key("usuario", id)
}

func (s *usuarioService) ListUsuarios(ctx context.Context) ([]model.Usuario, error) {
	return s.repo.List(ctx)
}

func (s *usuarioService) GetUsuario(ctx context.Context, id uint) (*model.Usuario, error) {
	var cached model.Usuario
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, s.cacheKey(id), usuario, usuarioCacheTTL)
	return usuario, nil
}

func (s *usuarioService) UpdateUsuario(ctx context.Context, id uint, in UpdateUsuarioInput) (*model.Usuario, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyCredentials(ctx, usuario, in); err != nil {
		return nil, err
	}
	return s.save(ctx, usuario)
}

func (s *usuarioService) DeleteUsuario(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *usuarioService) ListClientes(ctx context.Context) ([]model.Usuario, error) {
	return s.repo.ListByRole(ctx, model.RoleCliente)
}

func (s *usuarioService) GetCliente(ctx context.Context, id uint) (*model.Usuario, error) {
	return s.findWithRole(ctx, id, model.RoleCliente)
}

func (s *usuarioService) UpdateCliente(ctx context.Context, id uint, in UpdateClienteInput) (*model.Usuario, error) {
	usuario, err := s.findWithRole(ctx, id, model.RoleCliente)
	if err != nil {
		return nil, err
	}
	if err := s.applyCredentials(ctx, usuario, in.UpdateUsuarioInput); err != nil {
		return nil, err
	}

	c := usuario.Cliente
	for _, f := range []struct {
		name  string
		value *string
		dst   *string
	}{
		{"nombres", in.Nombres, &c.Nombres},
		{"apellidoPaterno", in.ApellidoPaterno, &c.ApellidoPaterno},
		{"apellidoMaterno", in.ApellidoMaterno, &c.ApellidoMaterno},
		{"ci", in.CI, &c.CI},
	} {
		if err := setNonEmpty(f.name, f.value, f.dst); err != nil {
			return nil, err
		}
	}
	if in.Telefono != nil {
		tel := strings.TrimSpace(*in.Telefono)
		if tel == "" {
			c.Telefono = nil
		} else {
			c.Telefono = &tel
		}
	}
	return s.save(ctx, usuario)
}

func (s *usuarioService) DeleteCliente(ctx context.Context, id uint) error {
	if _, err := s.findWithRole(ctx, id, model.RoleCliente); err != nil {
		return err
	}
	return s.DeleteUsuario(ctx, id)
}

func (s *usuarioService) ListAdmins(ctx context.Context) ([]model.Usuario, error) {
	return s.repo.ListByRole(ctx, model.RoleAdmin)
}

func (s *usuarioService) GetAdmin(ctx context.Context, id uint) (*model.Usuario, error) {
	return s.findWithRole(ctx, id, model.RoleAdmin)
}

func (s *usuarioService) UpdateAdmin(ctx context.Context, id uint, in UpdateAdminInput) (*model.Usuario, error) {
	usuario, err := s.findWithRole(ctx, id, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.applyCredentials(ctx, usuario, in.UpdateUsuarioInput); err != nil {
		return nil, err
	}
	if err := setNonEmpty("nombre", in.Nombre, &usuario.Administrador.Nombre); err != nil {
		return nil, err
	}
	return s.save(ctx, usuario)
}

func (s *usuarioService) DeleteAdmin(ctx context.Context, id uint) error {
	if _, err := s.findWithRole(ctx, id, model.RoleAdmin); err != nil {
		return err
	}
	return s.DeleteUsuario(ctx, id)
}

// findWithRole loads usuario id and reports it missing unless it has rol.
func (s *usuarioService) findWithRole(ctx context.Context, id uint, rol model.Role) (*model.Usuario, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, roleNotFound(rol, id)
		}
		return nil, err
	}
	switch {
	case rol == model.RoleCliente && (usuario.Rol != rol || usuario.Cliente == nil),
		rol == model.RoleAdmin && (usuario.Rol != rol || usuario.Administrador == nil):
		return nil, roleNotFound(rol, id)
	}
	return usuario, nil
}

func roleNotFound(rol model.Role, id uint) error {
	if rol == model.RoleAdmin {
		return apperrors.NewNotFound("Administrador", id)
	}
	return apperrors.NewNotFound("Cliente", id)
}

func (s *usuarioService) applyCredentials(ctx context.Context, usuario *model.Usuario, in UpdateUsuarioInput) error {
	if in.Correo != nil {
		correo := strings.TrimSpace(*in.Correo)
		if correo == "" {
			return emptyField("correo")
		}
		if correo != usuario.Correo {
			if err := ensureCorreoFree(ctx, s.repo, correo, usuario.ID); err != nil {
				return err
			}
			usuario.Correo = correo
		}
	}
	if in.Password != nil {
		if *in.Password == "" {
			return emptyField("password")
		}
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return err
		}
		usuario.Password = hash
	}
	return nil
}

func (s *usuarioService) save(ctx context.Context, usuario *model.Usuario) (*model.Usuario, error) {
	if err := s.repo.Update(ctx, usuario); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, correoTaken(usuario.Correo)
		}
		return nil, fmt.Errorf("update usuario: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(usuario.ID))
	return usuario, nil
}

// setNonEmpty trims *value into dst; nil leaves dst untouched, blank is rejected.
func setNonEmpty(field string, value *string, dst *string) error {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return emptyField(field)
	}
	*dst = v
	return nil
}

func emptyField(field string) error {
	return apperrors.NewValidationError(field, "El campo %s no puede estar vacío", field)
}
