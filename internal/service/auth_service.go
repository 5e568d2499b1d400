package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"tienda/internal/auth"
	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/repository"
)

const bcryptCost = 10

// dummyHash is compared against when the correo is unknown, so both failure
// paths of Authenticate cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("tienda-dummy-password"), bcryptCost)
	return h
})

// LoginResult is the outcome of a successful Authenticate.
type LoginResult struct {
	Usuario *model.Usuario
	Token   string
}

// CreateUsuarioInput carries the fields for every kind of account. Tipo selects
// which extension is created: "usuario" (or empty), "cliente" or "admin".
type CreateUsuarioInput struct {
	Correo   string
	Password string
	Tipo     string

	// Cliente
	Nombres         string
	ApellidoPaterno string
	ApellidoMaterno string
	CI              string
	Telefono        *string

	// Administrador
	Nombre string
}

// AuthService handles authentication operations.
type AuthService interface {
	Authenticate(ctx context.Context, correo, password string) (*LoginResult, error)
	IssueToken(userID uint) (string, error)
	CreateUser(ctx context.Context, in CreateUsuarioInput) (*model.Usuario, error)
	CreateCliente(ctx context.Context, in CreateUsuarioInput) (*model.Usuario, error)
	CreateAdmin(ctx context.Context, in CreateUsuarioInput) (*model.Usuario, error)
}

type authService struct {
	usuarios   repository.UsuarioRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(usuarios repository.UsuarioRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		usuarios:   usuarios,
		jwtService: jwtService,
	}
}

// Authenticate verifies correo and password and returns the usuario with a fresh token.
// An unknown correo and a wrong password both yield apperrors.ErrInvalidCredentials.
func (s *authService) Authenticate(ctx context.Context, correo, password string) (*LoginResult, error) {
	usuario, err := s.usuarios.FindByEmail(ctx, correo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find usuario: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.IssueToken(usuario.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Usuario: usuario, Token: token}, nil
}

func (s *authService) IssueToken(userID uint) (string, error) {
	token, err := s.jwtService.IssueToken(userID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// CreateUser dispatches on in.Tipo.
func (s *authService) CreateUser(ctx context.Context, in CreateUsuarioInput) (*model.Usuario, error) {
	switch strings.ToLower(strings.TrimSpace(in.Tipo)) {
	case "", string(model.RoleUsuario):
		return s.create(ctx, in, model.RoleUsuario)
	case string(model.RoleCliente):
		return s.create(ctx, in, model.RoleCliente)
	case string(model.RoleAdmin):
		return s.create(ctx, in, model.RoleAdmin)
	default:
		return nil, apperrors.NewValidationError("tipo_usuario", "Tipo de usuario inválido: %s", in.Tipo)
	}
}

func (s *authService) CreateCliente(ctx context.Context, in CreateUsuarioInput) (*model.Usuario, error) {
	return s.create(ctx, in, model.RoleCliente)
}

func (s *authService) CreateAdmin(ctx context.Context, in CreateUsuarioInput) (*model.Usuario, error) {
	return s.create(ctx, in, model.RoleAdmin)
}

func (s *authService) create(ctx context.Context, in CreateUsuarioInput, rol model.Role) (*model.Usuario, error) {
	usuario, err := buildUsuario(in, rol)
	if err != nil {
		return nil, err
	}

	if err := ensureCorreoFree(ctx, s.usuarios, usuario.Correo, 0); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	usuario.Password = hash

	if err := s.usuarios.Create(ctx, usuario); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, correoTaken(usuario.Correo)
		}
		return nil, fmt.Errorf("create usuario: %w", err)
	}
	return usuario, nil
}

// buildUsuario validates in for rol and returns the unsaved usuario with its extension.
func buildUsuario(in CreateUsuarioInput, rol model.Role) (*model.Usuario, error) {
	correo := strings.TrimSpace(in.Correo)
	if correo == "" {
		return nil, apperrors.Required("correo")
	}
	if in.Password == "" {
		return nil, apperrors.Required("password")
	}

	usuario := &model.Usuario{Correo: correo, Rol: rol}
	switch rol {
	case model.RoleCliente:
		cliente := &model.Cliente{
			Nombres:         strings.TrimSpace(in.Nombres),
			ApellidoPaterno: strings.TrimSpace(in.ApellidoPaterno),
			ApellidoMaterno: strings.TrimSpace(in.ApellidoMaterno),
			CI:              strings.TrimSpace(in.CI),
			Telefono:        in.Telefono,
		}
		for _, f := range []struct{ name, value string }{
			{"nombres", cliente.Nombres},
			{"apellidoPaterno", cliente.ApellidoPaterno},
			{"apellidoMaterno", cliente.ApellidoMaterno},
			{"ci", cliente.CI},
		} {
			if f.value == "" {
				return nil, apperrors.Required(f.name)
			}
		}
		usuario.Cliente = cliente
	case model.RoleAdmin:
		nombre := strings.TrimSpace(in.Nombre)
		if nombre == "" {
			return nil, apperrors.Required("nombre")
		}
		usuario.Administrador = &model.Administrador{Nombre: nombre}
	}
	return usuario, nil
}

// ensureCorreoFree fails when correo belongs to a usuario other than selfID.
func ensureCorreoFree(ctx context.Context, repo repository.UsuarioRepository, correo string, selfID uint) error {
	existing, err := repo.FindByEmail(ctx, correo)
	switch {
	case err == nil && existing.ID != selfID:
		return correoTaken(correo)
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("check correo: %w", err)
	}
	return nil
}

func correoTaken(correo string) error {
	return apperrors.NewValidationError("correo", "El correo %s ya está registrado", correo)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError("password", "La contraseña no puede superar 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
