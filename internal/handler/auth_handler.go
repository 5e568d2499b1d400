package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"tienda/internal/auth"
	apperrors "tienda/internal/errors"
	"tienda/internal/service"
)

// AuthHandler handles login, registration and the current-user profile.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

// RegisterClienteRequest represents a cliente self-registration request.
type RegisterClienteRequest struct {
	Correo          string  `json:"correo" validate:"omitempty,email"`
	Password        string  `json:"password"`
	Nombres         string  `json:"nombres"`
	ApellidoPaterno string  `json:"apellidoPaterno"`
	ApellidoMaterno string  `json:"apellidoMaterno"`
	CI              string  `json:"ci"`
	Telefono        *string `json:"telefono"`
}

// RegisterAdminRequest represents an administrador registration request.
type RegisterAdminRequest struct {
	Correo   string `json:"correo" validate:"omitempty,email"`
	Password string `json:"password"`
	Nombres  string `json:"nombres"`
}

// CreateUserRequest represents a generic account creation request.
// Nombre is the administrador name; Nombres is accepted in its place.
type CreateUserRequest struct {
	RegisterClienteRequest
	TipoUsuario string `json:"tipo_usuario"`
	Nombre      string `json:"nombre"`
}

// Login godoc
// @Summary Log in with correo and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} LoginFailure
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Correo) == "" || req.Password == "" {
		return apperrors.ErrInvalidCredentials
	}

	result, err := h.authService.Authenticate(c.Request().Context(), strings.TrimSpace(req.Correo), req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "usuario", newUsuarioPayload(result.Usuario, result.Token))
}

// RegisterCliente godoc
// @Summary Register a new cliente
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterClienteRequest true "Cliente data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/clientes/register [post]
func (h *AuthHandler) RegisterCliente(c echo.Context) error {
	var req RegisterClienteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	usuario, err := h.authService.CreateCliente(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "cliente", newClienteResponse(usuario))
}

// RegisterAdmin godoc
// @Summary Register a new administrador
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterAdminRequest true "Administrador data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/admins/register [post]
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var req RegisterAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	usuario, err := h.authService.CreateAdmin(c.Request().Context(), service.CreateUsuarioInput{
		Correo:   req.Correo,
		Password: req.Password,
		Nombre:   req.Nombres,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "admin", newAdminResponse(usuario))
}

// CreateUser godoc
// @Summary Create an account of any kind
// @Description tipo_usuario is one of usuario (default), cliente or admin.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "Account data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/create [post]
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := req.input()
	in.Tipo = req.TipoUsuario
	in.Nombre = req.Nombre
	if in.Nombre == "" {
		in.Nombre = req.Nombres
	}

	usuario, err := h.authService.CreateUser(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "usuario", newUsuarioPayload(usuario, ""))
}

// Me godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	usuario, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.ErrAuthHeaderMissing
	}
	return respond(c, http.StatusOK, "usuario", newUsuarioPayload(usuario, ""))
}

func (r RegisterClienteRequest) input() service.CreateUsuarioInput {
	return service.CreateUsuarioInput{
		Correo:          r.Correo,
		Password:        r.Password,
		Nombres:         r.Nombres,
		ApellidoPaterno: r.ApellidoPaterno,
		ApellidoMaterno: r.ApellidoMaterno,
		CI:              r.CI,
		Telefono:        r.Telefono,
	}
}
