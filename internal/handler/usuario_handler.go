package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tienda/internal/service"
)

// UsuarioHandler handles account management endpoints.
type UsuarioHandler struct {
	usuarioService service.UsuarioService
}

// NewUsuarioHandler creates a new usuario handler.
func NewUsuarioHandler(usuarioService service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarioService: usuarioService}
}

// UpdateUsuarioRequest holds optional credential changes.
type UpdateUsuarioRequest struct {
	Correo   *string `json:"correo" validate:"omitempty,email"`
	Password *string `json:"password"`
}

// UpdateClienteRequest holds optional cliente changes.
type UpdateClienteRequest struct {
	UpdateUsuarioRequest
	Nombres         *string `json:"nombres"`
	ApellidoPaterno *string `json:"apellidoPaterno"`
	ApellidoMaterno *string `json:"apellidoMaterno"`
	CI              *string `json:"ci"`
	Telefono        *string `json:"telefono"`
}

// UpdateAdminRequest holds optional administrador changes. Nombres is accepted for Nombre.
type UpdateAdminRequest struct {
	UpdateUsuarioRequest
	Nombre  *string `json:"nombre"`
	Nombres *string `json:"nombres"`
}

func (r UpdateUsuarioRequest) input() service.UpdateUsuarioInput {
	return service.UpdateUsuarioInput{Correo: r.Correo, Password: r.Password}
}

// ListUsuarios godoc
// @Summary List usuarios
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UsuarioHandler) ListUsuarios(c echo.Context) error {
	usuarios, err := h.usuarioService.ListUsuarios(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "users", usuarioPayloads(usuarios))
}

// GetUsuario godoc
// @Summary Get a usuario
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UsuarioHandler) GetUsuario(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	usuario, err := h.usuarioService.GetUsuario(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "usuario", newUsuarioPayload(usuario, ""))
}

// UpdateUsuario godoc
// @Summary Update a usuario's credentials
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Param request body UpdateUsuarioRequest true "Changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/update [put]
func (h *UsuarioHandler) UpdateUsuario(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateUsuarioRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	usuario, err := h.usuarioService.UpdateUsuario(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "usuario", newUsuarioPayload(usuario, ""))
}

// DeleteUsuario godoc
// @Summary Delete a usuario and its extension
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/delete [delete]
func (h *UsuarioHandler) DeleteUsuario(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.usuarioService.DeleteUsuario(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "Usuario eliminado")
}

// ListClientes godoc
// @Summary List clientes
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /users/clientes [get]
func (h *UsuarioHandler) ListClientes(c echo.Context) error {
	clientes, err := h.usuarioService.ListClientes(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "clientes", mapSlice(clientes, newClienteResponse))
}

// GetCliente godoc
// @Summary Get a cliente
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cliente ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/clientes/{id} [get]
func (h *UsuarioHandler) GetCliente(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	cliente, err := h.usuarioService.GetCliente(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "cliente", newClienteResponse(cliente))
}

// UpdateCliente godoc
// @Summary Update a cliente
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cliente ID"
// @Param request body UpdateClienteRequest true "Changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/clientes/{id}/update [put]
func (h *UsuarioHandler) UpdateCliente(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateClienteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cliente, err := h.usuarioService.UpdateCliente(c.Request().Context(), id, service.UpdateClienteInput{
		UpdateUsuarioInput: req.UpdateUsuarioRequest.input(),
		Nombres:            req.Nombres,
		ApellidoPaterno:    req.ApellidoPaterno,
		ApellidoMaterno:    req.ApellidoMaterno,
		CI:                 req.CI,
		Telefono:           req.Telefono,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "cliente", newClienteResponse(cliente))
}

// DeleteCliente godoc
// @Summary Delete a cliente and its usuario
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Cliente ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/clientes/{id}/delete [delete]
func (h *UsuarioHandler) DeleteCliente(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.usuarioService.DeleteCliente(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "Cliente eliminado")
}

// ListAdmins godoc
// @Summary List administradores
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /users/admins [get]
func (h *UsuarioHandler) ListAdmins(c echo.Context) error {
	admins, err := h.usuarioService.ListAdmins(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "admins", mapSlice(admins, newAdminResponse))
}

// GetAdmin godoc
// @Summary Get an administrador
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Administrador ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/admins/{id} [get]
func (h *UsuarioHandler) GetAdmin(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	admin, err := h.usuarioService.GetAdmin(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "admin", newAdminResponse(admin))
}

// UpdateAdmin godoc
// @Summary Update an administrador
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Administrador ID"
// @Param request body UpdateAdminRequest true "Changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/admins/{id}/update [put]
func (h *UsuarioHandler) UpdateAdmin(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	nombre := req.Nombre
	if nombre == nil {
		nombre = req.Nombres
	}
	admin, err := h.usuarioService.UpdateAdmin(c.Request().Context(), id, service.UpdateAdminInput{
		UpdateUsuarioInput: req.UpdateUsuarioRequest.input(),
		Nombre:             nombre,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "admin", newAdminResponse(admin))
}

// DeleteAdmin godoc
// @Summary Delete an administrador and its usuario
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Administrador ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/admins/{id}/delete [delete]
func (h *UsuarioHandler) DeleteAdmin(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.usuarioService.DeleteAdmin(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "Administrador eliminado")
}
