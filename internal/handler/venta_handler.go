package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tienda/internal/auth"
	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/service"
)

// VentaHandler handles payment methods and sale notes.
type VentaHandler struct {
	ventaService service.VentaService
}

// NewVentaHandler creates a new venta handler.
func NewVentaHandler(ventaService service.VentaService) *VentaHandler {
	return &VentaHandler{ventaService: ventaService}
}

// MetodoPagoRequest represents a payment method creation request.
type MetodoPagoRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Estado      *bool   `json:"estado"`
}

// CreateNotaRequest represents a sale.
type CreateNotaRequest struct {
	MetodoPagoID uint                `json:"metodo_pago_id"`
	Detalles     []service.ItemInput `json:"detalles"`
}

// ListMetodosPago godoc
// @Summary List payment methods
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /sales/metodos-pago [get]
func (h *VentaHandler) ListMetodosPago(c echo.Context) error {
	items, err := h.ventaService.ListMetodosPago(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "metodos_pago", items)
}

// CreateMetodoPago godoc
// @Summary Create a payment method
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MetodoPagoRequest true "Payment method"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /sales/metodos-pago/create [post]
func (h *VentaHandler) CreateMetodoPago(c echo.Context) error {
	var req MetodoPagoRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.ventaService.CreateMetodoPago(c.Request().Context(), service.MetodoPagoInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "metodo_pago", item)
}

// ListNotas godoc
// @Summary List sale notes
// @Description Administradores see every note, everyone else only their own.
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /sales/notas [get]
func (h *VentaHandler) ListNotas(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	items, err := h.ventaService.ListNotasVenta(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "notas", items)
}

// CreateNota godoc
// @Summary Record a sale
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNotaRequest true "Sale"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /sales/notas/create [post]
func (h *VentaHandler) CreateNota(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req CreateNotaRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	nota, err := h.ventaService.CreateNotaVenta(c.Request().Context(), actor, service.CreateNotaInput{
		MetodoPagoID: req.MetodoPagoID,
		Items:        req.Detalles,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "nota", nota)
}

// GetNota godoc
// @Summary Get a sale note
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path int true "Nota ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sales/notas/{id} [get]
func (h *VentaHandler) GetNota(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	nota, err := h.ventaService.GetNotaVenta(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "nota", nota)
}

// AnularNota godoc
// @Summary Annul a sale note and restore stock
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path int true "Nota ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sales/notas/{id}/anular [put]
func (h *VentaHandler) AnularNota(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	nota, err := h.ventaService.AnularNotaVenta(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "nota", nota)
}

func currentActor(c echo.Context) (*model.Usuario, error) {
	u, ok := auth.CurrentUser(c)
	if !ok {
		return nil, apperrors.ErrAuthHeaderMissing
	}
	return u, nil
}
