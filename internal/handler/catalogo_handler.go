package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tienda/internal/service"
)

// CatalogoHandler handles categorias, marcas and garantias.
type CatalogoHandler struct {
	categorias service.CategoriaService
	marcas     service.MarcaService
	garantias  service.GarantiaService
}

// NewCatalogoHandler creates a new catalog handler.
func NewCatalogoHandler(
	categorias service.CategoriaService,
	marcas service.MarcaService,
	garantias service.GarantiaService,
) *CatalogoHandler {
	return &CatalogoHandler{categorias: categorias, marcas: marcas, garantias: garantias}
}

// CategoriaRequest represents a categoria create or update request.
type CategoriaRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

// MarcaRequest represents a marca create or update request.
type MarcaRequest struct {
	Nombre *string `json:"nombre"`
}

// GarantiaRequest represents a garantia create or update request. Cobertura is in months.
type GarantiaRequest struct {
	Cobertura *int  `json:"cobertura"`
	MarcaID   *uint `json:"marca_id"`
}

// ListCategorias godoc
// @Summary List categorias
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /products/categorias [get]
func (h *CatalogoHandler) ListCategorias(c echo.Context) error {
	items, err := h.categorias.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "categorias", items)
}

// GetCategoria godoc
// @Summary Get a categoria
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Categoria ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/categorias/{id} [get]
func (h *CatalogoHandler) GetCategoria(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.categorias.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "categoria", item)
}

// CreateCategoria godoc
// @Summary Create a categoria
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoriaRequest true "Categoria"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /products/categorias/create [post]
func (h *CatalogoHandler) CreateCategoria(c echo.Context) error {
	var req CategoriaRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.categorias.Create(c.Request().Context(), service.CategoriaInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "categoria", item)
}

// UpdateCategoria godoc
// @Summary Update a categoria
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Categoria ID"
// @Param request body CategoriaRequest true "Changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/categorias/{id}/update [put]
func (h *CatalogoHandler) UpdateCategoria(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req CategoriaRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.categorias.Update(c.Request().Context(), id, service.CategoriaInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "categoria", item)
}

// DeleteCategoria godoc
// @Summary Delete a categoria and its productos
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Categoria ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/categorias/{id}/delete [delete]
func (h *CatalogoHandler) DeleteCategoria(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.categorias.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "Categoría eliminada")
}

// ListMarcas godoc
// @Summary List marcas
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /products/marcas [get]
func (h *CatalogoHandler) ListMarcas(c echo.Context) error {
	items, err := h.marcas.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "marcas", items)
}

// GetMarca godoc
// @Summary Get a marca
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Marca ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/marcas/{id} [get]
func (h *CatalogoHandler) GetMarca(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.marcas.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "marca", item)
}

// CreateMarca godoc
// @Summary Create a marca
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarcaRequest true "Marca"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /products/marcas/create [post]
func (h *CatalogoHandler) CreateMarca(c echo.Context) error {
	var req MarcaRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.marcas.Create(c.Request().Context(), service.MarcaInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "marca", item)
}

// UpdateMarca godoc
// @Summary Update a marca
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Marca ID"
// @Param request body MarcaRequest true "Changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/marcas/{id}/update [put]
func (h *CatalogoHandler) UpdateMarca(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req MarcaRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.marcas.Update(c.Request().Context(), id, service.MarcaInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "marca", item)
}

// DeleteMarca godoc
// @Summary Delete a marca with its garantias and productos
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Marca ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/marcas/{id}/delete [delete]
func (h *CatalogoHandler) DeleteMarca(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.marcas.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "Marca eliminada")
}

// ListGarantias godoc
// @Summary List garantias
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /products/garantias [get]
func (h *CatalogoHandler) ListGarantias(c echo.Context) error {
	items, err := h.garantias.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "garantias", items)
}

// GetGarantia godoc
// @Summary Get a garantia
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Garantia ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/garantias/{id} [get]
func (h *CatalogoHandler) GetGarantia(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.garantias.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "garantia", item)
}

// CreateGarantia godoc
// @Summary Create a garantia
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GarantiaRequest true "Garantia"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /products/garantias/create [post]
func (h *CatalogoHandler) CreateGarantia(c echo.Context) error {
	var req GarantiaRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.garantias.Create(c.Request().Context(), service.GarantiaInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "garantia", item)
}

// UpdateGarantia godoc
// @Summary Update a garantia
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Garantia ID"
// @Param request body GarantiaRequest true "Changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/garantias/{id}/update [put]
func (h *CatalogoHandler) UpdateGarantia(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req GarantiaRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.garantias.Update(c.Request().Context(), id, service.GarantiaInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "garantia", item)
}

// DeleteGarantia godoc
// @Summary Delete a garantia and the productos covered by it
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Garantia ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/garantias/{id}/delete [delete]
func (h *CatalogoHandler) DeleteGarantia(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.garantias.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "Garantía eliminada")
}
