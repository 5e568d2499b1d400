package handler

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "tienda/internal/errors"
	"tienda/internal/service"
)

// ProductoHandler handles producto endpoints.
type ProductoHandler struct {
	productoService service.ProductoService
}

// NewProductoHandler creates a new producto handler.
func NewProductoHandler(productoService service.ProductoService) *ProductoHandler {
	return &ProductoHandler{productoService: productoService}
}

// ProductoRequest represents a producto create or update request.
// garantia_id 0 removes the warranty.
type ProductoRequest struct {
	Nombre      *string          `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio" swaggertype:"string"`
	Stock       *int             `json:"stock"`
	CategoriaID *uint            `json:"categoria_id"`
	MarcaID     *uint            `json:"marca_id"`
	GarantiaID  *uint            `json:"garantia_id"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,url"`
}

// ImagenRequest is the JSON form of an image upload. A data URL prefix is allowed.
type ImagenRequest struct {
	ImagenBase64 string `json:"imagen_base64"`
	Filename     string `json:"filename"`
}

// ListProductos godoc
// @Summary List productos
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /products/productos [get]
func (h *ProductoHandler) ListProductos(c echo.Context) error {
	items, err := h.productoService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "productos", items)
}

// GetProducto godoc
// @Summary Get a producto
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Producto ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/productos/{id} [get]
func (h *ProductoHandler) GetProducto(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.productoService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "producto", item)
}

// CreateProducto godoc
// @Summary Create a producto
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductoRequest true "Producto"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /products/productos/create [post]
func (h *ProductoHandler) CreateProducto(c echo.Context) error {
	var req ProductoRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.productoService.Create(c.Request().Context(), service.ProductoInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "producto", item)
}

// UpdateProducto godoc
// @Summary Update a producto
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Producto ID"
// @Param request body ProductoRequest true "Changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/productos/{id}/update [put]
func (h *ProductoHandler) UpdateProducto(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req ProductoRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.productoService.Update(c.Request().Context(), id, service.ProductoInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "producto", item)
}

// DeleteProducto godoc
// @Summary Delete a producto
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Producto ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/productos/{id}/delete [delete]
func (h *ProductoHandler) DeleteProducto(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.productoService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "Producto eliminado")
}

// UploadImagen godoc
// @Summary Upload the producto image
// @Description multipart/form-data with field "imagen", or JSON {"imagen_base64": "..."}.
// @Tags products
// @Accept mpfd
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Producto ID"
// @Param imagen formData file false "Image file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /products/productos/{id}/imagen [post]
func (h *ProductoHandler) UploadImagen(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var filename string
	var data []byte
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		filename, data, err = readFormImage(c)
	} else {
		filename, data, err = readBase64Image(c)
	}
	if err != nil {
		return err
	}

	item, err := h.productoService.AttachImage(c.Request().Context(), id, filename, data)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "producto", item)
}

func readFormImage(c echo.Context) (string, []byte, error) {
	fh, err := c.FormFile("imagen")
	if err != nil {
		return "", nil, apperrors.Required("imagen")
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	// one byte past the limit so the service can reject oversize files
	data, err := io.ReadAll(io.LimitReader(f, service.MaxImageSize+1))
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}

func readBase64Image(c echo.Context) (string, []byte, error) {
	var req ImagenRequest
	if err := bind(c, &req); err != nil {
		return "", nil, err
	}
	raw := strings.TrimSpace(req.ImagenBase64)
	if raw == "" {
		return "", nil, apperrors.Required("imagen")
	}
	if strings.HasPrefix(raw, "data:") {
		if i := strings.IndexByte(raw, ','); i >= 0 {
			raw = raw[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", nil, apperrors.NewValidationError("imagen", "La imagen no es base64 válido")
	}
	return req.Filename, data, nil
}
