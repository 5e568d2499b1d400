package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/service"
	"tienda/internal/testutil"
)

// MockProductoService is a mock implementation of service.ProductoService.
type MockProductoService struct {
	mock.Mock
}

func (m *MockProductoService) List(ctx context.Context) ([]model.Producto, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Producto), args.Error(1)
}

func (m *MockProductoService) Get(ctx context.Context, id uint) (*model.Producto, error) {
	return m.producto(m.Called(ctx, id))
}

func (m *MockProductoService) Create(ctx context.Context, in service.ProductoInput) (*model.Producto, error) {
	return m.producto(m.Called(ctx, in))
}

func (m *MockProductoService) Update(ctx context.Context, id uint, in service.ProductoInput) (*model.Producto, error) {
	return m.producto(m.Called(ctx, id, in))
}

func (m *MockProductoService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductoService) AttachImage(ctx context.Context, id uint, filename string, data []byte) (*model.Producto, error) {
	return m.producto(m.Called(ctx, id, filename, data))
}

func (m *MockProductoService) producto(args mock.Arguments) (*model.Producto, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Producto), args.Error(1)
}

var fakeImage = []byte("\x89PNG\r\n\x1a\nrest-of-image")

func uploadRequest(t *testing.T, h *ProductoHandler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(testutil.QuietLogger())
	e.POST("/products/productos/:id/imagen", h.UploadImagen)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProductoHandler_UploadImagen(t *testing.T) {
	url := "https://cdn.example/productos/7/a.png"
	stored := &model.Producto{ID: 7, ImageURL: &url}

	multipartBody := func() (*bytes.Buffer, string) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("imagen", "foto.png")
		require.NoError(t, err)
		_, err = part.Write(fakeImage)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		return &buf, w.FormDataContentType()
	}

	tests := []struct {
		name         string
		request      func() *http.Request
		setupMock    func(*MockProductoService)
		expectedCode int
	}{
		{
			name: "multipart",
			request: func() *http.Request {
				body, ct := multipartBody()
				req := httptest.NewRequest(http.MethodPost, "/products/productos/7/imagen", body)
				req.Header.Set(echo.HeaderContentType, ct)
				return req
			},
			setupMock: func(m *MockProductoService) {
				m.On("AttachImage", mock.Anything, uint(7), "foto.png", fakeImage).Return(stored, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "base64 data url",
			request: func() *http.Request {
				payload, _ := json.Marshal(ImagenRequest{
					ImagenBase64: "data:image/png;base64," + base64.StdEncoding.EncodeToString(fakeImage),
				})
				req := httptest.NewRequest(http.MethodPost, "/products/productos/7/imagen", bytes.NewReader(payload))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				return req
			},
			setupMock: func(m *MockProductoService) {
				m.On("AttachImage", mock.Anything, uint(7), "", fakeImage).Return(stored, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "invalid base64",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/products/productos/7/imagen",
					bytes.NewReader([]byte(`{"imagen_base64":"%%%"}`)))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				return req
			},
			setupMock:    func(m *MockProductoService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "multipart without imagen field",
			request: func() *http.Request {
				var buf bytes.Buffer
				w := multipart.NewWriter(&buf)
				require.NoError(t, w.WriteField("otro", "x"))
				require.NoError(t, w.Close())
				req := httptest.NewRequest(http.MethodPost, "/products/productos/7/imagen", &buf)
				req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
				return req
			},
			setupMock:    func(m *MockProductoService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "storage not configured",
			request: func() *http.Request {
				body, ct := multipartBody()
				req := httptest.NewRequest(http.MethodPost, "/products/productos/7/imagen", body)
				req.Header.Set(echo.HeaderContentType, ct)
				return req
			},
			setupMock: func(m *MockProductoService) {
				m.On("AttachImage", mock.Anything, uint(7), "foto.png", fakeImage).Return(nil, apperrors.ErrStorageUnavailable)
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductoService)
			tt.setupMock(mockService)

			rec := uploadRequest(t, NewProductoHandler(mockService), tt.request())

			assert.Equal(t, tt.expectedCode, rec.Code, rec.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductoHandler_CreateDecodesPrecio(t *testing.T) {
	mockService := new(MockProductoService)
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(in service.ProductoInput) bool {
		return in.Precio != nil && in.Precio.String() == "99.9" && *in.CategoriaID == 1 && in.GarantiaID == nil
	})).Return(&model.Producto{ID: 1, Nombre: "Mouse"}, nil)

	code, body := serve(t, NewProductoHandler(mockService).CreateProducto, http.MethodPost,
		`{"nombre":"Mouse","descripcion":"x","precio":"99.90","stock":3,"categoria_id":1,"marca_id":2}`)

	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Mouse", body["producto"].(map[string]any)["nombre"])
	mockService.AssertExpectations(t)
}
