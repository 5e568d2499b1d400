package router

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tienda/docs"
	"tienda/internal/auth"
	"tienda/internal/config"
	apperrors "tienda/internal/errors"
	"tienda/internal/handler"
	"tienda/internal/logging"
	"tienda/internal/model"
)

// BodyLimit caps request bodies; base64 images need headroom over the 5 MiB file limit.
const BodyLimit = "8M"

// Register wires routes and middleware.
//
// Authentication is attached per route rather than per group, so a request
// with the wrong method is answered 405 by the router before any auth check.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log logrus.FieldLogger,
	authn echo.MiddlewareFunc,
	authHandler *handler.AuthHandler,
	usuarioHandler *handler.UsuarioHandler,
	catalogoHandler *handler.CatalogoHandler,
	productoHandler *handler.ProductoHandler,
	ventaHandler *handler.VentaHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(logging.RequestLogger(log))
	e.Use(middleware.BodyLimit(BodyLimit))

	e.Validator = NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	admin := []echo.MiddlewareFunc{authn, auth.RequireRole(model.RoleAdmin)}
	ownerOrAdmin := []echo.MiddlewareFunc{authn, auth.RequireOwnerOr("id", model.RoleAdmin)}

	// Public routes
	e.POST("/auth", authHandler.Login)
	e.POST("/users/clientes/register", authHandler.RegisterCliente)

	users := e.Group("/users")
	users.GET("/me", authHandler.Me, authn)
	users.POST("/create", authHandler.CreateUser, admin...)
	users.GET("", usuarioHandler.ListUsuarios, admin...)
	users.GET("/:id", usuarioHandler.GetUsuario, admin...)
	users.PUT("/:id/update", usuarioHandler.UpdateUsuario, admin...)
	users.DELETE("/:id/delete", usuarioHandler.DeleteUsuario, admin...)

	users.GET("/clientes", usuarioHandler.ListClientes, admin...)
	users.GET("/clientes/:id", usuarioHandler.GetCliente, ownerOrAdmin...)
	users.PUT("/clientes/:id/update", usuarioHandler.UpdateCliente, ownerOrAdmin...)
	users.DELETE("/clientes/:id/delete", usuarioHandler.DeleteCliente, ownerOrAdmin...)

	users.POST("/admins/register", authHandler.RegisterAdmin, admin...)
	users.GET("/admins", usuarioHandler.ListAdmins, admin...)
	users.GET("/admins/:id", usuarioHandler.GetAdmin, admin...)
	users.PUT("/admins/:id/update", usuarioHandler.UpdateAdmin, admin...)
	users.DELETE("/admins/:id/delete", usuarioHandler.DeleteAdmin, admin...)

	products := e.Group("/products")
	crud(products, "/categorias", authn, catalogoHandler.ListCategorias, catalogoHandler.CreateCategoria,
		catalogoHandler.GetCategoria, catalogoHandler.UpdateCategoria, catalogoHandler.DeleteCategoria)
	crud(products, "/marcas", authn, catalogoHandler.ListMarcas, catalogoHandler.CreateMarca,
		catalogoHandler.GetMarca, catalogoHandler.UpdateMarca, catalogoHandler.DeleteMarca)
	crud(products, "/garantias", authn, catalogoHandler.ListGarantias, catalogoHandler.CreateGarantia,
		catalogoHandler.GetGarantia, catalogoHandler.UpdateGarantia, catalogoHandler.DeleteGarantia)
	crud(products, "/productos", authn, productoHandler.ListProductos, productoHandler.CreateProducto,
		productoHandler.GetProducto, productoHandler.UpdateProducto, productoHandler.DeleteProducto)
	products.POST("/productos/:id/imagen", productoHandler.UploadImagen, authn)

	sales := e.Group("/sales")
	sales.GET("/metodos-pago", ventaHandler.ListMetodosPago, authn)
	sales.POST("/metodos-pago/create", ventaHandler.CreateMetodoPago, admin...)
	sales.GET("/notas", ventaHandler.ListNotas, authn)
	sales.POST("/notas/create", ventaHandler.CreateNota, authn)
	sales.GET("/notas/:id", ventaHandler.GetNota, authn)
	sales.PUT("/notas/:id/anular", ventaHandler.AnularNota, authn)
}

// crud registers the list/create/get/update/delete routes shared by the catalog resources.
func crud(g *echo.Group, prefix string, authn echo.MiddlewareFunc, list, create, get, update, del echo.HandlerFunc) {
	g.GET(prefix, list, authn)
	g.POST(prefix+"/create", create, authn)
	g.GET(prefix+"/:id", get, authn)
	g.PUT(prefix+"/:id/update", update, authn)
	g.DELETE(prefix+"/:id/delete", del, authn)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports fields by their json names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
// The first failing field is returned as an apperrors.ValidationError.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.NewValidationError(fe.Field(), "El campo %s no es válido (%s)", fe.Field(), fe.Tag())
	}
	return err
}
