// Package app assembles repositories, services and handlers into an echo server.
package app

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tienda/internal/auth"
	"tienda/internal/cache"
	"tienda/internal/config"
	"tienda/internal/handler"
	"tienda/internal/repository"
	"tienda/internal/router"
	"tienda/internal/service"
	"tienda/internal/storage"
)

// Deps are the external resources the server runs on.
// Cache and Images may be nil: the cache is then bypassed and image upload answers 503.
type Deps struct {
	Config *config.Config
	Log    logrus.FieldLogger
	DB     *gorm.DB
	Cache  *cache.Client
	Images storage.ImageStore
	Tokens *auth.JWTService
}

// New returns a configured echo instance with every route registered.
func New(d Deps) *echo.Echo {
	tokens := d.Tokens
	if tokens == nil {
		tokens = auth.NewJWTService(d.Config.JWTSecret)
	}

	// Initialize repositories
	usuarioRepo := repository.NewUsuarioRepository(d.DB)
	categoriaRepo := repository.NewCategoriaRepository(d.DB)
	marcaRepo := repository.NewMarcaRepository(d.DB)
	garantiaRepo := repository.NewGarantiaRepository(d.DB)
	productoRepo := repository.NewProductoRepository(d.DB)
	ventaRepo := repository.NewVentaRepository(d.DB)

	// Initialize services
	authService := service.NewAuthService(usuarioRepo, tokens)
	usuarioService := service.NewUsuarioService(usuarioRepo, d.Cache)
	categoriaService := service.NewCategoriaService(categoriaRepo, d.Cache)
	marcaService := service.NewMarcaService(marcaRepo, d.Cache)
	garantiaService := service.NewGarantiaService(garantiaRepo, marcaRepo)
	productoService := service.NewProductoService(productoRepo, categoriaRepo, marcaRepo, garantiaRepo, d.Images)
	ventaService := service.NewVentaService(ventaRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(
		e,
		d.Config,
		d.Log,
		auth.Middleware(tokens, usuarioRepo, d.Log),
		handler.NewAuthHandler(authService),
		handler.NewUsuarioHandler(usuarioService),
		handler.NewCatalogoHandler(categoriaService, marcaService, garantiaService),
		handler.NewProductoHandler(productoService),
		handler.NewVentaHandler(ventaService),
	)
	return e
}
