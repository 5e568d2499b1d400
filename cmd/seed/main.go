package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"tienda/internal/auth"
	"tienda/internal/config"
	"tienda/internal/db"
	apperrors "tienda/internal/errors"
	"tienda/internal/logging"
	"tienda/internal/repository"
	"tienda/internal/service"
)

// Catalog is the seed file format. Productos reference categorias and marcas by nombre.
type Catalog struct {
	Categorias []struct {
		Nombre      string  `json:"nombre"`
		Descripcion *string `json:"descripcion"`
	} `json:"categorias"`
	Marcas []struct {
		Nombre        string `json:"nombre"`
		GarantiaMeses int    `json:"garantia_meses"`
	} `json:"marcas"`
	MetodosPago []string `json:"metodos_pago"`
	Productos   []struct {
		Nombre      string          `json:"nombre"`
		Descripcion string          `json:"descripcion"`
		Precio      decimal.Decimal `json:"precio"`
		Stock       int             `json:"stock"`
		Categoria   string          `json:"categoria"`
		Marca       string          `json:"marca"`
	} `json:"productos"`
}

const demoCatalog = `{
  "categorias": [
    {"nombre": "Laptops", "descripcion": "Portátiles y ultrabooks"},
    {"nombre": "Periféricos"}
  ],
  "marcas": [
    {"nombre": "Lenovo", "garantia_meses": 12},
    {"nombre": "Logitech", "garantia_meses": 24}
  ],
  "metodos_pago": ["Efectivo", "Tarjeta", "QR"],
  "productos": [
    {"nombre": "ThinkPad E14", "descripcion": "14 pulgadas, 16 GB RAM", "precio": "5499.00", "stock": 8, "categoria": "Laptops", "marca": "Lenovo"},
    {"nombre": "Mouse MX Master 3S", "descripcion": "Inalámbrico", "precio": "799.90", "stock": 25, "categoria": "Periféricos", "marca": "Logitech"},
    {"nombre": "Teclado K380", "descripcion": "Bluetooth multi-dispositivo", "precio": "349.50", "stock": 30, "categoria": "Periféricos", "marca": "Logitech"}
  ]
}`

type options struct {
	adminCorreo   string
	adminPassword string
	adminNombre   string
	demo          bool
	catalog       string
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the first administrator and optionally a demo catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&opts.adminCorreo, "admin-correo", "admin@tienda.local", "administrator correo")
	cmd.Flags().StringVar(&opts.adminPassword, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "administrator password (default $SEED_ADMIN_PASSWORD)")
	cmd.Flags().StringVar(&opts.adminNombre, "admin-nombre", "Administrador", "administrator display name")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "load the built-in demo catalog")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "catalog JSON to load, as a file path or http(s) URL")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, nil)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	log.Info("Database migrations completed")

	usuarios := repository.NewUsuarioRepository(gormDB)
	authService := service.NewAuthService(usuarios, auth.NewJWTService(cfg.JWTSecret))

	if opts.adminPassword == "" {
		return errors.New("--admin-password or SEED_ADMIN_PASSWORD is required")
	}
	admin, err := authService.CreateAdmin(ctx, service.CreateUsuarioInput{
		Correo:   opts.adminCorreo,
		Password: opts.adminPassword,
		Nombre:   opts.adminNombre,
	})
	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr) && vErr.Field == "correo":
		log.WithField("correo", opts.adminCorreo).Info("administrator already exists")
	case err != nil:
		return fmt.Errorf("create administrator: %w", err)
	default:
		log.WithFields(logrus.Fields{"id": admin.ID, "correo": admin.Correo}).Info("administrator created")
	}

	var raw []byte
	switch {
	case opts.catalog != "":
		log.WithField("source", opts.catalog).Info("fetching catalog")
		if raw, err = readCatalog(ctx, opts.catalog); err != nil {
			return err
		}
	case opts.demo:
		raw = []byte(demoCatalog)
	default:
		return nil
	}

	var catalog Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	return seedCatalog(ctx, log, gormDB, catalog)
}

// readCatalog loads source from an http(s) URL or a local file.
func readCatalog(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return os.ReadFile(source)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// seedCatalog creates the catalog through the services so the same validation applies.
// It does nothing when productos already exist.
func seedCatalog(ctx context.Context, log logrus.FieldLogger, gormDB *gorm.DB, catalog Catalog) error {
	categoriaRepo := repository.NewCategoriaRepository(gormDB)
	marcaRepo := repository.NewMarcaRepository(gormDB)
	garantiaRepo := repository.NewGarantiaRepository(gormDB)
	productoRepo := repository.NewProductoRepository(gormDB)

	existing, err := productoRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.WithField("productos", len(existing)).Info("catalog already seeded, skipping")
		return nil
	}

	categorias := service.NewCategoriaService(categoriaRepo, nil)
	marcas := service.NewMarcaService(marcaRepo, nil)
	garantias := service.NewGarantiaService(garantiaRepo, marcaRepo)
	productos := service.NewProductoService(productoRepo, categoriaRepo, marcaRepo, garantiaRepo, nil)
	ventas := service.NewVentaService(repository.NewVentaRepository(gormDB))

	categoriaIDs := map[string]uint{}
	for _, c := range catalog.Categorias {
		created, err := categorias.Create(ctx, service.CategoriaInput{Nombre: &c.Nombre, Descripcion: c.Descripcion})
		if err != nil {
			return fmt.Errorf("categoria %s: %w", c.Nombre, err)
		}
		categoriaIDs[c.Nombre] = created.ID
	}

	marcaIDs := map[string]uint{}
	garantiaIDs := map[string]uint{}
	for _, m := range catalog.Marcas {
		created, err := marcas.Create(ctx, service.MarcaInput{Nombre: &m.Nombre})
		if err != nil {
			return fmt.Errorf("marca %s: %w", m.Nombre, err)
		}
		marcaIDs[m.Nombre] = created.ID
		if m.GarantiaMeses > 0 {
			g, err := garantias.Create(ctx, service.GarantiaInput{Cobertura: &m.GarantiaMeses, MarcaID: &created.ID})
			if err != nil {
				return fmt.Errorf("garantia %s: %w", m.Nombre, err)
			}
			garantiaIDs[m.Nombre] = g.ID
		}
	}

	for _, nombre := range catalog.MetodosPago {
		if _, err := ventas.CreateMetodoPago(ctx, service.MetodoPagoInput{Nombre: &nombre}); err != nil {
			return fmt.Errorf("metodo de pago %s: %w", nombre, err)
		}
	}

	for _, p := range catalog.Productos {
		categoriaID, ok := categoriaIDs[p.Categoria]
		if !ok {
			return fmt.Errorf("producto %s: unknown categoria %q", p.Nombre, p.Categoria)
		}
		marcaID, ok := marcaIDs[p.Marca]
		if !ok {
			return fmt.Errorf("producto %s: unknown marca %q", p.Nombre, p.Marca)
		}
		in := service.ProductoInput{
			Nombre:      &p.Nombre,
			Descripcion: &p.Descripcion,
			Precio:      &p.Precio,
			Stock:       &p.Stock,
			CategoriaID: &categoriaID,
			MarcaID:     &marcaID,
		}
		if gid, ok := garantiaIDs[p.Marca]; ok {
			in.GarantiaID = &gid
		}
		if _, err := productos.Create(ctx, in); err != nil {
			return fmt.Errorf("producto %s: %w", p.Nombre, err)
		}
	}

	log.WithFields(logrus.Fields{
		"categorias":   len(catalog.Categorias),
		"marcas":       len(catalog.Marcas),
		"metodos_pago": len(catalog.MetodosPago),
		"productos":    len(catalog.Productos),
	}).Info("Seed completed successfully")
	return nil
}
