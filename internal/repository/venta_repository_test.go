package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/testutil"
)

func TestVentaRepository_MetodoPagoKeepsInactiveEstado(t *testing.T) {
	repo := NewVentaRepository(testutil.OpenSQLite(t))
	ctx := context.Background()

	inactivo := &model.MetodoPago{Nombre: "Cheque", Estado: false}
	require.NoError(t, repo.CreateMetodoPago(ctx, inactivo))

	got, err := repo.FindMetodoPago(ctx, inactivo.ID)
	require.NoError(t, err)
	assert.False(t, got.Estado)

	activo := &model.MetodoPago{Nombre: "Efectivo", Estado: true}
	require.NoError(t, repo.CreateMetodoPago(ctx, activo))
	got, err = repo.FindMetodoPago(ctx, activo.ID)
	require.NoError(t, err)
	assert.True(t, got.Estado)

	_, err = repo.FindMetodoPago(ctx, 99)
	assert.EqualError(t, err, "Método de pago con id 99 no encontrado")
}

func TestVentaRepository_NotaLifecycle(t *testing.T) {
	gdb := testutil.OpenSQLite(t)
	f := seedCatalog(t, gdb, 10)
	repo := NewVentaRepository(gdb)
	ctx := context.Background()

	usuario := newCliente("ana@x.com")
	require.NoError(t, NewUsuarioRepository(gdb).Create(ctx, usuario))
	metodo := &model.MetodoPago{Nombre: "Efectivo", Estado: true}
	require.NoError(t, repo.CreateMetodoPago(ctx, metodo))

	nota := &model.NotaVenta{
		Estado:       true,
		MetodoPagoID: metodo.ID,
		UsuarioID:    usuario.ID,
		Total:        decimal.RequireFromString("2401.00"),
		Detalles: []model.DetalleVenta{
			{ProductoID: f.producto.ID, Cantidad: 2, PrecioUnitario: f.producto.Precio},
		},
	}
	require.NoError(t, repo.CreateNota(ctx, nota))
	require.NotZero(t, nota.ID)

	got, err := repo.FindNota(ctx, nota.ID)
	require.NoError(t, err)
	require.Len(t, got.Detalles, 1)
	require.NotNil(t, got.Detalles[0].Producto)
	assert.Equal(t, "ThinkPad", got.Detalles[0].Producto.Nombre)
	require.NotNil(t, got.MetodoPago)
	assert.Equal(t, "Efectivo", got.MetodoPago.Nombre)

	own, err := repo.ListNotas(ctx, &usuario.ID)
	require.NoError(t, err)
	assert.Len(t, own, 1)
	other := usuario.ID + 1
	none, err := repo.ListNotas(ctx, &other)
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, repo.AnularNota(ctx, nota.ID))
	got, err = repo.FindNota(ctx, nota.ID)
	require.NoError(t, err)
	assert.False(t, got.Estado)

	// only the first annul flips the note
	assert.ErrorIs(t, repo.AnularNota(ctx, nota.ID), ErrNotaAnulada)
	assert.True(t, errors.Is(repo.AnularNota(ctx, 999), apperrors.ErrNotFound))

	// a usuario or producto with sales cannot be removed
	err = NewUsuarioRepository(gdb).Delete(ctx, usuario.ID)
	assert.True(t, errors.Is(err, apperrors.ErrConstraint), "got %v", err)
	err = NewProductoRepository(gdb).Delete(ctx, f.producto.ID)
	assert.True(t, errors.Is(err, apperrors.ErrConstraint), "got %v", err)
}

func TestVentaRepository_WithTransactionSharesTx(t *testing.T) {
	gdb := testutil.OpenSQLite(t)
	f := seedCatalog(t, gdb, 1)
	repo := NewVentaRepository(gdb)
	ctx := context.Background()

	err := repo.WithTransaction(ctx, func(ctx context.Context, ventas VentaRepository, productos ProductoRepository) error {
		if err := productos.DecrementStock(ctx, f.producto.ID, 1); err != nil {
			return err
		}
		return productos.DecrementStock(ctx, f.producto.ID, 1)
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, err := NewProductoRepository(gdb).FindByID(ctx, f.producto.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)
}
