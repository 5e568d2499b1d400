package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tienda/internal/model"
	"tienda/internal/repository"
)

// MockUsuarioRepository is a mock implementation of UsuarioRepository.
type MockUsuarioRepository struct {
	mock.Mock
}

func (m *MockUsuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	args := m.Called(ctx, usuario)
	return args.Error(0)
}

func (m *MockUsuarioRepository) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) FindByEmail(ctx context.Context, correo string) (*model.Usuario, error) {
	args := m.Called(ctx, correo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) List(ctx context.Context) ([]model.Usuario, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) ListByRole(ctx context.Context, rol model.Role) ([]model.Usuario, error) {
	args := m.Called(ctx, rol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	args := m.Called(ctx, usuario)
	return args.Error(0)
}

func (m *MockUsuarioRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsuarioRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UsuarioRepository) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockCategoriaRepository is a mock implementation of CategoriaRepository.
type MockCategoriaRepository struct {
	mock.Mock
}

func (m *MockCategoriaRepository) List(ctx context.Context) ([]model.Categoria, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Categoria), args.Error(1)
}

func (m *MockCategoriaRepository) FindByID(ctx context.Context, id uint) (*model.Categoria, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Categoria), args.Error(1)
}

func (m *MockCategoriaRepository) Create(ctx context.Context, categoria *model.Categoria) error {
	return m.Called(ctx, categoria).Error(0)
}

func (m *MockCategoriaRepository) Update(ctx context.Context, categoria *model.Categoria) error {
	return m.Called(ctx, categoria).Error(0)
}

func (m *MockCategoriaRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockMarcaRepository is a mock implementation of MarcaRepository.
type MockMarcaRepository struct {
	mock.Mock
}

func (m *MockMarcaRepository) List(ctx context.Context) ([]model.Marca, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Marca), args.Error(1)
}

func (m *MockMarcaRepository) FindByID(ctx context.Context, id uint) (*model.Marca, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Marca), args.Error(1)
}

func (m *MockMarcaRepository) Create(ctx context.Context, marca *model.Marca) error {
	return m.Called(ctx, marca).Error(0)
}

func (m *MockMarcaRepository) Update(ctx context.Context, marca *model.Marca) error {
	return m.Called(ctx, marca).Error(0)
}

func (m *MockMarcaRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockGarantiaRepository is a mock implementation of GarantiaRepository.
type MockGarantiaRepository struct {
	mock.Mock
}

func (m *MockGarantiaRepository) List(ctx context.Context) ([]model.Garantia, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Garantia), args.Error(1)
}

func (m *MockGarantiaRepository) FindByID(ctx context.Context, id uint) (*model.Garantia, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Garantia), args.Error(1)
}

func (m *MockGarantiaRepository) Create(ctx context.Context, garantia *model.Garantia) error {
	return m.Called(ctx, garantia).Error(0)
}

func (m *MockGarantiaRepository) Update(ctx context.Context, garantia *model.Garantia) error {
	return m.Called(ctx, garantia).Error(0)
}

func (m *MockGarantiaRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockProductoRepository is a mock implementation of ProductoRepository.
type MockProductoRepository struct {
	mock.Mock
}

func (m *MockProductoRepository) List(ctx context.Context) ([]model.Producto, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Producto), args.Error(1)
}

func (m *MockProductoRepository) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Producto), args.Error(1)
}

func (m *MockProductoRepository) Create(ctx context.Context, producto *model.Producto) error {
	return m.Called(ctx, producto).Error(0)
}

func (m *MockProductoRepository) Update(ctx context.Context, producto *model.Producto) error {
	return m.Called(ctx, producto).Error(0)
}

func (m *MockProductoRepository) UpdateImageURL(ctx context.Context, id uint, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

func (m *MockProductoRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductoRepository) DecrementStock(ctx context.Context, id uint, n uint) error {
	return m.Called(ctx, id, n).Error(0)
}

func (m *MockProductoRepository) IncrementStock(ctx context.Context, id uint, n uint) error {
	return m.Called(ctx, id, n).Error(0)
}

// MockImageStore is a mock implementation of storage.ImageStore.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}
