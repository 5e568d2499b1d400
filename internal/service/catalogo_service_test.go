package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/testutil"
)

func TestCategoriaService_Create(t *testing.T) {
	tests := []struct {
		name      string
		in        CategoriaInput
		setupMock func(*MockCategoriaRepository)
		wantErr   string
		wantName  string
	}{
		{
			name: "trims nombre",
			in:   CategoriaInput{Nombre: testutil.Ptr("  Laptops  ")},
			setupMock: func(m *MockCategoriaRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Categoria) bool {
					return c.Nombre == "Laptops"
				})).Return(nil)
			},
			wantName: "Laptops",
		},
		{
			name:      "blank nombre",
			in:        CategoriaInput{Nombre: testutil.Ptr("   ")},
			setupMock: func(m *MockCategoriaRepository) {},
			wantErr:   "El nombre de la categoría es obligatorio",
		},
		{
			name:      "missing nombre",
			setupMock: func(m *MockCategoriaRepository) {},
			wantErr:   "El nombre de la categoría es obligatorio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoriaRepository)
			tt.setupMock(mockRepo)

			got, err := NewCategoriaService(mockRepo, nil).Create(context.Background(), tt.in)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Nombre)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoriaService_UpdateNotFound(t *testing.T) {
	mockRepo := new(MockCategoriaRepository)
	mockRepo.On("FindByID", mock.Anything, uint(8)).Return(nil, apperrors.NewNotFoundFem("Categoría", 8))

	_, err := NewCategoriaService(mockRepo, nil).Update(context.Background(), 8, CategoriaInput{Nombre: testutil.Ptr("X")})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarcaService_Update(t *testing.T) {
	mockRepo := new(MockMarcaRepository)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.Marca{ID: 2, Nombre: "HP"}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Marca")).Return(nil)

	service := NewMarcaService(mockRepo, nil)

	got, err := service.Update(context.Background(), 2, MarcaInput{Nombre: testutil.Ptr(" Dell ")})
	require.NoError(t, err)
	assert.Equal(t, "Dell", got.Nombre)

	_, err = service.Update(context.Background(), 2, MarcaInput{Nombre: testutil.Ptr("")})
	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "nombre", vErr.Field)
}

func TestGarantiaService_Create(t *testing.T) {
	tests := []struct {
		name      string
		in        GarantiaInput
		setupMock func(*MockGarantiaRepository, *MockMarcaRepository)
		wantErr   string
	}{
		{
			name: "valid",
			in:   GarantiaInput{Cobertura: testutil.Ptr(12), MarcaID: testutil.Ptr(uint(1))},
			setupMock: func(g *MockGarantiaRepository, m *MockMarcaRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Marca{ID: 1, Nombre: "HP"}, nil)
				g.On("Create", mock.Anything, mock.AnythingOfType("*model.Garantia")).Return(nil)
			},
		},
		{
			name:      "zero cobertura",
			in:        GarantiaInput{Cobertura: testutil.Ptr(0), MarcaID: testutil.Ptr(uint(1))},
			setupMock: func(g *MockGarantiaRepository, m *MockMarcaRepository) {},
			wantErr:   "La cobertura debe ser mayor a 0 meses",
		},
		{
			name:      "no marca",
			in:        GarantiaInput{Cobertura: testutil.Ptr(6)},
			setupMock: func(g *MockGarantiaRepository, m *MockMarcaRepository) {},
			wantErr:   "Debe especificar una marca",
		},
		{
			name: "unknown marca",
			in:   GarantiaInput{Cobertura: testutil.Ptr(6), MarcaID: testutil.Ptr(uint(5))},
			setupMock: func(g *MockGarantiaRepository, m *MockMarcaRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(nil, apperrors.NewNotFoundFem("Marca", 5))
			},
			wantErr: "Marca con id 5 no encontrada",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			garantias := new(MockGarantiaRepository)
			marcas := new(MockMarcaRepository)
			tt.setupMock(garantias, marcas)

			got, err := NewGarantiaService(garantias, marcas).Create(context.Background(), tt.in)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				var vErr *apperrors.ValidationError
				assert.True(t, errors.As(err, &vErr), "referenced entity errors are validation errors")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 12, got.Cobertura)
			require.NotNil(t, got.Marca)
			garantias.AssertExpectations(t)
			marcas.AssertExpectations(t)
		})
	}
}
