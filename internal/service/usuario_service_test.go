package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/testutil"
)

func clienteUsuario() *model.Usuario {
	return &model.Usuario{
		ID:     4,
		Correo: "ana@x.com",
		Rol:    model.RoleCliente,
		Cliente: &model.Cliente{
			ID: 4, Nombres: "Ana", ApellidoPaterno: "Pérez", ApellidoMaterno: "Rojas", CI: "123",
		},
	}
}

func TestUsuarioService_GetCliente_RoleMismatch(t *testing.T) {
	mockRepo := new(MockUsuarioRepository)
	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(&model.Usuario{ID: 9, Rol: model.RoleUsuario}, nil)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(nil, apperrors.NewNotFound("Usuario", 10))

	service := NewUsuarioService(mockRepo, nil)

	_, err := service.GetCliente(context.Background(), 9)
	assert.EqualError(t, err, "Cliente con id 9 no encontrado")
	_, err = service.GetAdmin(context.Background(), 10)
	assert.EqualError(t, err, "Administrador con id 10 no encontrado")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestUsuarioService_UpdateCliente(t *testing.T) {
	tests := []struct {
		name      string
		in        UpdateClienteInput
		setupMock func(*MockUsuarioRepository)
		wantField string
		check     func(*testing.T, *model.Usuario)
	}{
		{
			name: "updates profile and credentials",
			in: UpdateClienteInput{
				UpdateUsuarioInput: UpdateUsuarioInput{Correo: testutil.Ptr("ana2@x.com"), Password: testutil.Ptr("nueva")},
				Nombres:            testutil.Ptr("  Ana María "),
				Telefono:           testutil.Ptr("7000000"),
			},
			setupMock: func(m *MockUsuarioRepository) {
				m.On("FindByEmail", mock.Anything, "ana2@x.com").Return(nil, apperrors.NewNotFound("Usuario", "ana2@x.com"))
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Usuario")).Return(nil)
			},
			check: func(t *testing.T, u *model.Usuario) {
				assert.Equal(t, "ana2@x.com", u.Correo)
				assert.Equal(t, "Ana María", u.Cliente.Nombres)
				assert.Equal(t, "7000000", *u.Cliente.Telefono)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("nueva")))
			},
		},
		{
			name:      "blank nombres rejected",
			in:        UpdateClienteInput{Nombres: testutil.Ptr("   ")},
			setupMock: func(m *MockUsuarioRepository) {},
			wantField: "nombres",
		},
		{
			name: "correo taken by someone else",
			in:   UpdateClienteInput{UpdateUsuarioInput: UpdateUsuarioInput{Correo: testutil.Ptr("root@x.com")}},
			setupMock: func(m *MockUsuarioRepository) {
				m.On("FindByEmail", mock.Anything, "root@x.com").Return(&model.Usuario{ID: 1}, nil)
			},
			wantField: "correo",
		},
		{
			name: "same correo is not a conflict",
			in:   UpdateClienteInput{UpdateUsuarioInput: UpdateUsuarioInput{Correo: testutil.Ptr("ana@x.com")}},
			setupMock: func(m *MockUsuarioRepository) {
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Usuario")).Return(nil)
			},
			check: func(t *testing.T, u *model.Usuario) {
				assert.Equal(t, "ana@x.com", u.Correo)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUsuarioRepository)
			mockRepo.On("FindByID", mock.Anything, uint(4)).Return(clienteUsuario(), nil)
			tt.setupMock(mockRepo)

			service := NewUsuarioService(mockRepo, nil)
			updated, err := service.UpdateCliente(context.Background(), 4, tt.in)

			if tt.wantField != "" {
				var vErr *apperrors.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, tt.wantField, vErr.Field)
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			tt.check(t, updated)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUsuarioService_DeleteAdmin_OnlyAdmins(t *testing.T) {
	mockRepo := new(MockUsuarioRepository)
	mockRepo.On("FindByID", mock.Anything, uint(4)).Return(clienteUsuario(), nil)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Usuario{
		ID: 1, Rol: model.RoleAdmin, Administrador: &model.Administrador{ID: 1, Nombre: "Root"},
	}, nil)
	mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

	service := NewUsuarioService(mockRepo, nil)

	assert.True(t, errors.Is(service.DeleteAdmin(context.Background(), 4), apperrors.ErrNotFound))
	assert.NoError(t, service.DeleteAdmin(context.Background(), 1))
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, uint(4))
}

func TestUsuarioService_GetUsuario_WithoutCache(t *testing.T) {
	mockRepo := new(MockUsuarioRepository)
	mockRepo.On("FindByID", mock.Anything, uint(4)).Return(clienteUsuario(), nil).Twice()

	service := NewUsuarioService(mockRepo, nil)
	for i := 0; i < 2; i++ {
		u, err := service.GetUsuario(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, "ana@x.com", u.Correo)
	}
	mockRepo.AssertExpectations(t)
}
