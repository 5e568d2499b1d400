package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tienda/internal/auth"
	apperrors "tienda/internal/errors"
	"tienda/internal/model"
	"tienda/internal/repository"
	"tienda/internal/testutil"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Authenticate(t *testing.T) {
	tests := []struct {
		name          string
		correo        string
		password      string
		setupMock     func(*testing.T, *MockUsuarioRepository)
		expectedRole  model.Role
		expectedError error
	}{
		{
			name:     "cliente logs in",
			correo:   "ana@x.com",
			password: "secret1",
			setupMock: func(t *testing.T, m *MockUsuarioRepository) {
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(&model.Usuario{
					ID:       3,
					Correo:   "ana@x.com",
					Password: hashed(t, "secret1"),
					Rol:      model.RoleCliente,
					Cliente:  &model.Cliente{ID: 3, Nombres: "Ana"},
				}, nil)
			},
			expectedRole: model.RoleCliente,
		},
		{
			name:     "wrong password",
			correo:   "ana@x.com",
			password: "nope",
			setupMock: func(t *testing.T, m *MockUsuarioRepository) {
				m.On("FindByEmail", mock.Anything, "ana@x.com").Return(&model.Usuario{
					ID: 3, Correo: "ana@x.com", Password: hashed(t, "secret1"), Rol: model.RoleCliente,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown correo",
			correo:   "nadie@x.com",
			password: "secret1",
			setupMock: func(t *testing.T, m *MockUsuarioRepository) {
				m.On("FindByEmail", mock.Anything, "nadie@x.com").Return(nil, apperrors.NewNotFound("Usuario", "nadie@x.com"))
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUsuarioRepository)
			tt.setupMock(t, mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService)

			result, err := service.Authenticate(context.Background(), tt.correo, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedRole, result.Usuario.Rol)
				claims, err := jwtService.ValidateToken(result.Token)
				require.NoError(t, err)
				assert.Equal(t, result.Usuario.ID, claims.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate_StorageFailureIsNotInvalidCredentials(t *testing.T) {
	mockRepo := new(MockUsuarioRepository)
	mockRepo.On("FindByEmail", mock.Anything, "ana@x.com").Return(nil, errors.New("connection reset"))

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))
	_, err := service.Authenticate(context.Background(), "ana@x.com", "x")

	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestAuthService_CreateValidation(t *testing.T) {
	full := CreateUsuarioInput{
		Correo:          "ana@x.com",
		Password:        "secret1",
		Nombres:         "Ana",
		ApellidoPaterno: "Pérez",
		ApellidoMaterno: "Rojas",
		CI:              "123",
		Nombre:          "Root",
	}

	tests := []struct {
		name      string
		mutate    func(*CreateUsuarioInput)
		create    func(AuthService, CreateUsuarioInput) (*model.Usuario, error)
		wantField string
	}{
		{
			name:      "missing correo",
			mutate:    func(in *CreateUsuarioInput) { in.Correo = "  " },
			create:    func(s AuthService, in CreateUsuarioInput) (*model.Usuario, error) { return s.CreateUser(context.Background(), in) },
			wantField: "correo",
		},
		{
			name:      "missing password",
			mutate:    func(in *CreateUsuarioInput) { in.Password = "" },
			create:    func(s AuthService, in CreateUsuarioInput) (*model.Usuario, error) { return s.CreateCliente(context.Background(), in) },
			wantField: "password",
		},
		{
			name:      "cliente missing ci",
			mutate:    func(in *CreateUsuarioInput) { in.CI = "" },
			create:    func(s AuthService, in CreateUsuarioInput) (*model.Usuario, error) { return s.CreateCliente(context.Background(), in) },
			wantField: "ci",
		},
		{
			name:      "cliente missing apellidoMaterno",
			mutate:    func(in *CreateUsuarioInput) { in.ApellidoMaterno = "" },
			create:    func(s AuthService, in CreateUsuarioInput) (*model.Usuario, error) { return s.CreateCliente(context.Background(), in) },
			wantField: "apellidoMaterno",
		},
		{
			name:      "admin missing nombre",
			mutate:    func(in *CreateUsuarioInput) { in.Nombre = "" },
			create:    func(s AuthService, in CreateUsuarioInput) (*model.Usuario, error) { return s.CreateAdmin(context.Background(), in) },
			wantField: "nombre",
		},
		{
			name:      "unknown tipo",
			mutate:    func(in *CreateUsuarioInput) { in.Tipo = "vendedor" },
			create:    func(s AuthService, in CreateUsuarioInput) (*model.Usuario, error) { return s.CreateUser(context.Background(), in) },
			wantField: "tipo_usuario",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUsuarioRepository)
			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))

			in := full
			tt.mutate(&in)
			usuario, err := tt.create(service, in)

			var vErr *apperrors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Nil(t, usuario)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_CreateDuplicateCorreo(t *testing.T) {
	t.Run("found up front", func(t *testing.T) {
		mockRepo := new(MockUsuarioRepository)
		mockRepo.On("FindByEmail", mock.Anything, "ana@x.com").Return(&model.Usuario{ID: 1, Correo: "ana@x.com"}, nil)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))
		_, err := service.CreateUser(context.Background(), CreateUsuarioInput{Correo: "ana@x.com", Password: "x"})

		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "correo", vErr.Field)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost race at commit", func(t *testing.T) {
		mockRepo := new(MockUsuarioRepository)
		mockRepo.On("FindByEmail", mock.Anything, "ana@x.com").Return(nil, apperrors.NewNotFound("Usuario", "ana@x.com"))
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Usuario")).Return(apperrors.ErrDuplicate)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))
		_, err := service.CreateUser(context.Background(), CreateUsuarioInput{Correo: "ana@x.com", Password: "x"})

		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "correo", vErr.Field)
	})
}

func TestAuthService_CreateUser_RoleTagMatchesExtension(t *testing.T) {
	gdb := testutil.OpenSQLite(t)
	repo := repository.NewUsuarioRepository(gdb)
	service := NewAuthService(repo, auth.NewJWTService("test-secret"))
	ctx := context.Background()

	base := CreateUsuarioInput{
		Password:        "secret1",
		Nombres:         "Ana",
		ApellidoPaterno: "Pérez",
		ApellidoMaterno: "Rojas",
		CI:              "123",
		Nombre:          "Root",
	}

	for _, tipo := range []string{"", "usuario", "cliente", "admin"} {
		in := base
		in.Tipo = tipo
		in.Correo = "u-" + tipo + "@x.com"
		created, err := service.CreateUser(ctx, in)
		require.NoError(t, err, tipo)

		got, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		switch got.Rol {
		case model.RoleCliente:
			assert.NotNil(t, got.Cliente)
			assert.Nil(t, got.Administrador)
		case model.RoleAdmin:
			assert.NotNil(t, got.Administrador)
			assert.Nil(t, got.Cliente)
		case model.RoleUsuario:
			assert.Nil(t, got.Cliente)
			assert.Nil(t, got.Administrador)
		default:
			t.Fatalf("unexpected rol %q", got.Rol)
		}
		assert.NotEqual(t, "secret1", got.Password)
	}
}

func TestAuthService_CreateCliente_MissingCINoRows(t *testing.T) {
	gdb := testutil.OpenSQLite(t)
	service := NewAuthService(repository.NewUsuarioRepository(gdb), auth.NewJWTService("test-secret"))

	_, err := service.CreateCliente(context.Background(), CreateUsuarioInput{
		Correo: "ana@x.com", Password: "x", Nombres: "Ana", ApellidoPaterno: "P", ApellidoMaterno: "R",
	})
	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "ci", vErr.Field)

	var count int64
	gdb.Model(&model.Usuario{}).Where("correo = ?", "ana@x.com").Count(&count)
	assert.Zero(t, count)
}
