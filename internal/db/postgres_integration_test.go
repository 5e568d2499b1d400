package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"tienda/internal/config"
	"tienda/internal/model"
)

// startPostgres returns a DSN for a throwaway Postgres 16. TEST_PG_DSN reuses an existing database.
func startPostgres(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("TEST_PG_DSN"); dsn != "" {
		return dsn
	}

	ctx := context.Background()
	pgC, err := postgres.Run(ctx,
		"postgres:16",
		postgres.WithDatabase("tienda"),
		postgres.WithUsername("tienda"),
		postgres.WithPassword("tienda"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestPostgres_MigrateAndUniqueCorreo(t *testing.T) {
	if testing.Short() || os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run container-backed tests")
	}

	gdb, err := Open(config.DriverPostgres, startPostgres(t), quietLogger())
	require.NoError(t, err)
	require.NoError(t, Reset(gdb))
	require.NoError(t, Migrate(gdb))

	first := &model.Usuario{Correo: "a@x.com", Password: "hash", Rol: model.RoleUsuario}
	require.NoError(t, gdb.Create(first).Error)

	dup := &model.Usuario{Correo: "a@x.com", Password: "hash", Rol: model.RoleUsuario}
	err = gdb.Create(dup).Error
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
