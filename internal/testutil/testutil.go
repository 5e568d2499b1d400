// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tienda/internal/config"
	"tienda/internal/db"
)

// OpenSQLite returns a migrated in-memory SQLite database private to t.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := db.Open(config.DriverSQLite, dsn, QuietLogger())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// a single connection keeps the shared in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// QuietLogger discards everything.
func QuietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
