// Package dbtest opens seeded in-memory SQLite databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/gamereviews/internal/config"
	"github.com/SergeyParamoshkin/gamereviews/internal/db"
	"github.com/SergeyParamoshkin/gamereviews/internal/seed"
)

// DSN returns a private in-memory database with foreign keys enforced.
func DSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
}

// Open returns an empty migrated database, closed when t ends.
func Open(t testing.TB) *db.DB {
	t.Helper()

	d, err := db.Open(context.Background(), config.DriverSQLite, DSN())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	require.NoError(t, d.Migrate(context.Background()))

	return d
}

// Seeded returns a database loaded with the bundled test dataset.
func Seeded(t testing.TB) *db.DB {
	t.Helper()

	d := Open(t)

	ds, err := seed.TestData()
	require.NoError(t, err)
	require.NoError(t, seed.Run(context.Background(), d, ds))

	return d
}
