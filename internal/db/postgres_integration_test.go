//go:build integration
// +build integration

package db_test

import (
	"context"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SergeyParamoshkin/gamereviews/internal/apperror"
	"github.com/SergeyParamoshkin/gamereviews/internal/config"
	"github.com/SergeyParamoshkin/gamereviews/internal/db"
	"github.com/SergeyParamoshkin/gamereviews/internal/seed"
)

func setupPostgres(t *testing.T) *db.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("nc_games_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	d, err := db.Open(ctx, config.DriverPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	ds, err := seed.TestData()
	require.NoError(t, err)
	require.NoError(t, seed.Run(ctx, d, ds))

	return d
}

func TestPostgres(t *testing.T) {
	d := setupPostgres(t)
	ctx := context.Background()

	t.Run("seeded", func(t *testing.T) {
		var n int
		require.NoError(t, d.Get(ctx, &n, d.Builder().Select("COUNT(*)").From("reviews")))
		assert.Equal(t, 13, n)
	})

	t.Run("existence checks", func(t *testing.T) {
		assert.NoError(t, db.Check(ctx, d, db.CategorySlug, "children's games"))
		assert.True(t, apperror.IsNotFound(db.Check(ctx, d, db.ReviewID, 1000)))
	})

	t.Run("invalid input is classified", func(t *testing.T) {
		var n int
		err := d.Get(ctx, &n, d.Builder().
			Select("COUNT(*)").
			From("reviews").
			Where("review_id = CAST(CAST(? AS TEXT) AS INT)", "not-a-number"))
		require.Error(t, err)
		assert.True(t, db.IsInvalidInput(err))
	})

	t.Run("out of range is classified", func(t *testing.T) {
		_, err := d.Exec(ctx, d.Builder().
			Update("reviews").
			Set("votes", sq.Expr("votes + ?", int64(2147483647))).
			Where(sq.Eq{"review_id": 12}))
		require.Error(t, err)
		assert.True(t, db.IsOutOfRange(err))
	})

	t.Run("unique violation is classified", func(t *testing.T) {
		_, err := d.Exec(ctx, d.Builder().
			Insert("categories").
			Columns("slug", "description").
			Values("dexterity", "twice"))
		require.Error(t, err)
		assert.True(t, db.IsUniqueViolation(err))
	})
}
