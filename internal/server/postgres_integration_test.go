//go:build integration

package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SergeyParamoshkin/gamereviews/internal/apperror"
	"github.com/SergeyParamoshkin/gamereviews/internal/config"
	"github.com/SergeyParamoshkin/gamereviews/internal/db"
	"github.com/SergeyParamoshkin/gamereviews/internal/seed"
	"github.com/SergeyParamoshkin/gamereviews/internal/server"
)

func postgresRouter(t *testing.T) http.Handler {
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
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	d, err := db.Open(ctx, config.DriverPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	ds, err := seed.TestData()
	require.NoError(t, err)
	require.NoError(t, seed.Run(ctx, d, ds))

	return server.NewRouter(server.Deps{DB: d})
}

func TestPostgresAPI(t *testing.T) {
	router := postgresRouter(t)

	t.Run("sorted page", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/reviews?sort_by=votes&order=desc&limit=3", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var body struct {
			Reviews []struct {
				ReviewID     int64 `json:"review_id"`
				CommentCount int64 `json:"comment_count"`
			} `json:"reviews"`
			TotalCount int64 `json:"total_count"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Reviews, 3)
		assert.Equal(t, int64(12), body.Reviews[0].ReviewID)
		assert.Equal(t, int64(13), body.Reviews[1].ReviewID)
		assert.Equal(t, int64(9), body.Reviews[2].ReviewID)
		assert.Equal(t, int64(13), body.TotalCount)
	})

	t.Run("empty category", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/reviews?category=children%27s_games", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"reviews":[],"total_count":0}`, rec.Body.String())
	})

	t.Run("duplicate category", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/categories", `{"slug":"dexterity","description":"again"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apperror.MsgAlreadyExists, msg(t, rec))
	})

	t.Run("review lifecycle", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/reviews", `{"owner":"dav3rid","title":"Azul","review_body":"Tiles",
			"designer":"Michael Kiesling","category":"euro game"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"review_id":14`)

		rec = do(t, router, http.MethodPost, "/api/reviews/14/comments", `{"username":"mallionaire","body":"Pretty"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = do(t, router, http.MethodPatch, "/api/reviews/14", `{"inc_votes": 2}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"comment_count":1`)

		rec = do(t, router, http.MethodDelete, "/api/reviews/14", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
