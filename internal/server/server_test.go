package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/SergeyParamoshkin/gamereviews/internal/apperror"
	"github.com/SergeyParamoshkin/gamereviews/internal/config"
	"github.com/SergeyParamoshkin/gamereviews/internal/dbtest"
	"github.com/SergeyParamoshkin/gamereviews/internal/logging"
	"github.com/SergeyParamoshkin/gamereviews/internal/server"
	"github.com/SergeyParamoshkin/gamereviews/internal/telemetry"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, rd))

	return rec
}

func msg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	s, _ := body["msg"].(string)

	return s
}

func TestUnknownRoute(t *testing.T) {
	router := server.NewRouter(server.Deps{DB: dbtest.Seeded(t)})

	for _, target := range []string{"/not-a-route", "/api/not-a-route", "/api/reviews/1/ratings"} {
		rec := do(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, apperror.MsgRouteNotFound, msg(t, rec), target)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := server.NewRouter(server.Deps{DB: dbtest.Seeded(t)})

	rec := do(t, router, http.MethodPut, "/api/reviews", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, apperror.MsgMethodNotAllowed, msg(t, rec))

	rec = do(t, router, http.MethodDelete, "/api/categories", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestEndpointCatalog(t *testing.T) {
	router := server.NewRouter(server.Deps{DB: dbtest.Seeded(t)})

	rec := do(t, router, http.MethodGet, "/api", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", strings.Split(rec.Header().Get("Content-Type"), ";")[0])

	var body struct {
		Endpoints map[string]json.RawMessage `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Endpoints, "GET /api/reviews")
	assert.Contains(t, body.Endpoints, "PATCH /api/comments/{comment_id}")
}

// Every routed /api path has a catalog entry and every entry is routed.
func TestEndpointCatalogMatchesRoutes(t *testing.T) {
	router := server.NewRouter(server.Deps{DB: dbtest.Open(t)})

	catalog, err := server.Endpoints()
	require.NoError(t, err)

	routed := map[string]bool{}
	err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if !strings.HasPrefix(route, "/api") {
			return nil
		}

		route = strings.ReplaceAll(route, "/*", "")
		if route != "/" {
			route = strings.TrimSuffix(route, "/")
		}
		routed[method+" "+route] = true

		return nil
	})
	require.NoError(t, err)

	for key := range routed {
		assert.Contains(t, catalog, key)
	}
	for key := range catalog {
		assert.True(t, routed[key], "catalog entry %q is not routed", key)
	}
}

func TestHealth(t *testing.T) {
	d := dbtest.Open(t)
	router := server.NewRouter(server.Deps{DB: d})

	rec := do(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	require.NoError(t, d.Close())

	rec = do(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rec.Body.String())
}

func TestRequestIDAndAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := server.NewRouter(server.Deps{DB: dbtest.Seeded(t), Logger: zap.New(core)})

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set(logging.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(logging.RequestIDHeader))

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "abc-123", fields["request_id"])
	assert.Equal(t, "/api/categories", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])

	rec = do(t, router, http.MethodGet, "/api/categories", "")
	assert.NotEmpty(t, rec.Header().Get(logging.RequestIDHeader))
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	d := dbtest.Seeded(t)
	router := server.NewRouter(server.Deps{DB: d, Logger: zap.New(core)})

	require.NoError(t, d.Close())

	rec := do(t, router, http.MethodGet, "/api/reviews", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperror.MsgInternal, msg(t, rec))
	assert.NotContains(t, rec.Body.String(), "sql")

	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
}

func TestMetricsOnDiagRouter(t *testing.T) {
	tel, err := telemetry.New(config.ServiceName)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tel.Shutdown(context.Background()) })

	router := server.NewRouter(server.Deps{DB: dbtest.Seeded(t), Telemetry: tel})
	do(t, router, http.MethodGet, "/api/reviews/2", "")

	rec := do(t, server.NewDiagRouter(tel), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/reviews/{review_id}`)
}

// A full round trip through the API, the way a client would use it.
func TestReviewLifecycle(t *testing.T) {
	router := server.NewRouter(server.Deps{DB: dbtest.Seeded(t)})

	rec := do(t, router, http.MethodPost, "/api/reviews", `{
		"owner": "bainesface",
		"title": "Codenames",
		"review_body": "Word association under pressure",
		"designer": "Vlaada Chvatil",
		"category": "children's games"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/reviews?category=children's_games", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_count":1`)

	rec = do(t, router, http.MethodPost, "/api/reviews/14/comments", `{"username":"dav3rid","body":"Great with six"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPatch, "/api/reviews/14", `{"inc_votes": 4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"votes":4`)
	assert.Contains(t, rec.Body.String(), `"comment_count":1`)

	rec = do(t, router, http.MethodDelete, "/api/reviews/14", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/reviews/14/comments", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperror.MsgReviewNotFound, msg(t, rec))

	rec = do(t, router, http.MethodGet, "/api/reviews?category=children's_games", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reviews":[],"total_count":0}`, rec.Body.String())
}
