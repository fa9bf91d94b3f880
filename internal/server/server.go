// Package server assembles the API router from the resource handlers and
// the diagnostics router that serves metrics.
package server

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/gamereviews/internal/category"
	"github.com/SergeyParamoshkin/gamereviews/internal/comment"
	"github.com/SergeyParamoshkin/gamereviews/internal/db"
	"github.com/SergeyParamoshkin/gamereviews/internal/errresponse"
	"github.com/SergeyParamoshkin/gamereviews/internal/logging"
	"github.com/SergeyParamoshkin/gamereviews/internal/review"
	"github.com/SergeyParamoshkin/gamereviews/internal/telemetry"
	"github.com/SergeyParamoshkin/gamereviews/internal/user"
)

//go:embed endpoints.json
var endpoints []byte

// Endpoints returns the catalog served on GET /api, keyed by "METHOD /path".
func Endpoints() (map[string]json.RawMessage, error) {
	var catalog map[string]json.RawMessage
	if err := json.Unmarshal(endpoints, &catalog); err != nil {
		return nil, err
	}

	return catalog, nil
}

type Deps struct {
	DB     *db.DB
	Logger *zap.Logger
	// Telemetry is optional, requests are not measured without it.
	Telemetry *telemetry.Telemetry
}

func NewRouter(deps Deps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(logging.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(logger.Sugar()))
	r.Use(middleware.Recoverer)
	if deps.Telemetry != nil {
		r.Use(deps.Telemetry.Middleware)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(errresponse.NotFound)
	r.MethodNotAllowed(errresponse.MethodNotAllowed)

	r.Get("/healthz", health(deps.DB))

	categories := category.NewHandler(category.NewStore(deps.DB))
	users := user.NewHandler(user.NewStore(deps.DB))
	reviews := review.NewHandler(review.NewStore(deps.DB))
	comments := comment.NewHandler(comment.NewStore(deps.DB))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", catalog)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviews.List)
			r.Post("/", reviews.Create)

			r.Route("/{review_id}", func(r chi.Router) {
				r.With(reviews.Ctx).Get("/", reviews.Get)
				r.With(reviews.Ctx).Patch("/", reviews.PatchVotes)
				r.With(reviews.Ctx).Delete("/", reviews.Delete)

				r.Get("/comments", comments.ListByReview)
				r.Post("/comments", comments.Create)
			})
		})

		r.Route("/comments/{comment_id}", func(r chi.Router) {
			r.Patch("/", comments.PatchVotes)
			r.Delete("/", comments.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", users.List)
			r.Get("/{username}", users.Get)
		})
	})

	return r
}

// NewDiagRouter serves /metrics on the diagnostics address.
func NewDiagRouter(tel *telemetry.Telemetry) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", tel.Handler())

	return r
}

type catalogResponse struct {
	Endpoints json.RawMessage `json:"endpoints"`
}

func (c *catalogResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func catalog(w http.ResponseWriter, r *http.Request) {
	if err := render.Render(w, r, &catalogResponse{Endpoints: endpoints}); err != nil {
		logging.FromContext(r.Context()).Errorw("render endpoints", "error", err)
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *healthResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func health(d *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Ping(r.Context()); err != nil {
			logging.FromContext(r.Context()).Errorw("health check failed", "error", err)
			render.Status(r, http.StatusServiceUnavailable)
			_ = render.Render(w, r, &healthResponse{Status: "unavailable"})

			return
		}

		_ = render.Render(w, r, &healthResponse{Status: "ok"})
	}
}
