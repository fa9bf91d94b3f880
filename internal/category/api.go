package category

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/gamereviews/internal/errresponse"
	"github.com/SergeyParamoshkin/gamereviews/internal/logging"
	"github.com/SergeyParamoshkin/gamereviews/internal/model"
	"github.com/SergeyParamoshkin/gamereviews/internal/payload"
)

type Repository interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type ListResponse struct {
	Categories []model.Category `json:"categories"`
}

func (rd *ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type Response struct {
	Category model.Category `json:"category"`
}

func (rd *Response) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// List handles GET /api/categories.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List(r.Context())
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := render.Render(w, r, &ListResponse{Categories: categories}); err != nil {
		logging.FromContext(r.Context()).Errorw("render categories", "error", err)
	}
}

// Create handles POST /api/categories.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	data := &payload.CategoryRequest{}
	if err := payload.Decode(r, data); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	created, err := h.repo.Create(r.Context(), model.Category{Slug: data.Slug, Description: data.Description})
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, &Response{Category: created}); err != nil {
		logging.FromContext(r.Context()).Errorw("render category", "error", err)
	}
}
