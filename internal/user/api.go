package user

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/gamereviews/internal/errresponse"
	"github.com/SergeyParamoshkin/gamereviews/internal/logging"
	"github.com/SergeyParamoshkin/gamereviews/internal/model"
	"github.com/SergeyParamoshkin/gamereviews/internal/query"
)

type Repository interface {
	List(ctx context.Context, order query.Order) ([]model.User, error)
	Get(ctx context.Context, username string) (model.User, error)
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type ListResponse struct {
	Users []model.User `json:"users"`
}

func (rd *ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type Response struct {
	User model.User `json:"user"`
}

func (rd *Response) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// List handles GET /api/users?order=asc|desc.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	order, err := query.ParseOrder(r.URL.Query().Get("order"), query.Asc)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	users, err := h.repo.List(r.Context(), order)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := render.Render(w, r, &ListResponse{Users: users}); err != nil {
		logging.FromContext(r.Context()).Errorw("render users", "error", err)
	}
}

// Get handles GET /api/users/{username}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.repo.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := render.Render(w, r, &Response{User: u}); err != nil {
		logging.FromContext(r.Context()).Errorw("render user", "error", err)
	}
}
