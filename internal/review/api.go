// Package review serves the reviews collection: the filtered, sorted and
// paginated listing, single reviews, creation, vote increments and deletion.
package review

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/gamereviews/internal/apperror"
	"github.com/SergeyParamoshkin/gamereviews/internal/errresponse"
	"github.com/SergeyParamoshkin/gamereviews/internal/logging"
	"github.com/SergeyParamoshkin/gamereviews/internal/model"
	"github.com/SergeyParamoshkin/gamereviews/internal/payload"
	"github.com/SergeyParamoshkin/gamereviews/internal/query"
)

type Repository interface {
	List(ctx context.Context, q query.Reviews) ([]model.Review, int64, error)
	Get(ctx context.Context, id int64) (model.Review, error)
	Create(ctx context.Context, r model.Review) (model.Review, error)
	AddVotes(ctx context.Context, id, inc int64) (model.Review, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListResponse is one page of reviews. TotalCount ignores pagination.
type ListResponse struct {
	Reviews    []model.Review `json:"reviews"`
	TotalCount int64          `json:"total_count"`
}

func (rd *ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type Response struct {
	Review model.Review `json:"review"`
}

func (rd *Response) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// List handles GET /api/reviews?sort_by=&order=&category=&limit=&page=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := query.ParseReviews(r.URL.Query())
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	reviews, total, err := h.repo.List(r.Context(), q)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := render.Render(w, r, &ListResponse{Reviews: reviews, TotalCount: total}); err != nil {
		logging.FromContext(r.Context()).Errorw("render reviews", "error", err)
	}
}

// Get returns the review loaded by Ctx.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rv, ok := FromContext(r.Context())
	if !ok {
		errresponse.Render(w, r, apperror.NotFound(apperror.MsgReviewNotFound))

		return
	}

	if err := render.Render(w, r, &Response{Review: *rv}); err != nil {
		logging.FromContext(r.Context()).Errorw("render review", "error", err)
	}
}

// Create handles POST /api/reviews.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	data := &payload.ReviewRequest{}
	if err := payload.Decode(r, data); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	created, err := h.repo.Create(r.Context(), model.Review{
		Owner:    data.Owner,
		Title:    data.Title,
		Body:     data.Body,
		Designer: data.Designer,
		Category: data.Category,
		ImgURL:   data.ImgURL,
	})
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, &Response{Review: created}); err != nil {
		logging.FromContext(r.Context()).Errorw("render review", "error", err)
	}
}

// PatchVotes handles PATCH /api/reviews/{review_id} with {"inc_votes": n}.
func (h *Handler) PatchVotes(w http.ResponseWriter, r *http.Request) {
	rv, ok := FromContext(r.Context())
	if !ok {
		errresponse.Render(w, r, apperror.NotFound(apperror.MsgReviewNotFound))

		return
	}

	data := &payload.VotesRequest{}
	if err := payload.Decode(r, data); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	updated, err := h.repo.AddVotes(r.Context(), rv.ReviewID, data.IncVotes)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := render.Render(w, r, &Response{Review: updated}); err != nil {
		logging.FromContext(r.Context()).Errorw("render review", "error", err)
	}
}

// Delete handles DELETE /api/reviews/{review_id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	rv, ok := FromContext(r.Context())
	if !ok {
		errresponse.Render(w, r, apperror.NotFound(apperror.MsgReviewNotFound))

		return
	}

	if err := h.repo.Delete(r.Context(), rv.ReviewID); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	logging.FromContext(r.Context()).Infow("review deleted", "review_id", rv.ReviewID)
	w.WriteHeader(http.StatusNoContent)
}
