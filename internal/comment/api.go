// Package comment serves the comments of a review and the vote and delete
// endpoints of single comments.
package comment

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/gamereviews/internal/errresponse"
	"github.com/SergeyParamoshkin/gamereviews/internal/logging"
	"github.com/SergeyParamoshkin/gamereviews/internal/model"
	"github.com/SergeyParamoshkin/gamereviews/internal/payload"
	"github.com/SergeyParamoshkin/gamereviews/internal/query"
)

type Repository interface {
	ListByReview(ctx context.Context, reviewID int64, page query.Page) ([]model.Comment, error)
	Create(ctx context.Context, c model.Comment) (model.Comment, error)
	AddVotes(ctx context.Context, id, inc int64) (model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type ListResponse struct {
	Comments []model.Comment `json:"comments"`
}

func (rd *ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type Response struct {
	Comment model.Comment `json:"comment"`
}

func (rd *Response) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ListByReview handles GET /api/reviews/{review_id}/comments?limit=&page=.
func (h *Handler) ListByReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := query.ParseID("review_id", chi.URLParam(r, "review_id"))
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	page, err := query.ParsePage(r.URL.Query())
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	comments, err := h.repo.ListByReview(r.Context(), reviewID, page)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := render.Render(w, r, &ListResponse{Comments: comments}); err != nil {
		logging.FromContext(r.Context()).Errorw("render comments", "error", err)
	}
}

// Create handles POST /api/reviews/{review_id}/comments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	reviewID, err := query.ParseID("review_id", chi.URLParam(r, "review_id"))
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	data := &payload.CommentRequest{}
	if err := payload.Decode(r, data); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	created, err := h.repo.Create(r.Context(), model.Comment{
		ReviewID: reviewID,
		Author:   data.Username,
		Body:     data.Body,
	})
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, &Response{Comment: created}); err != nil {
		logging.FromContext(r.Context()).Errorw("render comment", "error", err)
	}
}

// PatchVotes handles PATCH /api/comments/{comment_id}.
func (h *Handler) PatchVotes(w http.ResponseWriter, r *http.Request) {
	id, err := query.ParseID("comment_id", chi.URLParam(r, "comment_id"))
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	data := &payload.VotesRequest{}
	if err := payload.Decode(r, data); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	updated, err := h.repo.AddVotes(r.Context(), id, data.IncVotes)
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := render.Render(w, r, &Response{Comment: updated}); err != nil {
		logging.FromContext(r.Context()).Errorw("render comment", "error", err)
	}
}

// Delete handles DELETE /api/comments/{comment_id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := query.ParseID("comment_id", chi.URLParam(r, "comment_id"))
	if err != nil {
		errresponse.Render(w, r, err)

		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		errresponse.Render(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
