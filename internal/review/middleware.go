package review

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergeyParamoshkin/gamereviews/internal/errresponse"
	"github.com/SergeyParamoshkin/gamereviews/internal/model"
	"github.com/SergeyParamoshkin/gamereviews/internal/query"
)

type ctxKey struct{}

// Ctx middleware loads the Review named by the review_id URL parameter
// and stores it in the request context. A malformed id is a 400 and a
// missing review a 404, the wrapped handler is not called in either case.
func (h *Handler) Ctx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := query.ParseID("review_id", chi.URLParam(r, "review_id"))
		if err != nil {
			errresponse.Render(w, r, err)

			return
		}

		rv, err := h.repo.Get(r.Context(), id)
		if err != nil {
			errresponse.Render(w, r, err)

			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, &rv)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the review loaded by Ctx.
func FromContext(ctx context.Context) (*model.Review, bool) {
	rv, ok := ctx.Value(ctxKey{}).(*model.Review)

	return rv, ok
}
