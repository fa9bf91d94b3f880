// Package errresponse is the single place where errors become HTTP
// responses. Handlers pass every error they get to Render.
package errresponse

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/gamereviews/internal/apperror"
	"github.com/SergeyParamoshkin/gamereviews/internal/db"
	"github.com/SergeyParamoshkin/gamereviews/internal/logging"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Msg string `json:"msg"` // user-level message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

// FromError maps err to a response. Order matters: errors raised by the
// API itself first, then database errors a client can cause, then 500.
func FromError(err error) *ErrResponse {
	if e, ok := apperror.As(err); ok {
		return &ErrResponse{Err: err, HTTPStatusCode: e.Status, Msg: e.Msg}
	}

	switch {
	case db.IsInvalidInput(err):
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Msg: apperror.MsgUseNumber}
	case db.IsOutOfRange(err):
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Msg: apperror.MsgOutOfRange}
	case db.IsUniqueViolation(err):
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Msg: apperror.MsgAlreadyExists}
	case db.IsForeignKeyViolation(err):
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusNotFound, Msg: apperror.MsgNotFound}
	case db.IsNotNullViolation(err):
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Msg: apperror.MsgMalformedBody}
	}

	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusInternalServerError, Msg: apperror.MsgInternal}
}

// Render writes the response for err. Server errors are logged with their
// cause, which never reaches the client.
func Render(w http.ResponseWriter, r *http.Request, err error) {
	resp := FromError(err)
	logger := logging.FromContext(r.Context())

	if resp.HTTPStatusCode >= http.StatusInternalServerError {
		logger.Errorw("request failed", "error", err)
	}

	if rerr := render.Render(w, r, resp); rerr != nil {
		logger.Errorw("render error response", "error", rerr)
	}
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Render(w, r, apperror.NotFound(apperror.MsgRouteNotFound))
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Render(w, r, &apperror.Error{
		Kind:   apperror.KindValidation,
		Status: http.StatusMethodNotAllowed,
		Msg:    apperror.MsgMethodNotAllowed,
	})
}
