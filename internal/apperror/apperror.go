// Package apperror holds the errors that carry an HTTP status and a client
// facing message. Anything else reaching the error translation layer is
// treated as internal.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindNotFound
)

const (
	MsgUseNumber        = "Invalid query type. Please use a number for all id, limit and page values."
	MsgAlreadyExists    = "That already exists! Please try again."
	MsgMalformedBody    = "Request body must be a JSON object."
	MsgOutOfRange       = "That value is out of range."
	MsgRouteNotFound    = "Welcome! That route does not exist. Head over to /api to read about all the endpoints available on this API."
	MsgMethodNotAllowed = "That method is not supported on this endpoint. See /api for the available ones."
	MsgInternal         = "Whoops! Something went wrong!"

	MsgCategoryNotFound = `Invalid category. Remember to use underscores "_" instead of spaces in category names.`
	MsgReviewNotFound   = "Review does not exist."
	MsgUserNotFound     = "User does not exist."
	MsgCommentNotFound  = "Comment does not exist."
	MsgNotFound         = "The referenced resource does not exist."
)

type Error struct {
	Kind   Kind
	Status int
	Msg    string
	// Field names the offending request field or query parameter, if any.
	Field string
}

func (e *Error) Error() string {
	return e.Msg
}

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Msg: msg, Field: field}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Msg: msg}
}

func InvalidSort(value string) *Error {
	return Validation("sort_by", fmt.Sprintf("Invalid sort_by query %q. Please sort by an existing review column.", value))
}

func InvalidOrder(value string) *Error {
	return Validation("order", fmt.Sprintf("Invalid order query %q. Please use asc or desc.", value))
}

func InvalidQueryType(field string) *Error {
	return Validation(field, MsgUseNumber)
}

func MissingField(field string) *Error {
	return Validation(field, fmt.Sprintf("Missing required field %q.", field))
}

func InvalidType(field, want string) *Error {
	return Validation(field, fmt.Sprintf("Field %q must be %s.", field, want))
}

func UnexpectedField(field string) *Error {
	return Validation(field, fmt.Sprintf("Unexpected field %q. Please only include the documented fields.", field))
}

func MalformedBody() *Error {
	return Validation("", MsgMalformedBody)
}

// As unwraps err into an *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

func IsNotFound(err error) bool {
	e, ok := As(err)

	return ok && e.Kind == KindNotFound
}

func IsValidation(err error) bool {
	e, ok := As(err)

	return ok && e.Kind == KindValidation
}
