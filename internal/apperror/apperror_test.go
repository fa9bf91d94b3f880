package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
		kind   Kind
		field  string
	}{
		{"invalid sort", InvalidSort("bananas"), http.StatusBadRequest, KindValidation, "sort_by"},
		{"invalid order", InvalidOrder("up"), http.StatusBadRequest, KindValidation, "order"},
		{"query type", InvalidQueryType("limit"), http.StatusBadRequest, KindValidation, "limit"},
		{"missing", MissingField("inc_votes"), http.StatusBadRequest, KindValidation, "inc_votes"},
		{"type", InvalidType("inc_votes", "an integer"), http.StatusBadRequest, KindValidation, "inc_votes"},
		{"unexpected", UnexpectedField("colour"), http.StatusBadRequest, KindValidation, "colour"},
		{"not found", NotFound(MsgReviewNotFound), http.StatusNotFound, KindNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.field, tt.err.Field)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("select review: %w", NotFound(MsgReviewNotFound))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, MsgReviewNotFound, e.Msg)
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))

	_, ok = As(errors.New("boom"))
	assert.False(t, ok)
}
