package query

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/gamereviews/internal/apperror"
)

func TestParseReviewsDefaults(t *testing.T) {
	got, err := ParseReviews(url.Values{})
	require.NoError(t, err)

	want := Reviews{
		SortBy: "created_at",
		Order:  Asc,
		Page:   Page{Limit: 10, Page: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseReviews() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"reviews.created_at ASC", "reviews.review_id ASC"}, got.OrderBy())
}

func TestParseReviews(t *testing.T) {
	got, err := ParseReviews(url.Values{
		"sort_by":  {"votes"},
		"order":    {"DESC"},
		"category": {"social_deduction"},
		"limit":    {"3"},
		"page":     {"2"},
	})
	require.NoError(t, err)

	want := Reviews{
		SortBy:   "votes",
		Order:    Desc,
		Category: "social deduction",
		Page:     Page{Limit: 3, Page: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseReviews() mismatch (-want +got):\n%s", diff)
	}
	assert.EqualValues(t, 3, got.Page.Offset())
	assert.Equal(t, []string{"reviews.votes DESC", "reviews.review_id ASC"}, got.OrderBy())
}

func TestParseReviewsAcceptsEverySortKey(t *testing.T) {
	for _, key := range ReviewSortKeys() {
		t.Run(key, func(t *testing.T) {
			r, err := ParseReviews(url.Values{"sort_by": {key}})
			require.NoError(t, err)
			assert.NotEmpty(t, r.OrderBy())
		})
	}
	assert.Len(t, ReviewSortKeys(), 8)
}

func TestSortByReviewIDHasNoTieBreak(t *testing.T) {
	r, err := ParseReviews(url.Values{"sort_by": {"review_id"}, "order": {"desc"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"reviews.review_id DESC"}, r.OrderBy())
}

func TestParseReviewsErrors(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		field string
	}{
		{"unknown sort", url.Values{"sort_by": {"review_body"}}, "sort_by"},
		{"injection in sort", url.Values{"sort_by": {"votes; DROP TABLE reviews"}}, "sort_by"},
		{"bad order", url.Values{"order": {"sideways"}}, "order"},
		{"text limit", url.Values{"limit": {"ten"}}, "limit"},
		{"zero limit", url.Values{"limit": {"0"}}, "limit"},
		{"negative page", url.Values{"page": {"-1"}}, "page"},
		{"fraction page", url.Values{"page": {"1.5"}}, "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReviews(tt.query)
			e, ok := apperror.As(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, 400, e.Status)
			assert.Equal(t, tt.field, e.Field)
		})
	}
}

func TestNumericErrorsUseNumberMessage(t *testing.T) {
	_, err := ParsePage(url.Values{"limit": {"lots"}})
	require.Error(t, err)
	assert.Equal(t, apperror.MsgUseNumber, err.Error())
}

func TestPageOffset(t *testing.T) {
	assert.EqualValues(t, 0, Page{Limit: 10, Page: 1}.Offset())
	assert.EqualValues(t, 20, Page{Limit: 10, Page: 3}.Offset())
	assert.EqualValues(t, 12, Page{Limit: 4, Page: 4}.Offset())
}

func TestPageOutOfRange(t *testing.T) {
	p, err := ParsePage(url.Values{"limit": {"4294967295"}, "page": {"4294967295"}})
	require.NoError(t, err)
	assert.True(t, p.OutOfRange())

	p, err = ParsePage(url.Values{"limit": {"4000000000"}, "page": {"3000000000"}})
	require.NoError(t, err)
	assert.True(t, p.OutOfRange())

	assert.False(t, Page{Limit: 2147483648, Page: 2147483648}.OutOfRange())
	assert.False(t, Page{Limit: 10, Page: 5}.OutOfRange())
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("", Desc)
	require.NoError(t, err)
	assert.Equal(t, Desc, o)

	o, err = ParseOrder("Asc", Desc)
	require.NoError(t, err)
	assert.Equal(t, Asc, o)

	_, err = ParseOrder("random", Asc)
	assert.True(t, apperror.IsValidation(err))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("review_id", "42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	id, err = ParseID("review_id", "-3")
	require.NoError(t, err)
	assert.EqualValues(t, -3, id)

	for _, raw := range []string{"banana", "1.5", ""} {
		_, err := ParseID("review_id", raw)
		assert.True(t, apperror.IsValidation(err), raw)
	}
}
