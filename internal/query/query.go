// Package query parses and validates the query string of collection
// endpoints: sort column, sort direction, category filter and offset
// pagination. Sort keys map to fixed SQL expressions so nothing taken from a
// request is interpolated into SQL.
package query

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/SergeyParamoshkin/gamereviews/internal/apperror"
)

const (
	DefaultLimit = 10
	DefaultPage  = 1
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// SQL returns the keyword for an ORDER BY clause.
func (o Order) SQL() string {
	if o == Desc {
		return "DESC"
	}

	return "ASC"
}

// ParseOrder accepts asc or desc in any case. An empty value yields fallback.
func ParseOrder(raw string, fallback Order) (Order, error) {
	if raw == "" {
		return fallback, nil
	}

	switch o := Order(strings.ToLower(raw)); o {
	case Asc, Desc:
		return o, nil
	default:
		return "", apperror.InvalidOrder(raw)
	}
}

// Page is an offset pagination window.
type Page struct {
	Limit uint64
	Page  uint64
}

func (p Page) Offset() uint64 {
	return (p.Page - 1) * p.Limit
}

// OutOfRange reports an offset no database accepts. Such a page is past the
// last row, stores answer it with an empty page without querying.
func (p Page) OutOfRange() bool {
	return p.Offset() > math.MaxInt64
}

// ParsePage reads limit and page, both positive integers.
func ParsePage(v url.Values) (Page, error) {
	limit, err := positive(v, "limit", DefaultLimit)
	if err != nil {
		return Page{}, err
	}

	page, err := positive(v, "page", DefaultPage)
	if err != nil {
		return Page{}, err
	}

	return Page{Limit: limit, Page: page}, nil
}

func positive(v url.Values, key string, fallback uint64) (uint64, error) {
	raw := v.Get(key)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, apperror.InvalidQueryType(key)
	}

	return n, nil
}

// ParseID parses a numeric path parameter such as review_id. Numbers that
// match no row are left for the existence checks to report.
func ParseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.InvalidQueryType(name)
	}

	return id, nil
}

const DefaultReviewSort = "created_at"

var reviewSortColumns = map[string]string{
	"owner":          "reviews.owner",
	"title":          "reviews.title",
	"review_id":      "reviews.review_id",
	"category":       "reviews.category",
	"review_img_url": "reviews.review_img_url",
	"created_at":     "reviews.created_at",
	"votes":          "reviews.votes",
	"comment_count":  "comment_count",
}

// ReviewSortKeys lists the accepted sort_by values.
func ReviewSortKeys() []string {
	keys := make([]string, 0, len(reviewSortColumns))
	for k := range reviewSortColumns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Reviews is a validated GET /api/reviews query.
type Reviews struct {
	SortBy   string
	Order    Order
	Category string
	Page     Page
}

func ParseReviews(v url.Values) (Reviews, error) {
	sortBy := v.Get("sort_by")
	if sortBy == "" {
		sortBy = DefaultReviewSort
	}
	if _, ok := reviewSortColumns[sortBy]; !ok {
		return Reviews{}, apperror.InvalidSort(sortBy)
	}

	order, err := ParseOrder(v.Get("order"), Asc)
	if err != nil {
		return Reviews{}, err
	}

	page, err := ParsePage(v)
	if err != nil {
		return Reviews{}, err
	}

	return Reviews{
		SortBy:   sortBy,
		Order:    order,
		Category: strings.ReplaceAll(v.Get("category"), "_", " "),
		Page:     page,
	}, nil
}

// OrderBy returns the ORDER BY terms. review_id breaks ties so pages are
// stable.
func (r Reviews) OrderBy() []string {
	col := reviewSortColumns[r.SortBy]
	if col == "" {
		col = reviewSortColumns[DefaultReviewSort]
	}

	terms := []string{col + " " + r.Order.SQL()}
	if r.SortBy != "review_id" {
		terms = append(terms, "reviews.review_id ASC")
	}

	return terms
}
