package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/SergeyParamoshkin/gamereviews/internal/apperror"
)

// Target is a column an existence check can look at. Only the targets
// below exist, so table and column names never come from a request.
type Target struct {
	Table    string
	Column   string
	notFound string
}

var (
	CategorySlug = Target{Table: "categories", Column: "slug", notFound: apperror.MsgCategoryNotFound}
	ReviewID     = Target{Table: "reviews", Column: "review_id", notFound: apperror.MsgReviewNotFound}
	Username     = Target{Table: "users", Column: "username", notFound: apperror.MsgUserNotFound}
	CommentID    = Target{Table: "comments", Column: "comment_id", notFound: apperror.MsgCommentNotFound}
)

// Exists reports whether at least one row of t matches value.
func Exists(ctx context.Context, q Querier, t Target, value any) (bool, error) {
	var one int

	err := q.Get(ctx, &one, q.Builder().
		Select("1").
		From(t.Table).
		Where(sq.Eq{t.Column: value}).
		Limit(1))
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s.%s: %w", t.Table, t.Column, err)
	}

	return true, nil
}

// Check is Exists turned into a NotFound error with a message specific to t.
func Check(ctx context.Context, q Querier, t Target, value any) error {
	ok, err := Exists(ctx, q, t, value)
	if err != nil {
		return err
	}

	if !ok {
		return apperror.NotFound(t.notFound)
	}

	return nil
}
