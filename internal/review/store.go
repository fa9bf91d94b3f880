package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/SergeyParamoshkin/gamereviews/internal/apperror"
	"github.com/SergeyParamoshkin/gamereviews/internal/db"
	"github.com/SergeyParamoshkin/gamereviews/internal/model"
	"github.com/SergeyParamoshkin/gamereviews/internal/query"
)

// listColumns leaves out review_body, only single reviews carry it.
var listColumns = []string{
	"reviews.owner AS owner",
	"reviews.title AS title",
	"reviews.review_id AS review_id",
	"reviews.category AS category",
	"reviews.review_img_url AS review_img_url",
	"reviews.created_at AS created_at",
	"reviews.votes AS votes",
	"reviews.designer AS designer",
	"COUNT(comments.comment_id) AS comment_count",
}

var detailColumns = append([]string{"reviews.review_body AS review_body"}, listColumns...)

type Store struct {
	db *db.DB
}

func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

func withComments(q sq.SelectBuilder) sq.SelectBuilder {
	return q.From("reviews").
		LeftJoin("comments ON comments.review_id = reviews.review_id").
		GroupBy("reviews.review_id")
}

// List returns one page of reviews and the number of reviews matching the
// filter across all pages. An empty page for a category that does not exist
// is a NotFound error.
func (s *Store) List(ctx context.Context, q query.Reviews) ([]model.Review, int64, error) {
	sel := withComments(s.db.Builder().Select(listColumns...))
	count := s.db.Builder().Select("COUNT(*)").From("reviews")

	if q.Category != "" {
		sel = sel.Where(sq.Eq{"reviews.category": q.Category})
		count = count.Where(sq.Eq{"reviews.category": q.Category})
	}

	sel = sel.OrderBy(q.OrderBy()...).
		Limit(q.Page.Limit).
		Offset(q.Page.Offset())

	reviews := []model.Review{}
	if !q.Page.OutOfRange() {
		if err := s.db.Select(ctx, &reviews, sel); err != nil {
			return nil, 0, fmt.Errorf("select reviews: %w", err)
		}
	}

	if len(reviews) == 0 && q.Category != "" {
		if err := db.Check(ctx, s.db, db.CategorySlug, q.Category); err != nil {
			return nil, 0, err
		}
	}

	var total int64
	if err := s.db.Get(ctx, &total, count); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	return reviews, total, nil
}

func (s *Store) Get(ctx context.Context, id int64) (model.Review, error) {
	return get(ctx, s.db, id)
}

func get(ctx context.Context, q db.Querier, id int64) (model.Review, error) {
	var r model.Review

	err := q.Get(ctx, &r, withComments(q.Builder().
		Select(detailColumns...)).
		Where(sq.Eq{"reviews.review_id": id}))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Review{}, apperror.NotFound(apperror.MsgReviewNotFound)
	}
	if err != nil {
		return model.Review{}, fmt.Errorf("select review %d: %w", id, err)
	}

	return r, nil
}

// Create checks that the owner and the category exist, inserts the review
// and returns it as stored.
func (s *Store) Create(ctx context.Context, r model.Review) (model.Review, error) {
	var created model.Review

	err := s.db.Transaction(ctx, func(tx *db.Tx) error {
		if err := db.Check(ctx, tx, db.Username, r.Owner); err != nil {
			return err
		}

		if err := db.Check(ctx, tx, db.CategorySlug, r.Category); err != nil {
			return err
		}

		values := map[string]any{
			"title":       r.Title,
			"review_body": r.Body,
			"designer":    r.Designer,
			"category":    r.Category,
			"owner":       r.Owner,
		}
		if r.ImgURL != "" {
			values["review_img_url"] = r.ImgURL
		}

		var id int64
		err := tx.Get(ctx, &id, tx.Builder().
			Insert("reviews").
			SetMap(values).
			Suffix("RETURNING review_id"))
		if err != nil {
			return fmt.Errorf("insert review: %w", err)
		}

		created, err = get(ctx, tx, id)

		return err
	})
	if err != nil {
		return model.Review{}, err
	}

	return created, nil
}

// AddVotes adds inc to the review's votes and returns the updated review.
func (s *Store) AddVotes(ctx context.Context, id, inc int64) (model.Review, error) {
	res, err := s.db.Exec(ctx, s.db.Builder().
		Update("reviews").
		Set("votes", sq.Expr("votes + ?", inc)).
		Where(sq.Eq{"review_id": id}))
	if err != nil {
		return model.Review{}, fmt.Errorf("update review %d votes: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return model.Review{}, fmt.Errorf("update review %d votes: %w", id, err)
	}
	if n == 0 {
		return model.Review{}, apperror.NotFound(apperror.MsgReviewNotFound)
	}

	return s.Get(ctx, id)
}

// Delete removes the review and its comments in one transaction.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.db.Transaction(ctx, func(tx *db.Tx) error {
		if err := db.Check(ctx, tx, db.ReviewID, id); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, tx.Builder().Delete("comments").Where(sq.Eq{"review_id": id})); err != nil {
			return fmt.Errorf("delete comments of review %d: %w", id, err)
		}

		if _, err := tx.Exec(ctx, tx.Builder().Delete("reviews").Where(sq.Eq{"review_id": id})); err != nil {
			return fmt.Errorf("delete review %d: %w", id, err)
		}

		return nil
	})
}
