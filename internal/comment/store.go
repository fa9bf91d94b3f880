package comment

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

var columns = []string{"comment_id", "review_id", "author", "body", "votes", "created_at"}

type Store struct {
	db *db.DB
}

func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// ListByReview returns a page of the review's comments, newest first.
func (s *Store) ListByReview(ctx context.Context, reviewID int64, page query.Page) ([]model.Comment, error) {
	if err := db.Check(ctx, s.db, db.ReviewID, reviewID); err != nil {
		return nil, err
	}

	comments := []model.Comment{}
	if page.OutOfRange() {
		return comments, nil
	}

	err := s.db.Select(ctx, &comments, s.db.Builder().
		Select(columns...).
		From("comments").
		Where(sq.Eq{"review_id": reviewID}).
		OrderBy("created_at DESC", "comment_id DESC").
		Limit(page.Limit).
		Offset(page.Offset()))
	if err != nil {
		return nil, fmt.Errorf("select comments of review %d: %w", reviewID, err)
	}

	return comments, nil
}

func get(ctx context.Context, q db.Querier, id int64) (model.Comment, error) {
	var c model.Comment

	err := q.Get(ctx, &c, q.Builder().
		Select(columns...).
		From("comments").
		Where(sq.Eq{"comment_id": id}))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Comment{}, apperror.NotFound(apperror.MsgCommentNotFound)
	}
	if err != nil {
		return model.Comment{}, fmt.Errorf("select comment %d: %w", id, err)
	}

	return c, nil
}

// Create adds a comment by author to the review. Both must exist.
func (s *Store) Create(ctx context.Context, c model.Comment) (model.Comment, error) {
	var created model.Comment

	err := s.db.Transaction(ctx, func(tx *db.Tx) error {
		if err := db.Check(ctx, tx, db.ReviewID, c.ReviewID); err != nil {
			return err
		}

		if err := db.Check(ctx, tx, db.Username, c.Author); err != nil {
			return err
		}

		var id int64
		err := tx.Get(ctx, &id, tx.Builder().
			Insert("comments").
			Columns("review_id", "author", "body").
			Values(c.ReviewID, c.Author, c.Body).
			Suffix("RETURNING comment_id"))
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}

		created, err = get(ctx, tx, id)

		return err
	})
	if err != nil {
		return model.Comment{}, err
	}

	return created, nil
}

func (s *Store) AddVotes(ctx context.Context, id, inc int64) (model.Comment, error) {
	var updated model.Comment

	err := s.db.Transaction(ctx, func(tx *db.Tx) error {
		if err := db.Check(ctx, tx, db.CommentID, id); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, tx.Builder().
			Update("comments").
			Set("votes", sq.Expr("votes + ?", inc)).
			Where(sq.Eq{"comment_id": id}))
		if err != nil {
			return fmt.Errorf("update comment %d votes: %w", id, err)
		}

		updated, err = get(ctx, tx, id)

		return err
	})
	if err != nil {
		return model.Comment{}, err
	}

	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.Exec(ctx, s.db.Builder().Delete("comments").Where(sq.Eq{"comment_id": id}))
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound(apperror.MsgCommentNotFound)
	}

	return nil
}
