package user

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/SergeyParamoshkin/gamereviews/internal/db"
	"github.com/SergeyParamoshkin/gamereviews/internal/model"
	"github.com/SergeyParamoshkin/gamereviews/internal/query"
)

var columns = []string{"username", "name", "avatar_url"}

type Store struct {
	db *db.DB
}

func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// List returns every user ordered by username.
func (s *Store) List(ctx context.Context, order query.Order) ([]model.User, error) {
	users := []model.User{}

	err := s.db.Select(ctx, &users, s.db.Builder().
		Select(columns...).
		From("users").
		OrderBy("username "+order.SQL()))
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	return users, nil
}

func (s *Store) Get(ctx context.Context, username string) (model.User, error) {
	if err := db.Check(ctx, s.db, db.Username, username); err != nil {
		return model.User{}, err
	}

	var u model.User
	err := s.db.Get(ctx, &u, s.db.Builder().
		Select(columns...).
		From("users").
		Where(sq.Eq{"username": username}))
	if err != nil {
		return model.User{}, fmt.Errorf("select user %q: %w", username, err)
	}

	return u, nil
}
