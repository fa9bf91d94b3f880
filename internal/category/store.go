package category

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/gamereviews/internal/db"
	"github.com/SergeyParamoshkin/gamereviews/internal/model"
)

type Store struct {
	db *db.DB
}

func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

func (s *Store) List(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}

	err := s.db.Select(ctx, &categories, s.db.Builder().
		Select("slug", "description").
		From("categories").
		OrderBy("slug"))
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}

	return categories, nil
}

// Create inserts c. A duplicate slug surfaces as a unique violation.
func (s *Store) Create(ctx context.Context, c model.Category) (model.Category, error) {
	var created model.Category

	err := s.db.Get(ctx, &created, s.db.Builder().
		Insert("categories").
		Columns("slug", "description").
		Values(c.Slug, c.Description).
		Suffix("RETURNING slug, description"))
	if err != nil {
		return model.Category{}, fmt.Errorf("insert category: %w", err)
	}

	return created, nil
}
