package db

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/gamereviews/internal/model"
)

// Tables in dependency order, parents first.
var Tables = []string{"categories", "users", "reviews", "comments"}

func (d *DB) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS categories (
			slug VARCHAR(100) PRIMARY KEY NOT NULL,
			description TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			username VARCHAR(100) PRIMARY KEY NOT NULL,
			name VARCHAR(100) NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT ''
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS reviews (
			review_id %s,
			title VARCHAR(100) NOT NULL,
			review_body TEXT NOT NULL,
			designer VARCHAR(100) NOT NULL,
			review_img_url TEXT NOT NULL DEFAULT '%s',
			votes INT NOT NULL DEFAULT 0,
			category VARCHAR(100) NOT NULL REFERENCES categories(slug),
			owner VARCHAR(100) NOT NULL REFERENCES users(username),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, d.dialect.SerialKey(), model.DefaultReviewImgURL),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS comments (
			comment_id %s,
			author VARCHAR(100) NOT NULL REFERENCES users(username),
			review_id INT NOT NULL REFERENCES reviews(review_id),
			votes INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			body TEXT NOT NULL
		)`, d.dialect.SerialKey()),
		`CREATE INDEX IF NOT EXISTS comments_review_id_idx ON comments (review_id)`,
		`CREATE INDEX IF NOT EXISTS reviews_category_idx ON reviews (category)`,
	}
}

// Migrate creates any missing table.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range d.schema() {
		if _, err := d.x.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}

// Reset drops every table and creates the schema again.
func (d *DB) Reset(ctx context.Context) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := d.x.ExecContext(ctx, "DROP TABLE IF EXISTS "+Tables[i]); err != nil {
			return fmt.Errorf("drop %s: %w", Tables[i], err)
		}
	}

	return d.Migrate(ctx)
}
