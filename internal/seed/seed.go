// Package seed loads a dataset of categories, users, reviews and comments
// into a freshly reset database.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/SergeyParamoshkin/gamereviews/internal/db"
	"github.com/SergeyParamoshkin/gamereviews/internal/model"
)

//go:embed data/test/*.json
var embedded embed.FS

type Review struct {
	Title     string    `json:"title"`
	Body      string    `json:"review_body"`
	Designer  string    `json:"designer"`
	ImgURL    string    `json:"review_img_url"`
	Votes     int64     `json:"votes"`
	Category  string    `json:"category"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment references its review by title and its author by username, the
// review id only exists once reviews are inserted.
type Comment struct {
	Body      string    `json:"body"`
	BelongsTo string    `json:"belongs_to"`
	CreatedBy string    `json:"created_by"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

type Dataset struct {
	Categories []model.Category
	Users      []model.User
	Reviews    []Review
	Comments   []Comment
}

// TestData is the dataset bundled with the binary.
func TestData() (Dataset, error) {
	sub, err := fs.Sub(embedded, "data/test")
	if err != nil {
		return Dataset{}, err
	}

	return Load(sub)
}

// LoadDir reads categories.json, users.json, reviews.json and
// comments.json from dir.
func LoadDir(dir string) (Dataset, error) {
	return Load(os.DirFS(dir))
}

func Load(fsys fs.FS) (Dataset, error) {
	var ds Dataset

	files := []struct {
		name string
		dest any
	}{
		{"categories.json", &ds.Categories},
		{"users.json", &ds.Users},
		{"reviews.json", &ds.Reviews},
		{"comments.json", &ds.Comments},
	}

	for _, f := range files {
		raw, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return Dataset{}, fmt.Errorf("read %s: %w", f.name, err)
		}

		if err := json.Unmarshal(raw, f.dest); err != nil {
			return Dataset{}, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}

	return ds, nil
}

type insertedReview struct {
	ReviewID int64  `db:"review_id"`
	Title    string `db:"title"`
}

// refMap indexes review ids by title.
func refMap(reviews []insertedReview) map[string]int64 {
	ref := make(map[string]int64, len(reviews))
	for _, r := range reviews {
		ref[r.Title] = r.ReviewID
	}

	return ref
}

// Run drops and recreates every table, then inserts ds in one transaction.
func Run(ctx context.Context, d *db.DB, ds Dataset) error {
	if err := d.Reset(ctx); err != nil {
		return err
	}

	return d.Transaction(ctx, func(tx *db.Tx) error {
		if err := insertCategories(ctx, tx, ds.Categories); err != nil {
			return err
		}

		if err := insertUsers(ctx, tx, ds.Users); err != nil {
			return err
		}

		inserted, err := insertReviews(ctx, tx, ds.Reviews)
		if err != nil {
			return err
		}

		return insertComments(ctx, tx, ds.Comments, refMap(inserted))
	})
}

func insertCategories(ctx context.Context, tx *db.Tx, categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}

	q := tx.Builder().Insert("categories").Columns("slug", "description")
	for _, c := range categories {
		q = q.Values(c.Slug, c.Description)
	}

	if _, err := tx.Exec(ctx, q); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}

	return nil
}

func insertUsers(ctx context.Context, tx *db.Tx, users []model.User) error {
	if len(users) == 0 {
		return nil
	}

	q := tx.Builder().Insert("users").Columns("username", "name", "avatar_url")
	for _, u := range users {
		q = q.Values(u.Username, u.Name, u.AvatarURL)
	}

	if _, err := tx.Exec(ctx, q); err != nil {
		return fmt.Errorf("insert users: %w", err)
	}

	return nil
}

func insertReviews(ctx context.Context, tx *db.Tx, reviews []Review) ([]insertedReview, error) {
	if len(reviews) == 0 {
		return nil, nil
	}

	q := tx.Builder().
		Insert("reviews").
		Columns("title", "review_body", "designer", "review_img_url", "votes", "category", "owner", "created_at")
	for _, r := range reviews {
		img := r.ImgURL
		if img == "" {
			img = model.DefaultReviewImgURL
		}
		q = q.Values(r.Title, r.Body, r.Designer, img, r.Votes, r.Category, r.Owner, r.CreatedAt.UTC())
	}

	var inserted []insertedReview
	if err := tx.Select(ctx, &inserted, q.Suffix("RETURNING review_id, title")); err != nil {
		return nil, fmt.Errorf("insert reviews: %w", err)
	}

	return inserted, nil
}

func insertComments(ctx context.Context, tx *db.Tx, comments []Comment, ref map[string]int64) error {
	if len(comments) == 0 {
		return nil
	}

	q := tx.Builder().Insert("comments").Columns("author", "review_id", "votes", "created_at", "body")
	for _, c := range comments {
		reviewID, ok := ref[c.BelongsTo]
		if !ok {
			return fmt.Errorf("comment %q belongs to unknown review %q", c.Body, c.BelongsTo)
		}
		q = q.Values(c.CreatedBy, reviewID, c.Votes, c.CreatedAt.UTC(), c.Body)
	}

	if _, err := tx.Exec(ctx, q); err != nil {
		return fmt.Errorf("insert comments: %w", err)
	}

	return nil
}
