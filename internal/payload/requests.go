package payload

import (
	"encoding/json"
	"net/http"
)

// VotesRequest is the body of the vote PATCH endpoints: {"inc_votes": n}.
// Zero is a valid increment.
type VotesRequest struct {
	IncVotes int64

	raw fields
}

func (v *VotesRequest) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &v.raw)
}

func (v *VotesRequest) Bind(r *http.Request) error {
	if err := v.raw.require("inc_votes"); err != nil {
		return err
	}

	if err := v.raw.only("inc_votes"); err != nil {
		return err
	}

	n, err := v.raw.integer("inc_votes")
	if err != nil {
		return err
	}
	v.IncVotes = n

	return nil
}

// ReviewRequest is the body of POST /api/reviews.
type ReviewRequest struct {
	Owner    string
	Title    string
	Body     string
	Designer string
	Category string
	// ImgURL is optional, the store falls back to a placeholder image.
	ImgURL string

	raw fields
}

func (rr *ReviewRequest) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &rr.raw)
}

func (rr *ReviewRequest) Bind(r *http.Request) error {
	if err := rr.raw.require("owner", "title", "review_body", "designer", "category"); err != nil {
		return err
	}

	if err := rr.raw.only("owner", "title", "review_body", "designer", "category", "review_img_url"); err != nil {
		return err
	}

	err := rr.raw.texts(map[string]*string{
		"owner":       &rr.Owner,
		"title":       &rr.Title,
		"review_body": &rr.Body,
		"designer":    &rr.Designer,
		"category":    &rr.Category,
	})
	if err != nil {
		return err
	}

	rr.ImgURL, err = rr.raw.optionalText("review_img_url")

	return err
}

// CommentRequest is the body of POST /api/reviews/{review_id}/comments.
type CommentRequest struct {
	Username string
	Body     string

	raw fields
}

func (c *CommentRequest) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &c.raw)
}

func (c *CommentRequest) Bind(r *http.Request) error {
	if err := c.raw.require("username", "body"); err != nil {
		return err
	}

	if err := c.raw.only("username", "body"); err != nil {
		return err
	}

	return c.raw.texts(map[string]*string{
		"username": &c.Username,
		"body":     &c.Body,
	})
}

// CategoryRequest is the body of POST /api/categories.
type CategoryRequest struct {
	Slug        string
	Description string

	raw fields
}

func (c *CategoryRequest) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &c.raw)
}

func (c *CategoryRequest) Bind(r *http.Request) error {
	if err := c.raw.require("slug", "description"); err != nil {
		return err
	}

	if err := c.raw.only("slug", "description"); err != nil {
		return err
	}

	return c.raw.texts(map[string]*string{
		"slug":        &c.Slug,
		"description": &c.Description,
	})
}
