package model

import "time"

// Review data model. CommentCount is a projection computed by the
// store, it has no column of its own.
type Review struct {
	ReviewID     int64     `db:"review_id" json:"review_id"`
	Title        string    `db:"title" json:"title"`
	Body         string    `db:"review_body" json:"review_body,omitempty"`
	Designer     string    `db:"designer" json:"designer"`
	ImgURL       string    `db:"review_img_url" json:"review_img_url"`
	Votes        int64     `db:"votes" json:"votes"`
	Category     string    `db:"category" json:"category"`
	Owner        string    `db:"owner" json:"owner"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	CommentCount int64     `db:"comment_count" json:"comment_count"`
}

// DefaultReviewImgURL is used when a review is created without an image.
const DefaultReviewImgURL = "https://images.pexels.com/photos/163064/play-stone-network-networked-interactive-163064.jpeg"
