package model

import "time"

type Category struct {
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}

type User struct {
	Username  string `db:"username" json:"username"`
	Name      string `db:"name" json:"name"`
	AvatarURL string `db:"avatar_url" json:"avatar_url"`
}

type Comment struct {
	CommentID int64     `db:"comment_id" json:"comment_id"`
	ReviewID  int64     `db:"review_id" json:"review_id"`
	Author    string    `db:"author" json:"author"`
	Body      string    `db:"body" json:"body"`
	Votes     int64     `db:"votes" json:"votes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
