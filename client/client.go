// Package client is a typed HTTP client for the gamereviews API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	http.Client
	Addr string
}

func New(addr string) *Client {
	return &Client{
		Client: http.Client{Timeout: 10 * time.Second},
		Addr:   strings.TrimSuffix(addr, "/"),
	}
}

type Category struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type User struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type Review struct {
	ReviewID     int64     `json:"review_id"`
	Title        string    `json:"title"`
	Body         string    `json:"review_body,omitempty"`
	Designer     string    `json:"designer"`
	ImgURL       string    `json:"review_img_url"`
	Votes        int64     `json:"votes"`
	Category     string    `json:"category"`
	Owner        string    `json:"owner"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int64     `json:"comment_count"`
}

type Comment struct {
	CommentID int64     `json:"comment_id"`
	ReviewID  int64     `json:"review_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReview is the body of CreateReview. ImgURL may be left empty.
type NewReview struct {
	Owner    string `json:"owner"`
	Title    string `json:"title"`
	Body     string `json:"review_body"`
	Designer string `json:"designer"`
	Category string `json:"category"`
	ImgURL   string `json:"review_img_url,omitempty"`
}

// ReviewsQuery filters, sorts and pages GET /api/reviews. Zero values are
// left to the server defaults.
type ReviewsQuery struct {
	SortBy   string
	Order    string
	Category string
	Limit    int
	Page     int
}

func (q ReviewsQuery) values() url.Values {
	v := url.Values{}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Category != "" {
		v.Set("category", strings.ReplaceAll(q.Category, " ", "_"))
	}
	if q.Limit != 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page != 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}

	return v
}

// APIError is a non 2xx answer. Msg is the server's message.
type APIError struct {
	StatusCode int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gamereviews: %d %s", e.StatusCode, e.Msg)
}

// StatusCode returns the HTTP status of an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.Addr + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e struct {
			Msg string `json:"msg"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil {
			apiErr.Msg = e.Msg
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Ping checks /healthz and returns the reported status.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, &out); err != nil {
		return "", err
	}

	return out.Status, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out struct {
		Categories []Category `json:"categories"`
	}
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &out)

	return out.Categories, err
}

func (c *Client) CreateCategory(ctx context.Context, cat Category) (Category, error) {
	var out struct {
		Category Category `json:"category"`
	}
	err := c.do(ctx, http.MethodPost, "/api/categories", nil, cat, &out)

	return out.Category, err
}

// Users lists users, order is "asc", "desc" or empty.
func (c *Client) Users(ctx context.Context, order string) ([]User, error) {
	q := url.Values{}
	if order != "" {
		q.Set("order", order)
	}

	var out struct {
		Users []User `json:"users"`
	}
	err := c.do(ctx, http.MethodGet, "/api/users", q, nil, &out)

	return out.Users, err
}

func (c *Client) User(ctx context.Context, username string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(username), nil, nil, &out)

	return out.User, err
}

// Reviews returns one page of reviews and the total across pages.
func (c *Client) Reviews(ctx context.Context, q ReviewsQuery) ([]Review, int64, error) {
	var out struct {
		Reviews    []Review `json:"reviews"`
		TotalCount int64    `json:"total_count"`
	}
	err := c.do(ctx, http.MethodGet, "/api/reviews", q.values(), nil, &out)

	return out.Reviews, out.TotalCount, err
}

func (c *Client) Review(ctx context.Context, id int64) (Review, error) {
	var out struct {
		Review Review `json:"review"`
	}
	err := c.do(ctx, http.MethodGet, reviewPath(id), nil, nil, &out)

	return out.Review, err
}

func (c *Client) CreateReview(ctx context.Context, r NewReview) (Review, error) {
	var out struct {
		Review Review `json:"review"`
	}
	err := c.do(ctx, http.MethodPost, "/api/reviews", nil, r, &out)

	return out.Review, err
}

func (c *Client) AddReviewVotes(ctx context.Context, id, inc int64) (Review, error) {
	var out struct {
		Review Review `json:"review"`
	}
	err := c.do(ctx, http.MethodPatch, reviewPath(id), nil, votes{IncVotes: inc}, &out)

	return out.Review, err
}

func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, reviewPath(id), nil, nil, nil)
}

// Comments returns a page of the review's comments, newest first. Zero
// limit or page use the server defaults.
func (c *Client) Comments(ctx context.Context, reviewID int64, limit, page int) ([]Comment, error) {
	q := url.Values{}
	if limit != 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if page != 0 {
		q.Set("page", strconv.Itoa(page))
	}

	var out struct {
		Comments []Comment `json:"comments"`
	}
	err := c.do(ctx, http.MethodGet, reviewPath(reviewID)+"/comments", q, nil, &out)

	return out.Comments, err
}

func (c *Client) CreateComment(ctx context.Context, reviewID int64, username, body string) (Comment, error) {
	in := struct {
		Username string `json:"username"`
		Body     string `json:"body"`
	}{username, body}

	var out struct {
		Comment Comment `json:"comment"`
	}
	err := c.do(ctx, http.MethodPost, reviewPath(reviewID)+"/comments", nil, in, &out)

	return out.Comment, err
}

func (c *Client) AddCommentVotes(ctx context.Context, id, inc int64) (Comment, error) {
	var out struct {
		Comment Comment `json:"comment"`
	}
	err := c.do(ctx, http.MethodPatch, commentPath(id), nil, votes{IncVotes: inc}, &out)

	return out.Comment, err
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, commentPath(id), nil, nil, nil)
}

type votes struct {
	IncVotes int64 `json:"inc_votes"`
}

func reviewPath(id int64) string {
	return "/api/reviews/" + strconv.FormatInt(id, 10)
}

func commentPath(id int64) string {
	return "/api/comments/" + strconv.FormatInt(id, 10)
}
