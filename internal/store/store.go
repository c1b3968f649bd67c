package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

type Post struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Store interface {
	// IncrementView atomically bumps the view counter for slug,
	// creating the row at 1 if absent, and returns the new count.
	IncrementView(ctx context.Context, slug string) (int64, error)
	// GetViews returns counts for the slugs that have a row; slugs
	// with no recorded views are simply absent from the result.
	GetViews(ctx context.Context, slugs []string) (map[string]int64, error)

	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id int64) (Post, error)
	CreatePost(ctx context.Context, p Post) (Post, error)
	UpdatePost(ctx context.Context, p Post) (Post, error)
	UpdatePostStatus(ctx context.Context, id int64, status string) error
	DeletePost(ctx context.Context, id int64) error
}
