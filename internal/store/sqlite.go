package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// IncrementView relies on a single upsert statement for atomicity:
// concurrent increments for the same slug must never lose an update,
// so there is no read-modify-write here.
func (s *SQLite) IncrementView(ctx context.Context, slug string) (int64, error) {
	var views int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO post_views(slug, views, updated_at) VALUES(?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(slug) DO UPDATE SET views = views + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING views`, slug).Scan(&views)
	if err != nil {
		return 0, err
	}
	return views, nil
}

func (s *SQLite) GetViews(ctx context.Context, slugs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(slugs))
	if len(slugs) == 0 {
		return out, nil
	}
	placeholders := strings.Repeat("?, ", len(slugs)-1) + "?"
	args := make([]any, len(slugs))
	for i, sl := range slugs {
		args[i] = sl
	}
	rows, err := s.db.QueryContext(ctx, `SELECT slug, views FROM post_views WHERE slug IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sl string
		var n int64
		if err := rows.Scan(&sl, &n); err != nil {
			return nil, err
		}
		out[sl] = n
	}
	return out, rows.Err()
}

const postCols = `id, slug, title, body, status, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *SQLite) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postCols+` FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (s *SQLite) GetPost(ctx context.Context, id int64) (Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, `SELECT `+postCols+` FROM posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return p, err
}

func (s *SQLite) CreatePost(ctx context.Context, p Post) (Post, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO posts(slug, title, body, status) VALUES(?, ?, ?, ?)
		RETURNING `+postCols, p.Slug, p.Title, p.Body, p.Status)
	created, err := scanPost(row)
	if err != nil {
		return Post{}, mapConstraint(err)
	}
	return created, nil
}

func (s *SQLite) UpdatePost(ctx context.Context, p Post) (Post, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE posts SET slug = ?, title = ?, body = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+postCols, p.Slug, p.Title, p.Body, p.Status, p.ID)
	updated, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, mapConstraint(err)
	}
	return updated, nil
}

func (s *SQLite) UpdatePostStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE posts SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) DeletePost(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func mapConstraint(err error) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicate
	}
	return err
}

// Migrate ensures schema exists
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS post_views (
			slug TEXT PRIMARY KEY,
			views INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
