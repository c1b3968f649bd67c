package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(db))
	return NewSQLite(db)
}

func TestMigrate(t *testing.T) {
	s := newTestStore(t)

	for _, table := range []string{"post_views", "posts"} {
		var count int
		err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

func TestIncrementView(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := s.IncrementView(ctx, "hello")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	var updated string
	err := s.db.QueryRow(`SELECT updated_at FROM post_views WHERE slug = ?`, "hello").Scan(&updated)
	require.NoError(t, err)
	require.NotEmpty(t, updated)
}

func TestIncrementViewConcurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.IncrementView(ctx, "busy-post"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	counts, err := s.GetViews(ctx, []string{"busy-post"})
	require.NoError(t, err)
	require.Equal(t, int64(n), counts["busy-post"])
}

func TestGetViews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.IncrementView(ctx, "a")
	require.NoError(t, err)
	_, err = s.IncrementView(ctx, "a")
	require.NoError(t, err)
	_, err = s.IncrementView(ctx, "b")
	require.NoError(t, err)

	counts, err := s.GetViews(ctx, []string{"a", "b", "missing"})
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"a": 2, "b": 1}, counts)

	empty, err := s.GetViews(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestPostsCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreatePost(ctx, Post{Slug: "first", Title: "First", Body: "hi", Status: "draft"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "draft", created.Status)
	require.False(t, created.CreatedAt.IsZero())

	_, err = s.CreatePost(ctx, Post{Slug: "first", Title: "Again", Status: "draft"})
	require.ErrorIs(t, err, ErrDuplicate)

	got, err := s.GetPost(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "first", got.Slug)

	got.Title = "First, revised"
	got.Status = "published"
	updated, err := s.UpdatePost(ctx, got)
	require.NoError(t, err)
	require.Equal(t, "First, revised", updated.Title)
	require.Equal(t, "published", updated.Status)

	require.NoError(t, s.UpdatePostStatus(ctx, created.ID, "draft"))

	list, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "draft", list[0].Status)

	require.NoError(t, s.DeletePost(ctx, created.ID))
	_, err = s.GetPost(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.DeletePost(ctx, created.ID), ErrNotFound)
	require.ErrorIs(t, s.UpdatePostStatus(ctx, created.ID, "draft"), ErrNotFound)

	_, err = s.UpdatePost(ctx, Post{ID: 9999, Slug: "x", Title: "x"})
	require.True(t, errors.Is(err, ErrNotFound))
}
