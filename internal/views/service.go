// Package views implements the per-post view counter: an atomic store
// upsert guarded by a per-client dedupe cookie, so one browser counts a
// post at most once per window.
package views

import (
	"context"
	"errors"
	"time"

	"github.com/orangecloud/blogd/internal/metrics"
	"github.com/orangecloud/blogd/internal/slug"
	"github.com/orangecloud/blogd/internal/store"
)

const (
	// Window is how long a recorded view suppresses repeats from the
	// same client.
	Window = 6 * time.Hour

	// MaxBatch bounds batch reads to keep query cost predictable.
	MaxBatch = 300

	cookiePrefix = "oc_pv_"
)

var (
	ErrEmptySlug     = errors.New("slug is empty")
	ErrBatchTooLarge = errors.New("too many slugs in one batch")
)

// CookieJar is the capability the counter needs from the transport:
// presence checks and sets of the client-held dedupe marker.
type CookieJar interface {
	Has(name string) bool
	Set(name, value string, maxAge time.Duration)
}

type Result struct {
	Slug    string `json:"slug"`
	Views   int64  `json:"views,omitempty"`
	Skipped bool   `json:"skipped"`
}

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// DedupeCookie returns the marker name for a normalized slug. The hash
// is not reversible from the cookie name and never reaches the store.
func DedupeCookie(normalized string) string {
	return cookiePrefix + slug.Hash(normalized)
}

// Record counts one view for raw unless this client already counted it
// within the window, in which case the current count comes back with
// Skipped set and nothing is written. The upsert is a single atomic
// statement; the cookie is only set after the write succeeds, so a
// failed request can be retried safely.
func (s *Service) Record(ctx context.Context, raw string, jar CookieJar) (Result, error) {
	sl := slug.Normalize(raw)
	if sl == "" {
		return Result{}, ErrEmptySlug
	}
	name := DedupeCookie(sl)
	if jar.Has(name) {
		counts, err := s.store.GetViews(ctx, []string{sl})
		if err != nil {
			return Result{}, err
		}
		metrics.ViewsDeduped.Inc()
		return Result{Slug: sl, Views: counts[sl], Skipped: true}, nil
	}
	n, err := s.store.IncrementView(ctx, sl)
	if err != nil {
		return Result{}, err
	}
	jar.Set(name, "1", Window)
	metrics.ViewsRecorded.Inc()
	return Result{Slug: sl, Views: n}, nil
}

// BatchRead returns view counts for the given identifiers, normalized
// and de-duplicated. Slugs with no recorded views come back as 0, never
// omitted.
func (s *Service) BatchRead(ctx context.Context, raws []string) (map[string]int64, error) {
	if len(raws) > MaxBatch {
		return nil, ErrBatchTooLarge
	}
	seen := make(map[string]struct{}, len(raws))
	slugs := make([]string, 0, len(raws))
	for _, r := range raws {
		sl := slug.Normalize(r)
		if sl == "" {
			continue
		}
		if _, ok := seen[sl]; ok {
			continue
		}
		seen[sl] = struct{}{}
		slugs = append(slugs, sl)
	}
	counts, err := s.store.GetViews(ctx, slugs)
	if err != nil {
		return nil, err
	}
	for _, sl := range slugs {
		if _, ok := counts[sl]; !ok {
			counts[sl] = 0
		}
	}
	return counts, nil
}
