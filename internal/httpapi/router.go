package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/orangecloud/blogd/internal/auth"
	"github.com/orangecloud/blogd/internal/config"
	"github.com/orangecloud/blogd/internal/metrics"
	"github.com/orangecloud/blogd/internal/store"
	"github.com/orangecloud/blogd/internal/views"
)

type Router struct {
	cfg   config.Config
	codec *auth.Codec
	views *views.Service
	posts store.Store
}

func NewRouter(cfg config.Config, codec *auth.Codec, svc *views.Service, st store.Store) http.Handler {
	r := chi.NewRouter()
	// Logging middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, dur time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", dur).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	api := &Router{
		cfg:   cfg,
		codec: codec,
		views: svc,
		posts: st,
	}

	// The gate runs before routing so protected page paths are covered
	// even when no handler is registered for them.
	r.Use(api.gate)

	r.MethodFunc(http.MethodGet, "/healthz", api.handleHealth)
	r.MethodFunc(http.MethodGet, "/readyz", api.handleReady)

	// Metrics
	r.MethodFunc(http.MethodGet, "/metrics", metrics.Handler)

	// Public endpoints
	r.Group(func(r chi.Router) {
		r.MethodFunc(http.MethodPost, "/api/admin/auth/login", api.handleLogin)
		r.MethodFunc(http.MethodGet, "/api/post-views", api.handleBatchViews)
		// Catch-all so multi-segment slugs like 2024/trip work; the
		// handler requires the /view suffix.
		r.MethodFunc(http.MethodPost, "/api/posts/*", api.handleRecordView)
	})

	// Protected admin API
	r.MethodFunc(http.MethodPost, "/api/admin/auth/logout", api.handleLogout)
	r.Route("/api/admin/posts", func(r chi.Router) {
		r.Get("/", api.handleListPosts)
		r.Post("/", api.handleCreatePost)
		r.Get("/{id}", api.handleGetPost)
		r.Put("/{id}", api.handleUpdatePost)
		r.Delete("/{id}", api.handleDeletePost)
		r.Patch("/{id}/status", api.handleUpdatePostStatus)
	})

	return r
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (rt *Router) handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
