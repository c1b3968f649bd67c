package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/orangecloud/blogd/internal/metrics"
	"github.com/orangecloud/blogd/internal/slug"
	"github.com/orangecloud/blogd/internal/store"
	"github.com/orangecloud/blogd/internal/views"
)

type loginReq struct {
	Password string `json:"password"`
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if req.Password == "" || rt.cfg.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(rt.cfg.AdminPassword)) != 1 {
		metrics.Logins.WithLabelValues("failure").Inc()
		respondErr(w, http.StatusUnauthorized, "INVALID_PASSWORD", "wrong password")
		return
	}
	token, err := rt.codec.Issue()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("issue token")
		respondErr(w, http.StatusInternalServerError, "INTERNAL", "could not issue token")
		return
	}
	setTokenCookie(w, token)
	metrics.Logins.WithLabelValues("success").Inc()
	respondOK(w, nil, http.StatusOK)
}

func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearTokenCookie(w)
	respondOK(w, nil, http.StatusOK)
}

func (rt *Router) handleRecordView(w http.ResponseWriter, r *http.Request) {
	rest := chi.URLParam(r, "*")
	if v, err := url.PathUnescape(rest); err == nil {
		rest = v
	}
	raw, ok := strings.CutSuffix(rest, "/view")
	if !ok {
		respondErr(w, http.StatusNotFound, "NOT_FOUND", "unknown endpoint")
		return
	}
	result, err := rt.views.Record(r.Context(), raw, httpJar{w: w, r: r})
	switch {
	case errors.Is(err, views.ErrEmptySlug):
		respondErr(w, http.StatusBadRequest, "VALIDATION", "slug must not be empty")
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("record view")
		respondErr(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
	default:
		respondOK(w, result, http.StatusOK)
	}
}

func (rt *Router) handleBatchViews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raws := append([]string(nil), q["slug"]...)
	for _, part := range strings.Split(q.Get("slugs"), ",") {
		if p := strings.TrimSpace(part); p != "" {
			raws = append(raws, p)
		}
	}
	counts, err := rt.views.BatchRead(r.Context(), raws)
	switch {
	case errors.Is(err, views.ErrBatchTooLarge):
		respondErr(w, http.StatusBadRequest, "VALIDATION", "at most 300 slugs per request")
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Msg("batch read views")
		respondErr(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
	default:
		respondOK(w, counts, http.StatusOK)
	}
}

type postReq struct {
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Status string `json:"status"`
}

func (p *postReq) validate() (string, bool) {
	p.Slug = slug.Normalize(p.Slug)
	p.Title = strings.TrimSpace(p.Title)
	if p.Slug == "" {
		return "slug must not be empty", false
	}
	if p.Title == "" {
		return "title must not be empty", false
	}
	if p.Status == "" {
		p.Status = "draft"
	}
	if !validStatus(p.Status) {
		return "status must be draft or published", false
	}
	return "", true
}

func validStatus(s string) bool {
	return s == "draft" || s == "published"
}

func (rt *Router) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := rt.posts.ListPosts(r.Context())
	if err != nil {
		rt.storeErr(w, r, err)
		return
	}
	if posts == nil {
		posts = []store.Post{}
	}
	respondOK(w, posts, http.StatusOK)
}

func (rt *Router) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if msg, ok := req.validate(); !ok {
		respondErr(w, http.StatusBadRequest, "VALIDATION", msg)
		return
	}
	created, err := rt.posts.CreatePost(r.Context(), store.Post{
		Slug: req.Slug, Title: req.Title, Body: req.Body, Status: req.Status,
	})
	if err != nil {
		rt.storeErr(w, r, err)
		return
	}
	respondOK(w, created, http.StatusCreated)
}

func (rt *Router) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	p, err := rt.posts.GetPost(r.Context(), id)
	if err != nil {
		rt.storeErr(w, r, err)
		return
	}
	respondOK(w, p, http.StatusOK)
}

func (rt *Router) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req postReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if msg, ok := req.validate(); !ok {
		respondErr(w, http.StatusBadRequest, "VALIDATION", msg)
		return
	}
	updated, err := rt.posts.UpdatePost(r.Context(), store.Post{
		ID: id, Slug: req.Slug, Title: req.Title, Body: req.Body, Status: req.Status,
	})
	if err != nil {
		rt.storeErr(w, r, err)
		return
	}
	respondOK(w, updated, http.StatusOK)
}

func (rt *Router) handleUpdatePostStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if !validStatus(req.Status) {
		respondErr(w, http.StatusBadRequest, "VALIDATION", "status must be draft or published")
		return
	}
	if err := rt.posts.UpdatePostStatus(r.Context(), id, req.Status); err != nil {
		rt.storeErr(w, r, err)
		return
	}
	respondOK(w, nil, http.StatusOK)
}

func (rt *Router) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := rt.posts.DeletePost(r.Context(), id); err != nil {
		rt.storeErr(w, r, err)
		return
	}
	respondOK(w, nil, http.StatusOK)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondErr(w, http.StatusBadRequest, "VALIDATION", "invalid id")
		return 0, false
	}
	return id, true
}

func (rt *Router) storeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondErr(w, http.StatusNotFound, "NOT_FOUND", "post not found")
	case errors.Is(err, store.ErrDuplicate):
		respondErr(w, http.StatusConflict, "DUPLICATE", "slug already exists")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("store")
		respondErr(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
	}
}
