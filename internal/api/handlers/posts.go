package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anshkapoor/gramly/internal/auth"
	"github.com/anshkapoor/gramly/internal/post"
)

type PostHandler struct {
	svc *post.Service
}

func NewPostHandler(svc *post.Service) *PostHandler {
	return &PostHandler{svc: svc}
}

func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	posts, err := h.svc.Feed(r.Context(), limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": posts, "count": len(posts)})
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req post.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ImageURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image_url required"})
		return
	}

	p, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.likeAction(w, r, h.svc.Like)
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.likeAction(w, r, h.svc.Unlike)
}

func (h *PostHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	h.likeAction(w, r, h.svc.Favorite)
}

func (h *PostHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	h.likeAction(w, r, h.svc.Unfavorite)
}

func (h *PostHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	posts, err := h.svc.Favorites(r.Context(), auth.UserIDFromContext(r.Context()), limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": posts, "count": len(posts)})
}

func (h *PostHandler) likeAction(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, postID, userID uuid.UUID) error) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid post ID"})
		return
	}

	if err := fn(r.Context(), postID, auth.UserIDFromContext(r.Context())); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return limit, offset
}
