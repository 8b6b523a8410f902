package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anshkapoor/gramly/internal/auth"
	"github.com/anshkapoor/gramly/internal/comment"
	"github.com/anshkapoor/gramly/internal/moderation"
)

type CommentHandler struct {
	svc *comment.Service
}

func NewCommentHandler(svc *comment.Service) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) ListForPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid post ID"})
		return
	}

	comments, err := h.svc.ListForPost(r.Context(), postID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments, "count": len(comments)})
}

func (h *CommentHandler) CreateForPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid post ID"})
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	c, err := h.svc.CreateForPost(r.Context(), postID, auth.UserIDFromContext(r.Context()), req.Content)
	if err != nil {
		if errors.Is(err, moderation.ErrInvalidComment) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid comment"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (h *CommentHandler) ListForReel(w http.ResponseWriter, r *http.Request) {
	reelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reel ID"})
		return
	}

	comments, err := h.svc.ListForReel(r.Context(), reelID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments, "count": len(comments)})
}

func (h *CommentHandler) CreateForReel(w http.ResponseWriter, r *http.Request) {
	reelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reel ID"})
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	c, err := h.svc.CreateForReel(r.Context(), reelID, auth.UserIDFromContext(r.Context()), req.Content)
	if err != nil {
		if errors.Is(err, moderation.ErrInvalidComment) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid comment"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, c)
}
