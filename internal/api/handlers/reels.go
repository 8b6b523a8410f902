package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/anshkapoor/gramly/internal/auth"
	"github.com/anshkapoor/gramly/internal/reel"
)

type ReelHandler struct {
	svc *reel.Service
}

func NewReelHandler(svc *reel.Service) *ReelHandler {
	return &ReelHandler{svc: svc}
}

func (h *ReelHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	reels, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"reels": reels, "count": len(reels)})
}

func (h *ReelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reel.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.VideoURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "video_url required"})
		return
	}

	rl, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, rl)
}

func (h *ReelHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.likeAction(w, r, h.svc.Like)
}

func (h *ReelHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.likeAction(w, r, h.svc.Unlike)
}

func (h *ReelHandler) likeAction(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, reelID, userID uuid.UUID) error) {
	reelID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reel ID"})
		return
	}

	if err := fn(r.Context(), reelID, auth.UserIDFromContext(r.Context())); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
