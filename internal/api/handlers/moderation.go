package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anshkapoor/gramly/internal/moderation"
)

// ModerationHandler exposes the comment classifier over HTTP with the same
// contract as the original edge function: always 200 with a verdict, except
// for structurally invalid input which is a 400.
type ModerationHandler struct {
	svc *moderation.Service
}

func NewModerationHandler(svc *moderation.Service) *ModerationHandler {
	return &ModerationHandler{svc: svc}
}

func (h *ModerationHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		// Pointer so a missing field and a non-string value are both
		// distinguishable from an empty comment.
		Comment *string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Comment == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid comment"})
		return
	}

	verdict, err := h.svc.Moderate(r.Context(), *req.Comment)
	if err != nil {
		if errors.Is(err, moderation.ErrInvalidComment) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid comment"})
			return
		}
		// The pipeline is fail-open; anything else reaching here is a bug,
		// but the response still honors the contract.
		writeJSON(w, http.StatusOK, moderation.Verdict{IsHarmful: false, Reason: "Service error"})
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}
