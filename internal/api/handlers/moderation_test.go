package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anshkapoor/gramly/internal/config"
	"github.com/anshkapoor/gramly/internal/moderation"
)

func newModerationHandler() *ModerationHandler {
	// Heuristic-only service: no AI credential configured.
	return NewModerationHandler(moderation.NewService(config.ModerationConfig{}, nil, nil))
}

func postModerate(t *testing.T, h *ModerationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/functions/v1/moderate-comment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Moderate(rr, req)
	return rr
}

func TestModerateRejectsMalformedRequests(t *testing.T) {
	h := newModerationHandler()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "comment=hi"},
		{"missing field", `{}`},
		{"wrong type", `{"comment": 123}`},
		{"null comment", `{"comment": null}`},
		{"empty comment", `{"comment": ""}`},
		{"whitespace comment", `{"comment": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postModerate(t, h, tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			require.Equal(t, "Invalid comment", resp["error"])
		})
	}
}

func TestModerateReturnsVerdict(t *testing.T) {
	h := newModerationHandler()

	tests := []struct {
		name    string
		body    string
		harmful bool
		reason  string
	}{
		{
			name:    "bullying emoji",
			body:    `{"comment": "you are such trash 🤮"}`,
			harmful: true,
			reason:  "Bullying emoji detected",
		},
		{
			name:    "direct insult",
			body:    `{"comment": "tu chutiya hai"}`,
			harmful: true,
			reason:  "Direct insult detected",
		},
		{
			name:    "clean comment",
			body:    `{"comment": "nice work on this!"}`,
			harmful: false,
			reason:  "Clean content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postModerate(t, h, tt.body)
			require.Equal(t, http.StatusOK, rr.Code)
			require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var verdict moderation.Verdict
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verdict))
			require.Equal(t, tt.harmful, verdict.IsHarmful)
			require.Equal(t, tt.reason, verdict.Reason)
		})
	}
}
