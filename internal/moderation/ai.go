package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/anshkapoor/gramly/internal/llm"
)

const moderationSystemPrompt = "You are a cyberbullying detection system. " +
	"Respond only in JSON with isHarmful (boolean) and reason (string)."

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")
)

// AIClassifier asks an external model for a second opinion on a comment.
// One attempt, bounded by timeout; every failure mode reports !ok so the
// caller can fall back to the heuristic verdict.
type AIClassifier struct {
	gateway     llm.Gateway
	model       string
	temperature float64
	timeout     time.Duration
}

func NewAIClassifier(gw llm.Gateway, model string, temperature float64, timeout time.Duration) *AIClassifier {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &AIClassifier{gateway: gw, model: model, temperature: temperature, timeout: timeout}
}

// parsedVerdict is the strict shape expected back from the model. Pointer
// fields distinguish "absent" from zero values; both must be present before
// the verdict is trusted.
type parsedVerdict struct {
	IsHarmful *bool   `json:"isHarmful"`
	Reason    *string `json:"reason"`
}

// Classify returns the model's verdict and whether it is usable.
func (c *AIClassifier) Classify(ctx context.Context, comment string) (Verdict, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.gateway.Chat(ctx, llm.ChatRequest{
		Model: c.model,
		Messages: []llm.Message{
			{Role: "system", Content: moderationSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Analyze this comment: %q", comment)},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		slog.Warn("AI moderation unavailable", "model", c.model, "error", err)
		return Verdict{}, false
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		slog.Warn("AI moderation returned empty content", "model", c.model)
		return Verdict{}, false
	}

	content = stripCodeFence(content)

	var pv parsedVerdict
	if err := json.Unmarshal([]byte(content), &pv); err != nil {
		slog.Warn("AI moderation returned unparseable verdict", "model", c.model, "error", err)
		return Verdict{}, false
	}
	if pv.IsHarmful == nil || pv.Reason == nil || *pv.Reason == "" {
		slog.Warn("AI moderation verdict missing fields", "model", c.model)
		return Verdict{}, false
	}

	return Verdict{IsHarmful: *pv.IsHarmful, Reason: *pv.Reason}, true
}

// stripCodeFence removes Markdown fencing some models wrap around JSON.
func stripCodeFence(s string) string {
	s = fenceOpen.ReplaceAllString(s, "")
	return fenceClose.ReplaceAllString(s, "")
}
