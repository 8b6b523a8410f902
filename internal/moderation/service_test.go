package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anshkapoor/gramly/internal/config"
	"github.com/anshkapoor/gramly/internal/llm"
)

// stubGateway returns a canned chat response and records the last request.
type stubGateway struct {
	resp    *llm.ChatResponse
	err     error
	lastReq llm.ChatRequest
}

func (g *stubGateway) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	return g.resp, nil
}

func (g *stubGateway) Provider(string) (llm.Provider, error) {
	return nil, errors.New("no providers in stub")
}

func (g *stubGateway) ListModels() []llm.ModelInfo { return nil }

func aiReply(content string) *llm.ChatResponse {
	return &llm.ChatResponse{Provider: "gateway", Model: "google/gemini-2.5-flash", Content: content}
}

func testModerationConfig() config.ModerationConfig {
	return config.ModerationConfig{
		APIKey:      "test-key",
		Model:       "google/gemini-2.5-flash",
		Temperature: 0.3,
		Timeout:     time.Second,
	}
}

func TestScreenRejectsInvalidInput(t *testing.T) {
	svc := NewService(config.ModerationConfig{}, nil, nil)

	for _, comment := range []string{"", "   ", "\n\t"} {
		_, err := svc.Screen(context.Background(), comment)
		require.ErrorIs(t, err, ErrInvalidComment)
	}
}

func TestScreenHeuristicOnlyWithoutCredentials(t *testing.T) {
	// A gateway instance alone is not enough; some credential must be set.
	svc := NewService(config.ModerationConfig{}, &stubGateway{}, nil)
	require.False(t, svc.AIEnabled())

	res, err := svc.Screen(context.Background(), "you are an idiot")
	require.NoError(t, err)
	require.True(t, res.IsHarmful)
	require.Equal(t, "Direct insult detected", res.Reason)
	require.False(t, res.AIChecked)

	res, err = svc.Screen(context.Background(), "great shot, love the colors")
	require.NoError(t, err)
	require.False(t, res.IsHarmful)
	require.Equal(t, "Clean content", res.Reason)
	require.False(t, res.AIChecked)
}

func TestScreenAdoptsAIVerdict(t *testing.T) {
	gw := &stubGateway{resp: aiReply(`{"isHarmful": true, "reason": "Veiled threat"}`)}
	svc := NewService(testModerationConfig(), gw, nil)
	require.True(t, svc.AIEnabled())

	// Heuristically clean, but the model catches what the rules miss.
	res, err := svc.Screen(context.Background(), "enjoy your last post here")
	require.NoError(t, err)
	require.True(t, res.IsHarmful)
	require.Equal(t, "Veiled threat", res.Reason)
	require.True(t, res.AIChecked)

	require.Equal(t, "google/gemini-2.5-flash", gw.lastReq.Model)
	require.Len(t, gw.lastReq.Messages, 2)
	require.Equal(t, "system", gw.lastReq.Messages[0].Role)
	require.Equal(t, moderationSystemPrompt, gw.lastReq.Messages[0].Content)
	require.Contains(t, gw.lastReq.Messages[1].Content, "enjoy your last post here")
}

func TestScreenNeverDowngradesHeuristicVerdict(t *testing.T) {
	gw := &stubGateway{resp: aiReply(`{"isHarmful": false, "reason": "Looks like banter"}`)}
	svc := NewService(testModerationConfig(), gw, nil)

	res, err := svc.Screen(context.Background(), "you are an idiot")
	require.NoError(t, err)
	require.True(t, res.IsHarmful)
	require.Equal(t, "Direct insult detected (AI review: Looks like banter)", res.Reason)
	require.True(t, res.AIChecked)
}

func TestScreenAgreedCleanAdoptsAIReason(t *testing.T) {
	gw := &stubGateway{resp: aiReply(`{"isHarmful": false, "reason": "Friendly comment"}`)}
	svc := NewService(testModerationConfig(), gw, nil)

	res, err := svc.Screen(context.Background(), "congrats on the launch")
	require.NoError(t, err)
	require.False(t, res.IsHarmful)
	require.Equal(t, "Friendly comment", res.Reason)
	require.True(t, res.AIChecked)
}

func TestScreenFallsBackWhenAIFails(t *testing.T) {
	tests := []struct {
		name string
		gw   *stubGateway
	}{
		{"gateway error", &stubGateway{err: errors.New("upstream 502")}},
		{"empty content", &stubGateway{resp: aiReply("")}},
		{"not json", &stubGateway{resp: aiReply("I think this comment is fine.")}},
		{"missing reason", &stubGateway{resp: aiReply(`{"isHarmful": true}`)}},
		{"empty reason", &stubGateway{resp: aiReply(`{"isHarmful": true, "reason": ""}`)}},
		{"missing isHarmful", &stubGateway{resp: aiReply(`{"reason": "bad"}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(testModerationConfig(), tt.gw, nil)

			res, err := svc.Screen(context.Background(), "you are an idiot")
			require.NoError(t, err)
			require.True(t, res.IsHarmful)
			require.Equal(t, "Direct insult detected", res.Reason)
			require.False(t, res.AIChecked)
		})
	}
}

func TestScreenUnwrapsFencedJSON(t *testing.T) {
	gw := &stubGateway{resp: aiReply("```json\n{\"isHarmful\": true, \"reason\": \"Targeted mockery\"}\n```")}
	svc := NewService(testModerationConfig(), gw, nil)

	res, err := svc.Screen(context.Background(), "some borderline comment")
	require.NoError(t, err)
	require.True(t, res.IsHarmful)
	require.Equal(t, "Targeted mockery", res.Reason)
	require.True(t, res.AIChecked)
}

func TestModerateIsDeterministic(t *testing.T) {
	svc := NewService(config.ModerationConfig{}, nil, nil)

	first, err := svc.Moderate(context.Background(), "lol 😂😂")
	require.NoError(t, err)
	second, err := svc.Moderate(context.Background(), "lol 😂😂")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.True(t, first.IsHarmful)
}
