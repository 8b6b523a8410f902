package moderation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"

	"github.com/anshkapoor/gramly/internal/cache"
	"github.com/anshkapoor/gramly/internal/config"
	"github.com/anshkapoor/gramly/internal/llm"
)

// ErrInvalidComment is the only error Moderate surfaces: the input is
// structurally invalid, which indicates a caller bug rather than a
// moderation edge case.
var ErrInvalidComment = errors.New("invalid comment")

// Verdict is the sole output contract of the classifier. The caller persists
// is_hidden = IsHarmful and moderation_reason = Reason with the comment.
type Verdict struct {
	IsHarmful bool   `json:"isHarmful"`
	Reason    string `json:"reason"`
}

// Result carries the verdict plus whether the AI fallback actually weighed
// in, so callers can schedule a re-scan when it did not.
type Result struct {
	Verdict
	AIChecked bool
}

// Service orchestrates the moderation pipeline: heuristic cascade always,
// AI fallback when a credential is configured, conservative reconciliation.
// It is fail-open: everything short of invalid input produces a verdict.
type Service struct {
	words    *WordList
	ai       *AIClassifier
	cache    *cache.Cache
	cacheTTL time.Duration
}

// NewService builds the pipeline. gw may be nil; with no credential the AI
// step is skipped entirely. c may be nil to disable verdict caching.
func NewService(cfg config.ModerationConfig, gw llm.Gateway, c *cache.Cache) *Service {
	s := &Service{
		words:    NewWordList(cfg.BadWordsPath),
		cache:    c,
		cacheTTL: cfg.CacheTTL,
	}
	if gw != nil && (cfg.APIKey != "" || cfg.AnthropicKey != "" || cfg.OllamaURL != "") {
		s.ai = NewAIClassifier(gw, cfg.Model, cfg.Temperature, cfg.Timeout)
	}
	return s
}

// AIEnabled reports whether the AI fallback step is configured.
func (s *Service) AIEnabled() bool { return s.ai != nil }

// Moderate classifies one comment and always returns a verdict unless the
// input itself is invalid.
func (s *Service) Moderate(ctx context.Context, comment string) (Verdict, error) {
	res, err := s.Screen(ctx, comment)
	return res.Verdict, err
}

// Screen is Moderate plus pipeline metadata.
func (s *Service) Screen(ctx context.Context, comment string) (res Result, err error) {
	if strings.TrimSpace(comment) == "" {
		return Result{}, ErrInvalidComment
	}

	// Fail-open: an unexpected panic anywhere below must not block the
	// surrounding comment flow.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("moderation pipeline panic", "panic", r)
			res = Result{Verdict: Verdict{IsHarmful: false, Reason: "Service error"}}
			err = nil
		}
	}()

	key := verdictKey(comment)
	if s.cache != nil {
		var cached Result
		if cacheErr := s.cache.Get(ctx, key, &cached); cacheErr == nil {
			return cached, nil
		}
	}

	heuristic := s.heuristic(comment)

	res = Result{Verdict: heuristic}
	if s.ai != nil {
		if aiVerdict, ok := s.ai.Classify(ctx, comment); ok {
			res = Result{Verdict: reconcile(heuristic, aiVerdict), AIChecked: true}
		}
	}

	lang := whatlanggo.Detect(comment)
	slog.Info("comment moderated",
		"harmful", res.IsHarmful,
		"reason", res.Reason,
		"ai_checked", res.AIChecked,
		"lang", lang.Lang.Iso6391(),
	)

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, key, res, s.cacheTTL); cacheErr != nil {
			slog.Warn("verdict cache write failed", "error", cacheErr)
		}
	}

	return res, nil
}

// heuristic runs the deterministic rule cascade. It is a pure function of
// the comment text and the loaded word list.
func (s *Service) heuristic(comment string) Verdict {
	text := strings.ToLower(strings.TrimSpace(comment))

	return evaluate(ruleInput{
		text:       text,
		hasBadWord: s.words.Match(text),
		directed:   SecondPersonDirected(text),
		emoji:      AnalyzeEmojiSentiment(text),
	})
}

// reconcile merges the heuristic and AI verdicts conservatively: harmful
// wins. A harmful heuristic verdict is never downgraded by a permissive AI
// answer; otherwise the AI's classification and reason are adopted as-is.
func reconcile(heuristic, ai Verdict) Verdict {
	if heuristic.IsHarmful && !ai.IsHarmful {
		return Verdict{
			IsHarmful: true,
			Reason:    fmt.Sprintf("%s (AI review: %s)", heuristic.Reason, ai.Reason),
		}
	}
	return ai
}

func verdictKey(comment string) string {
	sum := sha256.Sum256([]byte(comment))
	return "moderation:verdict:" + hex.EncodeToString(sum[:])
}
