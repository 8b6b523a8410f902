package moderation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// cascadeInput mirrors how the service computes ruleInput from a raw comment.
func cascadeInput(t *testing.T, words *WordList, text string) ruleInput {
	t.Helper()
	lower := strings.ToLower(strings.TrimSpace(text))
	return ruleInput{
		text:       lower,
		hasBadWord: words.Match(lower),
		directed:   SecondPersonDirected(lower),
		emoji:      AnalyzeEmojiSentiment(lower),
	}
}

func TestEvaluateCascade(t *testing.T) {
	words := NewWordList("")

	tests := []struct {
		name    string
		comment string
		harmful bool
		reason  string
	}{
		{
			name:    "bullying emoji flags on its own",
			comment: "whatever 🤮",
			harmful: true,
			reason:  "Bullying emoji detected",
		},
		{
			name:    "bullying emoji needs no direction",
			comment: "this place 💩",
			harmful: true,
			reason:  "Bullying emoji detected",
		},
		{
			name:    "direct insult",
			comment: "you are an idiot",
			harmful: true,
			reason:  "Direct insult detected",
		},
		{
			name:    "offensive emoji aimed at a person",
			comment: "🖕 you",
			harmful: true,
			reason:  "Offensive emoji used at a person",
		},
		{
			name:    "threatening emoji aimed at a person",
			comment: "you better watch out 🔪",
			harmful: true,
			reason:  "Threatening emoji detected",
		},
		{
			name:    "two mocking emojis without direction",
			comment: "lol 😂😂",
			harmful: true,
			reason:  "Mocking + sarcastic emojis used at a person",
		},
		{
			name:    "mocking plus sarcastic aimed at a person",
			comment: "you 😂🙂",
			harmful: true,
			reason:  "Mocking + sarcastic emojis used at a person",
		},
		{
			name:    "negative sentiment pileup aimed at a person",
			comment: "you 😠👎",
			harmful: true,
			reason:  "Highly negative emoji sentiment directed at a person",
		},
		{
			name:    "bad word without direction is not an insult",
			comment: "this movie is shit",
			harmful: false,
			reason:  "Clean content",
		},
		{
			name:    "single sarcastic emoji below the pileup floor",
			comment: "you 🙂",
			harmful: false,
			reason:  "Clean content",
		},
		{
			name:    "positive comment",
			comment: "love this 😊🎉",
			harmful: false,
			reason:  "Clean content",
		},
		{
			name:    "negative emoji without direction",
			comment: "worst day ever 😠👎",
			harmful: false,
			reason:  "Clean content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluate(cascadeInput(t, words, tt.comment))
			require.Equal(t, tt.harmful, got.IsHarmful)
			require.Equal(t, tt.reason, got.Reason)
		})
	}
}

// Overlapping inputs must report the reason of the first matching rule.
func TestEvaluateCascadeOrder(t *testing.T) {
	words := NewWordList("")

	// Bullying emoji wins over direct insult.
	got := evaluate(cascadeInput(t, words, "you idiot 🤮"))
	require.True(t, got.IsHarmful)
	require.Equal(t, "Bullying emoji detected", got.Reason)

	// Direct insult wins over offensive emoji.
	got = evaluate(cascadeInput(t, words, "you idiot 🖕"))
	require.True(t, got.IsHarmful)
	require.Equal(t, "Direct insult detected", got.Reason)

	// Offensive emoji wins over threatening emoji.
	got = evaluate(cascadeInput(t, words, "you 🖕🔪"))
	require.True(t, got.IsHarmful)
	require.Equal(t, "Offensive emoji used at a person", got.Reason)

	// Threatening emoji wins over the mocking pileup.
	got = evaluate(cascadeInput(t, words, "you 🔪😂😂"))
	require.True(t, got.IsHarmful)
	require.Equal(t, "Threatening emoji detected", got.Reason)

	// Mocking pileup wins over the negative-sentiment catch-all.
	got = evaluate(cascadeInput(t, words, "you 😂😂😠"))
	require.True(t, got.IsHarmful)
	require.Equal(t, "Mocking + sarcastic emojis used at a person", got.Reason)
}
