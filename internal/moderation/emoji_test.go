package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmojiSentiment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, a EmojiAnalysis)
	}{
		{
			name:  "no emoji",
			input: "just plain text",
			check: func(t *testing.T, a EmojiAnalysis) {
				require.Equal(t, 0, a.Total)
				require.Equal(t, 0.0, a.Score)
			},
		},
		{
			name:  "only positive bounds at one",
			input: "😊😊",
			check: func(t *testing.T, a EmojiAnalysis) {
				require.Equal(t, 2, a.Positive)
				require.Equal(t, 2, a.Total)
				require.Equal(t, 1.0, a.Score)
			},
		},
		{
			name:  "threatening skulls",
			input: "💀💀",
			check: func(t *testing.T, a EmojiAnalysis) {
				require.Equal(t, 2, a.Threatening)
				require.Equal(t, 2, a.Total)
				require.Equal(t, -3.0, a.Score)
			},
		},
		{
			name:  "mocking weighted between negative and sarcastic",
			input: "😂😂",
			check: func(t *testing.T, a EmojiAnalysis) {
				require.Equal(t, 2, a.Mocking)
				require.Equal(t, -1.5, a.Score)
			},
		},
		{
			name:  "mixed categories normalize by total",
			input: "😊👍😡",
			check: func(t *testing.T, a EmojiAnalysis) {
				require.Equal(t, 2, a.Positive)
				require.Equal(t, 1, a.Negative)
				require.Equal(t, 3, a.Total)
				// (2 - 2) / 3
				require.InDelta(t, 0.0, a.Score, 1e-9)
			},
		},
		{
			name:  "variation selector sequences still count",
			input: "☠️❤️",
			check: func(t *testing.T, a EmojiAnalysis) {
				require.Equal(t, 1, a.Threatening)
				require.Equal(t, 1, a.Positive)
				require.Equal(t, 2, a.Total)
			},
		},
		{
			name:  "emoji mixed into text",
			input: "great game yesterday 🎉🙌",
			check: func(t *testing.T, a EmojiAnalysis) {
				require.Equal(t, 2, a.Positive)
				require.Equal(t, 2, a.Total)
				require.Equal(t, 1.0, a.Score)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, AnalyzeEmojiSentiment(tt.input))
		})
	}
}
