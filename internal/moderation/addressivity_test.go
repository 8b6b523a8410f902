package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecondPersonDirected(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"plain english second person", "you are so dumb", true},
		{"not directed", "i love sunsets", false},
		{"texting shorthand", "ur the worst", true},
		{"single letter marker as token", "u suck at this", true},
		{"hindi transliteration", "tu bahut bura hai", true},
		{"aap form", "aap kaise ho", true},
		{"contraction caught by fallback scan", "hope2seeyou soon", true},
		{"uppercase normalized", "YOU did this", true},
		// The fallback scan is deliberately loose: "turn" contains "ur".
		{"marker substring inside word", "turn the page", true},
		{"no marker substring at all", "great weather today", false},
		{"empty", "", false},
		{"punctuation only", "!!! ...", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, SecondPersonDirected(tt.input))
		})
	}
}
