package moderation

import (
	"regexp"
	"strings"
	"unicode"
)

// secondPersonMarkers covers English second-person forms plus common
// Hindi/Urdu transliterations used in Hinglish comments.
var secondPersonMarkers = map[string]bool{
	"you": true, "u": true, "ur": true, "your": true,
	"you're": true, "youre": true, "yours": true,
	"tu": true, "tum": true, "tera": true, "teri": true,
	"tere": true, "teray": true, "aap": true, "tm": true,
}

// secondPersonPattern is the looser fallback scan. It deliberately omits
// single-letter markers like "u", which are only safe as exact tokens.
var secondPersonPattern = regexp.MustCompile(`(?i)(you|ur|youre|you're|tu|tum|tera|teri|tere|aap|tm)`)

// SecondPersonDirected reports whether the text is plausibly addressed at
// another person. Exact token membership is checked first; if tokenization
// removed the marker (contractions, tight punctuation), a substring scan of
// the same markers catches it.
func SecondPersonDirected(text string) bool {
	lower := strings.ToLower(text)

	normalized := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, lower)

	for _, token := range strings.Fields(normalized) {
		if secondPersonMarkers[token] {
			return true
		}
	}

	return secondPersonPattern.MatchString(lower)
}
