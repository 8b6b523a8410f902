package moderation

// Emoji sentiment categories. The sets and score weights are hand-tuned;
// the rule cascade's -0.5 threshold is calibrated against these exact
// coefficients, so they must not be rescaled independently.

type emojiClass int

const (
	classNone emojiClass = iota
	classOffensive
	classThreatening
	classMocking
	classNegative
	classSarcastic
	classPositive
)

// emojiSentiment maps individual emoji code points to a sentiment class.
// Variation selectors (U+FE0F) are not stored; Analyze skips unmapped runes,
// so keycap-style sequences like U+2620 U+FE0F still match on the base rune.
var emojiSentiment = map[rune]emojiClass{
	// offensive
	'💩': classOffensive, '🖕': classOffensive, '🤮': classOffensive,
	'🤡': classOffensive, '🍑': classOffensive, '🍆': classOffensive,
	'🤢': classOffensive, '🙄': classOffensive, '😑': classOffensive,

	// threatening
	'🔪': classThreatening, '💀': classThreatening, '☠': classThreatening,
	'🔫': classThreatening, '⚰': classThreatening, '🩸': classThreatening,
	'👊': classThreatening, '🗡': classThreatening,

	// mocking
	'😂': classMocking, '🤣': classMocking, '😹': classMocking,
	'🤪': classMocking, '😜': classMocking, '🙃': classMocking,

	// negative
	'😠': classNegative, '😡': classNegative, '🤬': classNegative,
	'😤': classNegative, '👎': classNegative, '💔': classNegative,
	'😒': classNegative, '🤨': classNegative,

	// sarcastic
	'🙂': classSarcastic, '🫠': classSarcastic, '😏': classSarcastic,
	'🤭': classSarcastic,

	// positive
	'😊': classPositive, '😀': classPositive, '😃': classPositive,
	'❤': classPositive, '👍': classPositive, '🎉': classPositive,
	'✨': classPositive, '🌟': classPositive, '💯': classPositive,
	'🙌': classPositive,
}

// EmojiAnalysis holds per-category emoji counts for a single comment and the
// weighted sentiment score. More negative means more harmful-leaning.
type EmojiAnalysis struct {
	Offensive   int
	Threatening int
	Mocking     int
	Negative    int
	Sarcastic   int
	Positive    int
	Total       int
	Score       float64
}

// AnalyzeEmojiSentiment counts sentiment-bearing emoji per category and
// computes the weighted score. Iteration is rune-wise so multi-byte emoji
// are matched correctly.
func AnalyzeEmojiSentiment(text string) EmojiAnalysis {
	var a EmojiAnalysis
	for _, r := range text {
		switch emojiSentiment[r] {
		case classOffensive:
			a.Offensive++
		case classThreatening:
			a.Threatening++
		case classMocking:
			a.Mocking++
		case classNegative:
			a.Negative++
		case classSarcastic:
			a.Sarcastic++
		case classPositive:
			a.Positive++
		default:
			continue
		}
		a.Total++
	}

	if a.Total > 0 {
		a.Score = (float64(a.Positive) -
			float64(a.Offensive)*3 -
			float64(a.Threatening)*3 -
			float64(a.Mocking)*1.5 -
			float64(a.Negative)*2 -
			float64(a.Sarcastic)) / float64(a.Total)
	}

	return a
}
