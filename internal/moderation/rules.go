package moderation

import "strings"

// bullyingEmojis is the small subset that flags a comment on its own,
// regardless of wording or who it is aimed at.
const bullyingEmojis = "🤢💩🙄😑🤮"

// ruleInput is everything the cascade needs, computed once per comment.
type ruleInput struct {
	text       string // trimmed, lowercased
	hasBadWord bool
	directed   bool
	emoji      EmojiAnalysis
}

type rule struct {
	name    string
	matches func(in ruleInput) bool
	reason  string
}

// harassmentRules is evaluated top to bottom with first-match-wins
// semantics. Order matters: rules are listed from most to least specific,
// and reordering changes which reason is reported for overlapping inputs.
var harassmentRules = []rule{
	{
		name: "bullying_emoji",
		matches: func(in ruleInput) bool {
			return strings.ContainsAny(in.text, bullyingEmojis)
		},
		reason: "Bullying emoji detected",
	},
	{
		name: "direct_insult",
		matches: func(in ruleInput) bool {
			return in.hasBadWord && in.directed
		},
		reason: "Direct insult detected",
	},
	{
		name: "offensive_emoji_directed",
		matches: func(in ruleInput) bool {
			return in.emoji.Offensive >= 1 && in.directed
		},
		reason: "Offensive emoji used at a person",
	},
	{
		name: "threatening_emoji_directed",
		matches: func(in ruleInput) bool {
			return in.emoji.Threatening >= 1 && in.directed
		},
		reason: "Threatening emoji detected",
	},
	{
		name: "mocking_pileup",
		matches: func(in ruleInput) bool {
			return in.emoji.Mocking >= 2 ||
				(in.emoji.Mocking >= 1 && in.emoji.Sarcastic >= 1 && in.directed)
		},
		reason: "Mocking + sarcastic emojis used at a person",
	},
	{
		name: "negative_sentiment_directed",
		matches: func(in ruleInput) bool {
			return in.emoji.Score < -0.5 && in.directed && in.emoji.Total >= 2
		},
		reason: "Highly negative emoji sentiment directed at a person",
	},
}

// evaluate runs the cascade and always produces exactly one verdict.
func evaluate(in ruleInput) Verdict {
	for _, r := range harassmentRules {
		if r.matches(in) {
			return Verdict{IsHarmful: true, Reason: r.reason}
		}
	}
	return Verdict{IsHarmful: false, Reason: "Clean content"}
}
