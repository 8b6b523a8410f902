package moderation

import (
	_ "embed"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	goahocorasick "github.com/anknown/ahocorasick"
)

//go:embed bad_words.csv
var embeddedBadWords []byte

// fallbackBadWords is used when the configured dataset cannot be read.
// Moderation degrades rather than failing the request.
var fallbackBadWords = []string{
	"chutiya", "bc", "mc", "kutte", "kamina",
	"bewakoof", "asshole", "shit", "idiot",
}

// WordList is the process-wide disallowed-phrase list. It is loaded at most
// once, on first use, and is immutable afterwards; concurrent first use is
// safe. Matching is multi-pattern substring search over the lowercased
// comment, backed by an Aho-Corasick automaton.
type WordList struct {
	path string

	once    sync.Once
	words   []string
	matcher *goahocorasick.Machine

	// readFile is swapped in tests to observe load behavior.
	readFile func(string) ([]byte, error)
}

// NewWordList returns an unloaded list. When path is empty the bundled
// dataset is used; otherwise the file at path overrides it.
func NewWordList(path string) *WordList {
	return &WordList{path: path, readFile: os.ReadFile}
}

// Words returns the loaded phrase list, loading it on first call.
func (l *WordList) Words() []string {
	l.once.Do(l.load)
	return l.words
}

// Match reports whether the lowercased text contains any disallowed phrase
// as a substring.
func (l *WordList) Match(lower string) bool {
	l.once.Do(l.load)

	if l.matcher != nil {
		return len(l.matcher.MultiPatternSearch([]rune(lower), true)) > 0
	}
	for _, w := range l.words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func (l *WordList) load() {
	data := embeddedBadWords
	if l.path != "" {
		b, err := l.readFile(l.path)
		if err != nil {
			slog.Warn("bad-word dataset unreadable, using built-in fallback", "path", l.path, "error", err)
			l.words = fallbackBadWords
			l.buildMatcher()
			return
		}
		data = b
	}

	l.words = parseBadWords(string(data))
	if len(l.words) == 0 {
		l.words = fallbackBadWords
	}
	l.buildMatcher()
	slog.Info("bad-word list loaded", "entries", len(l.words))
}

func (l *WordList) buildMatcher() {
	patterns := make([][]rune, len(l.words))
	for i, w := range l.words {
		patterns[i] = []rune(w)
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		// Plain substring scan still gives correct verdicts.
		slog.Warn("bad-word automaton build failed, using linear scan", "error", err)
		return
	}
	l.matcher = m
}

// parseBadWords reads a newline-delimited phrase list. Blank lines and
// "#" comment lines are skipped. Rows may carry a trailing numeric label
// ("word,1"); only rows labeled positive are kept.
func parseBadWords(data string) []string {
	var words []string
	for _, line := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word := line
		if i := strings.LastIndex(line, ","); i >= 0 {
			label, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
			if err == nil {
				if label <= 0 {
					continue
				}
				word = line[:i]
			}
		}

		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}
