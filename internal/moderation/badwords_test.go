package moderation

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBadWords(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "plain newline list",
			data: "idiot\nshit\n",
			want: []string{"idiot", "shit"},
		},
		{
			name: "skips blanks and comments",
			data: "# offensive terms\n\nidiot\n   \n# more\nshit",
			want: []string{"idiot", "shit"},
		},
		{
			name: "labeled rows keep only positives",
			data: "idiot,1\nhello,0\nshit,1\nfriend,-1",
			want: []string{"idiot", "shit"},
		},
		{
			name: "non-numeric suffix kept verbatim",
			data: "so,so bad",
			want: []string{"so,so bad"},
		},
		{
			name: "lowercases and trims entries",
			data: "  IDIOT ,1\nShit",
			want: []string{"idiot", "shit"},
		},
		{
			name: "windows line endings",
			data: "idiot\r\nshit\r\n",
			want: []string{"idiot", "shit"},
		},
		{
			name: "empty input",
			data: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parseBadWords(tt.data))
		})
	}
}

func TestWordListMatch(t *testing.T) {
	l := NewWordList("")

	require.True(t, l.Match("you are such an idiot"))
	require.True(t, l.Match("complete bewakoof move"))
	require.False(t, l.Match("what a lovely morning"))
	// Matching is substring based, same as the phrase scan it replaces.
	require.True(t, l.Match("idiotic take honestly"))
}

func TestWordListFallbackOnReadError(t *testing.T) {
	l := NewWordList("/nonexistent/words.csv")
	l.readFile = func(string) ([]byte, error) {
		return nil, errors.New("permission denied")
	}

	require.Equal(t, fallbackBadWords, l.Words())
	require.True(t, l.Match("kutte kamine"))
}

func TestWordListFallbackOnEmptyDataset(t *testing.T) {
	l := NewWordList("/tmp/empty.csv")
	l.readFile = func(string) ([]byte, error) {
		return []byte("# nothing here\n\n"), nil
	}

	require.Equal(t, fallbackBadWords, l.Words())
}

func TestWordListLoadsAtMostOnce(t *testing.T) {
	var reads atomic.Int32
	l := NewWordList("/tmp/words.csv")
	l.readFile = func(string) ([]byte, error) {
		reads.Add(1)
		return []byte("idiot\nshit\n"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Match("you idiot")
			_ = l.Words()
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), reads.Load())
	require.Equal(t, []string{"idiot", "shit"}, l.Words())
}
