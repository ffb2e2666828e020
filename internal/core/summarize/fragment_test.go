package summarize_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Sumora/internal/core/summarize"
)

func TestFragment(t *testing.T) {
	long := strings.Repeat("a", 50) + "."

	tests := []struct {
		name     string
		text     string
		maxChunk int
		want     []string
	}{
		{
			name:     "single short sentence",
			text:     "Hello world.",
			maxChunk: 1000,
			want:     []string{"Hello world."},
		},
		{
			name:     "greedy packing up to the bound",
			text:     "One. Two. Three.",
			maxChunk: 9,
			want:     []string{"One. Two.", "Three."},
		},
		{
			name:     "all terminal punctuation kinds",
			text:     "Is it? Yes! Done.",
			maxChunk: 1,
			want:     []string{"Is it?", "Yes!", "Done."},
		},
		{
			name:     "whitespace runs are separators",
			text:     "A.\n\nB.\tC.   D.",
			maxChunk: 100,
			want:     []string{"A. B. C. D."},
		},
		{
			name:     "punctuation without whitespace does not split",
			text:     "See e.g.this value 3.14 here",
			maxChunk: 5,
			want:     []string{"See e.g.this value 3.14 here"},
		},
		{
			name:     "no terminal punctuation gives one trimmed chunk",
			text:     "   just some words without an ending   ",
			maxChunk: 10,
			want:     []string{"just some words without an ending"},
		},
		{
			name:     "oversized sentence in the middle",
			text:     "Short. " + long + " Tail.",
			maxChunk: 10,
			want:     []string{"Short.", long, "Tail."},
		},
		{
			name:     "oversized first sentence emits no empty chunk",
			text:     long + " Next.",
			maxChunk: 10,
			want:     []string{long, "Next."},
		},
		{
			name:     "length counts characters not bytes",
			text:     "Qué tal. Año nuevo.",
			maxChunk: 19,
			want:     []string{"Qué tal. Año nuevo."},
		},
		{
			name:     "non positive bound uses the default",
			text:     "A. B.",
			maxChunk: 0,
			want:     []string{"A. B."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize.Fragment(tt.text, tt.maxChunk)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Fragment() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFragment_EmptyInput(t *testing.T) {
	assert.Empty(t, summarize.Fragment("", 100))
	assert.Empty(t, summarize.Fragment(" \n\t ", 100))
}

func sampleText(n int) string {
	seps := []string{" ", "  ", "\n", "\t "}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(seps[i%len(seps)])
		}
		end := []string{".", "?", "!"}[i%3]
		fmt.Fprintf(&b, "Sentence number %d talks about item %d%s", i, i*7, end)
	}
	return b.String()
}

func TestFragment_PreservesOrder(t *testing.T) {
	text := sampleText(60)

	for _, maxChunk := range []int{1, 20, 64, 150, 1000} {
		chunks := summarize.Fragment(text, maxChunk)
		joined := strings.Join(chunks, " ")
		assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(strings.Fields(joined), " "),
			"maxChunk=%d", maxChunk)
	}
}

func TestFragment_RespectsBound(t *testing.T) {
	text := sampleText(60) + " " + strings.Repeat("z", 300) + ". Last one."

	for _, maxChunk := range []int{20, 45, 75, 200} {
		for _, chunk := range summarize.Fragment(text, maxChunk) {
			if utf8.RuneCountInString(chunk) > maxChunk {
				assert.Len(t, summarize.SplitSentences(chunk), 1,
					"oversized chunk %q must be a single sentence (maxChunk=%d)", chunk, maxChunk)
			}
			assert.Equal(t, strings.TrimSpace(chunk), chunk)
			assert.NotEmpty(t, chunk)
		}
	}
}

func TestFragment_OversizedSentencePassthrough(t *testing.T) {
	huge := "This sentence is far longer than the configured bound and must survive intact."
	chunks := summarize.Fragment("Hi. "+huge+" Bye.", 10)

	require.Len(t, chunks, 3)
	assert.Equal(t, huge, chunks[1])
}

func TestFragment_Deterministic(t *testing.T) {
	text := sampleText(40)
	assert.Equal(t, summarize.Fragment(text, 80), summarize.Fragment(text, 80))
}

func TestSplitSentences(t *testing.T) {
	got := summarize.SplitSentences("  First one. Second?  Third!\nFourth  ")
	assert.Equal(t, []string{"First one.", "Second?", "Third!", "Fourth"}, got)
	assert.Nil(t, summarize.SplitSentences("   "))
}
