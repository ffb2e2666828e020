// Package extractive implements a statistical sentence ranker used as the
// extractive summarizer capability.
package extractive

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"

	"github.com/markdave123-py/Sumora/internal/core/summarize"
)

// DefaultSentences is the summary size when no target is given.
const DefaultSentences = 3

// Ranker scores sentences by the normalised frequency of their stemmed,
// non-stopword terms and keeps the best ones in their original order.
// maxLength and minLength are counted in sentences.
type Ranker struct {
	language  string
	stopwords map[string]struct{}
}

var _ summarize.Capability = (*Ranker)(nil)

// NewRanker builds a ranker for a snowball language ("english", "spanish", ...).
func NewRanker(language string) *Ranker {
	language = strings.ToLower(strings.TrimSpace(language))
	return &Ranker{language: language, stopwords: stopwordsFor(language)}
}

func (r *Ranker) SummarizeChunk(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sentences := summarize.SplitSentences(text)
	want := maxLength
	if want <= 0 {
		want = DefaultSentences
	}
	if minLength > want {
		want = minLength
	}
	if len(sentences) <= want {
		return strings.Join(sentences, " "), nil
	}

	terms := make([][]string, len(sentences))
	freq := make(map[string]float64)
	for i, s := range sentences {
		terms[i] = r.terms(s)
		for _, t := range terms[i] {
			freq[t]++
		}
	}

	var top float64
	for _, v := range freq {
		top = math.Max(top, v)
	}
	if top > 0 {
		for k, v := range freq {
			freq[k] = v / top
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, ts := range terms {
		var sum float64
		for _, t := range ts {
			sum += freq[t]
		}
		if len(ts) > 0 {
			sum /= math.Sqrt(float64(len(ts)))
		}
		ranked[i] = scored{idx: i, score: sum}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	keep := make([]int, want)
	for i := range keep {
		keep[i] = ranked[i].idx
	}
	sort.Ints(keep)

	out := make([]string, len(keep))
	for i, idx := range keep {
		out[i] = sentences[idx]
	}
	return strings.Join(out, " "), nil
}

// terms lowercases, tokenizes, drops stopwords and stems.
func (r *Ranker) terms(sentence string) []string {
	words := strings.FieldsFunc(strings.ToLower(sentence), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})

	out := words[:0]
	for _, w := range words {
		if _, stop := r.stopwords[w]; stop {
			continue
		}
		out = append(out, r.stem(w))
	}
	return out
}

func (r *Ranker) stem(word string) string {
	stemmed, err := snowball.Stem(word, r.language, true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}
