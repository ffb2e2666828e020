package llm

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter counts and truncates text in model tokens.
type TokenCounter interface {
	Count(text string) int
	Truncate(text string, maxTokens int) string
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

var (
	defaultCounterOnce sync.Once
	defaultCounter     TokenCounter
)

// DefaultTokenCounter returns a cl100k_base counter, or the approximate
// counter when the encoding cannot be loaded (it is fetched on first use).
func DefaultTokenCounter() TokenCounter {
	defaultCounterOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			defaultCounter = ApproxTokenCounter{}
			return
		}
		defaultCounter = tiktokenCounter{enc: enc}
	})
	return defaultCounter
}

func (t tiktokenCounter) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

func (t tiktokenCounter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	ids := t.enc.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return t.enc.Decode(ids[:maxTokens])
}

// ApproxTokenCounter assumes four runes per token.
type ApproxTokenCounter struct{}

const runesPerToken = 4

func (ApproxTokenCounter) Count(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + runesPerToken - 1) / runesPerToken
}

// Truncate cuts at the last whitespace inside the budget so words stay whole.
func (ApproxTokenCounter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	limit := maxTokens * runesPerToken
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := string(runes[:limit])
	if i := strings.LastIndexAny(cut, " \t\n"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}
