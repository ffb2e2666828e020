// Package llm holds the remote generation backends and the adapter that
// turns any of them into an abstractive summarization capability.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/markdave123-py/Sumora/internal/core"
	"github.com/markdave123-py/Sumora/internal/core/summarize"
)

const (
	DefaultMaxInputTokens  = 512
	DefaultMaxOutputTokens = 1024
	DefaultLanguage        = "spanish"

	userPromptPrefix = "summarize: "
)

var (
	ErrEmptyGeneration = errors.New("llm: model returned an empty summary")
	ErrMissingAPIKey   = errors.New("llm: api key not configured")
)

// Abstractive summarizes a chunk with an LLMProvider. Lengths are in words.
// Input beyond MaxInputTokens is cut, which is logged at debug level on Log.
type Abstractive struct {
	Provider       core.LLMProvider
	Language       string
	MaxInputTokens int
	Tokens         TokenCounter
	Log            *zap.Logger
}

var _ summarize.Capability = (*Abstractive)(nil)

func NewAbstractive(p core.LLMProvider, language string) *Abstractive {
	if language == "" {
		language = DefaultLanguage
	}
	return &Abstractive{
		Provider:       p,
		Language:       language,
		MaxInputTokens: DefaultMaxInputTokens,
		Tokens:         DefaultTokenCounter(),
		Log:            zap.NewNop(),
	}
}

func (a *Abstractive) SummarizeChunk(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	if a.Tokens != nil && a.MaxInputTokens > 0 {
		if n := a.Tokens.Count(text); n > a.MaxInputTokens {
			text = a.Tokens.Truncate(text, a.MaxInputTokens)
			if a.Log != nil {
				a.Log.Debug("abstractive input truncated",
					zap.Int("tokens", n),
					zap.Int("max_input_tokens", a.MaxInputTokens))
			}
		}
	}

	out, err := a.Provider.Generate(ctx, SystemPrompt(a.Language, maxLength, minLength), userPromptPrefix+text)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptyGeneration
	}
	return out, nil
}

// SystemPrompt renders the instruction sent with every chunk.
func SystemPrompt(language string, maxLength, minLength int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a summarization engine. Write a faithful summary of the user's text in %s.", language)
	switch {
	case minLength > 0 && maxLength > 0:
		fmt.Fprintf(&b, " Use between %d and %d words.", minLength, maxLength)
	case maxLength > 0:
		fmt.Fprintf(&b, " Use at most %d words.", maxLength)
	}
	b.WriteString(" Reply with plain text only: no headings, lists, markdown or commentary.")
	return b.String()
}
