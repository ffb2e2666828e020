package core

import "context"

// LLMProvider is a single-turn text generation backend.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
