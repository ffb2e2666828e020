package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/markdave123-py/Sumora/internal/core"
	"github.com/markdave123-py/Sumora/internal/resilience"
)

const DefaultGeminiModel = "gemini-1.5-flash"

type GeminiLLM struct {
	client    *genai.Client
	modelName string
	maxTokens int32
	guard     *resilience.Guard
}

func NewGeminiLLM(ctx context.Context, apiKey, modelName string, log *zap.Logger, opts ...option.ClientOption) (*GeminiLLM, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	cl, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiLLM{
		client:    cl,
		modelName: modelName,
		maxTokens: DefaultMaxOutputTokens,
		guard:     resilience.NewLLMGuard("gemini-api", log),
	}, nil
}

func (g *GeminiLLM) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *GeminiLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m := g.client.GenerativeModel(g.modelName)
	m.SetMaxOutputTokens(g.maxTokens)
	if systemPrompt != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	var resp *genai.GenerateContentResponse
	err := g.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = m.GenerateContent(ctx, genai.Text(userPrompt))
		return geminiError(err)
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}

func geminiError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return &resilience.HTTPError{StatusCode: gErr.Code, Message: gErr.Message, Err: err}
	}
	return err
}

var _ core.LLMProvider = (*GeminiLLM)(nil)
