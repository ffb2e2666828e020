package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/markdave123-py/Sumora/internal/core"
	"github.com/markdave123-py/Sumora/internal/resilience"
)

const DefaultOpenAIModel = "gpt-4o-mini"

type OpenAILLM struct {
	client    *openai.Client
	model     string
	maxTokens int
	guard     *resilience.Guard
}

// NewOpenAILLM builds an OpenAI backend; baseURL overrides the API endpoint
// when non-empty.
func NewOpenAILLM(apiKey, model, baseURL string, log *zap.Logger) (*OpenAILLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAILLM{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: DefaultMaxOutputTokens,
		guard:     resilience.NewLLMGuard("openai-api", log),
	}, nil
}

func (o *OpenAILLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var msgs []openai.ChatCompletionMessage
	if systemPrompt != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userPrompt})

	var resp openai.ChatCompletionResponse
	err := o.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:     o.model,
			Messages:  msgs,
			MaxTokens: o.maxTokens,
		})
		return openAIError(err)
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &resilience.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &resilience.HTTPError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error(), Err: err}
	}
	return err
}

var _ core.LLMProvider = (*OpenAILLM)(nil)
