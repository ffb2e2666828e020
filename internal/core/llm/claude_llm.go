package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/markdave123-py/Sumora/internal/core"
	"github.com/markdave123-py/Sumora/internal/resilience"
)

var DefaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

type ClaudeLLM struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	guard     *resilience.Guard
	log       *zap.Logger
}

// NewClaudeLLM builds a Claude backend. The SDK's own retries are disabled;
// the resilience guard owns retry policy. Extra options (base URL, HTTP
// client) are appended last.
func NewClaudeLLM(apiKey, model string, log *zap.Logger, opts ...option.RequestOption) (*ClaudeLLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("claude: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultClaudeModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	base := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	return &ClaudeLLM{
		client:    anthropic.NewClient(append(base, opts...)...),
		model:     model,
		maxTokens: DefaultMaxOutputTokens,
		guard:     resilience.NewLLMGuard("claude-api", log),
		log:       log,
	}, nil
}

func (c *ClaudeLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	var msg *anthropic.Message
	err := c.guard.Do(ctx, func(ctx context.Context) error {
		var err error
		msg, err = c.client.Messages.New(ctx, params)
		return claudeError(err)
	})
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	c.log.Debug("claude generation completed",
		zap.String("model", c.model),
		zap.Int64("output_tokens", msg.Usage.OutputTokens))
	return b.String(), nil
}

func claudeError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &resilience.HTTPError{StatusCode: apiErr.StatusCode, Message: apiErr.Error(), Err: err}
	}
	return err
}

var _ core.LLMProvider = (*ClaudeLLM)(nil)
