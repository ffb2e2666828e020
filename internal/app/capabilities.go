package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/markdave123-py/Sumora/internal/config"
	"github.com/markdave123-py/Sumora/internal/core"
	"github.com/markdave123-py/Sumora/internal/core/extractive"
	"github.com/markdave123-py/Sumora/internal/core/llm"
	"github.com/markdave123-py/Sumora/internal/core/summarize"
)

// BuildRegistry registers the extractive ranker eagerly and the abstractive
// backend lazily, so a missing API key only fails abstractive requests.
func BuildRegistry(cfg *config.Config, log *zap.Logger) *summarize.Registry {
	reg := summarize.NewRegistry()
	reg.Register(summarize.ModeExtractive, summarize.Static(extractive.NewRanker(cfg.SummaryLanguage)))
	reg.Register(summarize.ModeAbstractive, summarize.NewProvider(func(ctx context.Context) (summarize.Capability, error) {
		p, err := NewLLMProvider(context.WithoutCancel(ctx), cfg, log)
		if err != nil {
			return nil, err
		}
		log.Info("abstractive backend ready", zap.String("provider", cfg.AbstractiveProvider))
		return abstractiveCapability(p, cfg, log), nil
	}))
	return reg
}

// abstractiveCapability layers the input budget, optional serialization and
// the rate limit over a generation backend.
func abstractiveCapability(p core.LLMProvider, cfg *config.Config, log *zap.Logger) summarize.Capability {
	a := llm.NewAbstractive(p, cfg.SummaryLanguage)
	a.Log = log
	if cfg.LLMMaxInputTokens > 0 {
		a.MaxInputTokens = cfg.LLMMaxInputTokens
	}

	var c summarize.Capability = a
	if cfg.LLMSerial {
		c = summarize.Serialized(c)
	}
	if cfg.LLMRatePerSec > 0 {
		c = summarize.RateLimited(c, rate.NewLimiter(rate.Limit(cfg.LLMRatePerSec), 1))
	}
	return c
}

// NewLLMProvider builds the generation backend named by ABSTRACTIVE_PROVIDER.
func NewLLMProvider(ctx context.Context, cfg *config.Config, log *zap.Logger) (core.LLMProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var (
		p   core.LLMProvider
		err error
	)
	switch cfg.AbstractiveProvider {
	case "gemini":
		p, err = llm.NewGeminiLLM(ctx, cfg.GeminiAPIKey, cfg.GenModel, log)
	case "claude", "anthropic":
		p, err = llm.NewClaudeLLM(cfg.AnthropicAPIKey, cfg.ClaudeModel, log)
	case "openai":
		p, err = llm.NewOpenAILLM(cfg.OpenAIAPIKey, cfg.OpenAIModel, "", log)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrProviderNotConfigured, cfg.AbstractiveProvider)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
