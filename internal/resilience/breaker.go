package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned while a backend's breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker open")

type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// LLMBreakerConfig returns the breaker preset shared by all generation
// backends; name distinguishes them in logs.
func LLMBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

func NewBreaker(cfg BreakerConfig, log *zap.Logger) *Breaker {
	if log == nil {
		log = zap.NewNop()
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < cfg.MinRequests {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureThreshold
		},
		// Cancelled calls say nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("circuit", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Do runs fn through the breaker. Open and half-open rejections surface as
// ErrCircuitOpen; fn's own error is returned as is.
func (b *Breaker) Do(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	return err
}

func (b *Breaker) Name() string { return b.cb.Name() }

func (b *Breaker) IsOpen() bool { return b.cb.State() == gobreaker.StateOpen }

// Guard combines a breaker with retry. Each attempt passes through the
// breaker, so an opening circuit stops retries early.
type Guard struct {
	Retry   RetryConfig
	Breaker *Breaker
	Log     *zap.Logger
}

// NewLLMGuard returns the default guard for a generation backend.
func NewLLMGuard(name string, log *zap.Logger) *Guard {
	return &Guard{
		Retry:   LLMRetryConfig(),
		Breaker: NewBreaker(LLMBreakerConfig(name), log),
		Log:     log,
	}
}

func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if g == nil {
		return fn(ctx)
	}
	return WithBackoff(ctx, g.Retry, g.Log, func() error {
		if g.Breaker == nil {
			return fn(ctx)
		}
		return g.Breaker.Do(func() error { return fn(ctx) })
	})
}
