package summarize

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Capability reduces one piece of text to a shorter one.
// maxLength and minLength are targets whose unit (sentences, words, model
// tokens) is defined by the implementation; they are honored approximately.
type Capability interface {
	SummarizeChunk(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

// CapabilityFunc adapts a plain function to Capability.
type CapabilityFunc func(ctx context.Context, text string, maxLength, minLength int) (string, error)

func (f CapabilityFunc) SummarizeChunk(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	return f(ctx, text, maxLength, minLength)
}

type serialized struct {
	mu   sync.Mutex
	next Capability
}

// Serialized guards a capability that is not safe for concurrent use, so at
// most one invocation runs at a time.
func Serialized(c Capability) Capability {
	return &serialized{next: c}
}

func (s *serialized) SummarizeChunk(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.SummarizeChunk(ctx, text, maxLength, minLength)
}

type rateLimited struct {
	limiter *rate.Limiter
	next    Capability
}

// RateLimited waits on limiter before every invocation of c.
func RateLimited(c Capability, limiter *rate.Limiter) Capability {
	return &rateLimited{limiter: limiter, next: c}
}

func (r *rateLimited) SummarizeChunk(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.next.SummarizeChunk(ctx, text, maxLength, minLength)
}
