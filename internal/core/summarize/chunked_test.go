package summarize_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Sumora/internal/core/summarize"
)

type call struct {
	text      string
	maxLength int
	minLength int
	out       string
}

// recorder is a capability stub that records every invocation.
type recorder struct {
	mu    sync.Mutex
	calls []call
	fn    func(n int, text string) (string, error)
}

func (r *recorder) SummarizeChunk(_ context.Context, text string, maxLength, minLength int) (string, error) {
	r.mu.Lock()
	n := len(r.calls)
	r.calls = append(r.calls, call{text: text, maxLength: maxLength, minLength: minLength})
	r.mu.Unlock()

	out, err := r.fn(n, text)

	r.mu.Lock()
	r.calls[n].out = out
	r.mu.Unlock()
	return out, err
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func echo() *recorder {
	return &recorder{fn: func(_ int, text string) (string, error) { return text, nil }}
}

// threeChunks fragments into ["Alpha one.", "Beta two.", "Gamma three."] at maxChunk 11.
const threeChunks = "Alpha one. Beta two. Gamma three."

func TestSummarize_PreservesChunkOrder(t *testing.T) {
	rec := &recorder{fn: func(n int, _ string) (string, error) { return fmt.Sprintf("S%d", n), nil }}

	got, err := summarize.Summarize(context.Background(), threeChunks, rec, summarize.Options{MaxChunk: 11})
	require.NoError(t, err)

	assert.Equal(t, "S0 S1 S2", got)
	require.Equal(t, 3, rec.count())
	assert.Equal(t, "Alpha one.", rec.calls[0].text)
	assert.Equal(t, "Beta two.", rec.calls[1].text)
	assert.Equal(t, "Gamma three.", rec.calls[2].text)
}

func TestSummarize_ConcurrentKeepsChunkOrder(t *testing.T) {
	index := map[string]int{"Alpha one.": 0, "Beta two.": 1, "Gamma three.": 2}
	rec := &recorder{fn: func(_ int, text string) (string, error) {
		i := index[text]
		// Later chunks finish first.
		time.Sleep(time.Duration(3-i) * 10 * time.Millisecond)
		return fmt.Sprintf("S%d", i), nil
	}}

	got, err := summarize.Summarize(context.Background(), threeChunks, rec,
		summarize.Options{MaxChunk: 11, Concurrency: 3})
	require.NoError(t, err)

	assert.Equal(t, "S0 S1 S2", got)
	assert.Equal(t, 3, rec.count())
}

func TestSummarize_SecondPass(t *testing.T) {
	rec := echo()
	text := "Hello there. General Kenobi."

	res, err := summarize.Run(context.Background(), text, rec, summarize.Options{MaxChunk: 10, MaxLength: 5, MinLength: 1})
	require.NoError(t, err)

	require.Equal(t, 3, rec.count())
	last := rec.calls[2]
	assert.Equal(t, "Hello there. General Kenobi.", last.text)
	assert.Equal(t, last.out, res.Summary)
	assert.Equal(t, 5, last.maxLength)
	assert.Equal(t, 1, last.minLength)
	assert.True(t, res.SecondPass)
	assert.Equal(t, 2, res.Chunks)
}

func TestSummarize_SecondPassIsNotRepeated(t *testing.T) {
	rec := &recorder{fn: func(n int, text string) (string, error) {
		if n == 2 {
			return "final pass output that is still much longer than ten characters", nil
		}
		return text, nil
	}}

	got, err := summarize.Summarize(context.Background(), "Hello there. General Kenobi.", rec, summarize.Options{MaxChunk: 10})
	require.NoError(t, err)

	assert.Equal(t, "final pass output that is still much longer than ten characters", got)
	assert.Equal(t, 3, rec.count())
}

func TestSummarize_NoSecondPassWithinBound(t *testing.T) {
	rec := &recorder{fn: func(int, string) (string, error) { return "ok", nil }}

	res, err := summarize.Run(context.Background(), threeChunks, rec, summarize.Options{MaxChunk: 11})
	require.NoError(t, err)

	assert.Equal(t, "ok ok ok", res.Summary)
	assert.False(t, res.SecondPass)
	assert.Equal(t, 3, rec.count())
}

func TestSummarize_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		rec := echo()
		got, err := summarize.Summarize(context.Background(), text, rec, summarize.Options{})
		require.NoError(t, err)
		assert.Equal(t, "", got)
		assert.Zero(t, rec.count())
	}
}

func TestSummarize_SingleChunkIsSummarizedOnce(t *testing.T) {
	rec := &recorder{fn: func(int, string) (string, error) { return "short summary", nil }}

	got, err := summarize.Summarize(context.Background(), "  A single sentence here.  ", rec,
		summarize.Options{MaxChunk: 1000, MaxLength: 150, MinLength: 120})
	require.NoError(t, err)

	assert.Equal(t, "short summary", got)
	require.Equal(t, 1, rec.count())
	assert.Equal(t, "A single sentence here.", rec.calls[0].text)
	assert.Equal(t, 150, rec.calls[0].maxLength)
	assert.Equal(t, 120, rec.calls[0].minLength)
}

func TestSummarize_DefaultMaxChunk(t *testing.T) {
	rec := echo()

	res, err := summarize.Run(context.Background(), threeChunks, rec, summarize.Options{})
	require.NoError(t, err)

	assert.Equal(t, threeChunks, res.Summary)
	assert.Equal(t, 1, res.Chunks)
}

var errBackend = errors.New("backend unavailable")

func TestSummarize_PropagatesCapabilityError(t *testing.T) {
	rec := &recorder{fn: func(n int, text string) (string, error) {
		if n == 1 {
			return "", errBackend
		}
		return text, nil
	}}

	_, err := summarize.Summarize(context.Background(), threeChunks, rec, summarize.Options{MaxChunk: 11})

	assert.True(t, err == errBackend, "error must be returned untranslated, got %v", err)
	assert.Equal(t, 2, rec.count(), "no chunk after the failing one is summarized")
}

func TestSummarize_PropagatesSecondPassError(t *testing.T) {
	rec := &recorder{fn: func(n int, text string) (string, error) {
		if n == 2 {
			return "", errBackend
		}
		return text, nil
	}}

	_, err := summarize.Summarize(context.Background(), "Hello there. General Kenobi.", rec, summarize.Options{MaxChunk: 10})
	assert.True(t, err == errBackend)
}

func TestSummarize_ConcurrentPropagatesCapabilityError(t *testing.T) {
	rec := &recorder{fn: func(_ int, text string) (string, error) {
		if text == "Beta two." {
			return "", errBackend
		}
		return text, nil
	}}

	_, err := summarize.Summarize(context.Background(), threeChunks, rec,
		summarize.Options{MaxChunk: 11, Concurrency: 2})
	assert.ErrorIs(t, err, errBackend)
}

func TestSummarize_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := echo()
	_, err := summarize.Summarize(ctx, threeChunks, rec, summarize.Options{MaxChunk: 11})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rec.count())
}

func TestSummarize_CancelledBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{fn: func(_ int, text string) (string, error) {
		cancel()
		return text, nil
	}}

	_, err := summarize.Summarize(ctx, threeChunks, rec, summarize.Options{MaxChunk: 11})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, rec.count())
}
