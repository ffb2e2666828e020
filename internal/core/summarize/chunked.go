// Package summarize implements the chunked summarization pipeline: sentence
// aligned fragmentation, per-chunk summarization through an injected
// Capability, recombination and a single bounded second pass.
package summarize

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Options tunes one pipeline run.
//
// MaxLength, MinLength: forwarded unchanged to the capability.
// MaxChunk:             character bound for fragmentation and for the second pass trigger (default 1000).
// Concurrency:          number of chunks summarized at once; <= 1 runs sequentially.
type Options struct {
	MaxLength   int
	MinLength   int
	MaxChunk    int
	Concurrency int
}

// Result describes a finished run.
type Result struct {
	Summary    string
	Chunks     int
	SecondPass bool
}

// Summarize returns the final summary of text. Errors from c are returned
// as is.
func Summarize(ctx context.Context, text string, c Capability, opts Options) (string, error) {
	res, err := Run(ctx, text, c, opts)
	if err != nil {
		return "", err
	}
	return res.Summary, nil
}

// Run is Summarize with a report of how the summary was produced.
func Run(ctx context.Context, text string, c Capability, opts Options) (Result, error) {
	maxChunk := opts.MaxChunk
	if maxChunk <= 0 {
		maxChunk = DefaultMaxChunk
	}

	chunks := Fragment(text, maxChunk)
	if len(chunks) == 0 {
		return Result{}, nil
	}

	partials, err := summarizeChunks(ctx, chunks, c, opts)
	if err != nil {
		return Result{}, err
	}

	candidate := strings.Join(partials, " ")
	if utf8.RuneCountInString(candidate) <= maxChunk {
		return Result{Summary: candidate, Chunks: len(chunks)}, nil
	}

	// One reduction pass over the whole candidate. The new result is not
	// checked against maxChunk again.
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	final, err := c.SummarizeChunk(ctx, candidate, opts.MaxLength, opts.MinLength)
	if err != nil {
		return Result{}, err
	}
	return Result{Summary: final, Chunks: len(chunks), SecondPass: true}, nil
}

// summarizeChunks returns one partial summary per chunk, indexed like chunks.
func summarizeChunks(ctx context.Context, chunks []string, c Capability, opts Options) ([]string, error) {
	partials := make([]string, len(chunks))

	if opts.Concurrency <= 1 || len(chunks) == 1 {
		for i, chunk := range chunks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out, err := c.SummarizeChunk(ctx, chunk, opts.MaxLength, opts.MinLength)
			if err != nil {
				return nil, err
			}
			partials[i] = out
		}
		return partials, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := c.SummarizeChunk(gctx, chunk, opts.MaxLength, opts.MinLength)
			if err != nil {
				return err
			}
			partials[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return partials, nil
}
