package core

import "context"

// DocumentExtractor turns raw uploaded bytes into plain text.
// The contentType hint selects the decoding strategy.
type DocumentExtractor interface {
	ExtractText(ctx context.Context, data []byte, contentType string) (string, error)
}
