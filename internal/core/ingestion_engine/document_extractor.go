package ingestion_engine

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/Sumora/internal/core"
)

var _ core.DocumentExtractor = (*DocconvExtractor)(nil)

// DocconvExtractor implements core.DocumentExtractor using sajari/docconv.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// docconvTypes are the MIME types handed to docconv. Images are left out:
// OCR needs a build tag and tesseract.
var docconvTypes = map[string]bool{
	"application/msword":      true,
	"application/vnd.ms-word": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/vnd.oasis.opendocument.text":                                   true,
	"application/vnd.apple.pages":                                               true,
	"application/pdf":                                                           true,
	"application/rtf":                                                           true,
	"application/x-rtf":                                                         true,
	"text/rtf":                                                                  true,
	"text/richtext":                                                             true,
	"text/html":                                                                 true,
	"text/xml":                                                                  true,
	"application/xml":                                                           true,
}

// SupportedContentType reports whether ExtractText can decode ct.
func SupportedContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.HasPrefix(ct, "text/") || docconvTypes[ct]
}

// ExtractText returns the document body. Plain text is decoded as is;
// converted formats keep one non-blank paragraph per line.
func (e *DocconvExtractor) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ct := strings.ToLower(contentType)
	if ct == "text/plain" || (strings.HasPrefix(ct, "text/") && !docconvTypes[ct]) {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrUnsupportedContentType, contentType)
		}
		return string(data), nil
	}
	if !docconvTypes[ct] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}

	body, err := e.convert(data, ct)
	if err != nil {
		return "", fmt.Errorf("docconv: extraction failed for %q: %w", contentType, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lines := strings.Split(body, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return "", fmt.Errorf("%w: no text found in %s document", ErrEmptyInput, contentType)
	}
	return strings.Join(kept, "\n"), nil
}

// convert runs the docconv converter for ct. HTML skips docconv.Convert:
// its tidy fallback reads an already drained buffer when the tidy binary
// is missing.
func (e *DocconvExtractor) convert(data []byte, ct string) (string, error) {
	if ct == "text/html" {
		if e.useReadability {
			return string(docconv.HTMLReadability(bytes.NewReader(data))), nil
		}
		return docconv.HTMLToText(bytes.NewReader(data)), nil
	}
	res, err := docconv.Convert(bytes.NewReader(data), ct, e.useReadability)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}
