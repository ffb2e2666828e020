package ingestion_engine

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
)

var (
	ErrEmptyInput             = errors.New("input text is empty")
	ErrInputTooLarge          = errors.New("input text exceeds the configured limit")
	ErrUnsupportedContentType = errors.New("unsupported content type")
)

// ValidateText rejects blank text and, when maxChars > 0, text longer than
// maxChars runes.
func ValidateText(text string, maxChars int) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	if maxChars > 0 {
		if n := utf8.RuneCountInString(text); n > maxChars {
			return fmt.Errorf("%w: %d > %d characters", ErrInputTooLarge, n, maxChars)
		}
	}
	return nil
}

// ResolveContentType prefers an explicit header and falls back to the file
// extension. Parameters such as charset are dropped.
func ResolveContentType(header, filename string) string {
	if header != "" {
		if mt, _, err := mime.ParseMediaType(header); err == nil {
			header = mt
		}
	}
	if header != "" && header != "application/octet-stream" {
		return strings.ToLower(header)
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text", ".md":
		return "text/plain"
	}
	return docconv.MimeTypeByExtension(filename)
}
