package summarize

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which summarizer capability is injected into the pipeline.
type Mode string

const (
	ModeExtractive  Mode = "extractive"
	ModeAbstractive Mode = "abstractive"
)

var ErrUnknownMode = errors.New("unknown summary mode")

// ParseMode accepts the canonical names and the Spanish form labels
// ("Resumen Extractivo", "Resumen abstractivo").
func ParseMode(s string) (Mode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimSpace(strings.TrimPrefix(v, "resumen"))

	switch v {
	case "extractive", "extractivo", "extractiva":
		return ModeExtractive, nil
	case "abstractive", "abstractivo", "abstractiva":
		return ModeAbstractive, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) Valid() bool {
	return m == ModeExtractive || m == ModeAbstractive
}

func (m Mode) String() string { return string(m) }
