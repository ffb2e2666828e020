package services

import (
	"strings"

	"github.com/markdave123-py/Sumora/internal/models"
)

// ExportFilename is the download name of an exported summary.
const ExportFilename = "resumen.txt"

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ExportText renders a summary as a UTF-8 text file.
func ExportText(s *models.Summary) ([]byte, string) {
	if s == nil {
		return nil, ExportFilename
	}
	return []byte(s.Text), ExportFilename
}
