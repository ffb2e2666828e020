package summarize

import (
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// DefaultMaxChunk is the character bound used when none is configured.
const DefaultMaxChunk = 1000

// sentenceBoundary matches the whitespace run that follows terminal
// punctuation. The punctuation itself is left with the preceding sentence.
var sentenceBoundary = regexp2.MustCompile(`(?<=[.?!])\s+`, regexp2.None)

// SplitSentences breaks text after every '.', '?' or '!' that is followed by
// whitespace. Sentences are trimmed and empty ones dropped.
func SplitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var (
		out   []string
		start int
	)
	add := func(piece []rune) {
		if s := strings.TrimSpace(string(piece)); s != "" {
			out = append(out, s)
		}
	}

	m, err := sentenceBoundary.FindRunesMatch(runes)
	for err == nil && m != nil {
		add(runes[start:m.Index])
		start = m.Index + m.Length
		m, err = sentenceBoundary.FindNextMatch(m)
	}
	add(runes[start:])

	return out
}

// Fragment packs the sentences of text greedily into chunks of at most
// maxChunk characters, preserving order. A sentence longer than maxChunk is
// emitted alone and untouched. maxChunk <= 0 means DefaultMaxChunk.
func Fragment(text string, maxChunk int) []string {
	if maxChunk <= 0 {
		maxChunk = DefaultMaxChunk
	}

	sentences := SplitSentences(text)
	chunks := make([]string, 0, len(sentences))

	var (
		buf    strings.Builder
		bufLen int
	)
	flush := func() {
		if bufLen == 0 {
			return
		}
		chunks = append(chunks, buf.String())
		buf.Reset()
		bufLen = 0
	}

	for _, s := range sentences {
		n := utf8.RuneCountInString(s)
		if bufLen > 0 && bufLen+1+n > maxChunk {
			flush()
		}
		if bufLen > 0 {
			buf.WriteByte(' ')
			bufLen++
		}
		buf.WriteString(s)
		bufLen += n
	}
	flush()

	return chunks
}
