package extractive

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var englishStopwords = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by",
	"with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its", "this", "that", "these",
	"those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into",
	"about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own",
	"same", "too", "very", "can", "will", "just", "should", "now", "he", "she", "they", "them", "their",
	"we", "you", "your", "our", "us", "me", "my", "i", "his", "her", "do", "does", "did", "have", "has",
	"had", "not", "no", "nor", "there", "which", "who", "whom", "what", "when", "where", "why", "how",
}

var spanishStopwords = []string{
	"de", "la", "que", "el", "en", "y", "a", "los", "del", "se", "las", "por", "un", "para", "con", "no",
	"una", "su", "al", "lo", "como", "más", "pero", "sus", "le", "ya", "o", "este", "sí", "porque", "esta",
	"entre", "cuando", "muy", "sin", "sobre", "también", "me", "hasta", "hay", "donde", "quien", "desde",
	"todo", "nos", "durante", "todos", "uno", "les", "ni", "contra", "otros", "ese", "eso", "ante", "ellos",
	"e", "esto", "mí", "antes", "algunos", "qué", "unos", "yo", "otro", "otras", "otra", "él", "tanto",
	"esa", "estos", "mucho", "quienes", "nada", "muchos", "cual", "poco", "ella", "estar", "estas", "es",
	"son", "fue", "ser", "ha", "han", "era", "están", "está", "sea", "tiene", "tienen",
}

// stopwordsFor returns the stopword set of language; unknown languages get
// the union of every list.
func stopwordsFor(language string) map[string]struct{} {
	switch language {
	case "english":
		return toSet(englishStopwords)
	case "spanish":
		return toSet(spanishStopwords)
	}
	return toSet(append(append([]string{}, englishStopwords...), spanishStopwords...))
}
