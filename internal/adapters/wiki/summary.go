package wiki

import (
	"regexp"
	"sort"
	"strings"
)

var citationMarkers = regexp.MustCompile(`\[\d+\]`)

// Sentence-scoring keywords, by language. Sentences mentioning a place's
// history or construction make the best two-line summaries.
var priorityKeywords = map[string][]string{
	"en": {"historic", "founded", "built", "established", "designed", "famous"},
	"es": {"histórico", "fundado", "construido", "establecido", "diseñado", "famoso"},
	"fr": {"historique", "fondé", "construit", "établi", "conçu", "célèbre"},
}

// extractRelevantInfo condenses a page extract to its two highest-scoring
// sentences, joined with locale-correct terminal punctuation.
func extractRelevantInfo(summary, language string) string {
	clean := citationMarkers.ReplaceAllString(summary, "")

	sentences := splitSentences(clean, language)
	if len(sentences) == 0 {
		if len(clean) > 200 {
			return clean[:200] + "..."
		}
		return clean
	}

	keywords, ok := priorityKeywords[language]
	if !ok {
		keywords = priorityKeywords[defaultLanguage]
	}

	type scored struct {
		text  string
		score int
	}
	ranked := make([]scored, 0, len(sentences))
	for _, s := range sentences {
		lower := strings.ToLower(s)
		score := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		ranked = append(ranked, scored{text: s, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	best := make([]string, 0, 2)
	for i := 0; i < len(ranked) && i < 2; i++ {
		best = append(best, ranked[i].text)
	}

	terminal := "."
	if language == "ja" || language == "zh" {
		terminal = "。"
		return strings.Join(best, "。") + terminal
	}
	return strings.Join(best, ". ") + terminal
}

// splitSentences breaks text on locale-appropriate sentence delimiters:
// ideographic stops for CJK scripts, terminal punctuation followed by
// whitespace (or end of text) otherwise.
func splitSentences(text, language string) []string {
	var parts []string
	if language == "ja" || language == "zh" {
		parts = strings.FieldsFunc(text, func(r rune) bool {
			return r == '。' || r == '！' || r == '？'
		})
	} else {
		parts = splitLatinSentences(text)
	}

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

func splitLatinSentences(text string) []string {
	var parts []string
	runes := []rune(text)
	start := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		atEnd := i == len(runes)-1
		if atEnd || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
			parts = append(parts, string(runes[start:i]))
			start = i + 1
		}
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}
