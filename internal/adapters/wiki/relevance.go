package wiki

import "strings"

// Language-specific phrases that signal a page is describing a location.
var locationKeywords = map[string][]string{
	"en": {"located", "situated", "found in", "based in"},
	"es": {"ubicado", "situado", "encontrado en", "basado en"},
	"fr": {"situé", "localisé", "trouvé à", "basé à"},
	"de": {"befindet", "gelegen", "gefunden in", "basiert in"},
}

// verifyRelevance gates a candidate page. It checks three signals and
// accepts when at least two hold: a significant token of the place name
// appears in the page, a significant token of the vicinity appears, and a
// language-specific location phrase appears. Returns the accepted flag and
// the signal count.
func verifyRelevance(searchTerm, content, location, language string) (bool, int) {
	contentLower := strings.ToLower(content)

	hasPlaceName := hasSignificantToken(searchTerm, contentLower)
	hasLocation := hasSignificantToken(location, contentLower)

	keywords, ok := locationKeywords[language]
	if !ok {
		keywords = locationKeywords[defaultLanguage]
	}
	hasContext := false
	for _, kw := range keywords {
		if strings.Contains(contentLower, kw) {
			hasContext = true
			break
		}
	}

	score := 0
	for _, signal := range []bool{hasPlaceName, hasLocation, hasContext} {
		if signal {
			score++
		}
	}
	return score >= 2, score
}

// hasSignificantToken reports whether any token of term longer than three
// characters occurs in content. Repeated occurrence counts as the same
// signal, just stronger evidence for it.
func hasSignificantToken(term, contentLower string) bool {
	for _, token := range strings.Fields(strings.ToLower(term)) {
		if len(token) <= 3 {
			continue
		}
		if strings.Count(contentLower, token) >= 1 {
			return true
		}
	}
	return false
}
