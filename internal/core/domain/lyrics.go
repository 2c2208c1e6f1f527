package domain

import (
	"regexp"
	"strings"
	"sync"
)

// LyricsThemes groups the keywords a lyric body touches, by category. Every
// sub-category is always present (possibly empty) so downstream code never
// null-checks. LookupFailed marks that the lyrics source was unreachable;
// callers treat a marked result identically to an empty success.
type LyricsThemes struct {
	Locations         map[string][]string `json:"locations"`
	NatureReferences  map[string][]string `json:"natureReferences"`
	MoodKeywords      map[string][]string `json:"moodKeywords"`
	TimeReferences    map[string][]string `json:"timeReferences"`
	WeatherReferences map[string][]string `json:"weatherReferences"`
	LookupFailed      bool                `json:"lookupFailed,omitempty"`
}

var lyricsDictionaries = map[string]map[string][]string{
	"locations": {
		"nature": {"mountain", "river", "forest", "ocean", "valley", "hill", "lake", "shore", "meadow", "desert", "island", "canyon"},
		"urban":  {"city", "street", "avenue", "bridge", "station", "alley", "downtown", "highway", "rooftop", "subway", "park", "corner"},
	},
	"natureReferences": {
		"flora":    {"tree", "flower", "rose", "grass", "leaves", "garden", "blossom", "vine", "willow", "pine"},
		"fauna":    {"bird", "wolf", "lion", "butterfly", "sparrow", "raven", "horse", "fish", "eagle", "crow"},
		"elements": {"fire", "water", "earth", "wind", "stone", "dust", "ash", "flame", "wave", "sky"},
	},
	"moodKeywords": {
		"positive":  {"love", "joy", "happy", "smile", "shine", "bright", "hope", "dream", "heaven", "gold"},
		"negative":  {"pain", "cry", "lonely", "broken", "tears", "dark", "cold", "lost", "fear", "goodbye"},
		"energetic": {"run", "dance", "jump", "fly", "burn", "wild", "alive", "loud", "fast", "free"},
		"calm":      {"quiet", "still", "slow", "peace", "gentle", "soft", "silence", "breathe", "rest", "ease"},
	},
	"timeReferences": {
		"daylight": {"morning", "sunrise", "noon", "daylight", "dawn", "afternoon", "sunshine", "daytime"},
		"night":    {"night", "midnight", "moonlight", "dusk", "evening", "stars", "moon", "twilight"},
	},
	"weatherReferences": {
		"weather": {"rain", "storm", "snow", "thunder", "sunshine", "fog", "cloud", "lightning", "breeze", "mist"},
		"seasons": {"summer", "winter", "spring", "autumn", "fall", "december", "july", "june"},
	},
}

var (
	keywordPatternsOnce sync.Once
	keywordPatterns     map[string]*regexp.Regexp
)

// compiled once; case-insensitive whole-word match per keyword.
func keywordPattern(keyword string) *regexp.Regexp {
	keywordPatternsOnce.Do(func() {
		keywordPatterns = make(map[string]*regexp.Regexp)
		for _, subcats := range lyricsDictionaries {
			for _, words := range subcats {
				for _, w := range words {
					keywordPatterns[w] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
				}
			}
		}
	})
	return keywordPatterns[keyword]
}

// EmptyLyricsThemes returns the all-empty but fully shaped structure.
func EmptyLyricsThemes() LyricsThemes {
	empty := func(subcats ...string) map[string][]string {
		m := make(map[string][]string, len(subcats))
		for _, s := range subcats {
			m[s] = []string{}
		}
		return m
	}
	return LyricsThemes{
		Locations:         empty("nature", "urban"),
		NatureReferences:  empty("flora", "fauna", "elements"),
		MoodKeywords:      empty("positive", "negative", "energetic", "calm"),
		TimeReferences:    empty("daylight", "night"),
		WeatherReferences: empty("weather", "seasons"),
	}
}

// IsEmpty reports whether no keyword in any category matched.
func (t LyricsThemes) IsEmpty() bool {
	for _, group := range []map[string][]string{
		t.Locations, t.NatureReferences, t.MoodKeywords, t.TimeReferences, t.WeatherReferences,
	} {
		for _, matches := range group {
			if len(matches) > 0 {
				return false
			}
		}
	}
	return true
}

// ExtractThemes scans lyric text for the fixed keyword dictionaries and
// returns the matched keywords per sub-category. It never fails: empty or
// absent text yields the all-empty structure.
func ExtractThemes(lyrics string) LyricsThemes {
	themes := EmptyLyricsThemes()
	if strings.TrimSpace(lyrics) == "" {
		return themes
	}

	scan := func(category string, dest map[string][]string) {
		for subcat, words := range lyricsDictionaries[category] {
			for _, w := range words {
				if keywordPattern(w).MatchString(lyrics) {
					dest[subcat] = append(dest[subcat], w)
				}
			}
		}
	}

	scan("locations", themes.Locations)
	scan("natureReferences", themes.NatureReferences)
	scan("moodKeywords", themes.MoodKeywords)
	scan("timeReferences", themes.TimeReferences)
	scan("weatherReferences", themes.WeatherReferences)

	return themes
}
