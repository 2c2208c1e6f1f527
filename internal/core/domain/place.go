package domain

// RatingInfo is the optional popularity data a places provider attaches to a
// candidate.
type RatingInfo struct {
	Rating      float64 `json:"rating,omitempty"`
	RatingCount int     `json:"ratingCount,omitempty"`
	OpenNow     *bool   `json:"openNow,omitempty"`
}

// WikiSummary is an encyclopedia enrichment for a place: extracted text, the
// canonical page URL, the language it was retrieved in, and the relevance
// score (0-3) that admitted it.
type WikiSummary struct {
	Summary        string `json:"summary"`
	URL            string `json:"url"`
	Language       string `json:"language"`
	RelevanceScore int    `json:"relevanceScore"`
}

// PlaceCandidate is a real-world point of interest near the trail origin.
// Fetched fresh per generation request; only the encyclopedia layer caches.
type PlaceCandidate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    Coordinate   `json:"location"`
	Vicinity    string       `json:"vicinity,omitempty"`
	Types       []string     `json:"types,omitempty"`
	Rating      *RatingInfo  `json:"rating,omitempty"`
	WikiSummary *WikiSummary `json:"wikiSummary,omitempty"`
}
