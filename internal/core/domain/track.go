package domain

// Track identifies a piece of music resolved from a free-text search.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album,omitempty"`
	AlbumArt   string `json:"albumArt,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	Popularity int    `json:"popularity"`
	DurationMs int    `json:"durationMs"`
}

// Mode values as encoded by the audio-features provider.
const (
	ModeMinor = 0
	ModeMajor = 1
)

// TrackSignal holds the scalar audio descriptors that drive trail design.
// Produced once per search and immutable afterwards. When the provider cannot
// supply real descriptors a pseudo-signal is synthesized from bare metadata
// (see PseudoSignal) so the interpreter's contract stays uniform.
type TrackSignal struct {
	Tempo            float64 `json:"tempo"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Mode             int     `json:"mode"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	TimeSignature    int     `json:"timeSignature"`
	Popularity       int     `json:"popularity"`
	DurationMs       int     `json:"durationMs"`
	Estimated        bool    `json:"estimated,omitempty"`
}

// SignalSummary is the compact track identity persisted alongside a shared
// trail so the gallery can label each entry.
type SignalSummary struct {
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
	AlbumArt   string `json:"albumArt,omitempty"`
}

// NeutralSignal is the midpoint signal used when no track signal is
// available at all; the interpreter maps it to a balanced profile.
func NeutralSignal() TrackSignal {
	return TrackSignal{
		Tempo:            120,
		Energy:           0.5,
		Valence:          0.5,
		Mode:             ModeMajor,
		Danceability:     0.5,
		Acousticness:     0.5,
		Instrumentalness: 0.5,
		TimeSignature:    4,
		Estimated:        true,
	}
}

// PseudoSignal synthesizes a TrackSignal from bare metadata. Popularity
// stands in for energy, and longer tracks imply a slower tempo. energyHint,
// when non-negative, overrides the popularity estimate (it comes from
// preview-audio analysis).
func PseudoSignal(track Track, energyHint float64) TrackSignal {
	energy := float64(track.Popularity) / 100
	if energyHint >= 0 {
		energy = clamp(energyHint, 0, 1)
	}

	// 3 minutes maps to ~120 BPM, scaling down as duration grows.
	tempo := 120.0
	if track.DurationMs > 0 {
		tempo = clamp(120*(180000/float64(track.DurationMs)), 60, 180)
	}

	return TrackSignal{
		Tempo:            tempo,
		Energy:           energy,
		Valence:          0.5,
		Mode:             ModeMajor,
		Danceability:     0.5,
		Acousticness:     0.5,
		Instrumentalness: 0.5,
		TimeSignature:    4,
		Popularity:       track.Popularity,
		DurationMs:       track.DurationMs,
		Estimated:        true,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
