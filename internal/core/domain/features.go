package domain

import "math"

// FeatureProfile is the qualitative trail-design structure derived from a
// TrackSignal. Derivation is deterministic: identical signals always yield
// identical profiles.
type FeatureProfile struct {
	MoodAnalysis             MoodAnalysis             `json:"moodAnalysis"`
	MovementAnalysis         MovementAnalysis         `json:"movementAnalysis"`
	EnvironmentalPreferences EnvironmentalPreferences `json:"environmentalPreferences"`
}

type MoodAnalysis struct {
	PrimaryMood        string `json:"primaryMood"`
	EmotionalIntensity int    `json:"emotionalIntensity"`
	AtmosphericQuality string `json:"atmosphericQuality"`
}

type MovementAnalysis struct {
	IntensityLevel int           `json:"intensityLevel"`
	SuggestedPace  float64       `json:"suggestedPace"`
	RhythmPattern  RhythmPattern `json:"rhythmPattern"`
}

type RhythmPattern struct {
	Complexity  int    `json:"complexity"`
	Consistency string `json:"consistency"`
}

type EnvironmentalPreferences struct {
	TrailType         string `json:"trailType"`
	TerrainComplexity int    `json:"terrainComplexity"`
	SceneryPreference string `json:"sceneryPreference"`
}

// InterpretSignal maps a TrackSignal onto qualitative trail descriptors
// using fixed threshold rules; first matching rule wins.
func InterpretSignal(signal TrackSignal) FeatureProfile {
	return FeatureProfile{
		MoodAnalysis: MoodAnalysis{
			PrimaryMood:        primaryMood(signal),
			EmotionalIntensity: int(math.Round(signal.Valence * 10)),
			AtmosphericQuality: atmosphericQuality(signal),
		},
		MovementAnalysis: MovementAnalysis{
			IntensityLevel: int(math.Round(signal.Energy * 10)),
			SuggestedPace:  suggestedPace(signal),
			RhythmPattern: RhythmPattern{
				Complexity:  signal.TimeSignature,
				Consistency: rhythmConsistency(signal),
			},
		},
		EnvironmentalPreferences: EnvironmentalPreferences{
			TrailType:         trailType(signal),
			TerrainComplexity: terrainComplexity(signal),
			SceneryPreference: sceneryPreference(signal),
		},
	}
}

func primaryMood(s TrackSignal) string {
	switch {
	case s.Valence > 0.8 && s.Energy > 0.8:
		return "euphoric"
	case s.Valence > 0.6 && s.Energy > 0.6:
		return "uplifting"
	case s.Valence > 0.5 && s.Mode == ModeMajor:
		return "positive"
	case s.Valence < 0.3 && s.Energy < 0.3:
		return "introspective"
	case s.Valence < 0.4 && s.Mode == ModeMinor:
		return "melancholic"
	case s.Energy > 0.7 && s.Valence < 0.5:
		return "intense"
	default:
		return "balanced"
	}
}

func atmosphericQuality(s TrackSignal) string {
	switch {
	case s.Instrumentalness > 0.7:
		return "ethereal"
	case s.Acousticness > 0.7:
		return "organic"
	case s.Energy > 0.7:
		return "dynamic"
	default:
		return "balanced"
	}
}

// suggestedPace converts BPM to a walking pace in km/h, adjusted by energy
// and clamped to a sane range, rounded to one decimal.
func suggestedPace(s TrackSignal) float64 {
	pace := clamp(s.Tempo/60+(s.Energy-0.5)*2, 2, 8)
	return math.Round(pace*10) / 10
}

func rhythmConsistency(s TrackSignal) string {
	if s.Danceability > 0.7 {
		return "steady"
	}
	return "variable"
}

func trailType(s TrackSignal) string {
	switch {
	case s.Acousticness > 0.7:
		return "nature"
	case s.Energy > 0.7:
		return "urban"
	case s.Instrumentalness > 0.7:
		return "mixed"
	default:
		return "balanced"
	}
}

func terrainComplexity(s TrackSignal) int {
	return int(math.Round((s.Energy*0.4 + s.Danceability*0.3 + s.Valence*0.3) * 10))
}

func sceneryPreference(s TrackSignal) string {
	if s.Acousticness > 0.7 {
		return "nature"
	}
	return "urban"
}
