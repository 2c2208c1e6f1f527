package domain

import (
	"reflect"
	"testing"
)

func TestInterpretSignal_PrimaryMood(t *testing.T) {
	tests := []struct {
		name   string
		signal TrackSignal
		want   string
	}{
		{
			name:   "euphoric when valence and energy both high",
			signal: TrackSignal{Valence: 0.85, Energy: 0.9, Mode: ModeMajor},
			want:   "euphoric",
		},
		{
			name:   "uplifting when both moderately high",
			signal: TrackSignal{Valence: 0.7, Energy: 0.65, Mode: ModeMajor},
			want:   "uplifting",
		},
		{
			name:   "positive when happy and major",
			signal: TrackSignal{Valence: 0.55, Energy: 0.3, Mode: ModeMajor},
			want:   "positive",
		},
		{
			name:   "introspective when both low",
			signal: TrackSignal{Valence: 0.2, Energy: 0.2, Mode: ModeMajor},
			want:   "introspective",
		},
		{
			name:   "melancholic when sad and minor",
			signal: TrackSignal{Valence: 0.35, Energy: 0.5, Mode: ModeMinor},
			want:   "melancholic",
		},
		{
			name:   "intense when energetic but not happy",
			signal: TrackSignal{Valence: 0.45, Energy: 0.8, Mode: ModeMajor},
			want:   "intense",
		},
		{
			name:   "balanced at exact midpoints",
			signal: NeutralSignal(),
			want:   "balanced",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			profile := InterpretSignal(tc.signal)
			if got := profile.MoodAnalysis.PrimaryMood; got != tc.want {
				t.Fatalf("expected mood %q, got %q", tc.want, got)
			}
		})
	}
}

func TestInterpretSignal_Scales(t *testing.T) {
	signal := TrackSignal{
		Tempo:         120,
		Energy:        0.5,
		Valence:       0.85,
		Mode:          ModeMajor,
		Danceability:  0.5,
		TimeSignature: 4,
	}
	profile := InterpretSignal(signal)

	if got := profile.MoodAnalysis.EmotionalIntensity; got != 9 {
		t.Errorf("emotional intensity: expected 9, got %d", got)
	}
	if got := profile.MovementAnalysis.IntensityLevel; got != 5 {
		t.Errorf("intensity level: expected 5, got %d", got)
	}
	if got := profile.MovementAnalysis.RhythmPattern.Complexity; got != 4 {
		t.Errorf("rhythm complexity: expected 4, got %d", got)
	}
	// 0.5*0.4 + 0.5*0.3 + 0.85*0.3 = 0.605 -> 6
	if got := profile.EnvironmentalPreferences.TerrainComplexity; got != 6 {
		t.Errorf("terrain complexity: expected 6, got %d", got)
	}
}

func TestInterpretSignal_SuggestedPace(t *testing.T) {
	tests := []struct {
		name   string
		tempo  float64
		energy float64
		want   float64
	}{
		{name: "walking tempo neutral energy", tempo: 120, energy: 0.5, want: 2.0},
		{name: "fast tempo high energy", tempo: 180, energy: 1.0, want: 4.0},
		{name: "clamped at lower bound", tempo: 30, energy: 0.0, want: 2.0},
		{name: "clamped at upper bound", tempo: 600, energy: 1.0, want: 8.0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			profile := InterpretSignal(TrackSignal{Tempo: tc.tempo, Energy: tc.energy})
			if got := profile.MovementAnalysis.SuggestedPace; got != tc.want {
				t.Fatalf("expected pace %.1f, got %.1f", tc.want, got)
			}
			if got := profile.MovementAnalysis.SuggestedPace; got < 2 || got > 8 {
				t.Fatalf("pace %.1f outside [2, 8]", got)
			}
		})
	}
}

func TestInterpretSignal_Environment(t *testing.T) {
	acoustic := InterpretSignal(TrackSignal{Acousticness: 0.8, Energy: 0.3})
	if got := acoustic.EnvironmentalPreferences.TrailType; got != "nature" {
		t.Errorf("acoustic trail type: expected nature, got %q", got)
	}
	if got := acoustic.EnvironmentalPreferences.SceneryPreference; got != "nature" {
		t.Errorf("acoustic scenery: expected nature, got %q", got)
	}
	if got := acoustic.MoodAnalysis.AtmosphericQuality; got != "organic" {
		t.Errorf("acoustic atmosphere: expected organic, got %q", got)
	}

	electric := InterpretSignal(TrackSignal{Acousticness: 0.1, Energy: 0.9})
	if got := electric.EnvironmentalPreferences.TrailType; got != "urban" {
		t.Errorf("electric trail type: expected urban, got %q", got)
	}
	if got := electric.EnvironmentalPreferences.SceneryPreference; got != "urban" {
		t.Errorf("electric scenery: expected urban, got %q", got)
	}
}

func TestInterpretSignal_Deterministic(t *testing.T) {
	signal := TrackSignal{
		Tempo: 128, Energy: 0.72, Valence: 0.61, Mode: ModeMajor,
		Danceability: 0.8, Acousticness: 0.15, Instrumentalness: 0.02, TimeSignature: 4,
	}
	first := InterpretSignal(signal)
	second := InterpretSignal(signal)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical signals produced different profiles:\n%+v\n%+v", first, second)
	}
}
