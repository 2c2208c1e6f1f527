package domain

import (
	"testing"
)

func TestExtractThemes(t *testing.T) {
	lyrics := "I run through the city in the rain\nUnder the moonlight we dance by the river"

	themes := ExtractThemes(lyrics)

	if themes.IsEmpty() {
		t.Fatal("expected matches, got empty themes")
	}
	assertContains(t, themes.Locations["urban"], "city")
	assertContains(t, themes.Locations["nature"], "river")
	assertContains(t, themes.MoodKeywords["energetic"], "run")
	assertContains(t, themes.MoodKeywords["energetic"], "dance")
	assertContains(t, themes.WeatherReferences["weather"], "rain")
	assertContains(t, themes.TimeReferences["night"], "moonlight")
}

func TestExtractThemes_WholeWordsOnly(t *testing.T) {
	// "runner" and "scity" embed keywords but are not whole-word matches.
	themes := ExtractThemes("the runner passed through scity")
	if !themes.IsEmpty() {
		t.Fatalf("expected no matches for embedded keywords, got %+v", themes)
	}
}

func TestExtractThemes_CaseInsensitive(t *testing.T) {
	themes := ExtractThemes("MOUNTAIN high, Ocean wide")
	assertContains(t, themes.Locations["nature"], "mountain")
	assertContains(t, themes.Locations["nature"], "ocean")
}

func TestExtractThemes_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		themes := ExtractThemes(input)
		if !themes.IsEmpty() {
			t.Fatalf("expected empty themes for %q", input)
		}
		// Every sub-category must still be present.
		if themes.Locations == nil || themes.Locations["nature"] == nil {
			t.Fatal("empty themes must keep the full category shape")
		}
	}
}

func TestExtractThemes_NonLatinText(t *testing.T) {
	themes := ExtractThemes("山を越えて海へ向かう")
	if !themes.IsEmpty() {
		t.Fatalf("expected no matches for non-latin lyrics, got %+v", themes)
	}
}

func assertContains(t *testing.T, list []string, want string) {
	t.Helper()
	for _, item := range list {
		if item == want {
			return
		}
	}
	t.Errorf("expected %q in %v", want, list)
}
