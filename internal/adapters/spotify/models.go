package spotify

import (
	"strings"

	"github.com/pathos-labs/pathos/backend/internal/core/domain"
)

type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	Popularity int    `json:"popularity"`
	DurationMs int    `json:"duration_ms"`
	PreviewURL string `json:"preview_url"`
}

type audioFeaturesResponse struct {
	Tempo            float64 `json:"tempo"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Mode             int     `json:"mode"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	TimeSignature    int     `json:"time_signature"`
}

func mapTrackToDomain(tr spotifyTrack) domain.Track {
	artists := make([]string, 0, len(tr.Artists))
	for _, a := range tr.Artists {
		artists = append(artists, a.Name)
	}

	albumArt := ""
	if len(tr.Album.Images) > 0 {
		albumArt = tr.Album.Images[0].URL
	}

	return domain.Track{
		ID:         tr.ID,
		Name:       tr.Name,
		Artist:     strings.Join(artists, ", "),
		Album:      tr.Album.Name,
		AlbumArt:   albumArt,
		PreviewURL: tr.PreviewURL,
		Popularity: tr.Popularity,
		DurationMs: tr.DurationMs,
	}
}

func mapFeaturesToSignal(f audioFeaturesResponse, track domain.Track) domain.TrackSignal {
	return domain.TrackSignal{
		Tempo:            f.Tempo,
		Energy:           f.Energy,
		Valence:          f.Valence,
		Mode:             f.Mode,
		Danceability:     f.Danceability,
		Acousticness:     f.Acousticness,
		Instrumentalness: f.Instrumentalness,
		TimeSignature:    f.TimeSignature,
		Popularity:       track.Popularity,
		DurationMs:       track.DurationMs,
	}
}

func allFeaturesZero(f audioFeaturesResponse) bool {
	return f.Danceability == 0 &&
		f.Energy == 0 &&
		f.Valence == 0 &&
		f.Tempo == 0 &&
		f.Instrumentalness == 0 &&
		f.Acousticness == 0
}
