// Package tmdb provides a client for The Movie Database API.
package tmdb

import "strconv"

// Movie is a fully-populated movie as returned by lookup calls.
// Genres, Cast and Services arrive as plain name lists; the import mapper
// re-serializes them into the comma-text shape the admin forms use.
type Movie struct {
	ID            int64
	Title         string
	OriginalTitle string
	Overview      string
	Year          int
	Runtime       int // minutes
	PosterURL     string
	TrailerURL    string
	Director      string
	Cast          []string
	Genres        []string
	Services      []string // streaming services carrying the title in the requested region
}

// Episode is one episode of a season.
type Episode struct {
	Number   int
	Title    string
	Overview string
	Runtime  int
}

// Season groups episodes.
type Season struct {
	Number   int
	Title    string
	Episodes []Episode
}

// Series is a fully-populated series, including its season/episode breakdown.
type Series struct {
	ID            int64
	Title         string
	OriginalTitle string
	Overview      string
	StartYear     int
	EndYear       *int // nil while still airing
	PosterURL     string
	TrailerURL    string
	Director      string
	Cast          []string
	Genres        []string
	Services      []string
	Seasons       []Season
}

// Wire types below mirror the TMDB JSON responses.

type movieResponse struct {
	ID             int64             `json:"id"`
	Title          string            `json:"title"`
	OriginalTitle  string            `json:"original_title"`
	Overview       string            `json:"overview"`
	ReleaseDate    string            `json:"release_date"` // "1999-10-15"
	PosterPath     string            `json:"poster_path"`
	Runtime        int               `json:"runtime"`
	Genres         []genreRef        `json:"genres"`
	Credits        credits           `json:"credits"`
	Videos         videos            `json:"videos"`
	WatchProviders providersResponse `json:"watch/providers"`
}

type seriesResponse struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	OriginalName   string            `json:"original_name"`
	Overview       string            `json:"overview"`
	FirstAirDate   string            `json:"first_air_date"`
	LastAirDate    string            `json:"last_air_date"`
	InProduction   bool              `json:"in_production"`
	PosterPath     string            `json:"poster_path"`
	Genres         []genreRef        `json:"genres"`
	Credits        credits           `json:"credits"`
	Videos         videos            `json:"videos"`
	WatchProviders providersResponse `json:"watch/providers"`
	Seasons        []seasonRef       `json:"seasons"`
}

type seasonRef struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
}

type seasonResponse struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	Episodes     []struct {
		EpisodeNumber int    `json:"episode_number"`
		Name          string `json:"name"`
		Overview      string `json:"overview"`
		Runtime       int    `json:"runtime"`
	} `json:"episodes"`
}

type genreRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type credits struct {
	Cast []struct {
		Name string `json:"name"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

type videos struct {
	Results []struct {
		Key  string `json:"key"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

type providersResponse struct {
	Results map[string]struct {
		Flatrate []struct {
			ProviderName string `json:"provider_name"`
		} `json:"flatrate"`
	} `json:"results"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID    int64  `json:"id"`
	Title string `json:"title"` // movies
	Name  string `json:"name"`  // series
}

func (r searchResult) title() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

type popularResponse struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
