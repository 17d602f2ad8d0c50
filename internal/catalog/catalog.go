// Package catalog manages the media library (movies, series, genres, ratings, watchlists).
package catalog

import (
	"strings"
	"time"
)

// MediaType distinguishes movies from series.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
)

// ParseMediaType validates a type discriminator from user input.
func ParseMediaType(s string) (MediaType, bool) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaTypeMovie:
		return MediaTypeMovie, true
	case MediaTypeSeries:
		return MediaTypeSeries, true
	}
	return "", false
}

// MediaItem represents a movie or series in the catalog.
// TMDBID is set for imported items and is unique per type when present.
// Services holds the names of streaming services where the item is available;
// a service absent from the list is unavailable.
type MediaItem struct {
	ID              int64
	Type            MediaType
	TMDBID          *int64
	Title           string
	OriginalTitle   string
	Description     string
	Director        string
	Cast            []string
	Year            int
	EndYear         *int // series only; nil while still airing
	DurationMinutes int  // movies only
	PosterFile      string
	TrailerURL      string
	Services        []string
	Rating          float64 // aggregate of user ratings
	AddedAt         time.Time
	UpdatedAt       time.Time
}

// Available reports whether the item is available on the named service.
func (m *MediaItem) Available(service string) bool {
	for _, s := range m.Services {
		if strings.EqualFold(s, service) {
			return true
		}
	}
	return false
}

// Genre is a unique-by-name (case-insensitive) label, many-to-many with media items.
type Genre struct {
	ID   int64
	Name string
}

// Season groups the episodes of a series.
type Season struct {
	ID           int64
	MediaID      int64
	SeasonNumber int
	Title        string
	Episodes     []*Episode
}

// Episode is a single episode of a season.
type Episode struct {
	ID              int64
	SeasonID        int64
	EpisodeNumber   int
	Title           string
	Description     string
	DurationMinutes int
}

// Rating is one user's score for one item.
type Rating struct {
	ID      int64
	MediaID int64
	User    string
	Score   int
	RatedAt time.Time
}

// WatchlistItem marks an item on a user's watchlist.
type WatchlistItem struct {
	ID      int64
	MediaID int64
	User    string
	AddedAt time.Time
}

// joinList serializes a name list for storage; splitList reverses it.
// Round-trips through the same comma-text shape the admin forms use.
func joinList(values []string) string {
	return strings.Join(values, ", ")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
