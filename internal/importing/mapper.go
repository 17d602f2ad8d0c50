package importing

import (
	"fmt"
	"strings"

	"streamdex/internal/catalog"
	"streamdex/internal/tmdb"
)

// Catalog is the persistence surface the import pipeline writes through.
// Both *catalog.Store and *catalog.Tx satisfy it, so the same mapping code
// runs transactionally when the store supports it and as plain writes when
// it does not.
type Catalog interface {
	MediaExists(typ catalog.MediaType, tmdbID int64) (bool, error)
	AddMedia(m *catalog.MediaItem) error
	GetOrCreateGenre(name string) (*catalog.Genre, error)
	AttachGenre(mediaID, genreID int64) error
	ClearGenres(mediaID int64) error
	AddSeason(se *catalog.Season) error
	AddEpisode(e *catalog.Episode) error
}

// movieItem maps fetched movie metadata into the catalog row shape.
func movieItem(m *tmdb.Movie) *catalog.MediaItem {
	return &catalog.MediaItem{
		Type:            catalog.MediaTypeMovie,
		TMDBID:          &m.ID,
		Title:           m.Title,
		OriginalTitle:   m.OriginalTitle,
		Description:     m.Overview,
		Director:        m.Director,
		Cast:            cleanNames(m.Cast),
		Year:            m.Year,
		DurationMinutes: m.Runtime,
		PosterFile:      m.PosterURL,
		TrailerURL:      m.TrailerURL,
		Services:        cleanNames(m.Services),
	}
}

// seriesItem maps fetched series metadata into the catalog row shape.
func seriesItem(s *tmdb.Series) *catalog.MediaItem {
	return &catalog.MediaItem{
		Type:          catalog.MediaTypeSeries,
		TMDBID:        &s.ID,
		Title:         s.Title,
		OriginalTitle: s.OriginalTitle,
		Description:   s.Overview,
		Director:      s.Director,
		Cast:          cleanNames(s.Cast),
		Year:          s.StartYear,
		EndYear:       s.EndYear,
		PosterFile:    s.PosterURL,
		TrailerURL:    s.TrailerURL,
		Services:      cleanNames(s.Services),
	}
}

// persistMovie writes a fetched movie and its genre links.
func persistMovie(c Catalog, m *tmdb.Movie) (*catalog.MediaItem, error) {
	item := movieItem(m)
	if err := c.AddMedia(item); err != nil {
		return nil, fmt.Errorf("add movie: %w", err)
	}
	if err := SyncGenres(c, item.ID, m.Genres); err != nil {
		return nil, err
	}
	return item, nil
}

// persistSeries writes a fetched series with its genre links and full
// season/episode breakdown.
func persistSeries(c Catalog, s *tmdb.Series) (*catalog.MediaItem, error) {
	item := seriesItem(s)
	if err := c.AddMedia(item); err != nil {
		return nil, fmt.Errorf("add series: %w", err)
	}
	if err := SyncGenres(c, item.ID, s.Genres); err != nil {
		return nil, err
	}

	for _, se := range s.Seasons {
		season := &catalog.Season{
			MediaID:      item.ID,
			SeasonNumber: se.Number,
			Title:        se.Title,
		}
		if err := c.AddSeason(season); err != nil {
			return nil, fmt.Errorf("add season %d: %w", se.Number, err)
		}
		for _, ep := range se.Episodes {
			episode := &catalog.Episode{
				SeasonID:        season.ID,
				EpisodeNumber:   ep.Number,
				Title:           ep.Title,
				Description:     ep.Overview,
				DurationMinutes: ep.Runtime,
			}
			if err := c.AddEpisode(episode); err != nil {
				return nil, fmt.Errorf("add episode S%02dE%02d: %w", se.Number, ep.Number, err)
			}
		}
	}
	return item, nil
}

// SyncGenres replaces a media item's genre links with the given names.
// Names are deduplicated case-insensitively; the genre rows themselves are
// created on demand and shared across items. The admin edit forms use the
// same path, so imported and hand-entered genres collapse identically.
func SyncGenres(c Catalog, mediaID int64, names []string) error {
	if err := c.ClearGenres(mediaID); err != nil {
		return fmt.Errorf("clear genres: %w", err)
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		genre, err := c.GetOrCreateGenre(name)
		if err != nil {
			return fmt.Errorf("genre %q: %w", name, err)
		}
		if err := c.AttachGenre(mediaID, genre.ID); err != nil {
			return fmt.Errorf("attach genre %q: %w", name, err)
		}
	}
	return nil
}

func cleanNames(names []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
