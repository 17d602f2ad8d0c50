package catalog

import (
	"fmt"
)

func getGenreByName(q querier, name string) (*Genre, error) {
	g := &Genre{}
	err := q.QueryRow("SELECT id, name FROM genres WHERE name = ?", name).Scan(&g.ID, &g.Name)
	if err != nil {
		return nil, fmt.Errorf("get genre %q: %w", name, mapSQLiteError(err))
	}
	return g, nil
}

// getOrCreateGenre inserts first and falls back to a lookup on conflict, so
// two imports racing on the same name both land on one row. The genres.name
// column collates NOCASE; "Action" and "action" resolve to the same genre.
func getOrCreateGenre(q querier, name string) (*Genre, error) {
	result, err := q.Exec("INSERT OR IGNORE INTO genres (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("insert genre %q: %w", name, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if rows > 0 {
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("get last insert id: %w", err)
		}
		return &Genre{ID: id, Name: name}, nil
	}
	return getGenreByName(q, name)
}

// GetOrCreateGenre finds a genre by case-insensitive name match, creating it
// if absent. The returned Genre carries the stored casing for existing rows.
func (s *Store) GetOrCreateGenre(name string) (*Genre, error) { return getOrCreateGenre(s.db, name) }

// GetOrCreateGenre finds or creates a genre within a transaction.
func (t *Tx) GetOrCreateGenre(name string) (*Genre, error) { return getOrCreateGenre(t.tx, name) }

func attachGenre(q querier, mediaID, genreID int64) error {
	_, err := q.Exec(
		"INSERT OR IGNORE INTO media_genres (media_id, genre_id) VALUES (?, ?)",
		mediaID, genreID,
	)
	if err != nil {
		return fmt.Errorf("attach genre %d to media %d: %w", genreID, mediaID, mapSQLiteError(err))
	}
	return nil
}

// AttachGenre links a genre to a media item. Idempotent with respect to
// repeated attachment.
func (s *Store) AttachGenre(mediaID, genreID int64) error { return attachGenre(s.db, mediaID, genreID) }

// AttachGenre links a genre to a media item within a transaction.
func (t *Tx) AttachGenre(mediaID, genreID int64) error { return attachGenre(t.tx, mediaID, genreID) }

func clearGenres(q querier, mediaID int64) error {
	_, err := q.Exec("DELETE FROM media_genres WHERE media_id = ?", mediaID)
	if err != nil {
		return fmt.Errorf("clear genres for media %d: %w", mediaID, mapSQLiteError(err))
	}
	return nil
}

// ClearGenres removes all genre links from a media item (used by edit forms
// before re-applying the submitted genre list).
func (s *Store) ClearGenres(mediaID int64) error { return clearGenres(s.db, mediaID) }

// ClearGenres removes all genre links within a transaction.
func (t *Tx) ClearGenres(mediaID int64) error { return clearGenres(t.tx, mediaID) }

func genresForMedia(q querier, mediaID int64) ([]*Genre, error) {
	rows, err := q.Query(`
		SELECT g.id, g.name FROM genres g
		JOIN media_genres mg ON mg.genre_id = g.id
		WHERE mg.media_id = ?
		ORDER BY g.name`, mediaID)
	if err != nil {
		return nil, fmt.Errorf("list genres for media %d: %w", mediaID, err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Genre
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}
	return results, nil
}

// GenresForMedia returns the genres attached to a media item, ordered by name.
func (s *Store) GenresForMedia(mediaID int64) ([]*Genre, error) {
	return genresForMedia(s.db, mediaID)
}

// GenresForMedia returns attached genres within a transaction.
func (t *Tx) GenresForMedia(mediaID int64) ([]*Genre, error) {
	return genresForMedia(t.tx, mediaID)
}

// ListGenres returns all genres ordered by name.
func (s *Store) ListGenres() ([]*Genre, error) {
	rows, err := s.db.Query("SELECT id, name FROM genres ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Genre
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}
	return results, nil
}

// GetGenre retrieves a genre by case-insensitive name.
// Returns ErrNotFound if no such genre exists.
func (s *Store) GetGenre(name string) (*Genre, error) {
	return getGenreByName(s.db, name)
}
