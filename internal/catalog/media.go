package catalog

import (
	"fmt"
	"strings"
	"time"
)

const mediaColumns = `id, type, tmdb_id, title, original_title, description, director,
	cast_list, year, end_year, duration_minutes, poster_file, trailer_url, services, rating,
	added_at, updated_at`

func scanMedia(row interface{ Scan(...any) error }) (*MediaItem, error) {
	m := &MediaItem{}
	var cast, services string
	err := row.Scan(&m.ID, &m.Type, &m.TMDBID, &m.Title, &m.OriginalTitle, &m.Description,
		&m.Director, &cast, &m.Year, &m.EndYear, &m.DurationMinutes, &m.PosterFile,
		&m.TrailerURL, &services, &m.Rating, &m.AddedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Cast = splitList(cast)
	m.Services = splitList(services)
	return m, nil
}

func addMedia(q querier, m *MediaItem) error {
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO media_items (type, tmdb_id, title, original_title, description, director,
			cast_list, year, end_year, duration_minutes, poster_file, trailer_url, services, rating,
			added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Type, m.TMDBID, m.Title, m.OriginalTitle, m.Description, m.Director,
		joinList(m.Cast), m.Year, m.EndYear, m.DurationMinutes, m.PosterFile,
		m.TrailerURL, joinList(m.Services), m.Rating, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert media item: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	m.ID = id
	m.AddedAt = now
	m.UpdatedAt = now
	return nil
}

// AddMedia inserts a new media item into the database.
// Sets ID, AddedAt, and UpdatedAt on the struct.
// Returns ErrDuplicate if an item of the same type already carries the TMDB ID.
func (s *Store) AddMedia(m *MediaItem) error { return addMedia(s.db, m) }

// AddMedia inserts a new media item within a transaction.
func (t *Tx) AddMedia(m *MediaItem) error { return addMedia(t.tx, m) }

func getMedia(q querier, id int64) (*MediaItem, error) {
	m, err := scanMedia(q.QueryRow(
		"SELECT "+mediaColumns+" FROM media_items WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get media item %d: %w", id, mapSQLiteError(err))
	}
	return m, nil
}

// GetMedia retrieves a media item by ID.
// Returns ErrNotFound if the item does not exist.
func (s *Store) GetMedia(id int64) (*MediaItem, error) { return getMedia(s.db, id) }

// GetMedia retrieves a media item by ID within a transaction.
func (t *Tx) GetMedia(id int64) (*MediaItem, error) { return getMedia(t.tx, id) }

func mediaExists(q querier, typ MediaType, tmdbID int64) (bool, error) {
	var n int
	err := q.QueryRow(
		"SELECT COUNT(*) FROM media_items WHERE type = ? AND tmdb_id = ?",
		typ, tmdbID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check media exists: %w", mapSQLiteError(err))
	}
	return n > 0, nil
}

// MediaExists reports whether an item of the given type with the TMDB ID exists.
func (s *Store) MediaExists(typ MediaType, tmdbID int64) (bool, error) {
	return mediaExists(s.db, typ, tmdbID)
}

// MediaExists reports whether the item exists, within a transaction.
func (t *Tx) MediaExists(typ MediaType, tmdbID int64) (bool, error) {
	return mediaExists(t.tx, typ, tmdbID)
}

func listMedia(q querier, f MediaFilter) ([]*MediaItem, int, error) {
	var conditions []string
	var args []any

	if f.Type != nil {
		conditions = append(conditions, "type = ?")
		args = append(args, *f.Type)
	}
	if f.TMDBID != nil {
		conditions = append(conditions, "tmdb_id = ?")
		args = append(args, *f.TMDBID)
	}
	if f.Genre != nil {
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM media_genres mg JOIN genres g ON g.id = mg.genre_id
			WHERE mg.media_id = media_items.id AND g.name = ?)`)
		args = append(args, *f.Genre)
	}
	if f.Service != nil {
		conditions = append(conditions, "(', ' || services || ', ') LIKE ('%, ' || ? || ', %')")
		args = append(args, strings.TrimSpace(*f.Service))
	}
	if f.MinRating != nil {
		conditions = append(conditions, "rating >= ?")
		args = append(args, *f.MinRating)
	}
	if f.Query != nil {
		pattern := "%" + strings.TrimSpace(*f.Query) + "%"
		conditions = append(conditions, "(title LIKE ? OR original_title LIKE ? OR cast_list LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	if f.YearFrom != nil {
		conditions = append(conditions, "year >= ?")
		args = append(args, *f.YearFrom)
	}
	if f.YearTo != nil {
		conditions = append(conditions, "year <= ?")
		args = append(args, *f.YearTo)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM media_items "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count media items: %w", err)
	}

	query := "SELECT " + mediaColumns + " FROM media_items " + whereClause + " ORDER BY title, id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list media items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*MediaItem
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan media item: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate media items: %w", err)
	}

	return results, total, nil
}

// ListMedia returns media items matching the filter with pagination.
// Returns (results, totalCount, error).
func (s *Store) ListMedia(f MediaFilter) ([]*MediaItem, int, error) { return listMedia(s.db, f) }

// ListMedia returns media items matching the filter within a transaction.
func (t *Tx) ListMedia(f MediaFilter) ([]*MediaItem, int, error) { return listMedia(t.tx, f) }

func updateMedia(q querier, m *MediaItem) error {
	now := time.Now()
	result, err := q.Exec(`
		UPDATE media_items SET type = ?, tmdb_id = ?, title = ?, original_title = ?,
			description = ?, director = ?, cast_list = ?, year = ?, end_year = ?,
			duration_minutes = ?, poster_file = ?, trailer_url = ?, services = ?, updated_at = ?
		WHERE id = ?`,
		m.Type, m.TMDBID, m.Title, m.OriginalTitle, m.Description, m.Director,
		joinList(m.Cast), m.Year, m.EndYear, m.DurationMinutes, m.PosterFile,
		m.TrailerURL, joinList(m.Services), now, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update media item %d: %w", m.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update media item %d: %w", m.ID, ErrNotFound)
	}
	m.UpdatedAt = now
	return nil
}

// UpdateMedia updates an existing media item. The aggregate rating is not
// touched here; SetRating maintains it.
// Returns ErrNotFound if the item does not exist.
func (s *Store) UpdateMedia(m *MediaItem) error { return updateMedia(s.db, m) }

// UpdateMedia updates an existing media item within a transaction.
func (t *Tx) UpdateMedia(m *MediaItem) error { return updateMedia(t.tx, m) }

func deleteMedia(q querier, id int64) error {
	result, err := q.Exec("DELETE FROM media_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete media item %d: %w", id, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete media item %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteMedia removes a media item by ID. Genre links, seasons, episodes,
// ratings and watchlist entries cascade at the schema level.
// Returns ErrNotFound if the item does not exist.
func (s *Store) DeleteMedia(id int64) error { return deleteMedia(s.db, id) }

// DeleteMedia removes a media item by ID within a transaction.
func (t *Tx) DeleteMedia(id int64) error { return deleteMedia(t.tx, id) }
