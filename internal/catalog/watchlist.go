package catalog

import (
	"fmt"
	"time"
)

// ToggleWatchlist adds the item to the user's watchlist, or removes it if
// already present. Returns true when the item is on the list afterwards.
func (s *Store) ToggleWatchlist(mediaID int64, user string) (bool, error) {
	result, err := s.db.Exec(
		"DELETE FROM watchlist_items WHERE media_id = ? AND user = ?",
		mediaID, user,
	)
	if err != nil {
		return false, fmt.Errorf("toggle watchlist for media %d: %w", mediaID, mapSQLiteError(err))
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if removed > 0 {
		return false, nil
	}

	_, err = s.db.Exec(
		"INSERT INTO watchlist_items (media_id, user, added_at) VALUES (?, ?, ?)",
		mediaID, user, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("add watchlist entry for media %d: %w", mediaID, mapSQLiteError(err))
	}
	return true, nil
}

// OnWatchlist reports whether the item is on the user's watchlist.
func (s *Store) OnWatchlist(mediaID int64, user string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM watchlist_items WHERE media_id = ? AND user = ?",
		mediaID, user,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return n > 0, nil
}

// Watchlist returns the user's watchlisted items, most recently added first.
func (s *Store) Watchlist(user string) ([]*MediaItem, error) {
	rows, err := s.db.Query(`
		SELECT `+mediaColumns+` FROM media_items
		WHERE id IN (SELECT media_id FROM watchlist_items WHERE user = ?)
		ORDER BY (SELECT added_at FROM watchlist_items w WHERE w.media_id = media_items.id AND w.user = ?) DESC`,
		user, user)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*MediaItem
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan watchlist item: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist: %w", err)
	}
	return results, nil
}
