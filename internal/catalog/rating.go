package catalog

import (
	"fmt"
	"time"
)

// SetRating records or replaces one user's score for an item and refreshes
// the item's aggregate rating in the same statement batch.
func (s *Store) SetRating(mediaID int64, user string, score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("set rating: score %d out of range: %w", score, ErrConstraint)
	}

	_, err := s.db.Exec(`
		INSERT INTO ratings (media_id, user, score, rated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (media_id, user) DO UPDATE SET score = excluded.score, rated_at = excluded.rated_at`,
		mediaID, user, score, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set rating for media %d: %w", mediaID, mapSQLiteError(err))
	}

	_, err = s.db.Exec(`
		UPDATE media_items
		SET rating = (SELECT AVG(score) FROM ratings WHERE media_id = ?)
		WHERE id = ?`, mediaID, mediaID)
	if err != nil {
		return fmt.Errorf("refresh aggregate rating for media %d: %w", mediaID, mapSQLiteError(err))
	}
	return nil
}

// UserRating returns the score a user gave an item, or 0 if none.
func (s *Store) UserRating(mediaID int64, user string) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM ratings WHERE media_id = ? AND user = ?",
		mediaID, user,
	).Scan(&score)
	if err != nil {
		if mapSQLiteError(err) == ErrNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("get user rating: %w", err)
	}
	return score, nil
}
