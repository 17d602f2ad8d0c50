package catalog

import (
	"fmt"
)

func addSeason(q querier, se *Season) error {
	result, err := q.Exec(`
		INSERT INTO seasons (media_id, season_number, title)
		VALUES (?, ?, ?)`,
		se.MediaID, se.SeasonNumber, se.Title,
	)
	if err != nil {
		return fmt.Errorf("insert season: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	se.ID = id
	return nil
}

// AddSeason inserts a new season. Sets ID on the struct.
// The caller is responsible for setting MediaID; episodes carried on the
// struct are NOT inserted - use AddEpisode per episode.
func (s *Store) AddSeason(se *Season) error { return addSeason(s.db, se) }

// AddSeason inserts a new season within a transaction.
func (t *Tx) AddSeason(se *Season) error { return addSeason(t.tx, se) }

func addEpisode(q querier, e *Episode) error {
	result, err := q.Exec(`
		INSERT INTO episodes (season_id, episode_number, title, description, duration_minutes)
		VALUES (?, ?, ?, ?, ?)`,
		e.SeasonID, e.EpisodeNumber, e.Title, e.Description, e.DurationMinutes,
	)
	if err != nil {
		return fmt.Errorf("insert episode: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	e.ID = id
	return nil
}

// AddEpisode inserts a new episode. Sets ID on the struct.
// The caller is responsible for setting SeasonID first.
func (s *Store) AddEpisode(e *Episode) error { return addEpisode(s.db, e) }

// AddEpisode inserts a new episode within a transaction.
func (t *Tx) AddEpisode(e *Episode) error { return addEpisode(t.tx, e) }

func seasonsForMedia(q querier, mediaID int64) ([]*Season, error) {
	rows, err := q.Query(`
		SELECT id, media_id, season_number, title FROM seasons
		WHERE media_id = ? ORDER BY season_number`, mediaID)
	if err != nil {
		return nil, fmt.Errorf("list seasons for media %d: %w", mediaID, err)
	}
	defer func() { _ = rows.Close() }()

	var seasons []*Season
	byID := make(map[int64]*Season)
	for rows.Next() {
		se := &Season{}
		if err := rows.Scan(&se.ID, &se.MediaID, &se.SeasonNumber, &se.Title); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, se)
		byID[se.ID] = se
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seasons: %w", err)
	}
	if len(seasons) == 0 {
		return nil, nil
	}

	epRows, err := q.Query(`
		SELECT e.id, e.season_id, e.episode_number, e.title, e.description, e.duration_minutes
		FROM episodes e JOIN seasons s ON s.id = e.season_id
		WHERE s.media_id = ?
		ORDER BY s.season_number, e.episode_number`, mediaID)
	if err != nil {
		return nil, fmt.Errorf("list episodes for media %d: %w", mediaID, err)
	}
	defer func() { _ = epRows.Close() }()

	for epRows.Next() {
		e := &Episode{}
		if err := epRows.Scan(&e.ID, &e.SeasonID, &e.EpisodeNumber, &e.Title, &e.Description, &e.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		if se, ok := byID[e.SeasonID]; ok {
			se.Episodes = append(se.Episodes, e)
		}
	}
	if err := epRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}

	return seasons, nil
}

// SeasonsForMedia returns a series' seasons with episodes populated,
// ordered by season then episode number.
func (s *Store) SeasonsForMedia(mediaID int64) ([]*Season, error) {
	return seasonsForMedia(s.db, mediaID)
}

// SeasonsForMedia returns seasons with episodes within a transaction.
func (t *Tx) SeasonsForMedia(mediaID int64) ([]*Season, error) {
	return seasonsForMedia(t.tx, mediaID)
}

func deleteSeasonsForMedia(q querier, mediaID int64) error {
	_, err := q.Exec("DELETE FROM seasons WHERE media_id = ?", mediaID)
	if err != nil {
		return fmt.Errorf("delete seasons for media %d: %w", mediaID, mapSQLiteError(err))
	}
	return nil
}

// DeleteSeasonsForMedia removes all seasons of a series; episodes cascade.
// Edit forms use this to replace the submitted season structure wholesale.
func (s *Store) DeleteSeasonsForMedia(mediaID int64) error {
	return deleteSeasonsForMedia(s.db, mediaID)
}

// DeleteSeasonsForMedia removes all seasons within a transaction.
func (t *Tx) DeleteSeasonsForMedia(mediaID int64) error {
	return deleteSeasonsForMedia(t.tx, mediaID)
}
