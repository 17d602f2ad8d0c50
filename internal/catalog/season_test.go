package catalog

import (
	"testing"
)

func addTestSeries(t *testing.T, store *Store) *MediaItem {
	t.Helper()
	s := &MediaItem{Type: MediaTypeSeries, Title: "Test Show", Year: 2021}
	if err := store.AddMedia(s); err != nil {
		t.Fatalf("AddMedia: %v", err)
	}
	return s
}

func TestStore_SeasonsForMedia(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	series := addTestSeries(t, store)

	for sn := 1; sn <= 2; sn++ {
		season := &Season{MediaID: series.ID, SeasonNumber: sn}
		if err := store.AddSeason(season); err != nil {
			t.Fatalf("AddSeason: %v", err)
		}
		for en := 1; en <= 3; en++ {
			ep := &Episode{SeasonID: season.ID, EpisodeNumber: en, Title: "Ep", DurationMinutes: 45}
			if err := store.AddEpisode(ep); err != nil {
				t.Fatalf("AddEpisode: %v", err)
			}
		}
	}

	seasons, err := store.SeasonsForMedia(series.ID)
	if err != nil {
		t.Fatalf("SeasonsForMedia: %v", err)
	}
	if len(seasons) != 2 {
		t.Fatalf("len(seasons) = %d, want 2", len(seasons))
	}
	for i, se := range seasons {
		if se.SeasonNumber != i+1 {
			t.Errorf("seasons[%d].SeasonNumber = %d, want %d", i, se.SeasonNumber, i+1)
		}
		if len(se.Episodes) != 3 {
			t.Errorf("season %d has %d episodes, want 3", se.SeasonNumber, len(se.Episodes))
		}
	}
	if seasons[0].Episodes[0].EpisodeNumber != 1 {
		t.Errorf("episodes not ordered by number")
	}
}

func TestStore_SeasonsForMedia_Empty(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	series := addTestSeries(t, store)
	seasons, err := store.SeasonsForMedia(series.ID)
	if err != nil {
		t.Fatalf("SeasonsForMedia: %v", err)
	}
	if seasons != nil {
		t.Errorf("expected nil seasons for series without seasons, got %v", seasons)
	}
}

func TestStore_DeleteSeasonsForMedia(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	series := addTestSeries(t, store)
	season := &Season{MediaID: series.ID, SeasonNumber: 1}
	if err := store.AddSeason(season); err != nil {
		t.Fatalf("AddSeason: %v", err)
	}
	if err := store.AddEpisode(&Episode{SeasonID: season.ID, EpisodeNumber: 1}); err != nil {
		t.Fatalf("AddEpisode: %v", err)
	}

	if err := store.DeleteSeasonsForMedia(series.ID); err != nil {
		t.Fatalf("DeleteSeasonsForMedia: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM episodes").Scan(&n); err != nil {
		t.Fatalf("count episodes: %v", err)
	}
	if n != 0 {
		t.Errorf("%d episodes left after season delete, want 0", n)
	}
}
