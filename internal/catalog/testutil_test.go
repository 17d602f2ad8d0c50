package catalog

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"streamdex/internal/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

func addTestMovie(t *testing.T, store *Store, title string, tmdbID int64) *MediaItem {
	t.Helper()
	m := &MediaItem{
		Type:     MediaTypeMovie,
		Title:    title,
		Year:     2020,
		Cast:     []string{"Actor One", "Actor Two"},
		Services: []string{"Netflix"},
	}
	if tmdbID > 0 {
		m.TMDBID = ptr(tmdbID)
	}
	if err := store.AddMedia(m); err != nil {
		t.Fatalf("AddMedia(%q): %v", title, err)
	}
	return m
}
