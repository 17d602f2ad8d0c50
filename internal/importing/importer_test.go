package importing

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	_ "modernc.org/sqlite"

	"streamdex/internal/catalog"
	"streamdex/internal/importing/mocks"
	"streamdex/internal/migrations"
	"streamdex/internal/tmdb"
)

func setupStore(t *testing.T) *catalog.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return catalog.NewStore(db)
}

func testMovie(id int64, title string) *tmdb.Movie {
	return &tmdb.Movie{
		ID:       id,
		Title:    title,
		Year:     1999,
		Runtime:  136,
		Director: "Lana Wachowski",
		Cast:     []string{"Keanu Reeves", "Carrie-Anne Moss"},
		Genres:   []string{"Action", "Science Fiction"},
		Services: []string{"Netflix"},
	}
}

func collect(ch <-chan Outcome) []Outcome {
	var out []Outcome
	for o := range ch {
		out = append(out, o)
	}
	return out
}

func TestOrchestrator_ImportsMovies(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)
	meta.EXPECT().GetMovie(gomock.Any(), int64(603), "DE").Return(testMovie(603, "The Matrix"), nil)
	meta.EXPECT().GetMovie(gomock.Any(), int64(550), "DE").Return(testMovie(550, "Fight Club"), nil)

	store := setupStore(t)
	o := NewOrchestrator(store, meta, discardLogger())

	outcomes := collect(o.Run(context.Background(), []int64{603, 550}, catalog.MediaTypeMovie, "DE"))
	require.Len(t, outcomes, 2)

	assert.Equal(t, StatusImported, outcomes[0].Status)
	assert.Equal(t, 1, outcomes[0].Imported)
	assert.Equal(t, 2, outcomes[0].Total)
	assert.Equal(t, "The Matrix", outcomes[0].Title)

	assert.Equal(t, StatusImported, outcomes[1].Status)
	assert.Equal(t, 2, outcomes[1].Imported)

	items, total, err := store.ListMedia(catalog.MediaFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	var matrix *catalog.MediaItem
	for _, it := range items {
		if it.Title == "The Matrix" {
			matrix = it
		}
	}
	require.NotNil(t, matrix)
	assert.Equal(t, "Lana Wachowski", matrix.Director)
	assert.Equal(t, []string{"Keanu Reeves", "Carrie-Anne Moss"}, matrix.Cast)
	assert.Equal(t, []string{"Netflix"}, matrix.Services)

	genres, err := store.GenresForMedia(matrix.ID)
	require.NoError(t, err)
	require.Len(t, genres, 2)
}

func TestOrchestrator_SkipsExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)
	meta.EXPECT().GetMovie(gomock.Any(), int64(603), "DE").Return(testMovie(603, "The Matrix"), nil)

	store := setupStore(t)
	o := NewOrchestrator(store, meta, discardLogger())

	first := collect(o.Run(context.Background(), []int64{603}, catalog.MediaTypeMovie, "DE"))
	require.Equal(t, StatusImported, first[0].Status)

	// Second run finds the item in the catalog and never fetches.
	second := collect(o.Run(context.Background(), []int64{603}, catalog.MediaTypeMovie, "DE"))
	require.Len(t, second, 1)
	assert.Equal(t, StatusSkipped, second[0].Status)
	assert.Equal(t, 0, second[0].Imported)

	_, total, err := store.ListMedia(catalog.MediaFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total, "re-import must not duplicate the item")
}

func TestOrchestrator_NotFoundUpstream(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)
	meta.EXPECT().GetMovie(gomock.Any(), int64(603), "DE").Return(testMovie(603, "The Matrix"), nil)
	meta.EXPECT().GetMovie(gomock.Any(), int64(999), "DE").Return(nil, tmdb.ErrNotFound)
	meta.EXPECT().GetMovie(gomock.Any(), int64(550), "DE").Return(testMovie(550, "Fight Club"), nil)

	store := setupStore(t)
	o := NewOrchestrator(store, meta, discardLogger())

	outcomes := collect(o.Run(context.Background(), []int64{603, 999, 550}, catalog.MediaTypeMovie, "DE"))
	require.Len(t, outcomes, 3)

	assert.Equal(t, StatusImported, outcomes[0].Status)
	assert.Equal(t, 1, outcomes[0].Imported)
	assert.Equal(t, StatusNotFound, outcomes[1].Status)
	assert.Equal(t, 1, outcomes[1].Imported, "not-found does not advance the success count")
	assert.Equal(t, StatusImported, outcomes[2].Status)
	assert.Equal(t, 2, outcomes[2].Imported)
}

func TestOrchestrator_FetchErrorContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)
	meta.EXPECT().GetMovie(gomock.Any(), int64(603), "DE").Return(nil, errors.New("upstream 500"))
	meta.EXPECT().GetMovie(gomock.Any(), int64(550), "DE").Return(testMovie(550, "Fight Club"), nil)

	store := setupStore(t)
	o := NewOrchestrator(store, meta, discardLogger())

	outcomes := collect(o.Run(context.Background(), []int64{603, 550}, catalog.MediaTypeMovie, "DE"))
	require.Len(t, outcomes, 2)
	assert.Equal(t, StatusFailed, outcomes[0].Status)
	assert.Error(t, outcomes[0].Err)
	assert.Equal(t, StatusImported, outcomes[1].Status, "a failed ID never aborts the run")
}

func TestOrchestrator_ImportsSeriesWithSeasons(t *testing.T) {
	end := 2013
	series := &tmdb.Series{
		ID:        1396,
		Title:     "Breaking Bad",
		StartYear: 2008,
		EndYear:   &end,
		Genres:    []string{"Drama"},
		Seasons: []tmdb.Season{
			{Number: 1, Title: "Season 1", Episodes: []tmdb.Episode{
				{Number: 1, Title: "Pilot", Runtime: 58},
				{Number: 2, Title: "Cat's in the Bag...", Runtime: 48},
			}},
			{Number: 2, Title: "Season 2", Episodes: []tmdb.Episode{
				{Number: 1, Title: "Seven Thirty-Seven", Runtime: 47},
			}},
		},
	}

	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)
	meta.EXPECT().GetSeries(gomock.Any(), int64(1396), "DE").Return(series, nil)

	store := setupStore(t)
	o := NewOrchestrator(store, meta, discardLogger())

	outcomes := collect(o.Run(context.Background(), []int64{1396}, catalog.MediaTypeSeries, "DE"))
	require.Len(t, outcomes, 1)
	require.Equal(t, StatusImported, outcomes[0].Status)

	items, _, err := store.ListMedia(catalog.MediaFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, catalog.MediaTypeSeries, items[0].Type)
	require.NotNil(t, items[0].EndYear)
	assert.Equal(t, 2013, *items[0].EndYear)

	seasons, err := store.SeasonsForMedia(items[0].ID)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Len(t, seasons[0].Episodes, 2)
	assert.Equal(t, "Pilot", seasons[0].Episodes[0].Title)
	assert.Len(t, seasons[1].Episodes, 1)
}

func TestOrchestrator_ContextCancelStopsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadata(ctrl)
	meta.EXPECT().GetMovie(gomock.Any(), int64(603), "DE").Return(testMovie(603, "The Matrix"), nil)
	// The producer may already be working on the next ID when the cancel
	// lands, so later fetches are allowed but not required.
	meta.EXPECT().GetMovie(gomock.Any(), gomock.Any(), "DE").Return(nil, tmdb.ErrNotFound).AnyTimes()

	store := setupStore(t)
	o := NewOrchestrator(store, meta, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	ch := o.Run(ctx, []int64{603, 550, 680}, catalog.MediaTypeMovie, "DE")

	first := <-ch
	assert.Equal(t, StatusImported, first.Status)
	cancel()

	// The producer must notice the cancel and close the channel.
	for range ch {
	}
}

func TestCollect(t *testing.T) {
	ch := make(chan Outcome, 4)
	ch <- Outcome{Status: StatusImported}
	ch <- Outcome{Status: StatusImported}
	ch <- Outcome{Status: StatusSkipped}
	ch <- Outcome{Status: StatusNotFound}
	close(ch)

	s := Collect(ch)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Imported)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.NotFound)
	assert.Equal(t, "multi-import completed (2 successful)", s.Message())
}

func TestSyncGenres_CollapsesCase(t *testing.T) {
	store := setupStore(t)

	item := &catalog.MediaItem{Type: catalog.MediaTypeMovie, Title: "Test", Year: 2020}
	require.NoError(t, store.AddMedia(item))

	require.NoError(t, SyncGenres(store, item.ID, []string{"Action", "action", "ACTION", "Drama"}))

	genres, err := store.GenresForMedia(item.ID)
	require.NoError(t, err)
	require.Len(t, genres, 2, "case variants collapse to one genre")

	all, err := store.ListGenres()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
