package web

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamdex/internal/catalog"
)

func TestAdminCreate_Movie(t *testing.T) {
	app := newTestApp(t, nil)
	c := app.client(t)
	app.login(t, c, "editor", "editpass")

	resp, body := app.postForm(t, c, "/admin/media", url.Values{
		"type":             {"movie"},
		"title":            {"Heat"},
		"original_title":   {"Heat"},
		"description":      {"A heist crew and a detective."},
		"director":         {"Michael Mann"},
		"cast":             {"Al Pacino, Robert De Niro"},
		"genres":           {"Crime, Thriller"},
		"services":         {"Netflix"},
		"year":             {"1995"},
		"duration_minutes": {"170"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "created")

	items, total, err := app.store.ListMedia(catalog.MediaFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)

	item := items[0]
	assert.Equal(t, "Heat", item.Title)
	assert.Equal(t, []string{"Al Pacino", "Robert De Niro"}, item.Cast)
	assert.Equal(t, 1995, item.Year)

	genres, err := app.store.GenresForMedia(item.ID)
	require.NoError(t, err)
	assert.Len(t, genres, 2)
}

func TestAdminCreate_SeriesWithSeasons(t *testing.T) {
	app := newTestApp(t, nil)
	c := app.client(t)
	app.login(t, c, "editor", "editpass")

	resp, _ := app.postForm(t, c, "/admin/media", url.Values{
		"type":    {"series"},
		"title":   {"Breaking Bad"},
		"year":    {"2008"},
		"seasons": {"Season 1: The Beginning\n- Pilot\n- Cat's in the Bag...\nSeason 2\n- Seven Thirty-Seven"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items, _, err := app.store.ListMedia(catalog.MediaFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	seasons, err := app.store.SeasonsForMedia(items[0].ID)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, "The Beginning", seasons[0].Title)
	require.Len(t, seasons[0].Episodes, 2)
	assert.Equal(t, "Pilot", seasons[0].Episodes[0].Title)
	assert.Equal(t, 1, seasons[0].Episodes[0].EpisodeNumber)
	assert.Len(t, seasons[1].Episodes, 1)
}

func TestAdminCreate_MissingTitle(t *testing.T) {
	app := newTestApp(t, nil)
	c := app.client(t)
	app.login(t, c, "editor", "editpass")

	resp, body := app.postForm(t, c, "/admin/media", url.Values{
		"type": {"movie"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "title is required")

	_, total, err := app.store.ListMedia(catalog.MediaFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAdminUpdate(t *testing.T) {
	app := newTestApp(t, nil)
	item := app.addMovie(t, "Heat", 1995)

	c := app.client(t)
	app.login(t, c, "editor", "editpass")

	resp, _ := app.postForm(t, c, fmt.Sprintf("/admin/media/%d", item.ID), url.Values{
		"type":   {"movie"},
		"title":  {"Heat (Director's Cut)"},
		"year":   {"1995"},
		"genres": {"Crime"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := app.store.GetMedia(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat (Director's Cut)", got.Title)
}

func TestAdminDelete_AdminAllowed(t *testing.T) {
	app := newTestApp(t, nil)
	item := app.addMovie(t, "Heat", 1995)

	c := app.client(t)
	app.login(t, c, "admin", "adminpass")

	resp, _ := app.postForm(t, c, fmt.Sprintf("/admin/media/%d/delete", item.ID), url.Values{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err := app.store.GetMedia(item.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestAdminDelete_MissingItem(t *testing.T) {
	app := newTestApp(t, nil)

	c := app.client(t)
	app.login(t, c, "admin", "adminpass")

	resp, _ := app.postForm(t, c, "/admin/media/9999/delete", url.Values{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestParseSeasonsText(t *testing.T) {
	seasons, err := parseSeasonsText("Season 1: Opening\n- Pilot\n\nSeason 2\n- First\n- Second")
	require.NoError(t, err)
	require.Len(t, seasons, 2)

	assert.Equal(t, 1, seasons[0].SeasonNumber)
	assert.Equal(t, "Opening", seasons[0].Title)
	require.Len(t, seasons[0].Episodes, 1)

	assert.Equal(t, 2, seasons[1].SeasonNumber)
	assert.Empty(t, seasons[1].Title)
	require.Len(t, seasons[1].Episodes, 2)
	assert.Equal(t, 2, seasons[1].Episodes[1].EpisodeNumber)
}

func TestParseSeasonsText_Errors(t *testing.T) {
	_, err := parseSeasonsText("- Orphan episode")
	assert.Error(t, err)

	_, err = parseSeasonsText("garbage line")
	assert.Error(t, err)
}

func TestFormatSeasonsText_RoundTrip(t *testing.T) {
	text := "Season 1: Opening\n- Pilot\nSeason 2\n- First\n"

	seasons, err := parseSeasonsText(text)
	require.NoError(t, err)
	assert.Equal(t, text, formatSeasonsText(seasons))
}
