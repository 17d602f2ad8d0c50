package web

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"streamdex/internal/catalog"
	"streamdex/internal/importing"
)

const maxUploadSize = 10 << 20 // posters

func (s *Server) adminIndex(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}

	filter := catalog.MediaFilter{
		Query:  queryString(r, "q"),
		Limit:  s.pageSize,
		Offset: (page - 1) * s.pageSize,
	}
	if typ, ok := catalog.ParseMediaType(r.URL.Query().Get("type")); ok {
		filter.Type = &typ
	}

	items, total, err := s.store.ListMedia(filter)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	pageCount := (total + s.pageSize - 1) / s.pageSize
	if pageCount < 1 {
		pageCount = 1
	}

	s.render(w, r, "admin_index.html", map[string]any{
		"Items":     items,
		"Total":     total,
		"Page":      page,
		"PageCount": pageCount,
		"Query":     r.URL.Query().Get("q"),
		"Type":      r.URL.Query().Get("type"),
	})
}

func (s *Server) adminNewForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "admin_edit.html", map[string]any{
		"Item":        &catalog.MediaItem{Type: catalog.MediaTypeMovie},
		"IsNew":       true,
		"Action":      "/admin/media",
		"Genres":      "",
		"SeasonsText": "",
	})
}

func (s *Server) adminEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := s.store.GetMedia(id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	genres, err := s.store.GenresForMedia(id)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}

	data := map[string]any{
		"Item":        item,
		"IsNew":       false,
		"Action":      fmt.Sprintf("/admin/media/%d", id),
		"Genres":      strings.Join(names, ", "),
		"SeasonsText": "",
	}

	if item.Type == catalog.MediaTypeSeries {
		seasons, err := s.store.SeasonsForMedia(id)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		data["SeasonsText"] = formatSeasonsText(seasons)
	}

	s.render(w, r, "admin_edit.html", data)
}

func (s *Server) adminCreate(w http.ResponseWriter, r *http.Request) {
	item := &catalog.MediaItem{}
	if err := s.applyMediaForm(r, item); err != nil {
		s.addFlash(w, r, err.Error())
		http.Redirect(w, r, "/admin/media/new", http.StatusSeeOther)
		return
	}

	if err := s.store.AddMedia(item); err != nil {
		if errors.Is(err, catalog.ErrDuplicate) {
			s.addFlash(w, r, "an item with this TMDB ID already exists")
			http.Redirect(w, r, "/admin/media/new", http.StatusSeeOther)
			return
		}
		s.serverError(w, r, err)
		return
	}

	if err := s.applyMediaRelations(r, item); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.log.Info("media created", "id", item.ID, "title", item.Title, "type", item.Type)
	s.addFlash(w, r, fmt.Sprintf("%q created", item.Title))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) adminUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := s.store.GetMedia(id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	if err := s.applyMediaForm(r, item); err != nil {
		s.addFlash(w, r, err.Error())
		http.Redirect(w, r, fmt.Sprintf("/admin/media/%d/edit", id), http.StatusSeeOther)
		return
	}

	if err := s.store.UpdateMedia(item); err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := s.applyMediaRelations(r, item); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.log.Info("media updated", "id", item.ID, "title", item.Title)
	s.addFlash(w, r, fmt.Sprintf("%q updated", item.Title))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) adminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch err := s.store.DeleteMedia(id); {
	case errors.Is(err, catalog.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}

	s.log.Info("media deleted", "id", id)
	s.addFlash(w, r, "item deleted")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// applyMediaForm fills the scalar item fields from the admin form. This is
// the same shape the import mapper produces, so hand-entered and imported
// items are indistinguishable in storage.
func (s *Server) applyMediaForm(r *http.Request, item *catalog.MediaItem) error {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return fmt.Errorf("parse form: %w", err)
	}

	typ, ok := catalog.ParseMediaType(r.FormValue("type"))
	if !ok {
		return fmt.Errorf("invalid media type %q", r.FormValue("type"))
	}
	item.Type = typ

	item.Title = strings.TrimSpace(r.FormValue("title"))
	if item.Title == "" {
		return errors.New("title is required")
	}
	item.OriginalTitle = strings.TrimSpace(r.FormValue("original_title"))
	item.Description = strings.TrimSpace(r.FormValue("description"))
	item.Director = strings.TrimSpace(r.FormValue("director"))
	item.Cast = splitCommaList(r.FormValue("cast"))
	item.Services = splitCommaList(r.FormValue("services"))
	item.TrailerURL = strings.TrimSpace(r.FormValue("trailer_url"))

	item.Year, _ = strconv.Atoi(r.FormValue("year"))
	item.DurationMinutes, _ = strconv.Atoi(r.FormValue("duration_minutes"))

	item.EndYear = nil
	if end, err := strconv.Atoi(r.FormValue("end_year")); err == nil && end > 0 {
		item.EndYear = &end
	}
	item.TMDBID = nil
	if tmdbID, err := strconv.ParseInt(r.FormValue("tmdb_id"), 10, 64); err == nil && tmdbID > 0 {
		item.TMDBID = &tmdbID
	}

	// Poster upload is optional; an existing poster stays untouched.
	file, header, err := r.FormFile("poster")
	if err == nil {
		defer func() { _ = file.Close() }()
		path, err := s.posters.Save(header.Filename, file)
		if err != nil {
			return fmt.Errorf("save poster: %w", err)
		}
		item.PosterFile = path
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return fmt.Errorf("poster upload: %w", err)
	}

	return nil
}

// applyMediaRelations syncs genres and, for series, the season/episode
// breakdown from the form.
func (s *Server) applyMediaRelations(r *http.Request, item *catalog.MediaItem) error {
	if err := importing.SyncGenres(s.store, item.ID, splitCommaList(r.FormValue("genres"))); err != nil {
		return err
	}

	if item.Type != catalog.MediaTypeSeries {
		return nil
	}

	seasons, err := parseSeasonsText(r.FormValue("seasons"))
	if err != nil {
		return err
	}

	// Replace the whole breakdown; episode cascade handles the rest.
	if err := s.store.DeleteSeasonsForMedia(item.ID); err != nil {
		return err
	}
	for _, se := range seasons {
		se.MediaID = item.ID
		if err := s.store.AddSeason(se); err != nil {
			return fmt.Errorf("season %d: %w", se.SeasonNumber, err)
		}
		for _, ep := range se.Episodes {
			ep.SeasonID = se.ID
			if err := s.store.AddEpisode(ep); err != nil {
				return fmt.Errorf("episode S%02dE%02d: %w", se.SeasonNumber, ep.EpisodeNumber, err)
			}
		}
	}
	return nil
}

var seasonLine = regexp.MustCompile(`^[Ss]eason\s+(\d+)\s*:?\s*(.*)$`)

// parseSeasonsText reads the season textarea. A line "Season N: title"
// starts a season, following lines beginning with "-" add its episodes in
// order. Blank lines are ignored.
func parseSeasonsText(text string) ([]*catalog.Season, error) {
	var seasons []*catalog.Season
	var current *catalog.Season

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := seasonLine.FindStringSubmatch(line); m != nil {
			number, _ := strconv.Atoi(m[1])
			current = &catalog.Season{SeasonNumber: number, Title: strings.TrimSpace(m[2])}
			seasons = append(seasons, current)
			continue
		}

		if strings.HasPrefix(line, "-") {
			if current == nil {
				return nil, fmt.Errorf("episode %q listed before any season", line)
			}
			current.Episodes = append(current.Episodes, &catalog.Episode{
				EpisodeNumber: len(current.Episodes) + 1,
				Title:         strings.TrimSpace(strings.TrimPrefix(line, "-")),
			})
			continue
		}

		return nil, fmt.Errorf("unrecognized season line %q", line)
	}
	return seasons, nil
}

// formatSeasonsText renders the stored breakdown back into the textarea
// format parseSeasonsText accepts.
func formatSeasonsText(seasons []*catalog.Season) string {
	var b strings.Builder
	for _, se := range seasons {
		fmt.Fprintf(&b, "Season %d", se.SeasonNumber)
		if se.Title != "" {
			b.WriteString(": " + se.Title)
		}
		b.WriteString("\n")
		for _, ep := range se.Episodes {
			b.WriteString("- " + ep.Title + "\n")
		}
	}
	return b.String()
}

func splitCommaList(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
