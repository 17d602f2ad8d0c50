package web

import (
	"errors"
	"net/http"
	"strconv"

	"streamdex/internal/catalog"
)

// listingPage is the data shape shared by the movie and series listings.
type listingPage struct {
	Title     string
	BasePath  string
	Items     []*catalog.MediaItem
	Genres    []*catalog.Genre
	Total     int
	Page      int
	PageCount int
	Filter    listingFilter
}

// listingFilter echoes the raw form values back into the filter bar.
type listingFilter struct {
	Genre     string
	Service   string
	MinRating string
	Query     string
	YearFrom  string
	YearTo    string
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	s.listing(w, r, catalog.MediaTypeMovie, "Movies", "/movies")
}

func (s *Server) listSeries(w http.ResponseWriter, r *http.Request) {
	s.listing(w, r, catalog.MediaTypeSeries, "Series", "/series")
}

// listing renders a filtered, paged media listing. The active query string
// is remembered in the session per media type, so navigating back to the
// listing restores the previous view.
func (s *Server) listing(w http.ResponseWriter, r *http.Request, typ catalog.MediaType, title, basePath string) {
	if r.URL.RawQuery == "" {
		if saved := s.savedFilters(r, string(typ)); saved != "" {
			http.Redirect(w, r, basePath+"?"+saved, http.StatusSeeOther)
			return
		}
	} else {
		s.saveFilters(w, r, string(typ), r.URL.RawQuery)
	}

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}

	filter := catalog.MediaFilter{
		Type:      &typ,
		Genre:     queryString(r, "genre"),
		Service:   queryString(r, "service"),
		Query:     queryString(r, "q"),
		YearFrom:  queryIntPtr(r, "year_from"),
		YearTo:    queryIntPtr(r, "year_to"),
		MinRating: queryFloatPtr(r, "min_rating"),
		Limit:     s.pageSize,
		Offset:    (page - 1) * s.pageSize,
	}

	items, total, err := s.store.ListMedia(filter)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	genres, err := s.store.ListGenres()
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	pageCount := (total + s.pageSize - 1) / s.pageSize
	if pageCount < 1 {
		pageCount = 1
	}

	s.render(w, r, "listing.html", map[string]any{
		"PrevPage": page - 1,
		"NextPage": page + 1,
		"Page": listingPage{
			Title:     title,
			BasePath:  basePath,
			Items:     items,
			Genres:    genres,
			Total:     total,
			Page:      page,
			PageCount: pageCount,
			Filter: listingFilter{
				Genre:     r.URL.Query().Get("genre"),
				Service:   r.URL.Query().Get("service"),
				MinRating: r.URL.Query().Get("min_rating"),
				Query:     r.URL.Query().Get("q"),
				YearFrom:  r.URL.Query().Get("year_from"),
				YearTo:    r.URL.Query().Get("year_to"),
			},
		},
	})
}

func (s *Server) mediaDetail(w http.ResponseWriter, r *http.Request) {
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

	data := map[string]any{
		"Item":   item,
		"Genres": genres,
	}

	if item.Type == catalog.MediaTypeSeries {
		seasons, err := s.store.SeasonsForMedia(id)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		data["Seasons"] = seasons
	}

	if user, _, ok := s.currentUser(r); ok {
		score, err := s.store.UserRating(id, user)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		onList, err := s.store.OnWatchlist(id, user)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		data["UserRating"] = score
		data["OnWatchlist"] = onList
	}

	s.render(w, r, "detail.html", data)
}

func (s *Server) rateMedia(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	user, _, _ := s.currentUser(r)

	score, err := strconv.Atoi(r.FormValue("score"))
	if err != nil {
		http.Error(w, "invalid score", http.StatusBadRequest)
		return
	}

	switch err := s.store.SetRating(id, user, score); {
	case errors.Is(err, catalog.ErrConstraint):
		http.Error(w, "score must be between 1 and 5", http.StatusBadRequest)
		return
	case errors.Is(err, catalog.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/media/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (s *Server) toggleWatchlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	user, _, _ := s.currentUser(r)

	if _, err := s.store.ToggleWatchlist(id, user); err != nil {
		if errors.Is(err, catalog.ErrConstraint) || errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/media/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (s *Server) watchlist(w http.ResponseWriter, r *http.Request) {
	user, _, _ := s.currentUser(r)

	items, err := s.store.Watchlist(user)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, "watchlist.html", map[string]any{"Items": items})
}

// Query and path helpers.

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func queryString(r *http.Request, name string) *string {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	return &val
}

func queryIntPtr(r *http.Request, name string) *int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &i
}

func queryFloatPtr(r *http.Request, name string) *float64 {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &f
}
