// Package web serves the server-rendered catalog UI and the admin area.
package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"streamdex/internal/catalog"
	"streamdex/internal/importing"
	"streamdex/internal/posters"
)

// Account is a login for the catalog. Role is "admin" or "editor";
// both may use the admin area, only admins may delete.
type Account struct {
	Username     string
	PasswordHash string // bcrypt
	Role         string
}

// Options carries the non-service configuration of the web server.
type Options struct {
	Region        string // TMDB availability region
	SessionSecret string
	Accounts      []Account
	PageSize      int // listing page size, defaults to 24
}

// Server holds the handlers for the catalog UI.
type Server struct {
	store    *catalog.Store
	resolver *importing.Resolver
	importer *importing.Orchestrator
	posters  *posters.Store
	sessions *sessions.CookieStore
	accounts map[string]Account
	region   string
	pageSize int
	log      *slog.Logger
}

// New creates the web server. The resolver and importer drive the admin
// bulk-import pipeline; posterStore receives poster uploads.
func New(store *catalog.Store, resolver *importing.Resolver, importer *importing.Orchestrator, posterStore *posters.Store, opts Options, log *slog.Logger) *Server {
	cookieStore := sessions.NewCookieStore([]byte(opts.SessionSecret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	accounts := make(map[string]Account, len(opts.Accounts))
	for _, a := range opts.Accounts {
		accounts[a.Username] = a
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 24
	}

	return &Server{
		store:    store,
		resolver: resolver,
		importer: importer,
		posters:  posterStore,
		sessions: cookieStore,
		accounts: accounts,
		region:   opts.Region,
		pageSize: pageSize,
		log:      log.With("component", "web"),
	}
}

// RegisterRoutes registers all UI routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Public catalog
	mux.HandleFunc("GET /{$}", s.home)
	mux.HandleFunc("GET /movies", s.listMovies)
	mux.HandleFunc("GET /series", s.listSeries)
	mux.HandleFunc("GET /media/{id}", s.mediaDetail)

	// Login
	mux.HandleFunc("GET /login", s.loginForm)
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("POST /logout", s.logout)

	// Per-user features
	mux.Handle("POST /media/{id}/rating", s.requireUser(http.HandlerFunc(s.rateMedia)))
	mux.Handle("POST /media/{id}/watchlist", s.requireUser(http.HandlerFunc(s.toggleWatchlist)))
	mux.Handle("GET /watchlist", s.requireUser(http.HandlerFunc(s.watchlist)))

	// Admin area (editors may manage content, only admins may delete)
	mux.Handle("GET /admin", s.requireEditor(http.HandlerFunc(s.adminIndex)))
	mux.Handle("GET /admin/media/new", s.requireEditor(http.HandlerFunc(s.adminNewForm)))
	mux.Handle("POST /admin/media", s.requireEditor(http.HandlerFunc(s.adminCreate)))
	mux.Handle("GET /admin/media/{id}/edit", s.requireEditor(http.HandlerFunc(s.adminEditForm)))
	mux.Handle("POST /admin/media/{id}", s.requireEditor(http.HandlerFunc(s.adminUpdate)))
	mux.Handle("POST /admin/media/{id}/delete", s.requireRole("admin", http.HandlerFunc(s.adminDelete)))

	// Bulk import
	mux.Handle("GET /admin/import", s.requireEditor(http.HandlerFunc(s.importForm)))
	mux.Handle("POST /admin/import", s.requireEditor(http.HandlerFunc(s.importSubmit)))
	mux.Handle("POST /admin/import/ajax", s.requireEditor(http.HandlerFunc(s.importAjax)))

	// Uploaded posters
	if s.posters != nil {
		mux.Handle("GET /static/posters/", http.StripPrefix("/static/posters/",
			http.FileServer(http.Dir(s.posters.Dir()))))
	}
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/movies", http.StatusSeeOther)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("handler failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
