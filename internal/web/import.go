package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"streamdex/internal/catalog"
	"streamdex/internal/importing"
)

const noCandidatesMessage = "no valid TMDB IDs or titles found"

// importForm renders the bulk-import page.
func (s *Server) importForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "admin_import.html", map[string]any{
		"Region": s.region,
	})
}

// importRequest builds an importing.Request from the submitted form. The
// CSV upload is optional; region falls back to the configured default.
func (s *Server) importRequest(r *http.Request) (importing.Request, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return importing.Request{}, fmt.Errorf("parse form: %w", err)
	}

	typ, ok := catalog.ParseMediaType(r.FormValue("type"))
	if !ok {
		return importing.Request{}, fmt.Errorf("invalid media type %q", r.FormValue("type"))
	}

	req := importing.Request{
		Type:   typ,
		RawIDs: r.FormValue("tmdb_ids"),
		Titles: r.FormValue("titles"),
		UseTop: r.FormValue("use_top") != "",
		Region: r.FormValue("region"),
	}
	if req.Region == "" {
		req.Region = s.region
	}

	if file, _, err := r.FormFile("csv"); err == nil {
		req.CSV = file
	}

	return req, nil
}

// importSubmit runs the whole import and redirects to /admin with a
// summary flash message.
func (s *Server) importSubmit(w http.ResponseWriter, r *http.Request) {
	req, err := s.importRequest(r)
	if err != nil {
		s.addFlash(w, r, err.Error())
		http.Redirect(w, r, "/admin/import", http.StatusSeeOther)
		return
	}
	if c, ok := req.CSV.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	ids, err := s.resolver.Resolve(r.Context(), req)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if len(ids) == 0 {
		s.addFlash(w, r, noCandidatesMessage)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	summary := importing.Collect(s.importer.Run(r.Context(), ids, req.Type, req.Region))
	if summary.Imported == 0 {
		s.addFlash(w, r, noCandidatesMessage)
	} else {
		s.addFlash(w, r, summary.Message())
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// importAjax streams import progress as plain text. The body carries one
// "PROGRESS:<imported>/<total>" line per successfully imported item and
// nothing else; clients poll the line count for a progress bar.
func (s *Server) importAjax(w http.ResponseWriter, r *http.Request) {
	req, err := s.importRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if c, ok := req.CSV.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	ids, err := s.resolver.Resolve(r.Context(), req)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if len(ids) == 0 {
		http.Error(w, noCandidatesMessage, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	flusher, _ := w.(http.Flusher)

	for outcome := range s.importer.Run(r.Context(), ids, req.Type, req.Region) {
		if outcome.Status != importing.StatusImported {
			continue
		}
		fmt.Fprintf(w, "PROGRESS:%d/%d\n", outcome.Imported, outcome.Total)
		if flusher != nil {
			flusher.Flush()
		}
	}
}
