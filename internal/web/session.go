package web

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "streamdex-session"

func (s *Server) session(r *http.Request) *sessions.Session {
	// Get never fails for cookie stores beyond returning a fresh session.
	sess, _ := s.sessions.Get(r, sessionName)
	return sess
}

// currentUser returns the logged-in username and role, or ok=false.
func (s *Server) currentUser(r *http.Request) (user, role string, ok bool) {
	sess := s.session(r)
	user, uok := sess.Values["user"].(string)
	role, rok := sess.Values["role"].(string)
	if !uok || !rok || user == "" {
		return "", "", false
	}
	return user, role, true
}

// addFlash queues a one-shot message shown on the next rendered page.
func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sess := s.session(r)
	sess.AddFlash(msg)
	_ = sess.Save(r, w)
}

// popFlashes drains queued flash messages.
func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	sess := s.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// saveFilters remembers the listing filter query string per media type, so
// returning to a listing restores the last view.
func (s *Server) saveFilters(w http.ResponseWriter, r *http.Request, key, query string) {
	sess := s.session(r)
	sess.Values["filters_"+key] = query
	_ = sess.Save(r, w)
}

func (s *Server) savedFilters(r *http.Request, key string) string {
	sess := s.session(r)
	query, _ := sess.Values["filters_"+key].(string)
	return query
}
