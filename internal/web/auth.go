package web

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", map[string]any{})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	acct, ok := s.accounts[username]
	if ok {
		ok = bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) == nil
	}
	if !ok {
		s.log.Warn("login failed", "username", username)
		s.addFlash(w, r, "invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sess := s.session(r)
	sess.Values["user"] = acct.Username
	sess.Values["role"] = acct.Role
	if err := sess.Save(r, w); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.log.Info("login", "username", username, "role", acct.Role)
	http.Redirect(w, r, "/movies", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	delete(sess.Values, "user")
	delete(sess.Values, "role")
	_ = sess.Save(r, w)
	http.Redirect(w, r, "/movies", http.StatusSeeOther)
}

// requireUser redirects anonymous requests to the login page.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := s.currentUser(r); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireEditor admits both editors and admins.
func (s *Server) requireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := s.currentUser(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if role != "admin" && role != "editor" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireRole admits only the named role.
func (s *Server) requireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, have, ok := s.currentUser(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if have != role {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
