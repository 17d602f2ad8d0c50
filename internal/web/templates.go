package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmplFuncs = template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
	"intp": func(p *int) any {
		if p == nil {
			return ""
		}
		return *p
	},
	"int64p": func(p *int64) any {
		if p == nil {
			return ""
		}
		return *p
	},
	"stars": func(rating float64) string {
		full := int(rating + 0.5)
		if full > 5 {
			full = 5
		}
		return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
	},
}

// pageTemplates maps page name to its template parsed together with the
// shared layout.
var pageTemplates = mustParsePages()

func mustParsePages() map[string]*template.Template {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		panic(fmt.Sprintf("read templates: %v", err))
	}

	pages := make(map[string]*template.Template)
	for _, e := range entries {
		name := e.Name()
		if name == "layout.html" {
			continue
		}
		t := template.New("layout.html").Funcs(tmplFuncs)
		t, err := t.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			panic(fmt.Sprintf("parse template %s: %v", name, err))
		}
		pages[name] = t
	}
	return pages
}

// render writes a page through the shared layout. The data map is extended
// with the session user and pending flash messages.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, data map[string]any) {
	t, ok := pageTemplates[page]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown template %q", page))
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	user, role, _ := s.currentUser(r)
	data["User"] = user
	data["Role"] = role
	data["Flashes"] = s.popFlashes(w, r)

	// Render to a buffer first so template failures become a clean 500
	// instead of a half-written page.
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
