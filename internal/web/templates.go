package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageSet map[string]*template.Template

var pageNames = []string{
	"home", "live", "match",
	"predict_reg", "predict_list", "predict",
	"leaderboard", "upcoming", "about",
}

var pageFuncs = template.FuncMap{
	"add1": func(i int) int { return i + 1 },
}

// parsePages builds one template set per page, each sharing the base
// layout so pages can define their own title and content blocks.
func parsePages() (pageSet, error) {
	pages := make(pageSet, len(pageNames))
	for _, name := range pageNames {
		tpl, err := template.New(name).Funcs(pageFuncs).ParseFS(templateFS,
			"templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = tpl
	}
	return pages, nil
}

func (s *Server) render(w http.ResponseWriter, page string, data interface{}) {
	tpl, ok := s.pages[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.ExecuteTemplate(w, "base", data); err != nil {
		s.logger.Error("Failed to render ", page, ": ", err)
	}
}
