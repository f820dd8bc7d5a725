package server

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/images"
	"github.com/ziadkadry99/glossary/internal/search"
	"github.com/ziadkadry99/glossary/internal/site"
	"github.com/ziadkadry99/glossary/internal/view"
)

func (s *Server) registerRoutes(r chi.Router) {
	r.Get("/", s.index)
	r.Get("/subjects/{id}", s.subjectPage)
	r.Get("/subjects/{id}/cards/{card}", s.cardDetail)
	r.Get("/search", s.searchFragment)

	r.Route("/api", func(r chi.Router) {
		r.Get("/subjects", s.listSubjects)
		r.Get("/subjects/{id}", s.getSubject)
		r.Get("/search", s.searchAPI)
	})

	r.Get("/style.css", asset("text/css; charset=utf-8", site.StyleSheet))
	r.Get("/script.js", asset("text/javascript; charset=utf-8", site.Script))
	r.Get("/images/*", s.image)
	if ph := s.placeholderURL(); !strings.Contains(ph, "://") && !strings.HasPrefix(ph, "/images/") {
		r.Get(ph, s.placeholder)
	}
}

// subjectHref is the server URL of a subject page.
func subjectHref(id string) string {
	return "/subjects/" + url.PathEscape(id)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.Load(r.Context())
	page := view.NewPage(s.cfg.SiteTitle)
	if err != nil {
		log.Printf("loading glossary: %v", err)
		page.RenderLoadError()
		s.writePage(w, http.StatusServiceUnavailable, page, &glossary.Document{})
		return
	}

	id := s.cfg.DefaultSubject
	if id == "" {
		if d := doc.Default(); d != nil {
			id = d.ID
		}
	}
	if id == "" {
		page.SetPlaceholder("empty", view.EmptyMessage)
		s.writePage(w, http.StatusOK, page, doc)
		return
	}
	s.render(w, r, page, doc, id)
}

func (s *Server) subjectPage(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.Load(r.Context())
	page := view.NewPage(s.cfg.SiteTitle)
	if err != nil {
		log.Printf("loading glossary: %v", err)
		page.RenderLoadError()
		s.writePage(w, http.StatusServiceUnavailable, page, &glossary.Document{})
		return
	}
	s.render(w, r, page, doc, chi.URLParam(r, "id"))
}

// render paints the subject, waits for its image probes and writes the
// page. Unknown ids produce the not-found page with status 404.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page *view.Page, doc *glossary.Document, id string) {
	status := http.StatusOK
	if err := page.Render(doc, id, s.resolver); err != nil {
		if !errors.Is(err, glossary.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		status = http.StatusNotFound
	} else {
		<-page.ProbeImages(r.Context(), doc, s.resolver)
	}
	s.writePage(w, status, page, doc)
}

func (s *Server) writePage(w http.ResponseWriter, status int, page *view.Page, doc *glossary.Document) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	err := site.RenderShell(w, site.ShellData{
		Title:           page.Title(),
		MetaDescription: page.MetaDescription(),
		SiteTitle:       s.cfg.SiteTitle,
		BasePath:        "/",
		Nav:             template.HTML(view.HTML(view.RenderNav(doc, page.SubjectID(), subjectHref))),
		Content:         template.HTML(view.HTML(page.Snapshot())),
		SearchAPI:       "/api/search",
		Search:          s.searchSettings(),
	})
	if err != nil {
		log.Printf("writing page: %v", err)
	}
}

func (s *Server) searchSettings() site.SearchSettings {
	opts := s.cfg.Search
	settings := site.SearchSettings{
		MinQuery:   opts.MinQueryLength,
		MaxResults: opts.MaxResults,
		DebounceMS: s.cfg.DebounceMS,
	}
	if settings.MinQuery <= 0 {
		settings.MinQuery = search.DefaultMinQueryLength
	}
	if settings.MaxResults <= 0 {
		settings.MaxResults = search.DefaultMaxResults
	}
	if settings.DebounceMS <= 0 {
		settings.DebounceMS = int(search.DefaultDebounce.Milliseconds())
	}
	return settings
}

func (s *Server) cardDetail(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.Load(r.Context())
	if err != nil {
		http.Error(w, view.LoadErrorMessage, http.StatusServiceUnavailable)
		return
	}
	subject, err := doc.Subject(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	cardID := chi.URLParam(r, "card")
	for _, g := range subject.Groups {
		for _, c := range g.Cards {
			if c.ID != cardID {
				continue
			}
			s.resolver.Resolve(r.Context(), subject.ID, c)
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			view.Render(w, view.RenderCardDetail(subject.ID, c, s.resolver))
			return
		}
	}
	http.Error(w, (&glossary.NotFoundError{Kind: glossary.KindCard, ID: cardID}).Error(), http.StatusNotFound)
}

// subjectSummary is one entry of the subject list.
type subjectSummary struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Cards       int    `json:"cards"`
	Href        string `json:"href"`
}

func (s *Server) listSubjects(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.Load(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	out := make([]subjectSummary, 0, len(doc.Subjects))
	for i := range doc.Subjects {
		subj := &doc.Subjects[i]
		out = append(out, subjectSummary{
			ID:          subj.ID,
			Code:        subj.Code,
			Title:       subj.Title,
			Description: subj.Description,
			Cards:       subj.CardCount(),
			Href:        subjectHref(subj.ID),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSubject(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.Load(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	subject, err := doc.Subject(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

// searchResult is a match with the link the search box navigates to.
type searchResult struct {
	search.Match
	Href string `json:"href"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

func resultHref(m search.Match) string {
	href := subjectHref(m.SubjectID)
	switch m.Kind {
	case glossary.KindCard:
		href += "#" + view.CardDOMID(m.CardID)
	case glossary.KindGroup:
		href += "#" + view.GroupDOMID(m.GroupID)
	}
	return href
}

func (s *Server) searchAPI(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	doc, err := s.loader.Load(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}

	matches := search.Search(query, doc, s.cfg.Search)
	resp := searchResponse{Query: query, Results: make([]searchResult, 0, len(matches))}
	for _, m := range matches {
		resp.Results = append(resp.Results, searchResult{Match: m, Href: resultHref(m)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// searchFragment returns the autocomplete list as HTML. The optional
// active parameter marks the highlighted entry.
func (s *Server) searchFragment(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.Load(r.Context())
	if err != nil {
		http.Error(w, view.LoadErrorMessage, http.StatusServiceUnavailable)
		return
	}
	active := -1
	if v := r.URL.Query().Get("active"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			active = n
		}
	}
	matches := search.Search(r.URL.Query().Get("q"), doc, s.cfg.Search)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view.Render(w, view.RenderResults(matches, active))
}

// image serves card images from ImageDir. The placeholder is served when
// the folder does not provide it.
func (s *Server) image(w http.ResponseWriter, r *http.Request) {
	rel := path.Clean("/" + chi.URLParam(r, "*"))
	if s.cfg.ImageDir != "" {
		file := filepath.Join(s.cfg.ImageDir, filepath.FromSlash(rel))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			http.ServeFile(w, r, file)
			return
		}
	}
	if "/images"+rel == s.placeholderURL() {
		s.placeholder(w, r)
		return
	}
	http.NotFound(w, r)
}

// placeholder serves the configured placeholder image, read relative to the
// working directory, and falls back to the built-in SVG.
func (s *Server) placeholder(w http.ResponseWriter, r *http.Request) {
	if p := s.cfg.Placeholder; p != "" && p != images.DefaultPlaceholder {
		file := filepath.FromSlash(strings.TrimPrefix(p, "/"))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			http.ServeFile(w, r, file)
			return
		}
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(site.PlaceholderSVG))
}

func asset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

