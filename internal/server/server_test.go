package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/view"
)

type staticLoader struct {
	doc *glossary.Document
	err error
}

func (l staticLoader) Load(context.Context) (*glossary.Document, error) {
	return l.doc, l.err
}

func testDoc() *glossary.Document {
	return &glossary.Document{Subjects: []glossary.Subject{
		{
			ID: "S1", Code: "101", Title: "Intro", Description: "Basic words.",
			Groups: []glossary.Group{{
				ID: "G1", Title: "Greetings",
				Cards: []glossary.Card{
					{ID: "c1", ES: "hola", EN: "hello", DefES: "saludo", DefEN: "greeting", Img: "c1.png"},
					{ID: "c2", ES: "adiós", EN: "goodbye"},
				},
			}},
		},
		{
			ID: "S2", Code: "202", Title: "Numbers",
			Groups: []glossary.Group{{ID: "G2", Title: "Small", Cards: []glossary.Card{{ID: "c3", ES: "uno", EN: "one"}}}},
		},
	}}
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.SiteTitle == "" {
		cfg.SiteTitle = "Glosario"
	}
	return New(cfg, staticLoader{doc: testDoc()})
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func dom(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	return d
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Config{Port: 0})

	w := get(t, srv, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{Port: 0, AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestIndexRendersDefaultSubject(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	d := dom(t, w)
	if got := d.Find("title").Text(); got != "101 Intro · Glosario" {
		t.Errorf("title = %q", got)
	}
	if got := d.Find("main#content article.card").Length(); got != 2 {
		t.Errorf("cards = %d, want 2", got)
	}
	if v, _ := d.Find("body").Attr("data-search-api"); v != "/api/search" {
		t.Errorf("data-search-api = %q", v)
	}
	if href, _ := d.Find(".subject-nav a").Eq(1).Attr("href"); href != "/subjects/S2" {
		t.Errorf("nav href = %q", href)
	}
}

func TestSubjectPageNotFound(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/subjects/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	d := dom(t, w)
	if got := strings.TrimSpace(d.Find(".placeholder-not-found").Text()); got != view.NotFoundMessage {
		t.Errorf("placeholder = %q", got)
	}
	if d.Find(".subject-nav a.active").Length() != 0 {
		t.Error("no subject should be active on the not-found page")
	}
}

func TestLoadErrorPage(t *testing.T) {
	loadErr := &glossary.LoadError{Source: "x.json", Err: os.ErrNotExist}
	srv := New(Config{SiteTitle: "Glosario"}, staticLoader{err: loadErr})

	w := get(t, srv, "/subjects/S1")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if got := strings.TrimSpace(dom(t, w).Find(".placeholder-error").Text()); got != view.LoadErrorMessage {
		t.Errorf("placeholder = %q", got)
	}

	w = get(t, srv, "/api/search?q=hola")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("search status = %d, want 503", w.Code)
	}
}

func TestImagesResolvedBeforeWrite(t *testing.T) {
	imgDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(imgDir, "S1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(imgDir, "S1", "c1.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := newTestServer(t, Config{ImageDir: imgDir, ImageExt: "png"})

	srcs := map[string]string{}
	dom(t, get(t, srv, "/subjects/S1")).Find("article.card").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-card")
		srcs[id], _ = s.Find("img.card-image").Attr("src")
	})
	if srcs["c1"] != "/images/S1/c1.png" {
		t.Errorf("c1 src = %q", srcs["c1"])
	}
	if srcs["c2"] != "/images/placeholder.svg" {
		t.Errorf("c2 src = %q, want placeholder", srcs["c2"])
	}

	if w := get(t, srv, "/images/S1/c1.png"); w.Code != http.StatusOK || w.Body.String() != "png" {
		t.Errorf("image: %d %q", w.Code, w.Body.String())
	}
	w := get(t, srv, "/images/placeholder.svg")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<svg") {
		t.Errorf("placeholder: %d", w.Code)
	}
	if w := get(t, srv, "/images/S1/missing.png"); w.Code != http.StatusNotFound {
		t.Errorf("missing image status = %d, want 404", w.Code)
	}
}

func TestCustomPlaceholderServed(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "assets", "ph.svg"), []byte("<svg>custom</svg>"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(root)

	srv := newTestServer(t, Config{ImageDir: t.TempDir(), ImageExt: "png", Placeholder: "assets/ph.svg"})
	src, _ := dom(t, get(t, srv, "/subjects/S1")).Find(`article.card[data-card="c2"] img.card-image`).Attr("src")
	if src != "/assets/ph.svg" {
		t.Fatalf("c2 src = %q, want /assets/ph.svg", src)
	}
	if w := get(t, srv, src); w.Code != http.StatusOK || w.Body.String() != "<svg>custom</svg>" {
		t.Errorf("custom placeholder: %d %q", w.Code, w.Body.String())
	}

	// Without the file on disk the built-in image stands in.
	srv = newTestServer(t, Config{ImageExt: "png", Placeholder: "images/blank.svg"})
	w := get(t, srv, "/images/blank.svg")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<svg") {
		t.Errorf("fallback placeholder: %d", w.Code)
	}
}

func TestSearchAPI(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/api/search?q=HOL")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Query   string `json:"query"`
		Results []struct {
			Kind   string `json:"kind"`
			Text   string `json:"text"`
			CardID string `json:"card_id"`
			Href   string `json:"href"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	r := resp.Results[0]
	if r.Kind != "card" || r.Text != "hola" || r.Href != "/subjects/S1#card-c1" {
		t.Errorf("result = %+v", r)
	}

	w = get(t, srv, "/api/search?q=h")
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("short query returned %d results", len(resp.Results))
	}
}

func TestSearchFragment(t *testing.T) {
	srv := newTestServer(t, Config{})

	d := dom(t, get(t, srv, "/search?q=o&active=0"))
	if d.Find("li.result").Length() != 0 {
		t.Error("single-rune query should not match")
	}

	d = dom(t, get(t, srv, "/search?q=on&active=0"))
	items := d.Find("ul.autocomplete li.result")
	if items.Length() == 0 {
		t.Fatal("expected results for 'on'")
	}
	if v, _ := items.First().Attr("aria-selected"); v != "true" {
		t.Errorf("first item aria-selected = %q", v)
	}
}

func TestSubjectAPI(t *testing.T) {
	srv := newTestServer(t, Config{})

	var list []subjectSummary
	if err := json.Unmarshal(get(t, srv, "/api/subjects").Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 2 || list[0].Cards != 2 || list[1].ID != "S2" {
		t.Errorf("subjects = %+v", list)
	}

	w := get(t, srv, "/api/subjects/S2")
	var subj glossary.Subject
	if err := json.Unmarshal(w.Body.Bytes(), &subj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if subj.Title != "Numbers" {
		t.Errorf("title = %q", subj.Title)
	}

	if w := get(t, srv, "/api/subjects/none"); w.Code != http.StatusNotFound {
		t.Errorf("unknown subject status = %d", w.Code)
	}
}

func TestCardDetail(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/subjects/S1/cards/c1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	d := dom(t, w)
	if got := d.Find(".modal-title").Text(); got != "hola / hello" {
		t.Errorf("modal title = %q", got)
	}
	if d.Find(`button[data-action="close"]`).Length() != 1 {
		t.Error("missing close control")
	}

	// Cards only resolve within their own subject.
	if w := get(t, srv, "/subjects/S2/cards/c1"); w.Code != http.StatusNotFound {
		t.Errorf("foreign card status = %d, want 404", w.Code)
	}
}

func TestAssets(t *testing.T) {
	srv := newTestServer(t, Config{})

	if w := get(t, srv, "/script.js"); !strings.Contains(w.Header().Get("Content-Type"), "javascript") {
		t.Errorf("script content type = %q", w.Header().Get("Content-Type"))
	}
	if w := get(t, srv, "/style.css"); !strings.Contains(w.Body.String(), ".card") {
		t.Error("stylesheet missing card rules")
	}
}
