package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ziadkadry99/glossary/internal/glossary"
)

const sampleJSON = `[{"id":"S1","code":"101","title":"Intro","description":"",
 "groups":[{"id":"G1","title":"Basics","members":[],"cards":[
   {"id":"c1","es":"hola","en":"hello","def_es":"saludo","def_en":"greeting","img":"c1.png"}]}]}]`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	l := New(path)
	doc, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Subjects) != 1 || doc.Subjects[0].ID != "S1" {
		t.Errorf("unexpected document: %+v", doc.Subjects)
	}

	// The file is gone but the cached document is still returned.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	again, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if again != doc {
		t.Error("second Load should return the cached document")
	}
}

func TestLoadRemoteFetchesOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	l := New(srv.URL + "/glossary.json")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Load(context.Background()); err != nil {
				t.Errorf("Load: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestLoadErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad.json":
			w.Write([]byte(`{"not": "an array"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		source string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.json")},
		{"http 404", srv.URL + "/missing.json"},
		{"malformed body", srv.URL + "/bad.json"},
		{"empty source", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.source)
			doc, err := l.Load(context.Background())
			if doc != nil {
				t.Error("expected nil document on failure")
			}
			if !errors.Is(err, glossary.ErrLoad) {
				t.Fatalf("error = %v, want LoadError", err)
			}
			var le *glossary.LoadError
			if !errors.As(err, &le) || le.Source != tt.source {
				t.Errorf("LoadError = %+v", le)
			}

			// Failure is terminal and the empty fallback is safe to render.
			if _, again := l.Load(context.Background()); again != err {
				t.Error("second Load should return the cached error")
			}
			if empty := l.Document(context.Background()); empty == nil || len(empty.Subjects) != 0 {
				t.Error("Document should return an empty document after a failure")
			}
		})
	}
}

func TestLoadCanceledFirstCallDoesNotStick(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(srv.URL)
	if _, err := l.Load(ctx); err != nil {
		t.Fatalf("Load with canceled context: %v", err)
	}
	doc, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(doc.Subjects) != 1 {
		t.Errorf("expected 1 subject, got %d", len(doc.Subjects))
	}
}

func TestLoadRejectsOversizedDocument(t *testing.T) {
	old := maxDocumentSize
	maxDocumentSize = 64
	defer func() { maxDocumentSize = old }()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Load(context.Background())
	if !errors.Is(err, glossary.ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
	if !strings.Contains(err.Error(), "exceeds 64 bytes") {
		t.Errorf("error should name the limit: %v", err)
	}
}
