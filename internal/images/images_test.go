package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ziadkadry99/glossary/internal/glossary"
)

type countingProber struct {
	calls atomic.Int32
	found map[string]string
}

func (p *countingProber) Probe(_ context.Context, primary string) (string, bool) {
	p.calls.Add(1)
	src, ok := p.found[primary]
	return src, ok
}

func TestPrimaryPath(t *testing.T) {
	r := NewResolver("/images", "jpg", "", nil)
	if got := r.Primary("S1", glossary.Card{ID: "c1", Img: "c1.png"}); got != "/images/S1/c1.png" {
		t.Errorf("Primary = %q", got)
	}
	if got := r.Primary("S1", glossary.Card{ID: "c2"}); got != "/images/S1/c2.jpg" {
		t.Errorf("Primary without img = %q", got)
	}
	if r.Placeholder() != DefaultPlaceholder {
		t.Errorf("Placeholder = %q", r.Placeholder())
	}
}

func TestResolveFallsBackAndCaches(t *testing.T) {
	prober := &countingProber{found: map[string]string{"img/S1/c1.png": "img/S1/c1.png"}}
	r := NewResolver("img", "png", "img/none.svg", prober)
	ctx := context.Background()

	if got := r.Resolve(ctx, "S1", glossary.Card{ID: "c1"}); got != "img/S1/c1.png" {
		t.Errorf("existing image resolved to %q", got)
	}
	if got := r.Resolve(ctx, "S1", glossary.Card{ID: "c2"}); got != "img/none.svg" {
		t.Errorf("missing image resolved to %q, want placeholder", got)
	}

	// Cached: no further probes, and the first paint already sees the fallback.
	r.Resolve(ctx, "S1", glossary.Card{ID: "c2"})
	if got := r.Initial("S1", glossary.Card{ID: "c2"}); got != "img/none.svg" {
		t.Errorf("Initial after probe = %q", got)
	}
	if n := prober.calls.Load(); n != 2 {
		t.Errorf("probe calls = %d, want 2", n)
	}
}

func TestResolveAsyncConcurrent(t *testing.T) {
	prober := &countingProber{}
	r := NewResolver("img", "png", "", prober)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		i := i
		r.ResolveAsync(context.Background(), "S1", glossary.Card{ID: "c1"}, func(src string) {
			results[i] = src
			wg.Done()
		})
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("probes did not complete")
	}

	for i, src := range results {
		if src != DefaultPlaceholder {
			t.Errorf("result %d = %q, want placeholder", i, src)
		}
	}
}

func TestFileProber(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "S1"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"c1.png", "c2.jpg"} {
		if err := os.WriteFile(filepath.Join(root, "S1", name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	p := FileProber{Root: root, URLPrefix: "/images"}
	ctx := context.Background()

	tests := []struct {
		primary string
		want    string
		ok      bool
	}{
		{"/images/S1/c1.png", "/images/S1/c1.png", true},
		{"/images/S1/c2.png", "/images/S1/c2.jpg", true},
		{"/images/S1/c3.png", "", false},
		{"/images/S2/c1.png", "", false},
	}
	for _, tt := range tests {
		got, ok := p.Probe(ctx, tt.primary)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Probe(%q) = %q, %v; want %q, %v", tt.primary, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFileProberUncleanPrefix(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "images", "S1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "images", "S1", "c1.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(root)

	for _, dir := range []string{"images", "./images", "images/", "./images/"} {
		r := NewResolver(dir, "png", "images/none.svg", FileProber{Root: dir, URLPrefix: dir})
		if got := r.Resolve(context.Background(), "S1", glossary.Card{ID: "c1"}); got != "images/S1/c1.png" {
			t.Errorf("image_dir %q resolved to %q, want images/S1/c1.png", dir, got)
		}
	}
}

func TestHTTPProber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		if r.URL.Path == "/img/S1/c1.png" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p := HTTPProber{BaseURL: srv.URL}
	if src, ok := p.Probe(context.Background(), "img/S1/c1.png"); !ok || src != "img/S1/c1.png" {
		t.Errorf("existing image: %q, %v", src, ok)
	}
	if _, ok := p.Probe(context.Background(), "img/S1/c9.png"); ok {
		t.Error("404 image should not be confirmed")
	}
}

func TestPrimaryPathRemoteBase(t *testing.T) {
	r := NewResolver("https://cdn.example.com/img/", "png", "", nil)
	if got := r.Primary("S1", glossary.Card{ID: "c1"}); got != "https://cdn.example.com/img/S1/c1.png" {
		t.Errorf("Primary = %q", got)
	}
}
