// Package loader fetches the glossary document once and caches it for the
// lifetime of the process.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ziadkadry99/glossary/internal/glossary"
)

// maxDocumentSize bounds how much of a remote body is read.
var maxDocumentSize = 32 << 20

// Loader loads a glossary document from a file path or an http(s) URL.
// The first Load performs the fetch; every later call returns the same
// document or the same error. There are no retries.
type Loader struct {
	source string
	client *http.Client

	once sync.Once
	doc  *glossary.Document
	err  error
}

// New creates a Loader for the given source.
func New(source string) *Loader {
	return &Loader{
		source: source,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithClient replaces the HTTP client used for remote sources.
func (l *Loader) WithClient(client *http.Client) *Loader {
	l.client = client
	return l
}

// Source returns the configured source.
func (l *Loader) Source() string { return l.source }

// Load returns the glossary document, fetching it on the first call.
// Concurrent first calls share a single fetch. A failure is returned as a
// *glossary.LoadError and is cached like a success. The fetch ignores
// cancellation of the caller's context, so an abandoned first request
// does not leave the loader failed; the client timeout still applies.
func (l *Loader) Load(ctx context.Context) (*glossary.Document, error) {
	l.once.Do(func() {
		l.doc, l.err = l.fetch(context.WithoutCancel(ctx))
		if l.err != nil {
			l.err = &glossary.LoadError{Source: l.source, Err: l.err}
		}
	})
	return l.doc, l.err
}

// Document returns the loaded document, or an empty document when loading
// failed or has not happened yet. Callers that already reported the load
// error use it to render nothing instead of crashing.
func (l *Loader) Document(ctx context.Context) *glossary.Document {
	doc, err := l.Load(ctx)
	if err != nil || doc == nil {
		return &glossary.Document{}
	}
	return doc
}

func (l *Loader) fetch(ctx context.Context) (*glossary.Document, error) {
	if l.source == "" {
		return nil, fmt.Errorf("no glossary source configured")
	}

	var (
		data []byte
		err  error
	)
	if isRemote(l.source) {
		data, err = l.fetchRemote(ctx)
	} else {
		data, err = os.ReadFile(l.source)
	}
	if err != nil {
		return nil, err
	}
	return glossary.Parse(data)
}

func (l *Loader) fetchRemote(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching document: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxDocumentSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentSize)
	}
	return data, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
