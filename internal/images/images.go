// Package images resolves card image paths, falling back to a placeholder
// when the primary file cannot be confirmed to exist.
package images

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/ziadkadry99/glossary/internal/glossary"
)

// DefaultPlaceholder is served for cards whose image is missing.
const DefaultPlaceholder = "images/placeholder.svg"

// Prober reports the source that should be used for a primary image path.
// It returns ok=false when no image exists for the path.
type Prober interface {
	Probe(ctx context.Context, primary string) (src string, ok bool)
}

// Resolver maps card images to the source a page should display. Results
// are cached for the lifetime of the process; a given path always resolves
// to the same value, so concurrent probes for one key cannot conflict.
type Resolver struct {
	base        string
	defaultExt  string
	placeholder string
	prober      Prober

	mu    sync.RWMutex
	cache map[string]string
}

// NewResolver creates a Resolver. base is the URL or path prefix images are
// served under; prober may be nil, in which case every primary path is
// trusted as-is.
func NewResolver(base, defaultExt, placeholder string, prober Prober) *Resolver {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	if defaultExt == "" {
		defaultExt = "png"
	}
	return &Resolver{
		base:        base,
		defaultExt:  defaultExt,
		placeholder: placeholder,
		prober:      prober,
		cache:       make(map[string]string),
	}
}

// Placeholder returns the fallback image source.
func (r *Resolver) Placeholder() string { return r.placeholder }

// Primary returns the unprobed path for a card: <base>/<subject>/<img>.
func (r *Resolver) Primary(subjectID string, card glossary.Card) string {
	rel := path.Join(subjectID, card.ImageName(r.defaultExt))
	if strings.Contains(r.base, "://") {
		return strings.TrimSuffix(r.base, "/") + "/" + rel
	}
	return path.Join(r.base, rel)
}

// Initial returns the source to use for the first paint: the cached
// resolution when one exists, otherwise the primary path.
func (r *Resolver) Initial(subjectID string, card glossary.Card) string {
	primary := r.Primary(subjectID, card)
	if src, ok := r.cached(primary); ok {
		return src
	}
	return primary
}

// Resolve probes the card's image and returns the source to display.
func (r *Resolver) Resolve(ctx context.Context, subjectID string, card glossary.Card) string {
	return r.resolvePath(ctx, r.Primary(subjectID, card))
}

// ResolveAsync probes in the background and calls done with the result.
// done runs on the probe's goroutine.
func (r *Resolver) ResolveAsync(ctx context.Context, subjectID string, card glossary.Card, done func(src string)) {
	primary := r.Primary(subjectID, card)
	if src, ok := r.cached(primary); ok {
		done(src)
		return
	}
	go func() {
		done(r.resolvePath(ctx, primary))
	}()
}

func (r *Resolver) resolvePath(ctx context.Context, primary string) string {
	if src, ok := r.cached(primary); ok {
		return src
	}
	if r.prober == nil {
		return primary
	}

	src, ok := r.prober.Probe(ctx, primary)
	if ctx.Err() != nil {
		// Canceled probes are not conclusive; leave the cache alone.
		return primary
	}
	if !ok {
		src = r.placeholder
	}

	r.mu.Lock()
	r.cache[primary] = src
	r.mu.Unlock()
	return src
}

func (r *Resolver) cached(primary string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.cache[primary]
	return src, ok
}
