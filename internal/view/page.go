package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/images"
)

// Messages shown by the placeholders.
const (
	LoadErrorMessage = "The glossary could not be loaded. Reload the page to try again."
	NotFoundMessage  = "That subject does not exist. Choose another one from the list."
	EmptyMessage     = "The glossary has no subjects yet."
)

// Page is the content container of the glossary page together with the
// page metadata. Each render replaces the container's children entirely
// and bumps the generation; image swaps issued for an older generation
// refer to detached elements and are ignored.
type Page struct {
	siteTitle string

	mu              sync.Mutex
	title           string
	metaDescription string
	subjectID       string
	content         *Node
	generation      uint64
}

// NewPage creates an empty page.
func NewPage(siteTitle string) *Page {
	return &Page{
		siteTitle: siteTitle,
		title:     siteTitle,
		content:   El("main", A("id", "content", "class", "content")),
	}
}

// Render paints the subject with the given id. On an unknown id the
// container shows a not-found placeholder and the error is returned.
func (p *Page) Render(doc *glossary.Document, id string, resolver *images.Resolver) error {
	tree, err := RenderSubject(id, doc, resolver)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++

	if err != nil {
		var nf *glossary.NotFoundError
		if errors.As(err, &nf) {
			p.subjectID = ""
			p.content.Children = []*Node{Placeholder("not-found", NotFoundMessage)}
		}
		return err
	}

	subject, _ := doc.Subject(id)
	p.subjectID = id
	p.title = fmt.Sprintf("%s · %s", strings.TrimSpace(subject.Code+" "+subject.Title), p.siteTitle)
	p.metaDescription = subject.Description
	p.content.Children = []*Node{tree}
	return nil
}

// RenderLoadError paints the full-area load failure placeholder.
func (p *Page) RenderLoadError() {
	p.SetPlaceholder("error", LoadErrorMessage)
}

// SetPlaceholder paints a placeholder message of the given kind.
func (p *Page) SetPlaceholder(kind, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.subjectID = ""
	p.content.Children = []*Node{Placeholder(kind, message)}
}

// Generation identifies the current render.
func (p *Page) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Title returns the document title set by the last render.
func (p *Page) Title() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title
}

// MetaDescription returns the meta description set by the last render.
func (p *Page) MetaDescription() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metaDescription
}

// SubjectID returns the subject currently painted, or "".
func (p *Page) SubjectID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subjectID
}

// Snapshot returns a deep copy of the content container.
func (p *Page) Snapshot() *Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.content.Clone()
}

// SwapImage replaces the image source of a card painted in generation gen.
// It reports whether the element was still attached.
func (p *Page) SwapImage(gen uint64, cardID, src string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		return false
	}
	card := p.content.FindID(CardDOMID(cardID))
	if card == nil {
		return false
	}
	img := card.Find("card-image")
	if img == nil {
		return false
	}
	img.SetAttr("src", src)
	return true
}

// ProbeImages starts one asynchronous probe per card of the painted
// subject. Each completion swaps the image only if the page has not been
// re-rendered in the meantime. The returned channel is closed once every
// probe has finished.
func (p *Page) ProbeImages(ctx context.Context, doc *glossary.Document, resolver *images.Resolver) <-chan struct{} {
	done := make(chan struct{})

	p.mu.Lock()
	gen, id := p.generation, p.subjectID
	p.mu.Unlock()

	subject, err := doc.Subject(id)
	if id == "" || err != nil || resolver == nil {
		close(done)
		return done
	}

	var wg sync.WaitGroup
	for _, g := range subject.Groups {
		for _, c := range g.Cards {
			wg.Add(1)
			cardID := c.ID
			resolver.ResolveAsync(ctx, subject.ID, c, func(src string) {
				defer wg.Done()
				p.SwapImage(gen, cardID, src)
			})
		}
	}
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}
