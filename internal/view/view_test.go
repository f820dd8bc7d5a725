package view

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/images"
	"github.com/ziadkadry99/glossary/internal/search"
)

func exampleDoc() *glossary.Document {
	return &glossary.Document{Subjects: []glossary.Subject{{
		ID: "S1", Code: "101", Title: "Intro", Description: "Learn **greetings**.",
		Groups: []glossary.Group{{
			ID: "G1", Title: "Basics", Members: []string{},
			Cards: []glossary.Card{{ID: "c1", ES: "hola", EN: "hello", DefES: "saludo", DefEN: "greeting", Img: "c1.png"}},
		}},
	}}}
}

func windowedDoc() *glossary.Document {
	return &glossary.Document{Subjects: []glossary.Subject{{
		ID: "S2", Code: "202", Title: "Numbers",
		Groups: []glossary.Group{
			{ID: "G1", Title: "Small", Members: []string{"Ana", "Luis"}, Cards: []glossary.Card{{ID: "c1", ES: "uno", EN: "one"}}},
			{ID: "G2", Title: "Big", Cards: []glossary.Card{{ID: "c2", ES: "mil", EN: "thousand"}, {ID: "c3", ES: "millón", EN: "million"}}},
		},
		Windows: []glossary.Window{
			{ID: "W1", Title: "Tab one", Groups: []string{"G1"}},
			{ID: "W2", Title: "Tab two", Groups: []string{"G2"}},
		},
	}}}
}

func parse(t *testing.T, n *Node) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(HTML(n)))
	if err != nil {
		t.Fatalf("parsing rendered HTML: %v", err)
	}
	return doc
}

func TestRenderSubjectExample(t *testing.T) {
	tree, err := RenderSubject("S1", exampleDoc(), nil)
	if err != nil {
		t.Fatalf("RenderSubject: %v", err)
	}

	dom := parse(t, tree)
	if n := dom.Find("section.group").Length(); n != 1 {
		t.Errorf("group sections = %d, want 1", n)
	}
	cards := dom.Find("section.group article.card")
	if cards.Length() != 1 {
		t.Fatalf("cards = %d, want 1", cards.Length())
	}
	if front := strings.TrimSpace(cards.Find(".face.front .term").Text()); front != "hola" {
		t.Errorf("front term = %q, want hola", front)
	}
	if back := cards.Find(".face.back").Text(); !strings.Contains(back, "hello") || !strings.Contains(back, "saludo") || !strings.Contains(back, "greeting") {
		t.Errorf("back face = %q", back)
	}
	if got := dom.Find(".subject-description strong").Text(); got != "greetings" {
		t.Errorf("markdown description = %q", got)
	}
	if dom.Find("nav.tabs").Length() != 0 {
		t.Error("subject without windows should not render tabs")
	}
}

func TestRenderSubjectImageBox(t *testing.T) {
	r := images.NewResolver("/img", "png", "/img/none.svg", nil)
	tree, err := RenderSubject("S1", exampleDoc(), r)
	if err != nil {
		t.Fatalf("RenderSubject: %v", err)
	}
	img := parse(t, tree).Find("img.card-image")
	if src, _ := img.Attr("src"); src != "/img/S1/c1.png" {
		t.Errorf("src = %q", src)
	}
	if w, _ := img.Attr("width"); w != ImageWidth {
		t.Errorf("width = %q", w)
	}
	if h, _ := img.Attr("height"); h != ImageHeight {
		t.Errorf("height = %q", h)
	}
	if ph, _ := img.Attr("data-placeholder"); ph != "/img/none.svg" {
		t.Errorf("data-placeholder = %q", ph)
	}
}

func TestRenderSubjectDeterministic(t *testing.T) {
	for _, doc := range []*glossary.Document{exampleDoc(), windowedDoc()} {
		id := doc.Subjects[0].ID
		a, err := RenderSubject(id, doc, nil)
		if err != nil {
			t.Fatal(err)
		}
		b, err := RenderSubject(id, doc, nil)
		if err != nil {
			t.Fatal(err)
		}
		if a.TextContent() != b.TextContent() {
			t.Errorf("%s: text differs between renders", id)
		}
		if CardCount(a) != CardCount(b) || CardCount(a) != doc.Subjects[0].CardCount() {
			t.Errorf("%s: card counts %d/%d", id, CardCount(a), CardCount(b))
		}
		if HTML(a) != HTML(b) {
			t.Errorf("%s: markup differs between renders", id)
		}
	}
}

func TestRenderSubjectNotFound(t *testing.T) {
	_, err := RenderSubject("missing", exampleDoc(), nil)
	if !errors.Is(err, glossary.ErrNotFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestRenderSubjectWindows(t *testing.T) {
	tree, err := RenderSubject("S2", windowedDoc(), nil)
	if err != nil {
		t.Fatalf("RenderSubject: %v", err)
	}
	dom := parse(t, tree)

	tabs := dom.Find("nav.tabs button.tab")
	if tabs.Length() != 2 {
		t.Fatalf("tabs = %d, want 2", tabs.Length())
	}
	if sel, _ := tabs.Eq(0).Attr("aria-selected"); sel != "true" {
		t.Error("first tab should be selected")
	}
	if sel, _ := tabs.Eq(1).Attr("aria-selected"); sel != "false" {
		t.Error("second tab should not be selected")
	}

	panels := dom.Find("div.panel")
	if panels.Length() != 2 {
		t.Fatalf("panels = %d, want 2", panels.Length())
	}
	if _, hidden := panels.Eq(0).Attr("hidden"); hidden {
		t.Error("first panel should be visible")
	}
	if _, hidden := panels.Eq(1).Attr("hidden"); !hidden {
		t.Error("second panel should be hidden")
	}
	if n := panels.Eq(1).Find("article.card").Length(); n != 2 {
		t.Errorf("second panel cards = %d, want 2", n)
	}
	if got := panels.Eq(0).Find("li.member").Length(); got != 2 {
		t.Errorf("members = %d, want 2", got)
	}
}

func TestPageRender(t *testing.T) {
	doc := exampleDoc()
	page := NewPage("Glosario")

	if err := page.Render(doc, "S1", nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if page.Title() != "101 Intro · Glosario" {
		t.Errorf("title = %q", page.Title())
	}
	if page.MetaDescription() != "Learn **greetings**." {
		t.Errorf("meta description = %q", page.MetaDescription())
	}
	first := page.Snapshot()
	if len(first.Children) != 1 || CardCount(first) != 1 {
		t.Fatalf("content = %d children, %d cards", len(first.Children), CardCount(first))
	}

	// Rendering again replaces instead of appending.
	if err := page.Render(doc, "S1", nil); err != nil {
		t.Fatal(err)
	}
	if got := page.Snapshot(); len(got.Children) != 1 || CardCount(got) != 1 {
		t.Errorf("second render left %d children", len(got.Children))
	}

	err := page.Render(doc, "missing", nil)
	if !errors.Is(err, glossary.ErrNotFound) {
		t.Fatalf("Render(missing) = %v", err)
	}
	got := page.Snapshot()
	if got.Find("placeholder-not-found") == nil {
		t.Error("missing subject should paint the not-found placeholder")
	}
	if page.SubjectID() != "" {
		t.Errorf("SubjectID = %q after not-found", page.SubjectID())
	}
	// Last write wins: metadata still describes the last subject painted.
	if page.Title() != "101 Intro · Glosario" {
		t.Errorf("title changed to %q", page.Title())
	}

	page.RenderLoadError()
	if page.Snapshot().Find("placeholder-error") == nil {
		t.Error("load failure should paint the error placeholder")
	}
}

type slowProber struct {
	release chan struct{}
}

func (p slowProber) Probe(ctx context.Context, primary string) (string, bool) {
	<-p.release
	return "", false
}

func TestPageProbeSwapsImage(t *testing.T) {
	doc := exampleDoc()
	resolver := images.NewResolver("img", "png", "img/none.svg", slowProber{release: closedChan()})
	page := NewPage("G")
	if err := page.Render(doc, "S1", resolver); err != nil {
		t.Fatal(err)
	}

	select {
	case <-page.ProbeImages(context.Background(), doc, resolver):
	case <-time.After(time.Second):
		t.Fatal("probes did not finish")
	}

	img := page.Snapshot().Find("card-image")
	if src, _ := img.Attr("src"); src != "img/none.svg" {
		t.Errorf("src after probe = %q, want placeholder", src)
	}
}

func TestPageStaleProbeIsNoop(t *testing.T) {
	doc := exampleDoc()
	release := make(chan struct{})
	resolver := images.NewResolver("img", "png", "img/none.svg", slowProber{release: release})
	page := NewPage("G")
	if err := page.Render(doc, "S1", resolver); err != nil {
		t.Fatal(err)
	}
	done := page.ProbeImages(context.Background(), doc, resolver)

	// Navigate away before the probe resolves.
	_ = page.Render(doc, "missing", resolver)
	close(release)
	<-done

	if page.SwapImage(page.Generation()-1, "c1", "x") {
		t.Error("swap for an old generation should be ignored")
	}
	if page.Snapshot().Find("card-image") != nil {
		t.Error("stale probe should not touch the new content")
	}
}

func TestRenderResults(t *testing.T) {
	matches := search.Search("hola", exampleDoc(), search.Options{})
	list := RenderResults(matches, 0)
	dom := parse(t, list)

	items := dom.Find("li.result")
	if items.Length() != 1 {
		t.Fatalf("items = %d", items.Length())
	}
	if sel, _ := items.Attr("aria-selected"); sel != "true" {
		t.Error("active item should be selected")
	}
	if subj, _ := items.Attr("data-subject"); subj != "S1" {
		t.Errorf("data-subject = %q", subj)
	}
}

func TestRenderNav(t *testing.T) {
	doc := exampleDoc()
	doc.Subjects = append(doc.Subjects, windowedDoc().Subjects...)
	dom := parse(t, RenderNav(doc, "S2", SubjectHref))

	links := dom.Find("a")
	if links.Length() != 2 {
		t.Fatalf("links = %d", links.Length())
	}
	if href, _ := links.Eq(0).Attr("href"); href != "subject-S1.html" {
		t.Errorf("href = %q", href)
	}
	if !links.Eq(1).HasClass("active") {
		t.Error("active subject should be marked")
	}
}

func TestNodeTextContentEscapes(t *testing.T) {
	n := El("p", nil, T("<b>bold</b>"))
	if got := HTML(n); got != "<p>&lt;b&gt;bold&lt;/b&gt;</p>" {
		t.Errorf("HTML = %q", got)
	}
	if got := n.TextContent(); got != "<b>bold</b>" {
		t.Errorf("TextContent = %q", got)
	}
}

func closedChan() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}
