package view

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/images"
	"github.com/ziadkadry99/glossary/internal/search"
)

// Card images always reserve this box so a late source swap does not shift
// the layout.
const (
	ImageWidth  = "240"
	ImageHeight = "160"
)

// markdown renders subject descriptions. Raw HTML in the document is
// omitted.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
)

// DOM id helpers shared by the renderer, the page and the browser script.
func SubjectDOMID(id string) string { return "subject-" + id }
func GroupDOMID(id string) string   { return "group-" + id }
func CardDOMID(id string) string    { return "card-" + id }
func TabDOMID(id string) string     { return "tab-" + id }
func PanelDOMID(id string) string   { return "panel-" + id }

// RenderSubject builds the view tree for one subject. The output depends
// only on the arguments. An unknown id returns a *glossary.NotFoundError.
// A nil resolver uses primary image paths.
func RenderSubject(id string, doc *glossary.Document, resolver *images.Resolver) (*Node, error) {
	subject, err := doc.Subject(id)
	if err != nil {
		return nil, err
	}
	if resolver == nil {
		resolver = images.NewResolver("images", "", "", nil)
	}

	section := El("section", A(
		"class", "subject",
		"id", SubjectDOMID(subject.ID),
		"data-subject", subject.ID,
	), renderHeader(subject))

	if len(subject.Windows) == 0 {
		groups := El("div", A("class", "groups"))
		for _, g := range subject.Groups {
			groups.Children = append(groups.Children, renderGroup(subject.ID, g, resolver))
		}
		section.Children = append(section.Children, groups)
		return section, nil
	}

	panels := subject.Partition()
	tabs := El("nav", A("class", "tabs", "role", "tablist"))
	for i, p := range panels {
		selected, tabindex := "false", "-1"
		class := "tab"
		if i == 0 {
			selected, tabindex = "true", "0"
			class = "tab active"
		}
		tabs.Children = append(tabs.Children, El("button", A(
			"class", class,
			"id", TabDOMID(p.ID),
			"type", "button",
			"role", "tab",
			"aria-controls", PanelDOMID(p.ID),
			"aria-selected", selected,
			"tabindex", tabindex,
			"data-window", p.ID,
		), T(p.Title)))
	}
	section.Children = append(section.Children, tabs)

	for i, p := range panels {
		panel := El("div", A(
			"class", "panel",
			"id", PanelDOMID(p.ID),
			"role", "tabpanel",
			"aria-labelledby", TabDOMID(p.ID),
		))
		if i > 0 {
			panel.SetAttr("hidden", "")
		}
		for _, g := range p.Groups {
			panel.Children = append(panel.Children, renderGroup(subject.ID, g, resolver))
		}
		section.Children = append(section.Children, panel)
	}
	return section, nil
}

func renderHeader(s *glossary.Subject) *Node {
	header := El("header", A("class", "subject-header"),
		El("span", A("class", "subject-code"), T(s.Code)),
		El("h1", A("class", "subject-title"), T(s.Title)),
	)
	if strings.TrimSpace(s.Description) != "" {
		header.Children = append(header.Children,
			El("div", A("class", "subject-description"), renderMarkdown(s.Description)))
	}
	return header
}

func renderMarkdown(src string) *Node {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return El("p", nil, T(src))
	}
	return RawHTML(buf.String())
}

func renderGroup(subjectID string, g glossary.Group, resolver *images.Resolver) *Node {
	section := El("section", A("class", "group", "id", GroupDOMID(g.ID), "data-group", g.ID),
		El("h2", A("class", "group-title"), T(g.Title)),
	)
	if len(g.Members) > 0 {
		members := El("ul", A("class", "members"))
		for _, m := range g.Members {
			members.Children = append(members.Children, El("li", A("class", "member"), T(m)))
		}
		section.Children = append(section.Children, members)
	}
	cards := El("div", A("class", "cards"))
	for _, c := range g.Cards {
		cards.Children = append(cards.Children, RenderCard(subjectID, c, resolver))
	}
	section.Children = append(section.Children, cards)
	return section
}

// RenderCard builds one flippable card with its two faces and controls.
func RenderCard(subjectID string, c glossary.Card, resolver *images.Resolver) *Node {
	front := El("div", A("class", "face front"),
		El("h3", A("class", "term term-es", "lang", "es"), T(c.ES)),
		cardImage(subjectID, c, resolver),
	)
	back := El("div", A("class", "face back"),
		El("h3", A("class", "term term-en", "lang", "en"), T(c.EN)),
		El("p", A("class", "definition definition-es", "lang", "es"), T(c.DefES)),
		El("p", A("class", "definition definition-en", "lang", "en"), T(c.DefEN)),
	)
	controls := El("div", A("class", "card-controls"),
		control("flip", "Flip card", "↻"),
		control("expand", "Show details", "⤢"),
		control("copy", "Copy term and definition", "⧉"),
	)
	return El("article", A(
		"class", "card",
		"id", CardDOMID(c.ID),
		"data-card", c.ID,
		"tabindex", "0",
	), El("div", A("class", "card-inner"), front, back), controls)
}

func cardImage(subjectID string, c glossary.Card, resolver *images.Resolver) *Node {
	return El("img", A(
		"class", "card-image",
		"src", resolver.Initial(subjectID, c),
		"alt", c.ES,
		"width", ImageWidth,
		"height", ImageHeight,
		"loading", "lazy",
		"data-placeholder", resolver.Placeholder(),
	))
}

func control(action, label, glyph string) *Node {
	return El("button", A(
		"class", "control "+action,
		"type", "button",
		"data-action", action,
		"aria-label", label,
	), T(glyph))
}

// RenderCardDetail builds the content of the card detail modal.
func RenderCardDetail(subjectID string, c glossary.Card, resolver *images.Resolver) *Node {
	if resolver == nil {
		resolver = images.NewResolver("images", "", "", nil)
	}
	return El("div", A(
		"class", "modal-body",
		"role", "dialog",
		"aria-modal", "true",
		"aria-labelledby", "modal-title-"+c.ID,
		"data-card", c.ID,
	),
		El("h2", A("class", "modal-title", "id", "modal-title-"+c.ID), T(c.ES+" / "+c.EN)),
		cardImage(subjectID, c, resolver),
		El("dl", A("class", "modal-definitions"),
			El("dt", A("lang", "es"), T(c.ES)),
			El("dd", A("lang", "es"), T(c.DefES)),
			El("dt", A("lang", "en"), T(c.EN)),
			El("dd", A("lang", "en"), T(c.DefEN)),
		),
		El("div", A("class", "modal-controls"),
			control("copy", "Copy term and definition", "Copy"),
			control("close", "Close", "Close"),
		),
	)
}

// SubjectHref is the file name of a subject page in the static site.
func SubjectHref(id string) string {
	return "subject-" + url.PathEscape(id) + ".html"
}

// RenderNav builds the subject navigation list, marking activeID. href maps
// a subject id to its link target.
func RenderNav(doc *glossary.Document, activeID string, href func(id string) string) *Node {
	nav := El("ul", A("class", "subject-nav"))
	for _, s := range doc.Subjects {
		attrs := A("href", href(s.ID), "data-subject", s.ID)
		if s.ID == activeID {
			attrs = append(attrs, Attr{Key: "class", Val: "active"}, Attr{Key: "aria-current", Val: "page"})
		}
		nav.Children = append(nav.Children, El("li", nil,
			El("a", attrs,
				El("span", A("class", "nav-code"), T(s.Code)),
				T(" "),
				El("span", A("class", "nav-title"), T(s.Title)),
			),
		))
	}
	return nav
}

// RenderResults builds the autocomplete result list.
func RenderResults(matches []search.Match, active int) *Node {
	list := El("ul", A("class", "autocomplete", "role", "listbox"))
	for i, m := range matches {
		class := "result result-" + string(m.Kind)
		selected := "false"
		if i == active {
			class += " active"
			selected = "true"
		}
		item := El("li", A(
			"class", class,
			"role", "option",
			"aria-selected", selected,
			"data-kind", string(m.Kind),
			"data-subject", m.SubjectID,
			"data-group", m.GroupID,
			"data-card", m.CardID,
		), El("span", A("class", "result-text"), T(m.Text)))
		if m.Detail != "" {
			item.Children = append(item.Children, El("span", A("class", "result-detail"), T(m.Detail)))
		}
		list.Children = append(list.Children, item)
	}
	return list
}

// Placeholder builds a user-visible message block. Kind is "error" for a
// load failure and "not-found" for an unknown id.
func Placeholder(kind, message string) *Node {
	return El("div", A("class", "placeholder placeholder-"+kind, "role", "alert"),
		El("p", nil, T(message)),
	)
}

// CardCount returns how many cards a rendered tree contains.
func CardCount(n *Node) int {
	return len(n.FindAll("card"))
}
