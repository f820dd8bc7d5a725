package site

import (
	"encoding/json"
	"os"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/view"
)

// SearchEntry is one searchable record of the static site. The browser
// script matches the query against Text and Alt and shows whichever field
// matched.
type SearchEntry struct {
	Kind      glossary.Kind `json:"kind"`
	Text      string        `json:"text"`
	Alt       string        `json:"alt,omitempty"`
	Detail    string        `json:"detail,omitempty"`
	SubjectID string        `json:"subject_id"`
	GroupID   string        `json:"group_id,omitempty"`
	CardID    string        `json:"card_id,omitempty"`
	Href      string        `json:"href"`
}

// BuildSearchIndex flattens the document in search order: every subject,
// then its groups, then its cards.
func BuildSearchIndex(doc *glossary.Document) []SearchEntry {
	entries := []SearchEntry{}
	for _, s := range doc.Subjects {
		page := view.SubjectHref(s.ID)
		entries = append(entries, SearchEntry{
			Kind:      glossary.KindSubject,
			Text:      s.Title,
			Alt:       s.Code,
			SubjectID: s.ID,
			Href:      page,
		})
		for _, g := range s.Groups {
			entries = append(entries, SearchEntry{
				Kind:      glossary.KindGroup,
				Text:      g.Title,
				Detail:    s.Title,
				SubjectID: s.ID,
				GroupID:   g.ID,
				Href:      page + "#" + view.GroupDOMID(g.ID),
			})
		}
		for _, g := range s.Groups {
			for _, c := range g.Cards {
				entries = append(entries, SearchEntry{
					Kind:      glossary.KindCard,
					Text:      c.ES,
					Alt:       c.EN,
					SubjectID: s.ID,
					GroupID:   g.ID,
					CardID:    c.ID,
					Href:      page + "#" + view.CardDOMID(c.ID),
				})
			}
		}
	}
	return entries
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
