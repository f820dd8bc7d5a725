// Package search implements the glossary's substring filter and the
// debounced scheduler that feeds it from a stream of keystrokes.
package search

import (
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/glossary/internal/glossary"
)

const (
	// DefaultMinQueryLength is the shortest query, in runes, that is searched.
	DefaultMinQueryLength = 2
	// DefaultMaxResults caps the result list.
	DefaultMaxResults = 10
)

// Options tunes the filter. Zero values fall back to the defaults.
type Options struct {
	MinQueryLength int
	MaxResults     int
}

func (o Options) withDefaults() Options {
	if o.MinQueryLength <= 0 {
		o.MinQueryLength = DefaultMinQueryLength
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	return o
}

// Match is one search result. Text is what the result list shows; Detail is
// secondary text (subject code, parent subject, or the other-language term).
type Match struct {
	Kind      glossary.Kind `json:"kind"`
	Text      string        `json:"text"`
	Detail    string        `json:"detail,omitempty"`
	SubjectID string        `json:"subject_id"`
	GroupID   string        `json:"group_id,omitempty"`
	CardID    string        `json:"card_id,omitempty"`
}

// key identifies a match for de-duplication.
func (m Match) key() string {
	return string(m.Kind) + "\x00" + m.SubjectID + "\x00" + strings.ToLower(m.Text)
}

// Search returns the matches for query in document order: each subject,
// then its groups, then its cards. Queries shorter than the minimum length
// return nothing. Duplicates are collapsed before the result cap is applied.
func Search(query string, doc *glossary.Document, opts Options) []Match {
	opts = opts.withDefaults()
	query = strings.TrimSpace(query)
	if doc == nil || utf8.RuneCountInString(query) < opts.MinQueryLength {
		return nil
	}
	needle := strings.ToLower(query)

	var results []Match
	seen := make(map[string]bool)
	add := func(m Match) bool {
		k := m.key()
		if seen[k] {
			return false
		}
		seen[k] = true
		results = append(results, m)
		return len(results) >= opts.MaxResults
	}

	for _, s := range doc.Subjects {
		if contains(s.Title, needle) || contains(s.Code, needle) {
			text := s.Title
			if !contains(text, needle) {
				text = s.Code
			}
			if add(Match{Kind: glossary.KindSubject, Text: text, Detail: subjectDetail(s, text), SubjectID: s.ID}) {
				return results
			}
		}

		for _, g := range s.Groups {
			if contains(g.Title, needle) {
				if add(Match{Kind: glossary.KindGroup, Text: g.Title, Detail: s.Title, SubjectID: s.ID, GroupID: g.ID}) {
					return results
				}
			}
		}

		for _, g := range s.Groups {
			for _, c := range g.Cards {
				var m Match
				switch {
				case contains(c.ES, needle):
					m = Match{Text: c.ES, Detail: c.EN}
				case contains(c.EN, needle):
					m = Match{Text: c.EN, Detail: c.ES}
				default:
					continue
				}
				m.Kind = glossary.KindCard
				m.SubjectID = s.ID
				m.GroupID = g.ID
				m.CardID = c.ID
				if add(m) {
					return results
				}
			}
		}
	}
	return results
}

func subjectDetail(s glossary.Subject, text string) string {
	if text == s.Code {
		return s.Title
	}
	return s.Code
}

func contains(field, needle string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), needle)
}
