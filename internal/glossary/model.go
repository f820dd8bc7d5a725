package glossary

import "strings"

// Document is the full glossary: an ordered list of subjects. Display order
// is insertion order. A Document is never mutated after it has been loaded.
type Document struct {
	Subjects []Subject
}

// Subject is a course with its groups of cards.
type Subject struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Groups      []Group  `json:"groups"`
	Windows     []Window `json:"windows,omitempty"`
}

// Group is a named cluster of cards, optionally annotated with the names of
// the people who wrote it.
type Group struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Members []string `json:"members"`
	Cards   []Card   `json:"cards"`
}

// Card is a two-sided term entry. ES is shown on the front face, EN and both
// definitions on the back.
type Card struct {
	ID    string `json:"id"`
	ES    string `json:"es"`
	EN    string `json:"en"`
	DefES string `json:"def_es"`
	DefEN string `json:"def_en"`
	Img   string `json:"img"`
}

// Window is a tab that shows a subset of a subject's groups.
type Window struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Groups []string `json:"groups"`
}

// Panel is one tab panel of a rendered subject. Subjects without windows
// produce a single implicit panel with an empty ID.
type Panel struct {
	ID     string
	Title  string
	Groups []Group
}

// Subject returns the subject with the given id.
func (d *Document) Subject(id string) (*Subject, error) {
	if d != nil {
		for i := range d.Subjects {
			if d.Subjects[i].ID == id {
				return &d.Subjects[i], nil
			}
		}
	}
	return nil, &NotFoundError{Kind: KindSubject, ID: id}
}

// Card looks a card up by id across the whole document.
func (d *Document) Card(id string) (*Subject, *Group, *Card, error) {
	if d != nil {
		for si := range d.Subjects {
			s := &d.Subjects[si]
			for gi := range s.Groups {
				g := &s.Groups[gi]
				for ci := range g.Cards {
					if g.Cards[ci].ID == id {
						return s, g, &g.Cards[ci], nil
					}
				}
			}
		}
	}
	return nil, nil, nil, &NotFoundError{Kind: KindCard, ID: id}
}

// Default returns the first subject, or nil for an empty document.
func (d *Document) Default() *Subject {
	if d == nil || len(d.Subjects) == 0 {
		return nil
	}
	return &d.Subjects[0]
}

// Group returns the group with the given id inside this subject.
func (s *Subject) Group(id string) (*Group, error) {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i], nil
		}
	}
	return nil, &NotFoundError{Kind: KindGroup, ID: id}
}

// CardCount returns the number of cards across all groups.
func (s *Subject) CardCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Cards)
	}
	return n
}

// Partition splits the subject's groups into tab panels following the
// window definitions. Unresolved group references are skipped; Validate
// reports them.
func (s *Subject) Partition() []Panel {
	if len(s.Windows) == 0 {
		return []Panel{{Title: s.Title, Groups: s.Groups}}
	}
	panels := make([]Panel, 0, len(s.Windows))
	for _, w := range s.Windows {
		p := Panel{ID: w.ID, Title: w.Title}
		for _, ref := range w.Groups {
			if g, err := s.Group(ref); err == nil {
				p.Groups = append(p.Groups, *g)
			}
		}
		panels = append(panels, p)
	}
	return panels
}

// ImageName returns the image filename for the card. Cards without an
// explicit img use their id as the stem.
func (c Card) ImageName(defaultExt string) string {
	if c.Img != "" {
		return c.Img
	}
	return c.ID + "." + strings.TrimPrefix(defaultExt, ".")
}
