package glossary

import (
	"errors"
	"fmt"
)

// Validate checks the document-wide invariants: subject, group and card ids
// are unique, and every window refers to groups of its own subject. All
// violations are returned joined together.
func (d *Document) Validate() error {
	var errs []error
	subjects := make(map[string]bool)
	groups := make(map[string]string)
	cards := make(map[string]string)

	for _, s := range d.Subjects {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("subject %q has an empty id", s.Title))
		} else if subjects[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate subject id %q", s.ID))
		}
		subjects[s.ID] = true

		local := make(map[string]bool, len(s.Groups))
		for _, g := range s.Groups {
			if g.ID == "" {
				errs = append(errs, fmt.Errorf("subject %q: group %q has an empty id", s.ID, g.Title))
			} else if owner, ok := groups[g.ID]; ok {
				errs = append(errs, fmt.Errorf("duplicate group id %q (subjects %q and %q)", g.ID, owner, s.ID))
			}
			groups[g.ID] = s.ID
			local[g.ID] = true

			for _, c := range g.Cards {
				if c.ID == "" {
					errs = append(errs, fmt.Errorf("group %q: card %q has an empty id", g.ID, c.ES))
					continue
				}
				if owner, ok := cards[c.ID]; ok {
					errs = append(errs, fmt.Errorf("duplicate card id %q (groups %q and %q)", c.ID, owner, g.ID))
				}
				cards[c.ID] = g.ID
			}
		}

		for _, w := range s.Windows {
			for _, ref := range w.Groups {
				if !local[ref] {
					errs = append(errs, fmt.Errorf("subject %q: window %q refers to unknown group %q", s.ID, w.ID, ref))
				}
			}
		}
	}
	return errors.Join(errs...)
}
