package interact

import "github.com/ziadkadry99/glossary/internal/search"

// Autocomplete is the result list under the search box. Active is the
// keyboard-highlighted entry; -1 means none.
type Autocomplete struct {
	results []search.Match
	active  int
	open    bool
}

// NewAutocomplete returns a closed, empty list.
func NewAutocomplete() *Autocomplete {
	return &Autocomplete{active: -1}
}

// SetResults replaces the visible results and clears the highlight. An
// empty result set closes the list.
func (a *Autocomplete) SetResults(results []search.Match) {
	a.results = results
	a.active = -1
	a.open = len(results) > 0
}

// Results returns the visible results.
func (a *Autocomplete) Results() []search.Match {
	if !a.open {
		return nil
	}
	return a.results
}

// IsOpen reports whether the list is showing.
func (a *Autocomplete) IsOpen() bool { return a.open }

// Active returns the highlighted index, or -1.
func (a *Autocomplete) Active() int { return a.active }

// Down moves the highlight forward, wrapping from the last entry to the
// first.
func (a *Autocomplete) Down() {
	if !a.open || len(a.results) == 0 {
		return
	}
	a.active = (a.active + 1) % len(a.results)
}

// Up moves the highlight backward, wrapping from the first entry (or from
// no highlight) to the last.
func (a *Autocomplete) Up() {
	if !a.open || len(a.results) == 0 {
		return
	}
	if a.active <= 0 {
		a.active = len(a.results) - 1
		return
	}
	a.active--
}

// Enter activates the highlighted entry exactly like a click on it. It
// reports false when nothing is highlighted.
func (a *Autocomplete) Enter() (search.Match, bool) {
	return a.Click(a.active)
}

// Click activates entry i and closes the list.
func (a *Autocomplete) Click(i int) (search.Match, bool) {
	if !a.open || i < 0 || i >= len(a.results) {
		return search.Match{}, false
	}
	m := a.results[i]
	a.Close()
	return m, true
}

// Escape closes the list without activating anything.
func (a *Autocomplete) Escape() { a.Close() }

// ClickOutside handles a pointer event outside the input and the list.
func (a *Autocomplete) ClickOutside() { a.Close() }

// Close hides the list. The results are kept so the list can be reopened
// by the next keystroke's search.
func (a *Autocomplete) Close() {
	a.open = false
	a.active = -1
}
