package interact

import "github.com/ziadkadry99/glossary/internal/glossary"

// Modal is the card detail overlay. While open it traps focus: Tab and
// Shift+Tab cycle only through its own controls. Closing restores the
// focus that was active before it opened.
type Modal struct {
	open        bool
	subjectID   string
	card        glossary.Card
	focusables  []string
	focus       int
	returnFocus string
}

// IsOpen reports whether the modal is showing.
func (m *Modal) IsOpen() bool { return m.open }

// Card returns the card the modal was opened for.
func (m *Modal) Card() (subjectID string, card glossary.Card) { return m.subjectID, m.card }

// Open shows the modal for a card. focusables lists the modal's own
// controls in tab order; returnFocus names the element focused before
// opening. Focus starts on the first control.
func (m *Modal) Open(subjectID string, card glossary.Card, focusables []string, returnFocus string) {
	m.open = true
	m.subjectID = subjectID
	m.card = card
	m.focusables = append([]string(nil), focusables...)
	m.focus = 0
	m.returnFocus = returnFocus
}

// Focused returns the control that currently has focus inside the modal,
// or "" when the modal is closed or has no controls.
func (m *Modal) Focused() string {
	if !m.open || len(m.focusables) == 0 {
		return ""
	}
	return m.focusables[m.focus]
}

// FocusNext moves focus forward (Tab), wrapping to the first control.
func (m *Modal) FocusNext() {
	if !m.open || len(m.focusables) == 0 {
		return
	}
	m.focus = (m.focus + 1) % len(m.focusables)
}

// FocusPrev moves focus backward (Shift+Tab), wrapping to the last control.
func (m *Modal) FocusPrev() {
	if !m.open || len(m.focusables) == 0 {
		return
	}
	m.focus = (m.focus - 1 + len(m.focusables)) % len(m.focusables)
}

// Close hides the modal and returns the element that should regain focus.
// Closing a closed modal returns "".
func (m *Modal) Close() string {
	if !m.open {
		return ""
	}
	restore := m.returnFocus
	*m = Modal{}
	return restore
}

// Escape handles the Escape key.
func (m *Modal) Escape() string { return m.Close() }

// ClickBackdrop handles a click on the overlay outside the dialog.
func (m *Modal) ClickBackdrop() string { return m.Close() }
