package interact

// Tabs is the window selector of one subject. Exactly one tab is selected
// at a time.
type Tabs struct {
	ids      []string
	selected int
}

// NewTabs creates a selector with the first tab selected.
func NewTabs(ids []string) *Tabs {
	return &Tabs{ids: append([]string(nil), ids...)}
}

// Len returns the number of tabs.
func (t *Tabs) Len() int { return len(t.ids) }

// Selected returns the index of the selected tab, or -1 without tabs.
func (t *Tabs) Selected() int {
	if len(t.ids) == 0 {
		return -1
	}
	return t.selected
}

// SelectedID returns the id of the selected tab.
func (t *Tabs) SelectedID() string {
	if len(t.ids) == 0 {
		return ""
	}
	return t.ids[t.selected]
}

// Select makes tab i the only selected tab. Out-of-range indexes are
// ignored.
func (t *Tabs) Select(i int) {
	if i < 0 || i >= len(t.ids) {
		return
	}
	t.selected = i
}

// SelectID selects the tab with the given id.
func (t *Tabs) SelectID(id string) {
	for i, v := range t.ids {
		if v == id {
			t.selected = i
			return
		}
	}
}

// Next selects the following tab, wrapping around.
func (t *Tabs) Next() {
	if len(t.ids) > 0 {
		t.selected = (t.selected + 1) % len(t.ids)
	}
}

// Prev selects the preceding tab, wrapping around.
func (t *Tabs) Prev() {
	if len(t.ids) > 0 {
		t.selected = (t.selected - 1 + len(t.ids)) % len(t.ids)
	}
}

// Visible reports whether the panel with index i is shown.
func (t *Tabs) Visible(i int) bool {
	return len(t.ids) > 0 && i == t.selected
}
