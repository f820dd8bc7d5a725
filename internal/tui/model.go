// Package tui is the interactive terminal browser for the glossary. It
// paints subjects through view.Page and drives the card, modal, tab,
// search and clipboard state machines from key presses.
package tui

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/images"
	"github.com/ziadkadry99/glossary/internal/interact"
	"github.com/ziadkadry99/glossary/internal/search"
	"github.com/ziadkadry99/glossary/internal/view"
)

// Focus identifies which region receives key presses.
type Focus int

const (
	FocusCards Focus = iota
	FocusNav
	FocusSearch
)

// Modal controls in tab order.
const (
	controlCopy  = "copy"
	controlClose = "close"
)

// noticeFadeDelay is how long the clipboard notice stays visible.
const noticeFadeDelay = 2 * time.Second

// searchResultsMsg carries debounced search results into the update loop.
type searchResultsMsg struct {
	query   string
	results []search.Match
}

// imagesProbedMsg is sent once every image probe of a render finished.
type imagesProbedMsg struct {
	generation uint64
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	err error
}

// noticeFadeMsg clears the clipboard notice unless a newer one replaced it.
type noticeFadeMsg struct {
	seq int
}

// Options configures a Model.
type Options struct {
	SiteTitle      string
	DefaultSubject string
	Search         search.Options
	Debounce       time.Duration
	Resolver       *images.Resolver
	Clipboard      interact.Clipboard
	Keys           *KeyMap
	Theme          *Theme
}

// Model is the bubbletea model of the glossary browser.
type Model struct {
	doc     *glossary.Document
	loadErr error

	opts     Options
	keys     KeyMap
	theme    Theme
	resolver *images.Resolver

	page     *view.Page
	subject  int // index into doc.Subjects, -1 when none is shown
	navIndex int
	focus    Focus

	deck   *interact.Deck
	tabs   *interact.Tabs
	modal  *interact.Modal
	cursor int // index into the visible cards

	input        textinput.Model
	autocomplete *interact.Autocomplete
	debouncer    *search.Debouncer
	results      chan searchResultsMsg

	clipboard interact.Clipboard
	notice    string
	noticeSeq int

	width  int
	height int
}

// New creates the browser for a loaded document. A non-nil loadErr shows
// the load failure placeholder instead of content.
func New(doc *glossary.Document, loadErr error, opts Options) Model {
	if doc == nil {
		doc = &glossary.Document{}
	}
	keys := DefaultKeyMap
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	theme := DefaultTheme
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = images.NewResolver("images", "", "", nil)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = interact.OSC52Clipboard{}
	}

	input := textinput.New()
	input.Placeholder = "Buscar / Search..."
	input.Prompt = "/ "

	model := Model{
		doc:          doc,
		loadErr:      loadErr,
		opts:         opts,
		keys:         keys,
		theme:        theme,
		resolver:     resolver,
		page:         view.NewPage(opts.SiteTitle),
		subject:      -1,
		deck:         interact.NewDeck(),
		tabs:         interact.NewTabs(nil),
		modal:        &interact.Modal{},
		input:        input,
		autocomplete: interact.NewAutocomplete(),
		results:      make(chan searchResultsMsg, 16),
		clipboard:    clip,
	}

	model.debouncer = search.NewDebouncer(opts.Debounce,
		func(_ context.Context, query string) []search.Match {
			return search.Search(query, doc, opts.Search)
		},
		func(query string, results []search.Match) {
			select {
			case model.results <- searchResultsMsg{query: query, results: results}:
			default:
				// The update loop is behind; it only needs the newest results.
			}
		},
	)

	switch {
	case loadErr != nil:
		model.page.RenderLoadError()
	case len(doc.Subjects) == 0:
		model.page.SetPlaceholder("empty", view.EmptyMessage)
	default:
		id := opts.DefaultSubject
		if _, err := doc.Subject(id); id == "" || err != nil {
			id = doc.Default().ID
		}
		model.showSubject(id)
	}
	return model
}

// Init starts listening for search results and probes the first subject's
// images.
func (model Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, model.waitForResults(), model.probeImages())
}

func (model Model) waitForResults() tea.Cmd {
	results := model.results
	return func() tea.Msg {
		return <-results
	}
}

// probeImages resolves the shown subject's images in the background.
func (model Model) probeImages() tea.Cmd {
	if model.subject < 0 {
		return nil
	}
	page, doc, resolver := model.page, model.doc, model.resolver
	generation := page.Generation()
	return func() tea.Msg {
		<-page.ProbeImages(context.Background(), doc, resolver)
		return imagesProbedMsg{generation: generation}
	}
}

// showSubject paints the subject and resets per-subject state: every card
// shows its front, the first tab is selected and the modal is closed.
func (model *Model) showSubject(id string) bool {
	if err := model.page.Render(model.doc, id, model.resolver); err != nil {
		model.subject = -1
		return false
	}
	for i, s := range model.doc.Subjects {
		if s.ID == id {
			model.subject = i
			model.navIndex = i
		}
	}
	model.deck.Reset()
	model.modal.Close()
	model.cursor = 0

	var ids []string
	if subject := model.currentSubject(); subject != nil && len(subject.Windows) > 0 {
		for _, p := range subject.Partition() {
			ids = append(ids, p.ID)
		}
	}
	model.tabs = interact.NewTabs(ids)
	return true
}

func (model Model) currentSubject() *glossary.Subject {
	if model.subject < 0 || model.subject >= len(model.doc.Subjects) {
		return nil
	}
	return &model.doc.Subjects[model.subject]
}

// Update handles messages.
func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch message := msg.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height

	case searchResultsMsg:
		if model.focus == FocusSearch && message.query == model.input.Value() {
			model.autocomplete.SetResults(message.results)
		}
		return model, model.waitForResults()

	case imagesProbedMsg:
		// Probes swap sources in place; a stale generation changed nothing.

	case copiedMsg:
		model.notice = interact.Notice(message.err)
		model.noticeSeq++
		seq := model.noticeSeq
		return model, tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
			return noticeFadeMsg{seq: seq}
		})

	case noticeFadeMsg:
		if message.seq == model.noticeSeq {
			model.notice = ""
		}
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.String() == "ctrl+c" {
		model.debouncer.Stop()
		return model, tea.Quit
	}
	if model.modal.IsOpen() {
		return model.handleModalKeys(message)
	}
	if model.focus == FocusSearch {
		return model.handleSearchKeys(message)
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		model.debouncer.Stop()
		return model, tea.Quit
	case key.Matches(message, model.keys.Search):
		model.focus = FocusSearch
		return model, model.input.Focus()
	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == FocusNav {
			model.focus = FocusCards
		} else {
			model.focus = FocusNav
		}
		return model, nil
	}

	if model.focus == FocusNav {
		return model.handleNavKeys(message)
	}
	return model.handleCardKeys(message)
}

func (model Model) handleNavKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.navIndex > 0 {
			model.navIndex--
		}
	case key.Matches(message, model.keys.Down):
		if model.navIndex < len(model.doc.Subjects)-1 {
			model.navIndex++
		}
	case key.Matches(message, model.keys.Select):
		if model.navIndex < len(model.doc.Subjects) && model.showSubject(model.doc.Subjects[model.navIndex].ID) {
			model.focus = FocusCards
			return model, model.probeImages()
		}
	}
	return model, nil
}

func (model Model) handleCardKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := model.visibleCards()
	switch {
	case key.Matches(message, model.keys.Left), key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Right), key.Matches(message, model.keys.Down):
		if model.cursor < len(cards)-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.NextTab):
		model.tabs.Next()
		model.cursor = 0
	case key.Matches(message, model.keys.PrevTab):
		model.tabs.Prev()
		model.cursor = 0
	case key.Matches(message, model.keys.Flip):
		if c, ok := model.cursorCard(cards); ok {
			model.deck.Card(c.ID).Click(false)
		}
	case key.Matches(message, model.keys.Expand):
		if c, ok := model.cursorCard(cards); ok {
			model.openModal(c.ID)
		}
	case key.Matches(message, model.keys.Copy):
		if c, ok := model.cursorCard(cards); ok {
			if _, _, card, err := model.doc.Card(c.ID); err == nil {
				return model, model.copyCard(*card)
			}
		}
	}
	return model, nil
}

func (model Model) cursorCard(cards []cardView) (cardView, bool) {
	if model.cursor < 0 || model.cursor >= len(cards) {
		return cardView{}, false
	}
	return cards[model.cursor], true
}

func (model *Model) openModal(cardID string) {
	subject, _, card, err := model.doc.Card(cardID)
	if err != nil {
		return
	}
	model.modal.Open(subject.ID, *card, []string{controlCopy, controlClose}, cardID)
}

func (model Model) handleModalKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Close):
		model.restoreFocus(model.modal.Escape())
	case key.Matches(message, model.keys.ModalPrev):
		model.modal.FocusPrev()
	case key.Matches(message, model.keys.ModalNext):
		model.modal.FocusNext()
	case key.Matches(message, model.keys.ModalActivate):
		switch model.modal.Focused() {
		case controlCopy:
			_, card := model.modal.Card()
			return model, model.copyCard(card)
		case controlClose:
			model.restoreFocus(model.modal.Close())
		}
	case key.Matches(message, model.keys.Copy):
		_, card := model.modal.Card()
		return model, model.copyCard(card)
	}
	return model, nil
}

// restoreFocus puts the cursor back on the card that opened the modal.
func (model *Model) restoreFocus(cardID string) {
	model.focus = FocusCards
	for i, c := range model.visibleCards() {
		if c.ID == cardID {
			model.cursor = i
			return
		}
	}
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.autocomplete.Escape()
		model.input.Blur()
		model.focus = FocusCards
		return model, nil
	case tea.KeyDown:
		model.autocomplete.Down()
		return model, nil
	case tea.KeyUp:
		model.autocomplete.Up()
		return model, nil
	case tea.KeyEnter:
		match, ok := model.autocomplete.Enter()
		if !ok {
			return model, nil
		}
		model.autocomplete.Close()
		model.input.Blur()
		model.focus = FocusCards
		return model, model.navigate(match)
	}

	before := model.input.Value()
	var cmd tea.Cmd
	model.input, cmd = model.input.Update(message)
	if value := model.input.Value(); value != before {
		if utf8.RuneCountInString(strings.TrimSpace(value)) < minQuery(model.opts.Search) {
			model.autocomplete.Close()
		}
		model.debouncer.Trigger(value)
	}
	return model, cmd
}

func minQuery(opts search.Options) int {
	if opts.MinQueryLength > 0 {
		return opts.MinQueryLength
	}
	return search.DefaultMinQueryLength
}

// navigate shows the subject of a search result and moves the cursor to
// the matched group or card.
func (model *Model) navigate(match search.Match) tea.Cmd {
	var cmd tea.Cmd
	if current := model.currentSubject(); current == nil || current.ID != match.SubjectID {
		if !model.showSubject(match.SubjectID) {
			return nil
		}
		cmd = model.probeImages()
	}

	if match.GroupID != "" {
		for _, p := range model.currentSubject().Partition() {
			for _, g := range p.Groups {
				if g.ID == match.GroupID {
					model.tabs.SelectID(p.ID)
				}
			}
		}
	}
	model.cursor = 0
	for i, c := range model.visibleCards() {
		if (match.CardID != "" && c.ID == match.CardID) || (match.CardID == "" && match.GroupID != "" && c.GroupID == match.GroupID) {
			model.cursor = i
			break
		}
	}
	return cmd
}

func (model Model) copyCard(card glossary.Card) tea.Cmd {
	clip := model.clipboard
	text := interact.CopyText(card)
	return func() tea.Msg {
		return copiedMsg{err: clip.Copy(text)}
	}
}

// Focus returns the region that receives key presses.
func (model Model) Focus() Focus { return model.focus }

// Notice returns the transient status message.
func (model Model) Notice() string { return model.notice }

// SubjectID returns the shown subject, or "".
func (model Model) SubjectID() string { return model.page.SubjectID() }
