package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/glossary/internal/interact"
	"github.com/ziadkadry99/glossary/internal/view"
)

// cardWidth is the width of one rendered card, borders included.
const cardWidth = 34

// cardView is a card as painted on the page.
type cardView struct {
	ID      string
	GroupID string
	ES      string
	EN      string
	DefES   string
	DefEN   string
	Image   string
}

// visibleCards reads the cards of the selected panel from the page tree.
func (model Model) visibleCards() []cardView {
	root := model.page.Snapshot()
	if model.tabs.Len() > 0 {
		panel := root.FindID(view.PanelDOMID(model.tabs.SelectedID()))
		if panel == nil {
			return nil
		}
		root = panel
	}

	var cards []cardView
	for _, group := range root.FindAll("group") {
		groupID, _ := group.Attr("data-group")
		for _, card := range group.FindAll("card") {
			cards = append(cards, readCard(card, groupID))
		}
	}
	return cards
}

func readCard(card *view.Node, groupID string) cardView {
	text := func(class string) string {
		if n := card.Find(class); n != nil {
			return strings.TrimSpace(n.TextContent())
		}
		return ""
	}
	id, _ := card.Attr("data-card")
	c := cardView{
		ID:      id,
		GroupID: groupID,
		ES:      text("term-es"),
		EN:      text("term-en"),
		DefES:   text("definition-es"),
		DefEN:   text("definition-en"),
	}
	if img := card.Find("card-image"); img != nil {
		src, _ := img.Attr("src")
		if placeholder, _ := img.Attr("data-placeholder"); src != placeholder {
			c.Image = src
		}
	}
	return c
}

// View renders the browser.
func (model Model) View() string {
	if model.modal.IsOpen() {
		return model.renderModal()
	}

	header := model.renderHeader()
	nav := model.renderNav()
	content := model.renderContent()
	body := lipgloss.JoinHorizontal(lipgloss.Top, nav, " ", content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, model.renderStatus())
}

func (model Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Accent).Render(model.page.Title())
	lines := []string{title, model.input.View()}

	if results := model.autocomplete.Results(); len(results) > 0 {
		active := model.autocomplete.Active()
		normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
		selected := lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground)
		faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

		var rows []string
		for i, m := range results {
			style := normal
			if i == active {
				style = selected
			}
			row := style.Render(fmt.Sprintf("%-7s %s", m.Kind, m.Text))
			if m.Detail != "" {
				row += " " + faint.Render(m.Detail)
			}
			rows = append(rows, row)
		}
		lines = append(lines, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(model.theme.BorderColor).
			Render(strings.Join(rows, "\n")))
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderNav() string {
	border := model.theme.BorderColor
	if model.focus == FocusNav {
		border = model.theme.FocusBorder
	}
	normal := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	selected := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)

	var rows []string
	for i, s := range model.doc.Subjects {
		marker := "  "
		if i == model.subject {
			marker = "▸ "
		}
		style := normal
		if model.focus == FocusNav && i == model.navIndex {
			style = selected
		}
		rows = append(rows, style.Render(marker+strings.TrimSpace(s.Code+" "+s.Title)))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(border).
		Width(28).
		Render(strings.Join(rows, "\n"))
}

func (model Model) renderContent() string {
	root := model.page.Snapshot()
	if placeholder := root.Find("placeholder"); placeholder != nil {
		color := model.theme.FaintText
		if placeholder.HasClass("placeholder-error") {
			color = model.theme.ErrorText
		}
		return lipgloss.NewStyle().Foreground(color).Padding(1, 2).Render(strings.TrimSpace(placeholder.TextContent()))
	}

	var sections []string
	if header := root.Find("subject-header"); header != nil {
		code, title := "", ""
		if n := header.Find("subject-code"); n != nil {
			code = n.TextContent()
		}
		if n := header.Find("subject-title"); n != nil {
			title = n.TextContent()
		}
		sections = append(sections, lipgloss.NewStyle().Bold(true).Render(strings.TrimSpace(code+" "+title)))
		if n := header.Find("subject-description"); n != nil {
			sections = append(sections, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(strings.TrimSpace(n.TextContent())))
		}
	}

	if tabs := root.Find("tabs"); tabs != nil && model.tabs.Len() > 0 {
		var labels []string
		for i, tab := range tabs.Children {
			style := lipgloss.NewStyle().Padding(0, 1).Foreground(model.theme.FaintText)
			if model.tabs.Visible(i) {
				style = style.Foreground(model.theme.Accent).Underline(true)
			}
			labels = append(labels, style.Render(tab.TextContent()))
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, labels...))
	}

	cards := model.visibleCards()
	perRow := 1
	if model.width > 0 {
		perRow = max(1, (model.width-32)/(cardWidth+1))
	}
	var row []string
	for i, c := range cards {
		row = append(row, model.renderCard(c, i == model.cursor && model.focus == FocusCards))
		if len(row) == perRow || i == len(cards)-1 {
			sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return strings.Join(sections, "\n")
}

func (model Model) renderCard(c cardView, focused bool) string {
	border := model.theme.BorderColor
	if focused {
		border = model.theme.FocusBorder
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cardWidth - 2).
		Height(6)

	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	var lines []string
	if model.deck.Face(c.ID) == interact.Front {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(c.ES))
		if c.Image != "" {
			lines = append(lines, faint.Render("[img] "+c.Image))
		} else {
			lines = append(lines, faint.Render("[no image]"))
		}
	} else {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(c.EN))
		if c.DefES != "" {
			lines = append(lines, "ES: "+c.DefES)
		}
		if c.DefEN != "" {
			lines = append(lines, "EN: "+c.DefEN)
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (model Model) renderModal() string {
	_, card := model.modal.Card()
	focusedStyle := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground).
		Padding(0, 1)
	plain := lipgloss.NewStyle().Padding(0, 1).Foreground(model.theme.FaintText)

	button := func(id, label string) string {
		if model.modal.Focused() == id {
			return focusedStyle.Render(label)
		}
		return plain.Render(label)
	}

	body := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Foreground(model.theme.Accent).Render(card.ES + " / " + card.EN),
		"",
		"ES: " + card.DefES,
		"EN: " + card.DefEN,
		"",
		button(controlCopy, "Copy") + " " + button(controlClose, "Close"),
	}, "\n")
	if model.notice != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(model.notice)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.FocusBorder).
		Padding(1, 2).
		Width(56).
		Render(body)
	if model.width == 0 || model.height == 0 {
		return box
	}
	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, box)
}

func (model Model) renderStatus() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if model.notice != "" {
		return lipgloss.NewStyle().Foreground(model.theme.Accent).Render(model.notice)
	}
	return faint.Render("/ search · Tab switch pane · Space flip · e details · c copy · [ ] tabs · q quit")
}
