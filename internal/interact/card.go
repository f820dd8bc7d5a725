// Package interact holds the transient UI state of the glossary: flipped
// cards, the detail modal, tab selection and the autocomplete list. The
// state machines are display-independent; the terminal browser and the
// tests drive them directly.
package interact

// Face is the visible side of a card.
type Face int

const (
	Front Face = iota
	Flipped
)

func (f Face) String() string {
	if f == Flipped {
		return "flipped"
	}
	return "front"
}

// CardState is the flip state of one card. It toggles on every flip and
// never returns to the front on its own.
type CardState struct {
	face Face
}

// Face returns the visible side.
func (c *CardState) Face() Face { return c.face }

// Flip toggles the card.
func (c *CardState) Flip() {
	if c.face == Front {
		c.face = Flipped
	} else {
		c.face = Front
	}
}

// Click handles a pointer click on the card body. Clicks on one of the
// card's controls (expand, copy) do not flip it.
func (c *CardState) Click(onControl bool) {
	if !onControl {
		c.Flip()
	}
}

// Deck tracks the flip state of every card on the current subject. It is
// discarded on navigation.
type Deck struct {
	cards map[string]*CardState
}

// NewDeck returns a deck with every card showing its front.
func NewDeck() *Deck {
	return &Deck{cards: make(map[string]*CardState)}
}

// Card returns the state for a card id, creating it on first use.
func (d *Deck) Card(id string) *CardState {
	s, ok := d.cards[id]
	if !ok {
		s = &CardState{}
		d.cards[id] = s
	}
	return s
}

// Face returns the visible side of a card without creating state for it.
func (d *Deck) Face(id string) Face {
	if s, ok := d.cards[id]; ok {
		return s.face
	}
	return Front
}

// Reset turns every card back to its front.
func (d *Deck) Reset() {
	d.cards = make(map[string]*CardState)
}
