package interact

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/ziadkadry99/glossary/internal/glossary"
)

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	Copy(text string) error
}

// OSC52Clipboard copies through the terminal using the OSC 52 escape
// sequence, so it also works over SSH.
type OSC52Clipboard struct {
	// Out receives the escape sequence. Nil writes to /dev/tty.
	Out io.Writer
}

// Copy implements Clipboard.
func (c OSC52Clipboard) Copy(text string) error {
	out := c.Out
	if out == nil {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		defer tty.Close()
		out = tty
	}

	seq := osc52.New(text)
	if inTmux() {
		if _, err := seq.Tmux().WriteTo(out); err != nil {
			return fmt.Errorf("writing clipboard sequence: %w", err)
		}
	}
	if _, err := seq.WriteTo(out); err != nil {
		return fmt.Errorf("writing clipboard sequence: %w", err)
	}
	return nil
}

func inTmux() bool {
	return os.Getenv("TMUX") != "" ||
		strings.HasPrefix(os.Getenv("TERM"), "tmux") ||
		strings.HasPrefix(os.Getenv("TERM"), "screen")
}

// CopyText is what the copy control puts on the clipboard for a card.
func CopyText(c glossary.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s / %s", c.ES, c.EN)
	if c.DefES != "" {
		fmt.Fprintf(&b, "\nES: %s", c.DefES)
	}
	if c.DefEN != "" {
		fmt.Fprintf(&b, "\nEN: %s", c.DefEN)
	}
	return b.String()
}

// Notice is the transient message shown after a copy attempt. Failures
// are reported, never propagated.
func Notice(err error) string {
	if err != nil {
		return "Copy failed: " + err.Error()
	}
	return "Copied to clipboard"
}
