package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while a site is generated. Warn
// reports a degraded but non-fatal condition such as a missing image.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Warn(message string)
	Finish()
}

// NewReporter returns a LogReporter writing to stderr if the CI environment
// variable is set, or a TerminalReporter otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LogReporter{Out: os.Stderr}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int)          {}
func (Nop) Update(int, string) {}
func (Nop) Warn(string)        {}
func (Nop) Finish()            {}

// TerminalReporter displays a progress bar. Warnings are held back until
// Finish so they do not tear the bar.
type TerminalReporter struct {
	Out      io.Writer
	bar      *progressbar.ProgressBar
	warnings []string
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription("Rendering subjects"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Warn(message string) {
	r.warnings = append(r.warnings, message)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	for _, w := range r.warnings {
		fmt.Fprintf(r.Out, "warning: %s\n", w)
	}
}

// LogReporter prints line-by-line progress suitable for CI logs.
type LogReporter struct {
	Out      io.Writer
	total    int
	warnings int
}

func (r *LogReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.Out, "Rendering %d pages\n", total)
}

func (r *LogReporter) Update(current int, message string) {
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", current, r.total, message)
}

func (r *LogReporter) Warn(message string) {
	r.warnings++
	fmt.Fprintf(r.Out, "warning: %s\n", message)
}

func (r *LogReporter) Finish() {
	if r.warnings > 0 {
		fmt.Fprintf(r.Out, "Site generation complete with %d warning(s)\n", r.warnings)
		return
	}
	fmt.Fprintln(r.Out, "Site generation complete")
}
