package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LogReporter{Out: &buf}
	r.Start(2)
	r.Update(1, "subject-S1.html")
	r.Warn("S1/c2.png: image not found")
	r.Update(2, "index.html")
	r.Finish()

	out := buf.String()
	for _, want := range []string{
		"Rendering 2 pages",
		"[1/2] subject-S1.html",
		"warning: S1/c2.png: image not found",
		"[2/2] index.html",
		"complete with 1 warning(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminalReporterDefersWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{Out: &buf}
	r.Start(1)
	r.Warn("S1/c9.png: image not found")
	if strings.Contains(buf.String(), "warning:") {
		t.Error("warnings should wait for Finish")
	}
	r.Update(1, "index.html")
	r.Finish()
	if !strings.Contains(buf.String(), "warning: S1/c9.png: image not found") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter().(*LogReporter); !ok {
		t.Error("CI environment should get a LogReporter")
	}
}
