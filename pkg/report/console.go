package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	subtle  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#626262"}
	good    = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	bad     = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F55081"}
	waiting = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	// Text
	suiteStyle   = lipgloss.NewStyle().Bold(true)
	branchStyle  = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(good)
	failStyle    = lipgloss.NewStyle().Foreground(bad).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(waiting)
	ignoreStyle  = lipgloss.NewStyle().Foreground(subtle)
	metaStyle    = lipgloss.NewStyle().Foreground(subtle)
)

// Console renders run events as an indented tree, one line per branch and
// test. Safe for concurrent use; lines from concurrent runs interleave but
// never interleave within a line.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
	noColor bool
}

// ConsoleOption configures a Console reporter.
type ConsoleOption func(*Console)

// WithVerbose also prints test.start lines and per-test timings.
func WithVerbose(v bool) ConsoleOption {
	return func(c *Console) { c.verbose = v }
}

// WithNoColor disables styling; output is plain text.
func WithNoColor(v bool) ConsoleOption {
	return func(c *Console) { c.noColor = v }
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{w: w}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Report renders one event.
func (c *Console) Report(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	indent := strings.Repeat("  ", ev.Depth())

	switch ev.Action {
	case ActionSuiteStart:
		fmt.Fprintf(c.w, "%s\n", c.render(suiteStyle, ev.Suite))
	case ActionBranchEnter:
		fmt.Fprintf(c.w, "%s%s\n", indent, c.render(branchStyle, ev.Leaf()))
	case ActionTestStart:
		if c.verbose {
			fmt.Fprintf(c.w, "%s%s\n", indent, c.render(metaStyle, "run "+ev.Leaf()))
		}
	case ActionTestPass:
		fmt.Fprintf(c.w, "%s%s%s\n", indent, c.render(passStyle, "✓ "+ev.Leaf()), c.timing(ev))
	case ActionTestFail:
		fmt.Fprintf(c.w, "%s%s%s\n", indent, c.render(failStyle, "✗ "+ev.Leaf()), c.timing(ev))
		if ev.Err != nil {
			fmt.Fprintf(c.w, "%s  %s\n", indent, c.render(metaStyle, ev.Err.Error()))
		}
	case ActionTestPending:
		fmt.Fprintf(c.w, "%s%s\n", indent, c.render(pendingStyle, "? "+ev.Leaf()))
	case ActionTestIgnore:
		fmt.Fprintf(c.w, "%s%s\n", indent, c.render(ignoreStyle, "- "+ev.Leaf()+" (ignored)"))
	case ActionSuiteDone:
		if ev.Err != nil {
			fmt.Fprintf(c.w, "%s\n", c.render(failStyle, fmt.Sprintf("%s: %v", ev.Suite, ev.Err)))
			return
		}
		fmt.Fprintf(c.w, "%s\n", c.render(metaStyle, fmt.Sprintf("%s done in %s", ev.Suite, ev.Elapsed.Round(time.Millisecond))))
	}
}

// timing formats the elapsed suffix for terminal test lines in verbose mode.
func (c *Console) timing(ev Event) string {
	if !c.verbose || ev.Elapsed == 0 {
		return ""
	}
	return c.render(metaStyle, fmt.Sprintf(" (%s)", ev.Elapsed.Round(time.Microsecond)))
}

func (c *Console) render(st lipgloss.Style, s string) string {
	if c.noColor {
		return s
	}
	return st.Render(s)
}
