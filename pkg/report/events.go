// Package report turns engine hooks into a stream of reporter events and
// ships the standard consumers of that stream, Console and Summary among
// them.
package report

import (
	"strings"
	"time"
)

// Action represents the type of run event.
type Action string

// Action constants for run events.
const (
	ActionSuiteStart  Action = "suite.start"  // Suite run starting
	ActionBranchEnter Action = "branch.enter" // Branch entered
	ActionBranchExit  Action = "branch.exit"  // Branch exited
	ActionTestStart   Action = "test.start"   // Test about to execute
	ActionTestPass    Action = "test.pass"    // Test passed
	ActionTestFail    Action = "test.fail"    // Test failed
	ActionTestPending Action = "test.pending" // Test had no body
	ActionTestIgnore  Action = "test.ignore"  // Test registered as ignored
	ActionSuiteDone   Action = "suite.done"   // Suite run finished
)

// IsTerminal returns true if this action ends a test.
func (a Action) IsTerminal() bool {
	return a == ActionTestPass || a == ActionTestFail || a == ActionTestPending || a == ActionTestIgnore
}

// Event represents a single notification emitted during a run.
type Event struct {
	Time    time.Time     // When the event occurred
	Action  Action        // What happened
	Suite   string        // Owning suite name
	Name    string        // Composed test name or branch description
	Path    []string      // Branch descriptions from the root, leaf text last
	Tags    []string      // Tags of the test, sorted
	Elapsed time.Duration // Time taken (for terminal events and suite.done)
	Err     error         // Failure details (for test.fail and suite.done)
}

// PathString returns the path as a slash-separated string.
func (e Event) PathString() string {
	return strings.Join(e.Path, "/")
}

// Leaf returns the last path element: the branch description or test text
// the event is about. Falls back to Name when the path is empty.
func (e Event) Leaf() string {
	if len(e.Path) == 0 {
		return e.Name
	}
	return e.Path[len(e.Path)-1]
}

// Depth returns the nesting depth of the event under the suite root.
func (e Event) Depth() int {
	if len(e.Path) == 0 {
		return 0
	}
	return len(e.Path) - 1
}
