package report

import (
	"sync"
	"time"

	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
	"github.com/polyspec/core/pkg/engine/styles"
)

// Reporter consumes run events. Implementations must tolerate events from
// concurrent suite runs.
type Reporter interface {
	Report(ev Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ev Event)

// Report calls f(ev).
func (f ReporterFunc) Report(ev Event) { f(ev) }

// Multi fans each event out to every reporter, in order.
func Multi(reporters ...Reporter) Reporter {
	return ReporterFunc(func(ev Event) {
		for _, r := range reporters {
			r.Report(ev)
		}
	})
}

// Hooks adapts a reporter into engine hooks for one suite. The runner
// executes each test body; its outcome decides which terminal event is
// emitted. Elapsed covers the runner call only.
func Hooks(suite string, rep Reporter, runner func(domain.Test) domain.Outcome) engine.Hooks {
	// The engine hands RunTest the test alone; the path seen by the
	// preceding start notification is kept so terminal events carry it too.
	var mu sync.Mutex
	started := make(map[string][]string)

	return engine.Hooks{
		OnBranchEntered: func(ev engine.BranchEvent) {
			rep.Report(Event{
				Time:   time.Now(),
				Action: ActionBranchEnter,
				Suite:  suite,
				Name:   ev.Description,
				Path:   ev.Path,
			})
		},
		OnBranchExited: func(ev engine.BranchEvent) {
			rep.Report(Event{
				Time:   time.Now(),
				Action: ActionBranchExit,
				Suite:  suite,
				Name:   ev.Description,
				Path:   ev.Path,
			})
		},
		OnTestStarting: func(ev engine.TestEvent) {
			mu.Lock()
			started[ev.Name] = ev.Path
			mu.Unlock()

			rep.Report(Event{
				Time:   time.Now(),
				Action: ActionTestStart,
				Suite:  suite,
				Name:   ev.Name,
				Path:   ev.Path,
				Tags:   ev.Tags,
			})
		},
		OnTestIgnored: func(ev engine.TestEvent) {
			rep.Report(Event{
				Time:   time.Now(),
				Action: ActionTestIgnore,
				Suite:  suite,
				Name:   ev.Name,
				Path:   ev.Path,
				Tags:   ev.Tags,
			})
		},
		RunTest: func(t domain.Test) domain.Outcome {
			start := time.Now()
			out := runner(t)

			mu.Lock()
			path := started[t.Name]
			delete(started, t.Name)
			mu.Unlock()

			ev := Event{
				Time:    time.Now(),
				Suite:   suite,
				Name:    t.Name,
				Path:    path,
				Tags:    t.Tags,
				Elapsed: time.Since(start),
			}
			switch out.Status {
			case domain.OutcomeFailed:
				ev.Action = ActionTestFail
				ev.Err = out.Err
			case domain.OutcomePending:
				ev.Action = ActionTestPending
			default:
				ev.Action = ActionTestPass
			}
			rep.Report(ev)

			return out
		},
	}
}

// Run executes a suite with its default runner, bracketing the run with
// suite.start and suite.done events. The returned error is the suite's:
// construction errors, bad run configuration, or an unknown selected test.
func Run(s styles.Suite, cfg engine.RunConfig, rep Reporter) error {
	rep.Report(Event{Time: time.Now(), Action: ActionSuiteStart, Suite: s.Name()})

	start := time.Now()
	err := s.Run(cfg, Hooks(s.Name(), rep, s.Runner()))

	rep.Report(Event{
		Time:    time.Now(),
		Action:  ActionSuiteDone,
		Suite:   s.Name(),
		Elapsed: time.Since(start),
		Err:     err,
	})

	return err
}

// Summary tallies terminal events across one or more runs. Safe for
// concurrent use.
type Summary struct {
	mu       sync.Mutex
	passed   int
	failed   int
	pending  int
	ignored  int
	executed []string
	failures []Event
}

// Report records terminal events and discards the rest.
func (s *Summary) Report(ev Event) {
	if !ev.Action.IsTerminal() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Action {
	case ActionTestPass:
		s.passed++
		s.executed = append(s.executed, ev.Name)
	case ActionTestFail:
		s.failed++
		s.executed = append(s.executed, ev.Name)
		s.failures = append(s.failures, ev)
	case ActionTestPending:
		s.pending++
		s.executed = append(s.executed, ev.Name)
	case ActionTestIgnore:
		s.ignored++
	}
}

// Passed returns the number of passed tests.
func (s *Summary) Passed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passed
}

// Failed returns the number of failed tests.
func (s *Summary) Failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Pending returns the number of tests that ran without a body.
func (s *Summary) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Ignored returns the number of ignored-test notifications.
func (s *Summary) Ignored() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ignored
}

// Executed returns the composed names of tests that ran, in event order.
func (s *Summary) Executed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.executed...)
}

// Failures returns the test.fail events recorded so far.
func (s *Summary) Failures() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.failures...)
}

// OK reports whether no test has failed.
func (s *Summary) OK() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed == 0
}
