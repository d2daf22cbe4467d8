// Package engine implements the registration and execution core shared by
// all suite styles: a tree of branches and tests assembled during a
// registration phase, then frozen and walked by the execution driver.
//
// The whole mutable surface is one atomically published cell holding the
// lifecycle phase and the current registry snapshot. Registration replaces
// the cell with a single compare-and-swap; a lost swap is diagnosed as
// concurrent construction rather than retried. Readers in other goroutines
// always observe a complete snapshot.
package engine

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/polyspec/core/pkg/domain"
)

// Phase is the lifecycle phase of an Engine.
type Phase int32

const (
	// PhaseRegistering accepts branch and test registrations.
	PhaseRegistering Phase = iota
	// PhaseRunning rejects further registrations. The transition is
	// one-way and idempotent.
	PhaseRunning
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRegistering:
		return "registering"
	case PhaseRunning:
		return "running"
	default:
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
}

// maxPublishAttempts bounds the compare-and-swap loop that publishes the
// transition into the running phase. Exhausting it means registrations kept
// racing the run entry point, which only concurrent construction can cause.
const maxPublishAttempts = 64

// engineState pairs the phase with the registry snapshot it applies to.
// Both always change together through one atomic pointer swap.
type engineState struct {
	phase Phase
	reg   *registry
}

// Engine owns one suite's registration tree and drives its execution. The
// zero value is not usable; call New.
//
// Registration is single-threaded by contract. Queries and runs may happen
// from any goroutine: the snapshot swap publishes every registration that
// happened before it.
type Engine struct {
	state         atomic.Pointer[engineState]
	style         string
	reservedVerbs []string
}

// New creates an engine in the registering phase.
func New(opts ...Option) *Engine {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	e := &Engine{
		style:         options.Style,
		reservedVerbs: options.ReservedVerbs,
	}
	e.state.Store(&engineState{phase: PhaseRegistering, reg: newRegistry()})
	return e
}

// publish applies one registration against the current snapshot and installs
// the result with a single compare-and-swap. The swap either publishes the
// full registration or fails because another goroutine registered in the
// meantime; there is no in-between state a reader could observe.
func publish[T any](e *Engine, clause string, apply func(*registry) (*registry, T, error)) (T, error) {
	var zero T

	cur := e.state.Load()
	if cur.phase != PhaseRegistering {
		return zero, RegistrationClosedError{Style: e.style, Clause: clause}
	}

	next, val, err := apply(cur.reg)
	if err != nil {
		return zero, err
	}

	if !e.state.CompareAndSwap(cur, &engineState{phase: PhaseRegistering, reg: next}) {
		return zero, ConcurrentRegistrationError{Style: e.style}
	}
	return val, nil
}

// RegisterBranch adds a nested branch under parent and returns its handle.
// Pass RootBranch for a top-level branch.
func (e *Engine) RegisterBranch(parent BranchID, description string, opts ...RegOption) (BranchID, error) {
	ro := applyRegOptions("branch", opts)
	loc := domain.CaptureLocation(ro.callerSkip + 1)

	return publish(e, ro.clause, func(r *registry) (*registry, BranchID, error) {
		return r.registerBranch(parent, description, loc)
	})
}

// RegisterTest adds an active test under parent and returns its composed
// name.
func (e *Engine) RegisterTest(parent BranchID, text string, body domain.TestBody, opts ...RegOption) (string, error) {
	return e.addTest(parent, text, body, false, "test", opts)
}

// RegisterIgnoredTest adds a test that every run reports as ignored and
// never executes. The reserved ignore tag is attached on top of any tags
// supplied by the caller.
func (e *Engine) RegisterIgnoredTest(parent BranchID, text string, body domain.TestBody, opts ...RegOption) (string, error) {
	return e.addTest(parent, text, body, true, "ignored test", opts)
}

func (e *Engine) addTest(parent BranchID, text string, body domain.TestBody, ignored bool, defaultClause string, opts []RegOption) (string, error) {
	ro := applyRegOptions(defaultClause, opts)

	if strings.TrimSpace(text) == "" {
		return "", IllegalNameError{Text: text, Reason: "test text must not be blank"}
	}
	if err := e.checkReservedVerbs(text, ro.clause); err != nil {
		return "", err
	}

	leaf := text
	if ro.verb != "" {
		leaf = ro.verb + " " + text
	}

	tagNames := ro.tags
	if ignored {
		tagNames = append(append([]string(nil), ro.tags...), domain.TagIgnored)
	}
	tags := domain.NewTagSet(tagNames...)

	loc := domain.CaptureLocation(ro.callerSkip + 2)

	return publish(e, ro.clause, func(r *registry) (*registry, string, error) {
		return r.registerTest(parent, leaf, body, tags, loc)
	})
}

// checkReservedVerbs rejects text that begins with a verb the owning style
// supplies itself. Accepting it would compose a sentence with the verb
// twice.
func (e *Engine) checkReservedVerbs(text, clause string) error {
	for _, verb := range e.reservedVerbs {
		if strings.HasPrefix(text, verb+" ") {
			return IllegalNameError{
				Text:   text,
				Reason: fmt.Sprintf("text begins with the reserved verb %q, which the %s clause supplies already", verb, clause),
			}
		}
	}
	return nil
}

// TestNames returns the composed names of all registered tests in
// registration order.
func (e *Engine) TestNames() []string {
	return e.state.Load().reg.testNames()
}

// Tags returns a map from composed test name to that test's tags. Tests
// without tags have no entry.
func (e *Engine) Tags() map[string]domain.TagSet {
	return e.state.Load().reg.tagsOf()
}

// Outline returns the registration tree as an immutable view rooted at the
// implicit unnamed branch.
func (e *Engine) Outline() domain.Branch {
	return e.state.Load().reg.outline()
}

// CountTests returns the number of registered tests.
func (e *Engine) CountTests() int {
	return len(e.state.Load().reg.tests)
}

// Phase returns the engine's current lifecycle phase.
func (e *Engine) Phase() Phase {
	return e.state.Load().phase
}
