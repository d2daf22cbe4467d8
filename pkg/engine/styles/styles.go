// Package styles carries the pieces shared by every suite style front-end.
// Core is the embeddable engine plumbing; Suite is the interface hosts use
// to drive any style generically.
package styles

import (
	"fmt"
	"sync"

	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
)

// Suite is the surface every style front-end exposes. Hosts that drive
// suites generically (reporters, integration harnesses) depend on this
// interface rather than on a concrete style.
type Suite interface {
	// Name returns the suite's display name.
	Name() string

	// TestNames returns composed test names in registration order.
	TestNames() []string

	// Tags maps composed test names to their tags. Untagged tests have no
	// entry.
	Tags() map[string]domain.TagSet

	// CountTests returns the number of registered tests.
	CountTests() int

	// Outline returns the registration tree view.
	Outline() domain.Branch

	// Err returns the first construction error, if any.
	Err() error

	// Runner returns the suite's default per-test runner.
	Runner() func(domain.Test) domain.Outcome

	// Run executes the suite.
	Run(cfg engine.RunConfig, hooks engine.Hooks) error
}

// FixtureFactory builds the fixture handed to each test body. The teardown
// function runs after the body returns; both fixture and teardown may be
// nil.
type FixtureFactory func() (fixture any, teardown func(), err error)

// RunOne returns the default per-test runner: build a fixture, invoke the
// body, tear down, and convert panics into failed outcomes. A nil body
// reports pending.
func RunOne(factory FixtureFactory) func(domain.Test) domain.Outcome {
	return func(t domain.Test) (out domain.Outcome) {
		defer func() {
			if r := recover(); r != nil {
				out = domain.Failed(fmt.Errorf("test %q panicked: %v", t.Name, r))
			}
		}()

		if t.Body == nil {
			return domain.Pending()
		}

		var fixture any
		if factory != nil {
			fx, teardown, err := factory()
			if err != nil {
				return domain.Failed(fmt.Errorf("fixture: %w", err))
			}
			if teardown != nil {
				defer teardown()
			}
			fixture = fx
		}

		return t.Body(fixture)
	}
}

// Core is the engine plumbing the style front-ends embed. It adds a sticky
// construction error and the default run entry point on top of the engine.
type Core struct {
	name    string
	eng     *engine.Engine
	factory FixtureFactory

	mu  sync.Mutex
	err error
}

// NewCore wires a style front-end to its engine.
func NewCore(name string, factory FixtureFactory, eng *engine.Engine) *Core {
	return &Core{name: name, eng: eng, factory: factory}
}

// Name returns the suite's display name.
func (c *Core) Name() string { return c.name }

// Engine exposes the underlying engine to the owning style.
func (c *Core) Engine() *engine.Engine { return c.eng }

// Err returns the first construction error, if any. Registration methods
// return their errors directly as well; the sticky copy lets a suite built
// in one expression be checked once before running.
func (c *Core) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// RecordErr keeps the first non-nil construction error and returns its
// argument unchanged.
func (c *Core) RecordErr(err error) error {
	if err == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
	return err
}

// TestNames returns composed test names in registration order.
func (c *Core) TestNames() []string { return c.eng.TestNames() }

// Tags maps composed test names to their tags.
func (c *Core) Tags() map[string]domain.TagSet { return c.eng.Tags() }

// CountTests returns the number of registered tests.
func (c *Core) CountTests() int { return c.eng.CountTests() }

// Outline returns the registration tree view.
func (c *Core) Outline() domain.Branch { return c.eng.Outline() }

// Runner returns the suite's default per-test runner, fixture plumbing
// included. Callers that need to observe or wrap execution use this instead
// of re-implementing the fixture protocol.
func (c *Core) Runner() func(domain.Test) domain.Outcome {
	return RunOne(c.factory)
}

// Run executes the suite. A recorded construction error fails the run
// before anything executes. When hooks carry no RunTest, the default
// fixture-aware runner is used.
func (c *Core) Run(cfg engine.RunConfig, hooks engine.Hooks) error {
	if err := c.Err(); err != nil {
		return err
	}
	if hooks.RunTest == nil {
		hooks.RunTest = RunOne(c.factory)
	}
	return c.eng.RunTests(cfg, hooks)
}
