// Package funspec is the function-style front-end: branches nest through
// Describe and leaves register through Test, with the composed name read
// straight off the nesting.
//
//	s := funspec.New("StackSpec")
//	s.Describe("A Stack", func(d *funspec.Scope) {
//		d.Test("pops values in last-in-first-out order", popBody)
//		d.Describe("when empty", func(d *funspec.Scope) {
//			d.Test("complains on pop", complainBody)
//		})
//	})
package funspec

import (
	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
	"github.com/polyspec/core/pkg/engine/styles"
)

// Suite registers tests under nested described scopes.
type Suite struct {
	*styles.Core
}

var _ styles.Suite = (*Suite)(nil)

// Option is a functional option for configuring a Suite.
type Option func(*config)

type config struct {
	factory styles.FixtureFactory
}

// WithFixture sets the factory whose fixture is handed to every test body
// run through the default runner.
func WithFixture(factory styles.FixtureFactory) Option {
	return func(c *config) {
		c.factory = factory
	}
}

// New creates an empty suite with the given display name.
func New(name string, opts ...Option) *Suite {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	eng := engine.New(engine.WithStyle("funspec"))
	return &Suite{Core: styles.NewCore(name, cfg.factory, eng)}
}

// Scope is one described level of the suite. Its methods register children
// of that level.
type Scope struct {
	suite  *Suite
	branch engine.BranchID
}

// Describe opens a top-level branch and runs fn against it.
func (s *Suite) Describe(description string, fn func(*Scope)) error {
	return describeAt(s, engine.RootBranch, description, fn)
}

// Test registers a top-level test.
func (s *Suite) Test(text string, body domain.TestBody, tags ...string) error {
	return testAt(s, engine.RootBranch, text, body, false, tags)
}

// Ignore registers a top-level test that is reported but never run.
func (s *Suite) Ignore(text string, body domain.TestBody, tags ...string) error {
	return testAt(s, engine.RootBranch, text, body, true, tags)
}

// Describe opens a nested branch and runs fn against it.
func (sc *Scope) Describe(description string, fn func(*Scope)) error {
	return describeAt(sc.suite, sc.branch, description, fn)
}

// Test registers a test at this level.
func (sc *Scope) Test(text string, body domain.TestBody, tags ...string) error {
	return testAt(sc.suite, sc.branch, text, body, false, tags)
}

// Ignore registers a test at this level that is reported but never run.
func (sc *Scope) Ignore(text string, body domain.TestBody, tags ...string) error {
	return testAt(sc.suite, sc.branch, text, body, true, tags)
}

func describeAt(s *Suite, parent engine.BranchID, description string, fn func(*Scope)) error {
	id, err := s.Engine().RegisterBranch(parent, description,
		engine.WithClause("describe"),
		engine.WithCallerSkip(2),
	)
	if err != nil {
		return s.RecordErr(err)
	}
	if fn != nil {
		fn(&Scope{suite: s, branch: id})
	}
	return nil
}

func testAt(s *Suite, parent engine.BranchID, text string, body domain.TestBody, ignored bool, tags []string) error {
	clause := "test"
	if ignored {
		clause = "ignore"
	}
	opts := []engine.RegOption{
		engine.WithClause(clause),
		engine.WithCallerSkip(2),
		engine.WithTags(tags...),
	}

	var err error
	if ignored {
		_, err = s.Engine().RegisterIgnoredTest(parent, text, body, opts...)
	} else {
		_, err = s.Engine().RegisterTest(parent, text, body, opts...)
	}
	return s.RecordErr(err)
}
