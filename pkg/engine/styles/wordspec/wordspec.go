// Package wordspec is the sentence-style front-end: subjects read as nouns
// and clauses as verbs, composing names like
// "A Stack should pop values in last-in-first-out order".
//
//	s := wordspec.New("StackSpec")
//	s.Subject("A Stack", func(w *wordspec.Subject) {
//		w.Should("pop values in last-in-first-out order", popBody)
//		w.When("empty", func(w *wordspec.Subject) {
//			w.Must("complain on pop", complainBody)
//		})
//	})
//
// The verbs should, must and can are supplied by the clause itself, so
// clause text beginning with one of them is rejected as illegal.
package wordspec

import (
	"strings"

	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
	"github.com/polyspec/core/pkg/engine/styles"
)

// Verb is one of the sentence verbs a clause can carry.
type Verb string

// Verbs reserved by this style.
const (
	Should Verb = "should"
	Must   Verb = "must"
	Can    Verb = "can"
)

// Suite registers verb-sentence tests under noun subjects.
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

	eng := engine.New(
		engine.WithStyle("wordspec"),
		engine.WithReservedVerbs(string(Should), string(Must), string(Can)),
	)
	return &Suite{Core: styles.NewCore(name, cfg.factory, eng)}
}

// Subject is one noun scope of the suite. Its methods register the verb
// clauses and nested conditions of that scope.
type Subject struct {
	suite  *Suite
	branch engine.BranchID
}

// Subject opens a top-level noun scope and runs fn against it.
func (s *Suite) Subject(text string, fn func(*Subject)) error {
	id, err := s.Engine().RegisterBranch(engine.RootBranch, text,
		engine.WithClause("subject"),
		engine.WithCallerSkip(1),
	)
	if err != nil {
		return s.RecordErr(err)
	}
	if fn != nil {
		fn(&Subject{suite: s, branch: id})
	}
	return nil
}

// When opens a nested condition scope. Its description reads as
// "when <text>" inside composed names.
func (sub *Subject) When(text string, fn func(*Subject)) error {
	if strings.TrimSpace(text) == "" {
		return sub.suite.RecordErr(engine.IllegalNameError{
			Text:   text,
			Reason: "condition text must not be blank",
		})
	}
	id, err := sub.suite.Engine().RegisterBranch(sub.branch, "when "+text,
		engine.WithClause("when"),
		engine.WithCallerSkip(1),
	)
	if err != nil {
		return sub.suite.RecordErr(err)
	}
	if fn != nil {
		fn(&Subject{suite: sub.suite, branch: id})
	}
	return nil
}

// Should registers a test whose sentence carries the verb "should".
func (sub *Subject) Should(text string, body domain.TestBody, tags ...string) error {
	return sub.clause(Should, text, body, false, tags)
}

// Must registers a test whose sentence carries the verb "must".
func (sub *Subject) Must(text string, body domain.TestBody, tags ...string) error {
	return sub.clause(Must, text, body, false, tags)
}

// Can registers a test whose sentence carries the verb "can".
func (sub *Subject) Can(text string, body domain.TestBody, tags ...string) error {
	return sub.clause(Can, text, body, false, tags)
}

// Ignore registers a verb clause that is reported but never run.
func (sub *Subject) Ignore(v Verb, text string, body domain.TestBody, tags ...string) error {
	return sub.clause(v, text, body, true, tags)
}

func (sub *Subject) clause(v Verb, text string, body domain.TestBody, ignored bool, tags []string) error {
	opts := []engine.RegOption{
		engine.WithVerb(string(v)),
		engine.WithClause(string(v)),
		engine.WithCallerSkip(2),
		engine.WithTags(tags...),
	}

	var err error
	if ignored {
		_, err = sub.suite.Engine().RegisterIgnoredTest(sub.branch, text, body, opts...)
	} else {
		_, err = sub.suite.Engine().RegisterTest(sub.branch, text, body, opts...)
	}
	return sub.suite.RecordErr(err)
}
