// Package tablespec registers the rows of a test table as one flat suite:
// each row's text is its composed name.
//
//	s, err := tablespec.FromRows("MathSuite", []tablespec.Row{
//		{Text: "addition carries", Body: addBody},
//		{Text: "division by zero fails", Body: divBody, Tags: []string{"edge"}},
//		{Text: "modulo wraps", Ignore: true},
//	})
package tablespec

import (
	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
	"github.com/polyspec/core/pkg/engine/styles"
)

// Row is one entry of a test table.
type Row struct {
	// Text is the row's leaf text and, the suite being flat, its composed
	// name.
	Text string

	// Body runs when the row executes. A nil body reports pending under
	// the default runner.
	Body domain.TestBody

	// Tags attach to the row.
	Tags []string

	// Ignore registers the row as ignored: reported, never run.
	Ignore bool
}

// Suite registers table rows as root-level tests.
type Suite struct {
	*styles.Core
}

var _ styles.Suite = (*Suite)(nil)

// Option is a functional option for configuring a Suite.
type Option func(*config)

type config struct {
	factory styles.FixtureFactory
}

// WithFixture sets the factory whose fixture is handed to every row body
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

	eng := engine.New(engine.WithStyle("tablespec"))
	return &Suite{Core: styles.NewCore(name, cfg.factory, eng)}
}

// FromRows builds a suite and appends rows in order. The first bad row
// stops registration and is returned alongside the partially built suite.
func FromRows(name string, rows []Row, opts ...Option) (*Suite, error) {
	s := New(name, opts...)
	if err := s.appendRows(rows); err != nil {
		return s, err
	}
	return s, nil
}

// Append registers rows in order. Registration stops at the first error.
func (s *Suite) Append(rows ...Row) error {
	return s.appendRows(rows)
}

func (s *Suite) appendRows(rows []Row) error {
	for _, row := range rows {
		if err := s.appendRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Suite) appendRow(row Row) error {
	opts := []engine.RegOption{
		engine.WithClause("row"),
		engine.WithCallerSkip(3),
		engine.WithTags(row.Tags...),
	}

	var err error
	if row.Ignore {
		_, err = s.Engine().RegisterIgnoredTest(engine.RootBranch, row.Text, row.Body, opts...)
	} else {
		_, err = s.Engine().RegisterTest(engine.RootBranch, row.Text, row.Body, opts...)
	}
	return s.RecordErr(err)
}
