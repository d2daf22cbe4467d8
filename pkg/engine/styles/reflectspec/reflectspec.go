// Package reflectspec discovers test methods on a value by reflection.
// Exported methods named TestXxx register as active tests and XTestXxx as
// ignored ones, both under the leaf text "TestXxx", so disabling a test by
// prefixing an X keeps its composed name stable. Methods surface in Go's
// reflection order, which is lexical by method name.
//
//	type StackSuite struct{ stack *Stack }
//
//	func (s *StackSuite) TestPop() domain.Outcome  { ... }
//	func (s *StackSuite) TestPush() domain.Outcome { ... }
//
//	suite := reflectspec.New(&StackSuite{stack: NewStack()})
//
// Discovery is lazy: it happens on the first query or run, never during
// construction.
package reflectspec

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
	"github.com/polyspec/core/pkg/engine/styles"
)

// Tagged is the optional interface a target implements to attach tags to
// its test methods, keyed by method name.
type Tagged interface {
	TagsByMethod() map[string][]string
}

// Suite exposes a target value's test methods as a flat suite.
type Suite struct {
	*styles.Core

	target any
	once   sync.Once
}

var _ styles.Suite = (*Suite)(nil)

// Option is a functional option for configuring a Suite.
type Option func(*config)

type config struct {
	name    string
	factory styles.FixtureFactory
}

// WithName overrides the suite's display name. The default is the target's
// type name.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithFixture sets the factory whose fixture is handed to every test body
// run through the default runner. Most targets carry their state on the
// receiver instead.
func WithFixture(factory styles.FixtureFactory) Option {
	return func(c *config) {
		c.factory = factory
	}
}

// New wraps target in a suite. No reflection happens yet.
func New(target any, opts ...Option) *Suite {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.name == "" {
		cfg.name = targetName(target)
	}

	eng := engine.New(engine.WithStyle("reflectspec"))
	return &Suite{
		Core:   styles.NewCore(cfg.name, cfg.factory, eng),
		target: target,
	}
}

func targetName(target any) string {
	if target == nil {
		return "reflectspec.Suite"
	}
	t := reflect.Indirect(reflect.ValueOf(target)).Type()
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// TestNames returns composed test names, discovering methods first if
// needed.
func (s *Suite) TestNames() []string {
	s.discover()
	return s.Core.TestNames()
}

// Tags maps composed test names to their tags, discovering methods first
// if needed.
func (s *Suite) Tags() map[string]domain.TagSet {
	s.discover()
	return s.Core.Tags()
}

// CountTests returns the number of test methods, discovering them first if
// needed.
func (s *Suite) CountTests() int {
	s.discover()
	return s.Core.CountTests()
}

// Outline returns the registration tree view, discovering methods first if
// needed.
func (s *Suite) Outline() domain.Branch {
	s.discover()
	return s.Core.Outline()
}

// Err returns the first discovery or registration error, if any,
// discovering methods first if needed.
func (s *Suite) Err() error {
	s.discover()
	return s.Core.Err()
}

// Run executes the suite, discovering methods first if needed.
func (s *Suite) Run(cfg engine.RunConfig, hooks engine.Hooks) error {
	s.discover()
	return s.Core.Run(cfg, hooks)
}

var outcomeType = reflect.TypeOf(domain.Outcome{})

func (s *Suite) discover() {
	s.once.Do(func() {
		if s.target == nil {
			s.RecordErr(fmt.Errorf("reflectspec: target is nil"))
			return
		}

		v := reflect.ValueOf(s.target)
		t := v.Type()

		var tagsFor map[string][]string
		if tagged, ok := s.target.(Tagged); ok {
			tagsFor = tagged.TagsByMethod()
		}

		for i := 0; i < t.NumMethod(); i++ {
			m := t.Method(i)
			text, ignored, isTest := testMethodName(m.Name)
			if !isTest {
				continue
			}

			bound := v.Method(i)
			if !validSignature(bound.Type()) {
				s.RecordErr(fmt.Errorf("reflectspec: method %s.%s must be func() domain.Outcome", t, m.Name))
				continue
			}

			body := func(any) domain.Outcome {
				return bound.Call(nil)[0].Interface().(domain.Outcome)
			}
			opts := []engine.RegOption{
				engine.WithClause("method"),
				engine.WithTags(tagsFor[m.Name]...),
			}

			var err error
			if ignored {
				_, err = s.Engine().RegisterIgnoredTest(engine.RootBranch, text, body, opts...)
			} else {
				_, err = s.Engine().RegisterTest(engine.RootBranch, text, body, opts...)
			}
			if err != nil {
				s.RecordErr(err)
			}
		}
	})
}

// testMethodName classifies a method name. "TestPop" is an active test and
// "XTestPop" an ignored one; both register leaf text "TestPop".
func testMethodName(name string) (text string, ignored, isTest bool) {
	if rest, ok := strings.CutPrefix(name, "XTest"); ok && rest != "" {
		return name[1:], true, true
	}
	if rest, ok := strings.CutPrefix(name, "Test"); ok && rest != "" {
		return name, false, true
	}
	return "", false, false
}

func validSignature(t reflect.Type) bool {
	return t.NumIn() == 0 && t.NumOut() == 1 && t.Out(0) == outcomeType
}
