// Package integration exercises the whole framework end to end: the same
// scenario authored in every registration style, run through the reporter
// stack with file-driven configuration.
package integration

import (
	"errors"
	"fmt"

	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine/styles"
	"github.com/polyspec/core/pkg/engine/styles/funspec"
	"github.com/polyspec/core/pkg/engine/styles/tablespec"
	"github.com/polyspec/core/pkg/engine/styles/wordspec"
)

// stack is the fixture the scenario suites exercise.
type stack struct {
	values []int
}

func (s *stack) push(v int) { s.values = append(s.values, v) }

func (s *stack) pop() (int, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, true
}

func (s *stack) depth() int { return len(s.values) }

func stackFixture() (any, func(), error) {
	return &stack{}, nil, nil
}

func popBody(fixture any) domain.Outcome {
	st := fixture.(*stack)
	st.push(1)
	st.push(2)
	if v, ok := st.pop(); !ok || v != 2 {
		return domain.Failed(fmt.Errorf("pop = %d, %v, want 2, true", v, ok))
	}
	return domain.Passed()
}

func popEmptyBody(fixture any) domain.Outcome {
	st := fixture.(*stack)
	if _, ok := st.pop(); ok {
		return domain.Failed(errors.New("pop on an empty stack succeeded"))
	}
	return domain.Passed()
}

// scenarioNames returns the composed names every scenario suite must
// produce, in registration order.
func scenarioNames() []string {
	return []string{
		"A Stack should pop values in last-in-first-out order",
		"A Stack must reject popping when empty",
		"A Stack should shrink its backing array",
	}
}

// funspecSuite authors the scenario with Describe/Test nesting.
func funspecSuite() styles.Suite {
	s := funspec.New("StackSpec", funspec.WithFixture(stackFixture))
	s.Describe("A Stack", func(d *funspec.Scope) {
		d.Test("should pop values in last-in-first-out order", popBody, "fast")
		d.Test("must reject popping when empty", popEmptyBody, "fast", "edge")
		d.Ignore("should shrink its backing array", nil)
	})
	return s
}

// wordspecSuite authors the scenario as verb sentences; the style supplies
// the should/must words itself.
func wordspecSuite() styles.Suite {
	s := wordspec.New("StackSpec", wordspec.WithFixture(stackFixture))
	s.Subject("A Stack", func(w *wordspec.Subject) {
		w.Should("pop values in last-in-first-out order", popBody, "fast")
		w.Must("reject popping when empty", popEmptyBody, "fast", "edge")
		w.Ignore(wordspec.Should, "shrink its backing array", nil)
	})
	return s
}

// tablespecSuite authors the scenario as flat rows whose text carries the
// full sentence.
func tablespecSuite() styles.Suite {
	s, _ := tablespec.FromRows("StackSpec", []tablespec.Row{
		{Text: "A Stack should pop values in last-in-first-out order", Body: popBody, Tags: []string{"fast"}},
		{Text: "A Stack must reject popping when empty", Body: popEmptyBody, Tags: []string{"fast", "edge"}},
		{Text: "A Stack should shrink its backing array", Ignore: true},
	}, tablespec.WithFixture(stackFixture))
	return s
}
