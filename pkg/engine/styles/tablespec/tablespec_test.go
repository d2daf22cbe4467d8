package tablespec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
)

func pass(any) domain.Outcome { return domain.Passed() }

func TestFromRows_RegistersRowsInOrder(t *testing.T) {
	s, err := FromRows("MathSuite", []Row{
		{Text: "addition carries", Body: pass},
		{Text: "subtraction borrows", Body: pass},
		{Text: "division by zero fails", Body: pass, Tags: []string{"edge"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "MathSuite", s.Name())
	assert.Equal(t, []string{
		"addition carries",
		"subtraction borrows",
		"division by zero fails",
	}, s.TestNames())
	assert.True(t, s.Tags()["division by zero fails"].Has("edge"))
}

func TestFromRows_DuplicateTextFails(t *testing.T) {
	s, err := FromRows("MathSuite", []Row{
		{Text: "same", Body: pass},
		{Text: "same", Body: pass},
		{Text: "never reached", Body: pass},
	})

	var dup engine.DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "same", dup.Name)

	// Registration stops at the first bad row.
	assert.Equal(t, []string{"same"}, s.TestNames())
	assert.ErrorAs(t, s.Err(), &dup)
}

func TestAppend_AfterNewAccumulates(t *testing.T) {
	s := New("GrowingSuite")

	require.NoError(t, s.Append(Row{Text: "first", Body: pass}))
	require.NoError(t, s.Append(
		Row{Text: "second", Body: pass},
		Row{Text: "third", Body: pass},
	))

	assert.Equal(t, []string{"first", "second", "third"}, s.TestNames())
}

func TestSuite_IgnoredRowNeverRuns(t *testing.T) {
	bodyRan := false
	s, err := FromRows("Suite", []Row{
		{Text: "active", Body: pass},
		{Text: "parked", Ignore: true, Body: func(any) domain.Outcome {
			bodyRan = true
			return domain.Passed()
		}},
	})
	require.NoError(t, err)

	var ignored, ran []string
	require.NoError(t, s.Run(engine.RunConfig{}, engine.Hooks{
		OnTestIgnored: func(ev engine.TestEvent) { ignored = append(ignored, ev.Name) },
		RunTest: func(tst domain.Test) domain.Outcome {
			ran = append(ran, tst.Name)
			return tst.Body(nil)
		},
	}))

	assert.Equal(t, []string{"parked"}, ignored)
	assert.Equal(t, []string{"active"}, ran)
	assert.False(t, bodyRan)
}

func TestSuite_NilBodyRowRunsWithoutPanic(t *testing.T) {
	s, err := FromRows("Suite", []Row{
		{Text: "not written yet"},
	})
	require.NoError(t, err)

	// The default runner turns a nil body into a pending outcome instead
	// of dereferencing it.
	started := 0
	require.NoError(t, s.Run(engine.RunConfig{}, engine.Hooks{
		OnTestStarting: func(engine.TestEvent) { started++ },
	}))
	assert.Equal(t, 1, started)
}

func TestSuite_FixtureReachesRowBodies(t *testing.T) {
	factory := func() (any, func(), error) { return 21, nil, nil }
	var got int
	s, err := FromRows("Suite", []Row{
		{Text: "doubles", Body: func(fx any) domain.Outcome {
			got = fx.(int) * 2
			return domain.Passed()
		}},
	}, WithFixture(factory))
	require.NoError(t, err)

	require.NoError(t, s.Run(engine.RunConfig{}, engine.Hooks{}))
	assert.Equal(t, 42, got)
}

func TestSuite_ClosedAfterRun(t *testing.T) {
	s, err := FromRows("Suite", []Row{{Text: "early", Body: pass}})
	require.NoError(t, err)
	require.NoError(t, s.Run(engine.RunConfig{}, engine.Hooks{}))

	appendErr := s.Append(Row{Text: "late", Body: pass})

	var closed engine.RegistrationClosedError
	require.ErrorAs(t, appendErr, &closed)
	assert.Equal(t, "tablespec", closed.Style)
	assert.Equal(t, "row", closed.Clause)
}
