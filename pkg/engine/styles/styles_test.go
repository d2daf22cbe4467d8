package styles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
)

func TestRunOne_PassesFixtureToBody(t *testing.T) {
	factory := func() (any, func(), error) {
		return "the fixture", nil, nil
	}
	run := RunOne(factory)

	var got any
	out := run(domain.Test{
		Name: "probe",
		Body: func(fx any) domain.Outcome {
			got = fx
			return domain.Passed()
		},
	})

	assert.Equal(t, domain.OutcomePassed, out.Status)
	assert.Equal(t, "the fixture", got)
}

func TestRunOne_NilFactoryPassesNilFixture(t *testing.T) {
	run := RunOne(nil)

	out := run(domain.Test{
		Body: func(fx any) domain.Outcome {
			assert.Nil(t, fx)
			return domain.Passed()
		},
	})

	assert.Equal(t, domain.OutcomePassed, out.Status)
}

func TestRunOne_TeardownRunsAfterBody(t *testing.T) {
	var order []string
	factory := func() (any, func(), error) {
		return nil, func() { order = append(order, "teardown") }, nil
	}
	run := RunOne(factory)

	run(domain.Test{
		Body: func(any) domain.Outcome {
			order = append(order, "body")
			return domain.Passed()
		},
	})

	assert.Equal(t, []string{"body", "teardown"}, order)
}

func TestRunOne_TeardownRunsEvenWhenBodyPanics(t *testing.T) {
	tornDown := false
	factory := func() (any, func(), error) {
		return nil, func() { tornDown = true }, nil
	}
	run := RunOne(factory)

	out := run(domain.Test{
		Name: "explodes",
		Body: func(any) domain.Outcome { panic("boom") },
	})

	assert.Equal(t, domain.OutcomeFailed, out.Status)
	require.Error(t, out.Err)
	assert.Contains(t, out.Err.Error(), "explodes")
	assert.Contains(t, out.Err.Error(), "boom")
	assert.True(t, tornDown, "teardown should run when the body panics")
}

func TestRunOne_FixtureErrorFailsTheTest(t *testing.T) {
	cause := errors.New("no database")
	factory := func() (any, func(), error) {
		return nil, nil, cause
	}
	run := RunOne(factory)

	bodyRan := false
	out := run(domain.Test{
		Body: func(any) domain.Outcome {
			bodyRan = true
			return domain.Passed()
		},
	})

	assert.Equal(t, domain.OutcomeFailed, out.Status)
	assert.ErrorIs(t, out.Err, cause)
	assert.False(t, bodyRan, "body should not run when the fixture fails")
}

func TestRunOne_NilBodyReportsPending(t *testing.T) {
	run := RunOne(nil)

	out := run(domain.Test{Name: "todo"})

	assert.Equal(t, domain.OutcomePending, out.Status)
}

func TestCore_ErrKeepsFirstError(t *testing.T) {
	core := NewCore("suite", nil, engine.New())

	first := errors.New("first")
	second := errors.New("second")

	assert.NoError(t, core.RecordErr(nil))
	require.Equal(t, first, core.RecordErr(first))
	require.Equal(t, second, core.RecordErr(second))

	assert.Equal(t, first, core.Err())
}

func TestCore_RunFailsOnConstructionError(t *testing.T) {
	eng := engine.New()
	_, err := eng.RegisterTest(engine.RootBranch, "fine", func(any) domain.Outcome { return domain.Passed() })
	require.NoError(t, err)

	core := NewCore("suite", nil, eng)
	stuck := errors.New("bad registration")
	core.RecordErr(stuck)

	runErr := core.Run(engine.RunConfig{}, engine.Hooks{})

	assert.ErrorIs(t, runErr, stuck)
	assert.Equal(t, engine.PhaseRegistering, eng.Phase(), "run must not start on a broken suite")
}

func TestCore_RunUsesDefaultRunner(t *testing.T) {
	eng := engine.New()
	ran := false
	_, err := eng.RegisterTest(engine.RootBranch, "runs", func(fx any) domain.Outcome {
		ran = true
		assert.Equal(t, 7, fx)
		return domain.Passed()
	})
	require.NoError(t, err)

	factory := func() (any, func(), error) { return 7, nil, nil }
	core := NewCore("suite", factory, eng)

	require.NoError(t, core.Run(engine.RunConfig{}, engine.Hooks{}))
	assert.True(t, ran)
}

func TestCore_RunnerCarriesFixture(t *testing.T) {
	factory := func() (any, func(), error) { return "wired", nil, nil }
	core := NewCore("suite", factory, engine.New())

	out := core.Runner()(domain.Test{
		Body: func(fx any) domain.Outcome {
			assert.Equal(t, "wired", fx)
			return domain.Passed()
		},
	})

	assert.Equal(t, domain.OutcomePassed, out.Status)
}

func TestCore_Queries(t *testing.T) {
	eng := engine.New()
	_, err := eng.RegisterTest(engine.RootBranch, "one", func(any) domain.Outcome { return domain.Passed() },
		engine.WithTags("slow"))
	require.NoError(t, err)

	core := NewCore("suite", nil, eng)

	assert.Equal(t, "suite", core.Name())
	assert.Equal(t, []string{"one"}, core.TestNames())
	assert.Equal(t, 1, core.CountTests())
	assert.True(t, core.Tags()["one"].Has("slow"))
	assert.Equal(t, 1, core.Outline().CountTests())
}
