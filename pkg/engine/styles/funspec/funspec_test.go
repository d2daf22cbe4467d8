package funspec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyspec/core/pkg/domain"
	"github.com/polyspec/core/pkg/engine"
)

func pass(any) domain.Outcome { return domain.Passed() }

func TestSuite_ComposesNamesFromNesting(t *testing.T) {
	s := New("StackSpec")

	err := s.Describe("A Stack", func(d *Scope) {
		require.NoError(t, d.Test("pops values in last-in-first-out order", pass))
		require.NoError(t, d.Describe("when empty", func(d *Scope) {
			require.NoError(t, d.Test("complains on pop", pass))
		}))
		require.NoError(t, d.Test("pushes values", pass))
	})
	require.NoError(t, err)
	require.NoError(t, s.Test("stands alone", pass))

	assert.Equal(t, []string{
		"A Stack pops values in last-in-first-out order",
		"A Stack when empty complains on pop",
		"A Stack pushes values",
		"stands alone",
	}, s.TestNames())
	assert.Equal(t, 4, s.CountTests())
	assert.NoError(t, s.Err())
}

func TestSuite_Name(t *testing.T) {
	s := New("StackSpec")

	assert.Equal(t, "StackSpec", s.Name())
}

func TestSuite_TagsRoundTrip(t *testing.T) {
	s := New("TaggedSpec")

	require.NoError(t, s.Test("slow thing", pass, "slow", "db"))
	require.NoError(t, s.Test("plain thing", pass))

	tags := s.Tags()
	require.Contains(t, tags, "slow thing")
	assert.Equal(t, []string{"db", "slow"}, tags["slow thing"].List())
	assert.NotContains(t, tags, "plain thing")
}

func TestSuite_IgnoreRegistersIgnoredTest(t *testing.T) {
	s := New("Spec")
	bodyRan := false

	require.NoError(t, s.Ignore("parked", func(any) domain.Outcome {
		bodyRan = true
		return domain.Passed()
	}))

	var ignored []string
	err := s.Run(engine.RunConfig{}, engine.Hooks{
		OnTestIgnored: func(ev engine.TestEvent) { ignored = append(ignored, ev.Name) },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"parked"}, ignored)
	assert.False(t, bodyRan)
}

func TestSuite_DuplicateLeafSticksAsConstructionError(t *testing.T) {
	s := New("Spec")

	_ = s.Describe("A Stack", func(d *Scope) {
		require.NoError(t, d.Test("pops", pass))
		err := d.Test("pops", pass)

		var dup engine.DuplicateNameError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "A Stack pops", dup.Name)
	})

	// The sticky error blocks the run.
	require.Error(t, s.Err())
	err := s.Run(engine.RunConfig{}, engine.Hooks{})
	var dup engine.DuplicateNameError
	assert.ErrorAs(t, err, &dup)
}

func TestSuite_RunExecutesBodiesWithFixture(t *testing.T) {
	type calc struct{ acc int }

	factory := func() (any, func(), error) {
		return &calc{acc: 40}, nil, nil
	}
	s := New("CalcSpec", WithFixture(factory))

	var got int
	require.NoError(t, s.Test("adds", func(fx any) domain.Outcome {
		c, ok := fx.(*calc)
		if !ok {
			return domain.Failed(assert.AnError)
		}
		got = c.acc + 2
		return domain.Passed()
	}))

	require.NoError(t, s.Run(engine.RunConfig{}, engine.Hooks{}))
	assert.Equal(t, 42, got)
}

func TestSuite_RegistrationClosedAfterRun(t *testing.T) {
	s := New("Spec")
	require.NoError(t, s.Test("early", pass))
	require.NoError(t, s.Run(engine.RunConfig{}, engine.Hooks{}))

	err := s.Test("late", pass)

	var closed engine.RegistrationClosedError
	require.ErrorAs(t, err, &closed)
	assert.Equal(t, "funspec", closed.Style)
	assert.Equal(t, "test", closed.Clause)
}

func TestSuite_CapturesCallerLocation(t *testing.T) {
	s := New("Spec")
	require.NoError(t, s.Test("located", pass))

	loc := s.Outline().Tests[0].Location
	require.NotNil(t, loc)
	assert.True(t, strings.HasSuffix(loc.File, "funspec_test.go"),
		"Location.File = %q, want this test file", loc.File)
}

func TestSuite_NestedDescribeCapturesCallerLocation(t *testing.T) {
	s := New("Spec")
	require.NoError(t, s.Describe("outer", func(d *Scope) {
		require.NoError(t, d.Test("leaf", pass))
	}))

	outline := s.Outline()
	require.Len(t, outline.Branches, 1)
	branchLoc := outline.Branches[0].Location
	require.NotNil(t, branchLoc)
	assert.True(t, strings.HasSuffix(branchLoc.File, "funspec_test.go"),
		"branch Location.File = %q, want this test file", branchLoc.File)

	testLoc := outline.Branches[0].Tests[0].Location
	require.NotNil(t, testLoc)
	assert.True(t, strings.HasSuffix(testLoc.File, "funspec_test.go"),
		"test Location.File = %q, want this test file", testLoc.File)
}

func TestSuite_BlankTextRejected(t *testing.T) {
	s := New("Spec")

	err := s.Test("   ", pass)

	var illegal engine.IllegalNameError
	assert.ErrorAs(t, err, &illegal)
}
