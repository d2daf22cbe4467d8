package engine

import "github.com/polyspec/core/pkg/domain"

// BranchEvent describes entering or leaving one branch during a run.
type BranchEvent struct {
	// Description is the branch's own text.
	Description string

	// Path holds the descriptions from the outermost branch down to this
	// one. The implicit root contributes nothing.
	Path []string

	// Location is the branch's registration site, when it was captured.
	Location *domain.Location
}

// TestEvent describes a test the run is about to start or ignore.
type TestEvent struct {
	// Name is the full composed name.
	Name string

	// Text is the leaf text supplied at registration.
	Text string

	// Path holds the enclosing branch descriptions followed by the leaf
	// text.
	Path []string

	// Tags lists the test's tags in sorted order.
	Tags []string

	// Location is the test's registration site, when it was captured.
	Location *domain.Location
}

// Hooks carries the callbacks a run drives. RunTest is required; the
// notification hooks may be nil.
type Hooks struct {
	// OnBranchEntered fires before the first child of a branch is visited.
	OnBranchEntered func(BranchEvent)

	// OnBranchExited fires after the last child of a branch was visited.
	OnBranchExited func(BranchEvent)

	// OnTestStarting fires immediately before RunTest for a test that
	// passed all filters.
	OnTestStarting func(TestEvent)

	// OnTestIgnored fires exactly once per run for every ignored test,
	// regardless of tag filters. The test's body is never executed.
	OnTestIgnored func(TestEvent)

	// RunTest executes one test body and reports its outcome. The driver
	// never calls it for ignored or filtered-out tests.
	RunTest func(domain.Test) domain.Outcome
}
