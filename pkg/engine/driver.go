package engine

import (
	"fmt"

	"github.com/polyspec/core/pkg/domain"
)

// RunTests closes registration and walks the tree in registration order,
// driving the hooks for every branch and test the config selects. The first
// call publishes the one-way transition into the running phase; later calls
// reuse the frozen snapshot, so repeated runs see identical trees.
//
// Branch hooks bracket each branch's children. Ignored tests notify
// OnTestIgnored exactly once per run and never reach RunTest, regardless of
// tag filters.
func (e *Engine) RunTests(cfg RunConfig, hooks Hooks) error {
	if hooks.RunTest == nil {
		return fmt.Errorf("engine: hooks.RunTest is required")
	}

	f, err := newFilter(cfg)
	if err != nil {
		return err
	}

	st, err := e.beginRun()
	if err != nil {
		return err
	}

	if cfg.Select != "" {
		return runSelected(st.reg, cfg.Select, hooks)
	}

	walkBranch(st.reg, RootBranch, nil, f, hooks)
	return nil
}

// beginRun publishes the transition into the running phase and returns the
// state the walk must use. The bounded retry loop absorbs registrations that
// race the first run call; the snapshot that wins the swap is exactly the
// one executed.
func (e *Engine) beginRun() (*engineState, error) {
	for attempt := 0; attempt < maxPublishAttempts; attempt++ {
		cur := e.state.Load()
		if cur.phase == PhaseRunning {
			return cur, nil
		}
		next := &engineState{phase: PhaseRunning, reg: cur.reg}
		if e.state.CompareAndSwap(cur, next) {
			return next, nil
		}
	}
	return nil, ConcurrentRegistrationError{Style: e.style}
}

func walkBranch(reg *registry, id BranchID, path []string, f *filter, hooks Hooks) {
	node := reg.branches[id]
	for _, ref := range node.children {
		switch ref.kind {
		case kindBranch:
			child := reg.branches[ref.index]
			childPath := appendPath(path, child.description)
			ev := BranchEvent{
				Description: child.description,
				Path:        childPath,
				Location:    child.location,
			}
			if hooks.OnBranchEntered != nil {
				hooks.OnBranchEntered(ev)
			}
			walkBranch(reg, BranchID(ref.index), childPath, f, hooks)
			if hooks.OnBranchExited != nil {
				hooks.OnBranchExited(ev)
			}
		case kindTest:
			visitTest(reg.tests[ref.index], path, f, hooks)
		}
	}
}

func visitTest(tn testNode, path []string, f *filter, hooks Hooks) {
	ev := TestEvent{
		Name:     tn.name,
		Text:     tn.text,
		Path:     appendPath(path, tn.text),
		Tags:     tn.tags.List(),
		Location: tn.location,
	}

	if tn.status == domain.TestStatusIgnored {
		if hooks.OnTestIgnored != nil {
			hooks.OnTestIgnored(ev)
		}
		return
	}

	if !f.matches(tn) {
		return
	}

	if hooks.OnTestStarting != nil {
		hooks.OnTestStarting(ev)
	}
	hooks.RunTest(tn.view())
}

// runSelected runs exactly one test by composed name, bypassing tag filters,
// name patterns and branch notifications. A selected ignored test still
// notifies and never runs.
func runSelected(reg *registry, name string, hooks Hooks) error {
	idx, ok := reg.byName[name]
	if !ok {
		return TestNotFoundError{Name: name}
	}

	tn := reg.tests[idx]
	path := reg.branchPath(tn.parent)
	ev := TestEvent{
		Name:     tn.name,
		Text:     tn.text,
		Path:     appendPath(path, tn.text),
		Tags:     tn.tags.List(),
		Location: tn.location,
	}

	if tn.status == domain.TestStatusIgnored {
		if hooks.OnTestIgnored != nil {
			hooks.OnTestIgnored(ev)
		}
		return nil
	}

	if hooks.OnTestStarting != nil {
		hooks.OnTestStarting(ev)
	}
	hooks.RunTest(tn.view())
	return nil
}

// appendPath copies before appending so event paths never share backing
// arrays with sibling subtrees.
func appendPath(path []string, part string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, part)
}
