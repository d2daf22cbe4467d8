package engine

import (
	"fmt"
	"strings"

	"github.com/polyspec/core/pkg/domain"
)

// BranchID is a handle to one branch of the registration tree. Handles stay
// valid across snapshots because registration only ever appends nodes.
type BranchID int

// RootBranch is the handle of the implicit top-level branch every engine
// starts with. It has no description and contributes nothing to composed
// names.
const RootBranch BranchID = 0

type nodeKind uint8

const (
	kindBranch nodeKind = iota
	kindTest
)

// childRef points at one child of a branch, preserving the interleaving of
// nested branches and tests in registration order.
type childRef struct {
	kind  nodeKind
	index int
}

type branchNode struct {
	parent      BranchID
	description string
	location    *domain.Location
	children    []childRef
}

type testNode struct {
	parent   BranchID
	name     string
	text     string
	tags     domain.TagSet
	status   domain.TestStatus
	location *domain.Location
	body     domain.TestBody
}

// view returns the immutable per-test snapshot handed to hooks and queries.
func (t testNode) view() domain.Test {
	return domain.Test{
		Name:     t.name,
		Text:     t.text,
		Tags:     t.tags.List(),
		Status:   t.status,
		Location: t.location,
		Body:     t.body,
	}
}

// registry is one immutable snapshot of a suite's registration tree. Nodes
// live in append-only arenas indexed by handle. Mutating operations return a
// fresh snapshot and never touch the receiver, so a snapshot observed by a
// reader stays coherent for the lifetime of the run.
type registry struct {
	branches []branchNode
	tests    []testNode

	// names holds composed test names in registration order.
	names []string
	// byName maps a composed name to its index in tests.
	byName map[string]int
	// tagsByName maps a composed name to its tags. Tests without tags have
	// no entry, so queries never report empty sets.
	tagsByName map[string]domain.TagSet
}

func newRegistry() *registry {
	return &registry{
		branches:   []branchNode{{parent: -1}},
		byName:     map[string]int{},
		tagsByName: map[string]domain.TagSet{},
	}
}

func (r *registry) clone() *registry {
	next := &registry{
		branches:   append([]branchNode(nil), r.branches...),
		tests:      append([]testNode(nil), r.tests...),
		names:      append([]string(nil), r.names...),
		byName:     make(map[string]int, len(r.byName)+1),
		tagsByName: make(map[string]domain.TagSet, len(r.tagsByName)+1),
	}
	for name, idx := range r.byName {
		next.byName[name] = idx
	}
	for name, tags := range r.tagsByName {
		next.tagsByName[name] = tags
	}
	return next
}

// appendChild replaces the children slice instead of appending in place.
// The old slice header is shared with earlier snapshots.
func appendChild(b *branchNode, ref childRef) {
	children := make([]childRef, len(b.children), len(b.children)+1)
	copy(children, b.children)
	b.children = append(children, ref)
}

func (r *registry) validBranch(id BranchID) bool {
	return id >= 0 && int(id) < len(r.branches)
}

// branchPath returns the descriptions from the outermost branch down to id.
// The implicit root contributes nothing.
func (r *registry) branchPath(id BranchID) []string {
	var parts []string
	for cur := id; cur != RootBranch; cur = r.branches[cur].parent {
		parts = append(parts, r.branches[cur].description)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}

// composeName joins the enclosing branch descriptions and the leaf text with
// single spaces.
func (r *registry) composeName(parent BranchID, text string) string {
	parts := append(r.branchPath(parent), text)
	return strings.Join(parts, " ")
}

// registerBranch appends a nested branch under parent and returns the new
// snapshot together with the branch's handle.
func (r *registry) registerBranch(parent BranchID, description string, loc *domain.Location) (*registry, BranchID, error) {
	if !r.validBranch(parent) {
		return nil, 0, fmt.Errorf("engine: unknown branch handle %d", parent)
	}
	if strings.TrimSpace(description) == "" {
		return nil, 0, IllegalNameError{Text: description, Reason: "branch description must not be blank"}
	}

	next := r.clone()
	id := BranchID(len(next.branches))
	next.branches = append(next.branches, branchNode{
		parent:      parent,
		description: description,
		location:    loc,
	})
	appendChild(&next.branches[parent], childRef{kind: kindBranch, index: int(id)})
	return next, id, nil
}

// registerTest appends a test under parent and returns the new snapshot
// together with the composed name. A duplicate composed name leaves the
// receiver as the only valid snapshot.
func (r *registry) registerTest(parent BranchID, text string, body domain.TestBody, tags domain.TagSet, loc *domain.Location) (*registry, string, error) {
	if !r.validBranch(parent) {
		return nil, "", fmt.Errorf("engine: unknown branch handle %d", parent)
	}
	if strings.TrimSpace(text) == "" {
		return nil, "", IllegalNameError{Text: text, Reason: "test text must not be blank"}
	}

	name := r.composeName(parent, text)
	if _, exists := r.byName[name]; exists {
		return nil, "", DuplicateNameError{Name: name}
	}

	status := domain.TestStatusActive
	if tags.Has(domain.TagIgnored) {
		status = domain.TestStatusIgnored
	}

	next := r.clone()
	idx := len(next.tests)
	next.tests = append(next.tests, testNode{
		parent:   parent,
		name:     name,
		text:     text,
		tags:     tags,
		status:   status,
		location: loc,
		body:     body,
	})
	appendChild(&next.branches[parent], childRef{kind: kindTest, index: idx})
	next.names = append(next.names, name)
	next.byName[name] = idx
	if tags.Len() > 0 {
		next.tagsByName[name] = tags
	}
	return next, name, nil
}

// testNames returns the composed names in registration order.
func (r *registry) testNames() []string {
	return append([]string(nil), r.names...)
}

// tagsOf returns a copy of the name-to-tags map. Tag sets themselves are
// immutable and shared.
func (r *registry) tagsOf() map[string]domain.TagSet {
	out := make(map[string]domain.TagSet, len(r.tagsByName))
	for name, tags := range r.tagsByName {
		out[name] = tags
	}
	return out
}

// outline builds the tree view rooted at the implicit root branch.
func (r *registry) outline() domain.Branch {
	return r.buildBranch(RootBranch)
}

func (r *registry) buildBranch(id BranchID) domain.Branch {
	node := r.branches[id]
	out := domain.Branch{
		Description: node.description,
		Location:    node.location,
	}
	for _, ref := range node.children {
		switch ref.kind {
		case kindBranch:
			out.Branches = append(out.Branches, r.buildBranch(BranchID(ref.index)))
		case kindTest:
			out.Tests = append(out.Tests, r.tests[ref.index].view())
		}
	}
	return out
}
