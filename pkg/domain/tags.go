// Package domain defines the core types shared by suite registration and
// test execution.
package domain

import "sort"

// TagIgnored is the reserved tag attached to tests registered through an
// ignore clause. The execution driver reports such tests and never invokes
// their bodies, regardless of any tag filters in effect.
const TagIgnored = "polyspec.Ignore"

// TagSet is an immutable set of tag names. The zero value is the empty set.
type TagSet struct {
	members map[string]struct{}
}

// NewTagSet builds a set from the given names. Duplicates collapse.
func NewTagSet(names ...string) TagSet {
	if len(names) == 0 {
		return TagSet{}
	}
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return TagSet{members: m}
}

// Has reports whether name is in the set.
func (s TagSet) Has(name string) bool {
	_, ok := s.members[name]
	return ok
}

// Len returns the number of names in the set.
func (s TagSet) Len() int {
	return len(s.members)
}

// List returns the names in sorted order.
func (s TagSet) List() []string {
	if len(s.members) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.members))
	for n := range s.members {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Union returns a new set holding the names of both sets.
func (s TagSet) Union(other TagSet) TagSet {
	if other.Len() == 0 {
		return s
	}
	if s.Len() == 0 {
		return other
	}
	m := make(map[string]struct{}, len(s.members)+len(other.members))
	for n := range s.members {
		m[n] = struct{}{}
	}
	for n := range other.members {
		m[n] = struct{}{}
	}
	return TagSet{members: m}
}

// Intersects reports whether the two sets share at least one name.
func (s TagSet) Intersects(other TagSet) bool {
	small, large := s, other
	if large.Len() < small.Len() {
		small, large = large, small
	}
	for n := range small.members {
		if large.Has(n) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold exactly the same names.
func (s TagSet) Equal(other TagSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for n := range s.members {
		if !other.Has(n) {
			return false
		}
	}
	return true
}
