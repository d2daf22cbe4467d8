package domain

// TestBody is the executable part of a registered test. The fixture value is
// supplied by the style that owns the suite; flat styles pass nil.
type TestBody func(fixture any) Outcome

// Test is an immutable view of one registered test.
type Test struct {
	// Name is the full composed name, unique within its suite.
	Name string `json:"name"`
	// Text is the leaf text supplied at registration.
	Text string `json:"text"`
	// Tags lists the test's tags in sorted order.
	Tags []string `json:"tags,omitempty"`
	// Status tells the execution driver whether the body may run.
	Status TestStatus `json:"status"`
	// Location is the registration call site, when it could be captured.
	Location *Location `json:"location,omitempty"`
	// Body is the executable part. Nil for ignored tests is permitted.
	Body TestBody `json:"-"`
}

// Ignored reports whether the execution driver will skip this test's body.
func (t Test) Ignored() bool {
	return t.Status == TestStatusIgnored
}

// Branch is an immutable view of one level of a suite's registration tree.
// Entries within each slice appear in registration order.
type Branch struct {
	// Description is the branch text. Empty for the implicit root.
	Description string `json:"description,omitempty"`
	// Location is the registration call site, when it could be captured.
	Location *Location `json:"location,omitempty"`
	// Branches contains the nested branches of this level.
	Branches []Branch `json:"branches,omitempty"`
	// Tests contains the tests registered directly at this level.
	Tests []Test `json:"tests,omitempty"`
}

// CountTests returns the total number of tests in this branch and below.
func (b *Branch) CountTests() int {
	count := len(b.Tests)
	for _, sub := range b.Branches {
		count += sub.CountTests()
	}
	return count
}
