package domain

// TestStatus represents how the execution driver treats a registered test.
type TestStatus string

const (
	// TestStatusActive indicates a normal test that runs when selected.
	TestStatusActive TestStatus = "active"
	// TestStatusIgnored indicates a test that is reported to observers but
	// whose body is never invoked.
	TestStatusIgnored TestStatus = "ignored"
)
