package engine

import "fmt"

// DuplicateNameError reports a registration whose composed name is already
// taken by an earlier test in the same suite. The registry is left unchanged.
type DuplicateNameError struct {
	// Name is the composed test name that was registered twice.
	Name string
}

// Error implements the error interface.
func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("engine: duplicate test name %q", e.Name)
}

// IllegalNameError reports registration text the engine refuses to accept,
// such as blank text or text that begins with a verb the owning style
// reserves for its own shorthand.
type IllegalNameError struct {
	// Text is the rejected registration text.
	Text string

	// Reason states why the text was rejected.
	Reason string
}

// Error implements the error interface.
func (e IllegalNameError) Error() string {
	return fmt.Sprintf("engine: illegal registration text %q: %s", e.Text, e.Reason)
}

// RegistrationClosedError reports a registration attempted after the suite
// entered its running phase. The transition is one-way, so the registration
// can never be accepted later.
type RegistrationClosedError struct {
	// Style names the suite style that owns the engine. May be empty.
	Style string

	// Clause is the registration clause that arrived late, such as "test"
	// or "branch".
	Clause string
}

// Error implements the error interface.
func (e RegistrationClosedError) Error() string {
	if e.Style == "" {
		return fmt.Sprintf("engine: %s cannot appear after run has started", e.Clause)
	}
	return fmt.Sprintf("engine: %s cannot appear after a %s run has started", e.Clause, e.Style)
}

// ConcurrentRegistrationError reports suite construction from more than one
// goroutine at once. Registration is defined as single-threaded; a lost
// snapshot swap is the detection signal.
type ConcurrentRegistrationError struct {
	// Style names the suite style that owns the engine. May be empty.
	Style string
}

// Error implements the error interface.
func (e ConcurrentRegistrationError) Error() string {
	if e.Style == "" {
		return "engine: concurrent registration detected: suites must be built from a single goroutine"
	}
	return fmt.Sprintf("engine: concurrent registration detected: %s suites must be built from a single goroutine", e.Style)
}

// TestNotFoundError reports a run request that selected a name no test is
// registered under.
type TestNotFoundError struct {
	// Name is the composed test name that was requested.
	Name string
}

// Error implements the error interface.
func (e TestNotFoundError) Error() string {
	return fmt.Sprintf("engine: no test named %q is registered", e.Name)
}
