package domain

// OutcomeStatus classifies the result of one executed test body.
type OutcomeStatus string

const (
	// OutcomePassed indicates the body completed successfully.
	OutcomePassed OutcomeStatus = "passed"
	// OutcomeFailed indicates the body reported a failure.
	OutcomeFailed OutcomeStatus = "failed"
	// OutcomePending indicates the body declared itself not yet implemented.
	OutcomePending OutcomeStatus = "pending"
)

// Outcome is the result of executing a single test body.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	// Err carries the failure cause when Status is OutcomeFailed.
	Err error `json:"-"`
}

// Passed returns a successful outcome.
func Passed() Outcome {
	return Outcome{Status: OutcomePassed}
}

// Failed returns a failing outcome carrying err as the cause.
func Failed(err error) Outcome {
	return Outcome{Status: OutcomeFailed, Err: err}
}

// Pending returns an outcome for a test body that is not yet implemented.
func Pending() Outcome {
	return Outcome{Status: OutcomePending}
}
