package device

import "fmt"

// DetectionError means no classification signal was found at all, e.g. a
// firmware build whose page title carries neither series marker. The profile
// cannot be resolved and dependent tests must abort rather than guess.
type DetectionError struct {
	Signal string
	Detail string
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("detection failed: %s: %s", e.Signal, e.Detail)
}

// ConsistencyError means two independent classification signals disagree
// (title says series 3, outputs page counts 4, ...). This needs manual
// triage; resolving it silently would skew every variant-gated test.
type ConsistencyError struct {
	Signals []string
	Detail  string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("classification signals disagree (%v): %s", e.Signals, e.Detail)
}

// ValidationError is raised when the device rejects or silently truncates a
// field value. Inside validation tests this is the expected outcome and is
// asserted, not propagated.
type ValidationError struct {
	Field  string
	Value  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("device rejected %s=%q: %s", e.Field, e.Value, e.Detail)
}

// TimeoutError marks an operation that exceeded its documented wall-clock
// bound. It is a test failure, never a retry trigger.
type TimeoutError struct {
	Operation string
	Detail    string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s exceeded its time bound: %s", e.Operation, e.Detail)
}

// EnvironmentError covers everything that should stop the run before any
// test executes: device unreachable, browsers not installed.
type EnvironmentError struct {
	Detail string
	Err    error
}

func (e *EnvironmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("environment not ready: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("environment not ready: %s", e.Detail)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }
