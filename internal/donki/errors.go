package donki

import "fmt"

// FetchError reports a transport failure or non-success response from the
// DONKI API after retries are exhausted. Any FetchError aborts the run.
type FetchError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("donki %s: unexpected status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("donki %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a missing or malformed required field in an upstream
// record. It fails the whole batch for that event type; upstream
// data-quality problems surface instead of leaving silent gaps.
type ParseError struct {
	Endpoint string
	RecordID string
	Field    string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("donki %s: record %q field %q: %v", e.Endpoint, e.RecordID, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
