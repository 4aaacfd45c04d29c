// Package advisor implements the four operations performed against the
// external generative service: profile extraction, job analysis, proposal
// regeneration and follow-up suggestion. Failures never propagate past the
// call site as anything other than a typed error; callers convert them to a
// user-facing message or a log line.
package advisor

import "fmt"

// APICallError represents a failed call to the generative service.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response that could not be decoded or does not
// match the declared contract. Malformed output from the service is an
// external failure, not a local bug.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
