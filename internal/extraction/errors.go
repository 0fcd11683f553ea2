package extraction

import "fmt"

// Kind classifies an extraction failure.
type Kind string

// Extraction failure kinds.
const (
	KindInput        Kind = "input"         // empty document or column list
	KindAPICall      Kind = "api_call"      // model call failed
	KindTimeout      Kind = "timeout"       // model call exceeded its deadline
	KindBlocked      Kind = "blocked"       // model refused the document
	KindModel        Kind = "model"         // model answered with an error payload
	KindParse        Kind = "parse"         // response is not JSON
	KindSchema       Kind = "schema"        // JSON is not a list of flat objects
	KindNoCandidates Kind = "no_candidates" // model returned an empty list
)

// Error is the single failure type returned by Extract.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether repeating the same call may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindTimeout
}
