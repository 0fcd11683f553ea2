package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/y4jaiops/y4j-YouthScan/internal/config"
	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a spreadsheet failure.
type ErrorKind string

// Spreadsheet failure kinds.
const (
	KindAuth         ErrorKind = "auth"
	KindPermission   ErrorKind = "permission"
	KindQuota        ErrorKind = "quota"
	KindTimeout      ErrorKind = "timeout"
	KindLookupFailed ErrorKind = "lookup_failed"
	KindCreateFailed ErrorKind = "create_failed"
	KindRejected     ErrorKind = "rejected"
	KindInvalid      ErrorKind = "invalid"
)

// ResolutionError is returned when a spreadsheet cannot be found or created.
type ResolutionError struct {
	Kind    ErrorKind
	Name    string
	Message string
	Cause   error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("spreadsheet %q (%s): %s", e.Name, e.Kind, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether repeating the call may succeed.
func (e *ResolutionError) Retryable() bool {
	return e.Kind == KindTimeout || e.Kind == KindQuota
}

// WriteError is returned when a batch append is rejected. No rows were written.
type WriteError struct {
	Kind          ErrorKind
	SpreadsheetID string
	Message       string
	Cause         error
}

func (e *WriteError) Error() string {
	msg := fmt.Sprintf("write to spreadsheet %s failed (%s): %s", e.SpreadsheetID, e.Kind, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether repeating the call may succeed.
func (e *WriteError) Retryable() bool {
	return e.Kind == KindTimeout || e.Kind == KindQuota
}

// classify maps a backend error onto a kind, using fallback for anything unrecognized.
func classify(err error, fallback ErrorKind) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, config.ErrMissingCredentials) {
		return KindAuth
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fallback
	}
	switch apiErr.Code {
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindQuota
	case http.StatusForbidden:
		// Drive reports per-user rate limits as 403 with a rateLimitExceeded reason
		for _, item := range apiErr.Errors {
			if strings.Contains(strings.ToLower(item.Reason), "ratelimitexceeded") {
				return KindQuota
			}
		}
		return KindPermission
	case http.StatusBadRequest:
		return KindInvalid
	}
	return fallback
}
