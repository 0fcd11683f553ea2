package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/y4jaiops/y4j-YouthScan/internal/config"
	"github.com/y4jaiops/y4j-YouthScan/internal/document"
	"github.com/y4jaiops/y4j-YouthScan/internal/extraction"
	"github.com/y4jaiops/y4j-YouthScan/internal/sheets"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		extractErr    *extraction.Error
		resolveErr    *sheets.ResolutionError
		writeErr      *sheets.WriteError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, types.ErrEmptyColumnSpec),
		errors.Is(err, document.ErrEmptyDocument),
		errors.Is(err, document.ErrInvalidDriveLink):
		return http.StatusBadRequest
	case errors.Is(err, document.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, document.ErrTooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, config.ErrMissingCredentials), errors.Is(err, config.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.As(err, &extractErr):
		return extractionStatus(extractErr.Kind)
	case errors.As(err, &resolveErr):
		return sheetStatus(resolveErr.Kind)
	case errors.As(err, &writeErr):
		return sheetStatus(writeErr.Kind)
	default:
		return http.StatusInternalServerError
	}
}

func extractionStatus(kind extraction.Kind) int {
	switch kind {
	case extraction.KindInput:
		return http.StatusBadRequest
	case extraction.KindBlocked, extraction.KindModel, extraction.KindNoCandidates:
		return http.StatusUnprocessableEntity
	case extraction.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func sheetStatus(kind sheets.ErrorKind) int {
	switch kind {
	case sheets.KindInvalid:
		return http.StatusBadRequest
	case sheets.KindQuota:
		return http.StatusServiceUnavailable
	case sheets.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// toErrorResponse builds the response body, exposing the failure kind where there is one.
func toErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}

	var (
		extractErr *extraction.Error
		resolveErr *sheets.ResolutionError
		writeErr   *sheets.WriteError
	)
	switch {
	case errors.As(err, &extractErr):
		resp.Kind, resp.Retryable = string(extractErr.Kind), extractErr.Retryable()
	case errors.As(err, &resolveErr):
		resp.Kind, resp.Retryable = string(resolveErr.Kind), resolveErr.Retryable()
	case errors.As(err, &writeErr):
		resp.Kind, resp.Retryable = string(writeErr.Kind), writeErr.Retryable()
	}
	return resp
}
