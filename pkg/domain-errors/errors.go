package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in business logic terms, not HTTP terms.
type Code string

const (
	// Identity failures: token undecodable, no unique id inside it.
	CodeUnauthorized Code = "unauthorized"

	// The stored record for the authenticated unique id does not exist.
	CodeNotFound Code = "not_found"

	// Malformed request body or a field that failed format/checksum rules.
	CodeBadRequest Code = "bad_request"
	CodeValidation Code = "validation_failed"

	// A submitted code has no row in the reference tables. The message names
	// the category (activity, state, nationality, country, marital status, city).
	CodeInvalidReference Code = "invalid_reference"

	// Occupation belongs to the locally enumerated high-risk set.
	CodeHighRiskActivity Code = "high_risk_activity"

	// Business-state rejections: onboarding step not finished, account blocked.
	CodeOnboardingStep Code = "onboarding_step_incorrect"
	CodeAccountBlocked Code = "account_blocked"

	// The stored record is missing structure the pipeline depends on.
	CodeInconsistentData Code = "inconsistent_data"

	// The persistence write matched zero documents.
	CodeUpdateFailed Code = "update_failed"

	// Any downstream collaborator failure: audit sink, risk engine,
	// onboarding service, notification dispatch.
	CodeDownstream Code = "downstream_error"
	CodeInternal   Code = "internal_error"
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, store, and other layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		// Preserve the original domain code, update message
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
