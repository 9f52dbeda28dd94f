package engine

import (
	"errors"
	"fmt"
)

// ErrorClass classifies an error for the orchestrator's failure policy.
type ErrorClass string

const (
	// ErrorClassFatal indicates the run cannot proceed at all.
	// Examples: missing credentials, a batch document that fails validation.
	// Fatal errors abort before any operation executes.
	ErrorClassFatal ErrorClass = "fatal"

	// ErrorClassHard indicates the current operation failed.
	// Examples: a required control absent within its timeout, a save
	// confirmation carrying unexpected text.
	ErrorClassHard ErrorClass = "hard"

	// ErrorClassSoft indicates a tolerated condition.
	// Examples: a load-completion heuristic exceeding its bound. Soft
	// errors never fail an operation by themselves.
	ErrorClassSoft ErrorClass = "soft"
)

// Common error codes.
const (
	ErrCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	ErrCodeConfigurationInvalid = "CONFIGURATION_FILE_INVALID"
	ErrCodeNavigationTimeout    = "NAVIGATION_TIMEOUT"
	ErrCodeElementNotFound      = "ELEMENT_NOT_FOUND"
	ErrCodeInteractionTimeout   = "INTERACTION_TIMEOUT"
	ErrCodeUnexpectedToast      = "UNEXPECTED_TOAST_MESSAGE"
)

// AutomationError is a classified error with operation context.
type AutomationError struct {
	// Class is the error classification for the failure policy.
	Class ErrorClass `json:"class"`

	// Code identifies the taxonomy entry for programmatic handling.
	Code string `json:"code"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Operation is the label of the operation being performed, if any.
	Operation string `json:"operation,omitempty"`

	// Err is the underlying error.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *AutomationError) Error() string {
	if e.Operation != "" {
		if e.Err != nil {
			return fmt.Sprintf("[%s] %s (operation=%s): %v", e.Class, e.Message, e.Operation, e.Err)
		}
		return fmt.Sprintf("[%s] %s (operation=%s)", e.Class, e.Message, e.Operation)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Class, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Class, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *AutomationError) Unwrap() error {
	return e.Err
}

// Is implements error equality for errors.Is.
func (e *AutomationError) Is(target error) bool {
	t, ok := target.(*AutomationError)
	if !ok {
		return false
	}
	return e.Class == t.Class && e.Code == t.Code
}

// WithOperation adds the operation label to an error.
func (e *AutomationError) WithOperation(label string) *AutomationError {
	e.Operation = label
	return e
}

// NewAuthenticationError reports an unusable session: missing credentials or
// no recognized post-login marker after front-door injection.
func NewAuthenticationError(message string, err error) *AutomationError {
	return &AutomationError{
		Class:   ErrorClassFatal,
		Code:    ErrCodeAuthenticationFailed,
		Message: message,
		Err:     err,
	}
}

// NewConfigurationError reports a batch document that failed structural
// validation.
func NewConfigurationError(message string, err error) *AutomationError {
	return &AutomationError{
		Class:   ErrorClassFatal,
		Code:    ErrCodeConfigurationInvalid,
		Message: message,
		Err:     err,
	}
}

// NewNavigationTimeoutError reports a load-completion heuristic exceeding
// its bound. Soft: callers tolerate it.
func NewNavigationTimeoutError(message string, err error) *AutomationError {
	return &AutomationError{
		Class:   ErrorClassSoft,
		Code:    ErrCodeNavigationTimeout,
		Message: message,
		Err:     err,
	}
}

// NewElementNotFoundError reports a required interactive control absent
// within its hard timeout.
func NewElementNotFoundError(message string, err error) *AutomationError {
	return &AutomationError{
		Class:   ErrorClassHard,
		Code:    ErrCodeElementNotFound,
		Message: message,
		Err:     err,
	}
}

// NewInteractionTimeoutError reports an interaction with a present control
// exceeding its hard timeout.
func NewInteractionTimeoutError(message string, err error) *AutomationError {
	return &AutomationError{
		Class:   ErrorClassHard,
		Code:    ErrCodeInteractionTimeout,
		Message: message,
		Err:     err,
	}
}

// NewToastMismatchError reports a post-action confirmation whose text does
// not contain the expected substring.
func NewToastMismatchError(actual, expected string) *AutomationError {
	return &AutomationError{
		Class:   ErrorClassHard,
		Code:    ErrCodeUnexpectedToast,
		Message: fmt.Sprintf("unexpected toast message: got %q, want substring %q", actual, expected),
	}
}

// IsAuthenticationFailed reports whether err is an authentication failure.
func IsAuthenticationFailed(err error) bool { return hasCode(err, ErrCodeAuthenticationFailed) }

// IsConfigurationInvalid reports whether err is a batch validation failure.
func IsConfigurationInvalid(err error) bool { return hasCode(err, ErrCodeConfigurationInvalid) }

// IsElementNotFound reports whether err is a missing-control failure.
func IsElementNotFound(err error) bool { return hasCode(err, ErrCodeElementNotFound) }

// IsToastMismatch reports whether err is a toast text mismatch.
func IsToastMismatch(err error) bool { return hasCode(err, ErrCodeUnexpectedToast) }

// IsSoft reports whether err is tolerated by the failure policy.
func IsSoft(err error) bool { return hasClass(err, ErrorClassSoft) }

// IsFatal reports whether err aborts the run before any operation.
func IsFatal(err error) bool { return hasClass(err, ErrorClassFatal) }

func hasCode(err error, code string) bool {
	var e *AutomationError
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func hasClass(err error, class ErrorClass) bool {
	var e *AutomationError
	if errors.As(err, &e) {
		return e.Class == class
	}
	return false
}
