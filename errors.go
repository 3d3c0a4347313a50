package phiguard

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrDuplicatePattern     = errors.New("duplicate pattern name")
	ErrInvalidPattern       = errors.New("invalid pattern")
	ErrPatternsFileInvalid  = errors.New("patterns file invalid")
	ErrUninitializedSalt    = errors.New("hash salt appears to be uninitialized (all zeros)")

	// Per-call errors
	ErrUnsupportedShape   = errors.New("unsupported input shape")
	ErrSanitizationFailed = errors.New("sanitization failed")

	// Collaborator errors
	ErrSecretStorageUnavailable = errors.New("secret storage unavailable")
	ErrAuditStoreUnavailable    = errors.New("audit store unavailable")
)

func NewDuplicatePatternError(name string) error {
	return fmt.Errorf("%w: pattern '%s' is already registered", ErrDuplicatePattern, name)
}

func NewInvalidPatternError(name string, reason error) error {
	return fmt.Errorf("%w: pattern '%s': %w", ErrInvalidPattern, name, reason)
}

func NewUnsupportedShapeError(typeName string) error {
	return fmt.Errorf("%w: cannot sanitize value of type %s", ErrUnsupportedShape, typeName)
}

func NewSanitizationFailedError(operation string, cause any) error {
	return fmt.Errorf("%w: %s: %v", ErrSanitizationFailed, operation, cause)
}

// IsConfigurationError returns true if the error represents a setup-time
// configuration problem. These surface at startup and are never raised
// during per-request sanitization.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrDuplicatePattern) ||
		errors.Is(err, ErrInvalidPattern) ||
		errors.Is(err, ErrPatternsFileInvalid) ||
		errors.Is(err, ErrUninitializedSalt)
}

// IsValidationError returns true if the error represents an unsupported
// input shape. Raised only when exceptions are allowed; otherwise the
// sanitizer degrades to returning the value unchanged.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnsupportedShape)
}

// IsOperationError returns true if the error represents an internal failure
// during a sanitize call.
func IsOperationError(err error) bool {
	return errors.Is(err, ErrSanitizationFailed)
}

// IsRetryableError returns true if the error represents a transient failure
// in an external collaborator that might succeed on retry.
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrSecretStorageUnavailable) ||
		errors.Is(err, ErrAuditStoreUnavailable)
}
