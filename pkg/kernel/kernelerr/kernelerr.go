// Package kernelerr provides the structured error taxonomy shared by every
// kernel package.
//
// All fallible kernel operations return a *KernelError rather than an
// opaque error, so host bindings can branch on Kind without string
// matching.
package kernelerr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of failure for a kernel operation.
type Kind string

// Kernel error kinds. These are the only categories a kernel operation may
// fail with; there is no open-ended error space for host code to handle.
const (
	InvalidInput    Kind = "INVALID_INPUT"
	InvalidShape    Kind = "INVALID_SHAPE"
	UnknownExercise Kind = "UNKNOWN_EXERCISE"
	DecodeError     Kind = "DECODE_ERROR"
	CryptoError     Kind = "CRYPTO_ERROR"
	InternalError   Kind = "INTERNAL_ERROR"
)

// KernelError is the base error type for all kernel failures.
type KernelError struct {
	Kind     Kind
	Message  string
	Cause    error
	Metadata map[string]string
}

// Error implements the error interface.
func (e *KernelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *KernelError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error.
func (e *KernelError) WithCause(cause error) *KernelError {
	return &KernelError{Kind: e.Kind, Message: e.Message, Cause: cause, Metadata: e.Metadata}
}

// WithMessage returns a copy with a custom message.
func (e *KernelError) WithMessage(msg string) *KernelError {
	return &KernelError{Kind: e.Kind, Message: msg, Cause: e.Cause, Metadata: e.Metadata}
}

// WithMetadata returns a copy with an additional metadata key.
func (e *KernelError) WithMetadata(key, value string) *KernelError {
	meta := make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta[key] = value
	return &KernelError{Kind: e.Kind, Message: e.Message, Cause: e.Cause, Metadata: meta}
}

// Sentinel errors for the common cases. Wrap these with WithCause or
// WithMetadata rather than constructing a *KernelError by hand.
var (
	ErrInvalidInput    = &KernelError{Kind: InvalidInput, Message: "invalid input"}
	ErrInvalidShape    = &KernelError{Kind: InvalidShape, Message: "invalid array shape"}
	ErrUnknownExercise = &KernelError{Kind: UnknownExercise, Message: "unknown exercise"}
	ErrDecodeError     = &KernelError{Kind: DecodeError, Message: "decode error"}
	ErrCryptoError     = &KernelError{Kind: CryptoError, Message: "crypto error"}
	ErrInternalError   = &KernelError{Kind: InternalError, Message: "internal error"}
)

// New creates a new KernelError with the given kind and message.
func New(kind Kind, message string) *KernelError {
	return &KernelError{Kind: kind, Message: message}
}

// Newf creates a new KernelError with a formatted message.
func Newf(kind Kind, format string, args ...any) *KernelError {
	return &KernelError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an underlying error with a KernelError.
func Wrap(cause error, kind Kind, message string) *KernelError {
	return &KernelError{Kind: kind, Message: message, Cause: cause}
}

// GetKind extracts the Kind from an error, if it is (or wraps) a *KernelError.
func GetKind(err error) Kind {
	if err == nil {
		return ""
	}
	var kErr *KernelError
	if errors.As(err, &kErr) {
		return kErr.Kind
	}
	return InternalError
}
