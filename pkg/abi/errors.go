package abi

import "github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"

// ErrorKind mirrors kernelerr.Kind at the ABI boundary, giving external
// callers (cgo/wasm hosts that can't import the Go error type) a plain
// string tag to switch on.
type ErrorKind string

// ErrorKind values, one per kernelerr.Kind.
const (
	ErrorKindInvalidInput    ErrorKind = "INVALID_INPUT"
	ErrorKindInvalidShape    ErrorKind = "INVALID_SHAPE"
	ErrorKindUnknownExercise ErrorKind = "UNKNOWN_EXERCISE"
	ErrorKindDecodeError     ErrorKind = "DECODE_ERROR"
	ErrorKindCryptoError     ErrorKind = "CRYPTO_ERROR"
	ErrorKindInternalError   ErrorKind = "INTERNAL_ERROR"
	ErrorKindNone            ErrorKind = ""
)

var kindToErrorKind = map[kernelerr.Kind]ErrorKind{
	kernelerr.InvalidInput:    ErrorKindInvalidInput,
	kernelerr.InvalidShape:    ErrorKindInvalidShape,
	kernelerr.UnknownExercise: ErrorKindUnknownExercise,
	kernelerr.DecodeError:     ErrorKindDecodeError,
	kernelerr.CryptoError:     ErrorKindCryptoError,
	kernelerr.InternalError:   ErrorKindInternalError,
}

// KindOf translates err's kernelerr.Kind into the ABI's ErrorKind,
// returning ErrorKindNone for a nil error and ErrorKindInternalError for
// an error that is not a kernel error.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	kind := kernelerr.GetKind(err)
	if ek, ok := kindToErrorKind[kind]; ok {
		return ek
	}
	return ErrorKindInternalError
}

// ErrUnknownHandle is returned by accessors when a Handle doesn't
// resolve to a live entry in its Registry.
var ErrUnknownHandle = kernelerr.New(kernelerr.InvalidInput, "unknown or freed handle")
