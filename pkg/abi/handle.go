// Package abi is the kernel's external boundary: it turns the pure,
// slice-based leaf packages (tu, load, geo, rank, ratelimit, crypto) into
// a narrow set of opaque handles and value records suitable for a
// cgo/wasm export surface, without those packages needing to know about
// marshalling themselves.
//
// Numeric buffers cross this boundary as plain Go slices; no manual
// pointer/length bookkeeping happens in-process. Handle is the one
// concession to an externref table: every stateful object (a
// TUCalculator, a rate limiter, a generated key pair) lives behind a
// uuid.UUID token instead of a raw pointer, registered in a Registry.
package abi

import "github.com/google/uuid"

// Handle is an opaque token identifying a registered value. The zero
// Handle never refers to a live entry.
type Handle uuid.UUID

// String renders the handle's underlying UUID.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}
