// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import "github.com/pkg/errors"

// Error kinds surfaced by the collection operations. All fallible
// operations wrap one of these sentinels, so callers can classify
// failures with [errors.Is] regardless of the added context.
//
// The library never logs and never retries; every error is returned
// to the caller with the operation's context attached.
var (
	// ErrIndexOutOfRange is wrapped by vector nth/assoc with an index
	// outside the vector's bounds, and by pop on an empty vector.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKeyNotFound is wrapped by lookups that were explicitly asked
	// to fail instead of returning a default.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnsupportedOp is wrapped when an operation has no meaning for
	// the collection kind, e.g. nth on a map or dissoc on a vector.
	ErrUnsupportedOp = errors.New("unsupported operation")

	// ErrArityMismatch is wrapped by HashMap with an odd number of
	// arguments and by conj on a map with an entry that is not a
	// two element vector.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrTransientInvalidated is wrapped by any transient operation
	// that returns an error, once Persistent has been called on it.
	ErrTransientInvalidated = errors.New("transient used after persistent")

	// ErrTypeMismatch is wrapped by the numeric vectors when fed a non
	// numeric element and by sorted vectors whose key fn produced an
	// uncomparable value.
	ErrTypeMismatch = errors.New("type mismatch")
)
