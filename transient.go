// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// token identifies the owner of transient trie nodes. Every transient
// gets a fresh token on creation; a node whose token matches the
// transient's may be mutated in place, any other node is cloned and
// restamped first.
//
// The zero token marks persistent nodes and never matches: retiring a
// transient is just zeroing its token, the stamps left in the trie are
// inert because tokens are never reused.
type token = uuid.UUID

// noOwner is the zero token of persistent nodes.
var noOwner token

func newToken() token {
	return uuid.New()
}

// Transients are single-owner: all operations on one transient must
// come from the goroutine that created it, and none may follow
// Persistent. The latter is enforced for every operation that returns
// an error (accessors without one, such as Count, do not check it);
// the former is documented only.

// Transient returns the mutable builder for a persistent collection
// in O(1). Fails [ErrUnsupportedOp] for anything that has no
// transient counterpart.
func Transient(p Value) (Value, error) {
	switch p := p.(type) {
	case *Vector:
		return p.Transient(), nil
	case *DoubleVector:
		return p.Transient(), nil
	case *IntVector:
		return p.Transient(), nil
	case *SortedVector:
		return p.Transient(), nil
	case *Map:
		return p.Transient(), nil
	case *Set:
		return p.Transient(), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedOp, "transient: no transient for %T", p)
}

// PersistentBang seals a transient and returns the persistent value,
// in O(1). The transient is invalidated: any further operation on it
// that returns an error fails [ErrTransientInvalidated].
func PersistentBang(t Value) (Value, error) {
	switch t := t.(type) {
	case *TransientVector:
		return asValue(t.Persistent())
	case *TransientDoubleVector:
		return asValue(t.Persistent())
	case *TransientIntVector:
		return asValue(t.Persistent())
	case *TransientSortedVector:
		return asValue(t.Persistent())
	case *TransientMap:
		return asValue(t.Persistent())
	case *TransientSet:
		return asValue(t.Persistent())
	}
	return nil, errors.Wrapf(ErrUnsupportedOp, "persistent!: not a transient: %T", t)
}

// ConjBang adds x to a transient collection in place.
func ConjBang(t Value, x Value) error {
	switch t := t.(type) {
	case *TransientVector:
		return t.Conj(x)
	case *TransientDoubleVector:
		return t.ConjValue(x)
	case *TransientIntVector:
		return t.ConjValue(x)
	case *TransientSortedVector:
		return t.Conj(x)
	case *TransientMap:
		return t.ConjEntry(x)
	case *TransientSet:
		return t.Conj(x)
	}
	return errors.Wrapf(ErrUnsupportedOp, "conj!: not a transient: %T", t)
}

// AssocBang associates k with v in a transient vector or map in place.
func AssocBang(t Value, k, v Value) error {
	switch t := t.(type) {
	case *TransientVector:
		i, ok := intIndex(k)
		if !ok {
			return errors.Wrapf(ErrUnsupportedOp, "assoc!: vector index must be an integer, got %T", k)
		}
		return t.Assoc(i, v)
	case *TransientMap:
		return t.Assoc(k, v)
	}
	return errors.Wrapf(ErrUnsupportedOp, "assoc!: not an associative transient: %T", t)
}

// DissocBang removes k from a transient map in place.
func DissocBang(t Value, k Value) error {
	if tm, ok := t.(*TransientMap); ok {
		return tm.Dissoc(k)
	}
	return errors.Wrapf(ErrUnsupportedOp, "dissoc!: not a transient map: %T", t)
}

// DisjBang removes x from a transient set in place.
func DisjBang(t Value, x Value) error {
	if ts, ok := t.(*TransientSet); ok {
		return ts.Disj(x)
	}
	return errors.Wrapf(ErrUnsupportedOp, "disj!: not a transient set: %T", t)
}

// PopBang removes the last element of a transient vector in place.
func PopBang(t Value) error {
	switch t := t.(type) {
	case *TransientVector:
		return t.Pop()
	case *TransientDoubleVector:
		return t.Pop()
	case *TransientIntVector:
		return t.Pop()
	}
	return errors.Wrapf(ErrUnsupportedOp, "pop!: not a transient vector: %T", t)
}

// intIndex coerces an integral Value to a Go int index.
func intIndex(v Value) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	}
	return 0, false
}
