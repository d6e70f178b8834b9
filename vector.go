// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import (
	"iter"

	"github.com/pkg/errors"
)

// Vector is a persistent, indexed sequence: a 32-way bit-partitioned
// trie with a tail buffer. Random access, update, append and pop are
// O(log32 n), append and pop amortized O(1).
//
// A Vector is logically immutable, all updating operations return a
// new version sharing the untouched subtrees. Any number of
// goroutines may read, iterate and derive new versions concurrently.
type Vector struct {
	core vcore[Value]
}

// EmptyVector is the canonical empty vector.
var EmptyVector = &Vector{core: emptyCore[Value]()}

// Vec builds a vector of xs, in order.
func Vec(xs ...Value) *Vector {
	if len(xs) == 0 {
		return EmptyVector
	}
	t := EmptyVector.Transient()
	for _, x := range xs {
		_ = t.Conj(x)
	}
	v, _ := t.Persistent()
	return v
}

// Count returns the number of elements.
func (v *Vector) Count() int {
	return v.core.count
}

// Nth returns the element at index i or fails [ErrIndexOutOfRange].
// Negative indices fail.
func (v *Vector) Nth(i int) (Value, error) {
	if i < 0 || i >= v.core.count {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "nth: index %d, count %d", i, v.core.count)
	}
	return v.core.nth(i), nil
}

// NthOr returns the element at index i, or def when i is out of
// range.
func (v *Vector) NthOr(i int, def Value) Value {
	if i < 0 || i >= v.core.count {
		return def
	}
	return v.core.nth(i)
}

// Peek returns the last element, or nil when empty.
func (v *Vector) Peek() Value {
	if v.core.count == 0 {
		return nil
	}
	return v.core.nth(v.core.count - 1)
}

// Conj returns a new vector with x appended.
func (v *Vector) Conj(x Value) *Vector {
	return &Vector{core: v.core.conj(x)}
}

// Pop returns a new vector without the last element, failing on an
// empty vector.
func (v *Vector) Pop() (*Vector, error) {
	switch v.core.count {
	case 0:
		return nil, errors.Wrap(ErrIndexOutOfRange, "pop: empty vector")
	case 1:
		return EmptyVector, nil
	}
	return &Vector{core: v.core.pop()}, nil
}

// Assoc returns a new vector with index i replaced by x. i == count
// appends, anything beyond fails [ErrIndexOutOfRange].
func (v *Vector) Assoc(i int, x Value) (*Vector, error) {
	switch {
	case i < 0 || i > v.core.count:
		return nil, errors.Wrapf(ErrIndexOutOfRange, "assoc: index %d, count %d", i, v.core.count)
	case i == v.core.count:
		return v.Conj(x), nil
	}
	return &Vector{core: v.core.assocIdx(i, x)}, nil
}

// All returns an index/value iterator over the vector, left to right.
func (v *Vector) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		i := 0
		for x := range v.core.values() {
			if !yield(i, x) {
				return
			}
			i++
		}
	}
}

// Values returns an iterator over the elements, left to right.
func (v *Vector) Values() iter.Seq[Value] {
	return v.core.values()
}

// Transient returns a mutable builder sharing this vector's trie,
// in O(1).
func (v *Vector) Transient() *TransientVector {
	t := &TransientVector{owner: newToken(), core: v.core}
	t.core.tail = append(make([]Value, 0, branchFactor), v.core.tail...)
	return t
}

// Hash folds the element hashes in order. Equal vectors hash equal.
func (v *Vector) Hash() uint32 {
	return hashIndexed(v)
}

// Equal reports value equality with another indexed vector
// (Vector, DoubleVector, IntVector or SortedVector).
func (v *Vector) Equal(other Value) bool {
	return indexedEqual(v, other)
}

func (v *Vector) valueAt(i int) Value {
	return v.core.nth(i)
}

// ################## indexed equality ###########################

// indexed is the capability shared by the vector family: exact count
// and random access.
type indexed interface {
	Count() int
	valueAt(i int) Value
}

func indexedEqual(a indexed, other Value) bool {
	b, ok := other.(indexed)
	if !ok || a.Count() != b.Count() {
		return false
	}
	for i := range a.Count() {
		if !Equal(a.valueAt(i), b.valueAt(i)) {
			return false
		}
	}
	return true
}

func hashIndexed(v indexed) uint32 {
	h := uint32(1)
	for i := range v.Count() {
		h = 31*h + Hash(v.valueAt(i))
	}
	return h
}

// ################## transient ##################################

// TransientVector is the single-owner mutable builder of a Vector.
// Nth and every update fail [ErrTransientInvalidated] after
// Persistent; Count does not check the seal and keeps returning the
// element count.
type TransientVector struct {
	owner token
	core  vcore[Value]
}

func (t *TransientVector) editable() error {
	if t.owner == noOwner {
		return errors.Wrap(ErrTransientInvalidated, "transient vector")
	}
	return nil
}

// Count returns the current number of elements.
func (t *TransientVector) Count() int {
	return t.core.count
}

// Nth returns the element at index i or fails [ErrIndexOutOfRange].
func (t *TransientVector) Nth(i int) (Value, error) {
	if err := t.editable(); err != nil {
		return nil, err
	}
	if i < 0 || i >= t.core.count {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "nth: index %d, count %d", i, t.core.count)
	}
	return t.core.nth(i), nil
}

// Conj appends x in place.
func (t *TransientVector) Conj(x Value) error {
	if err := t.editable(); err != nil {
		return err
	}
	t.core.tconj(t.owner, x)
	return nil
}

// Assoc replaces index i with x in place; i == count appends.
func (t *TransientVector) Assoc(i int, x Value) error {
	if err := t.editable(); err != nil {
		return err
	}
	switch {
	case i < 0 || i > t.core.count:
		return errors.Wrapf(ErrIndexOutOfRange, "assoc!: index %d, count %d", i, t.core.count)
	case i == t.core.count:
		t.core.tconj(t.owner, x)
		return nil
	}
	t.core.tassoc(t.owner, i, x)
	return nil
}

// Pop removes the last element in place, failing when empty.
func (t *TransientVector) Pop() error {
	if err := t.editable(); err != nil {
		return err
	}
	switch t.core.count {
	case 0:
		return errors.Wrap(ErrIndexOutOfRange, "pop!: empty vector")
	case 1:
		t.core = emptyCore[Value]()
		t.core.tail = make([]Value, 0, branchFactor)
		return nil
	}
	t.core.tpop(t.owner)
	return nil
}

// Persistent seals the transient and returns the persistent vector,
// in O(1).
func (t *TransientVector) Persistent() (*Vector, error) {
	if err := t.editable(); err != nil {
		return nil, err
	}
	t.owner = noOwner

	if t.core.count == 0 {
		return EmptyVector, nil
	}

	// trim the tail to its exact length so the builder headroom is
	// not carried into the persistent value
	core := t.core
	core.tail = core.tail[:len(core.tail):len(core.tail)]
	return &Vector{core: core}, nil
}
