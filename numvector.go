// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import (
	"iter"
	"math"

	"github.com/pkg/errors"
)

// number are the payload types of the specialized vectors.
type number interface {
	~int64 | ~float64
}

// NumVector is a persistent vector over packed primitive leaves. The
// trie shape and all costs are identical to [Vector], only the leaf
// storage differs: chunks are contiguous []T slabs that numeric
// consumers can read without boxing, see [NumVector.Slabs].
type NumVector[T number] struct {
	core vcore[T]
}

// DoubleVector is the f64 specialization of the persistent vector.
type DoubleVector = NumVector[float64]

// IntVector is the i64 specialization of the persistent vector.
type IntVector = NumVector[int64]

// EmptyDoubleVector is the canonical empty f64 vector.
var EmptyDoubleVector = &DoubleVector{core: emptyCore[float64]()}

// EmptyIntVector is the canonical empty i64 vector.
var EmptyIntVector = &IntVector{core: emptyCore[int64]()}

// VecF64 builds an f64 vector of xs, in order.
func VecF64(xs ...float64) *DoubleVector {
	if len(xs) == 0 {
		return EmptyDoubleVector
	}
	t := EmptyDoubleVector.Transient()
	for _, x := range xs {
		_ = t.Conj(x)
	}
	v, _ := t.Persistent()
	return v
}

// VecI64 builds an i64 vector of xs, in order.
func VecI64(xs ...int64) *IntVector {
	if len(xs) == 0 {
		return EmptyIntVector
	}
	t := EmptyIntVector.Transient()
	for _, x := range xs {
		_ = t.Conj(x)
	}
	v, _ := t.Persistent()
	return v
}

// coerceNum converts a boxed Value to the vector's element type.
// Ints widen into f64 vectors; only integral floats narrow into i64
// vectors. Everything else fails [ErrTypeMismatch].
func coerceNum[T number](x Value) (T, error) {
	var zero T
	switch any(zero).(type) {
	case float64:
		if f, ok := numValue(x); ok {
			return T(f), nil
		}
	case int64:
		if i, ok := intIndex(x); ok {
			return T(i), nil
		}
		if f, ok := x.(float64); ok && f == math.Trunc(f) {
			return T(f), nil
		}
	}
	return zero, errors.Wrapf(ErrTypeMismatch, "numeric vector element: %T(%v)", x, x)
}

// Count returns the number of elements.
func (v *NumVector[T]) Count() int {
	return v.core.count
}

// Nth returns the element at index i or fails [ErrIndexOutOfRange].
func (v *NumVector[T]) Nth(i int) (T, error) {
	if i < 0 || i >= v.core.count {
		var zero T
		return zero, errors.Wrapf(ErrIndexOutOfRange, "nth: index %d, count %d", i, v.core.count)
	}
	return v.core.nth(i), nil
}

// Peek returns the last element, or 0 when empty.
func (v *NumVector[T]) Peek() T {
	if v.core.count == 0 {
		var zero T
		return zero
	}
	return v.core.nth(v.core.count - 1)
}

// Conj returns a new vector with x appended.
func (v *NumVector[T]) Conj(x T) *NumVector[T] {
	return &NumVector[T]{core: v.core.conj(x)}
}

// ConjValue appends a boxed numeric Value, failing [ErrTypeMismatch]
// for non numeric elements.
func (v *NumVector[T]) ConjValue(x Value) (*NumVector[T], error) {
	n, err := coerceNum[T](x)
	if err != nil {
		return nil, err
	}
	return v.Conj(n), nil
}

// Pop returns a new vector without the last element, failing on an
// empty vector.
func (v *NumVector[T]) Pop() (*NumVector[T], error) {
	switch v.core.count {
	case 0:
		return nil, errors.Wrap(ErrIndexOutOfRange, "pop: empty vector")
	case 1:
		return &NumVector[T]{core: emptyCore[T]()}, nil
	}
	return &NumVector[T]{core: v.core.pop()}, nil
}

// Assoc returns a new vector with index i replaced by x. i == count
// appends.
func (v *NumVector[T]) Assoc(i int, x T) (*NumVector[T], error) {
	switch {
	case i < 0 || i > v.core.count:
		return nil, errors.Wrapf(ErrIndexOutOfRange, "assoc: index %d, count %d", i, v.core.count)
	case i == v.core.count:
		return v.Conj(x), nil
	}
	return &NumVector[T]{core: v.core.assocIdx(i, x)}, nil
}

// AssocValue is Assoc over a boxed numeric Value.
func (v *NumVector[T]) AssocValue(i int, x Value) (*NumVector[T], error) {
	n, err := coerceNum[T](x)
	if err != nil {
		return nil, err
	}
	return v.Assoc(i, n)
}

// Values returns an iterator over the elements, left to right.
func (v *NumVector[T]) Values() iter.Seq[T] {
	return v.core.values()
}

// Slabs yields the vector's contiguous storage: every complete leaf
// and finally the tail, as zero-copy []T views. The slabs must be
// treated as read-only.
func (v *NumVector[T]) Slabs() iter.Seq[[]T] {
	return v.core.slabs()
}

// Transient returns a mutable builder sharing this vector's trie,
// in O(1).
func (v *NumVector[T]) Transient() *TransientNumVector[T] {
	t := &TransientNumVector[T]{owner: newToken(), core: v.core}
	t.core.tail = append(make([]T, 0, branchFactor), v.core.tail...)
	return t
}

// Hash folds the element hashes in order; a NumVector hashes equal
// to the boxed [Vector] with the same numeric contents.
func (v *NumVector[T]) Hash() uint32 {
	return hashIndexed(v)
}

// Equal reports value equality with another indexed vector.
func (v *NumVector[T]) Equal(other Value) bool {
	return indexedEqual(v, other)
}

func (v *NumVector[T]) valueAt(i int) Value {
	return v.core.nth(i)
}

// ################## transient ##################################

// TransientNumVector is the single-owner mutable builder of a
// NumVector.
type TransientNumVector[T number] struct {
	owner token
	core  vcore[T]
}

// TransientDoubleVector builds a DoubleVector.
type TransientDoubleVector = TransientNumVector[float64]

// TransientIntVector builds an IntVector.
type TransientIntVector = TransientNumVector[int64]

func (t *TransientNumVector[T]) editable() error {
	if t.owner == noOwner {
		return errors.Wrap(ErrTransientInvalidated, "transient numeric vector")
	}
	return nil
}

// Count returns the current number of elements.
func (t *TransientNumVector[T]) Count() int {
	return t.core.count
}

// Nth returns the element at index i or fails [ErrIndexOutOfRange].
func (t *TransientNumVector[T]) Nth(i int) (T, error) {
	var zero T
	if err := t.editable(); err != nil {
		return zero, err
	}
	if i < 0 || i >= t.core.count {
		return zero, errors.Wrapf(ErrIndexOutOfRange, "nth: index %d, count %d", i, t.core.count)
	}
	return t.core.nth(i), nil
}

// Conj appends x in place.
func (t *TransientNumVector[T]) Conj(x T) error {
	if err := t.editable(); err != nil {
		return err
	}
	t.core.tconj(t.owner, x)
	return nil
}

// ConjValue appends a boxed numeric Value in place.
func (t *TransientNumVector[T]) ConjValue(x Value) error {
	n, err := coerceNum[T](x)
	if err != nil {
		return err
	}
	return t.Conj(n)
}

// Assoc replaces index i with x in place; i == count appends.
func (t *TransientNumVector[T]) Assoc(i int, x T) error {
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
func (t *TransientNumVector[T]) Pop() error {
	if err := t.editable(); err != nil {
		return err
	}
	switch t.core.count {
	case 0:
		return errors.Wrap(ErrIndexOutOfRange, "pop!: empty vector")
	case 1:
		t.core = emptyCore[T]()
		t.core.tail = make([]T, 0, branchFactor)
		return nil
	}
	t.core.tpop(t.owner)
	return nil
}

// Persistent seals the transient and returns the persistent vector,
// in O(1).
func (t *TransientNumVector[T]) Persistent() (*NumVector[T], error) {
	if err := t.editable(); err != nil {
		return nil, err
	}
	t.owner = noOwner

	core := t.core
	core.tail = core.tail[:len(core.tail):len(core.tail)]
	return &NumVector[T]{core: core}, nil
}
