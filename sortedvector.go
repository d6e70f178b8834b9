// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import (
	"iter"
)

// SortedVector is a persistent vector whose iteration order is kept
// sorted by a key function, ascending unless reverse. Conj finds the
// insertion point by binary search and splices, so it is O(n) in the
// worst case — the intended use are small to medium sorted builders.
//
// Duplicate keys: a new element is inserted at the first equal
// position, before previously inserted elements with the same key.
type SortedVector struct {
	vec     *Vector
	key     func(Value) Value
	reverse bool
}

// SortedVec returns an empty sorted vector. key nil means the
// elements order themselves; reverse flips to descending.
func SortedVec(key func(Value) Value, reverse bool) *SortedVector {
	return &SortedVector{vec: EmptyVector, key: key, reverse: reverse}
}

// EmptySortedVector is the empty sorted vector with the default
// order: ascending, elements as their own keys.
var EmptySortedVector = SortedVec(nil, false)

func (sv *SortedVector) keyOf(x Value) Value {
	if sv.key == nil {
		return x
	}
	return sv.key(x)
}

// searchSorted returns the first index whose key does not order
// before x's key — the lower bound. Fails [ErrTypeMismatch] when the
// keys are not mutually comparable.
func searchSorted(count int, at func(int) Value, keyOf func(Value) Value, reverse bool, x Value) (int, error) {
	kx := keyOf(x)

	lo, hi := 0, count
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c, err := Compare(keyOf(at(mid)), kx)
		if err != nil {
			return 0, err
		}
		if reverse {
			c = -c
		}
		if c < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, nil
}

// Count returns the number of elements.
func (sv *SortedVector) Count() int {
	return sv.vec.Count()
}

// Nth returns the element at sort position i.
func (sv *SortedVector) Nth(i int) (Value, error) {
	return sv.vec.Nth(i)
}

// NthOr returns the element at sort position i, or def when out of
// range.
func (sv *SortedVector) NthOr(i int, def Value) Value {
	return sv.vec.NthOr(i, def)
}

// Peek returns the last element in sort order, nil when empty.
func (sv *SortedVector) Peek() Value {
	return sv.vec.Peek()
}

// Conj returns a new sorted vector with x inserted at its sort
// position.
func (sv *SortedVector) Conj(x Value) (*SortedVector, error) {
	idx, err := searchSorted(sv.vec.Count(), func(i int) Value { return sv.vec.core.nth(i) }, sv.keyOf, sv.reverse, x)
	if err != nil {
		return nil, err
	}

	t := EmptyVector.Transient()
	for i := range idx {
		_ = t.Conj(sv.vec.core.nth(i))
	}
	_ = t.Conj(x)
	for i := idx; i < sv.vec.Count(); i++ {
		_ = t.Conj(sv.vec.core.nth(i))
	}

	v, _ := t.Persistent()
	return &SortedVector{vec: v, key: sv.key, reverse: sv.reverse}, nil
}

// Pop returns a new sorted vector without the last element in sort
// order.
func (sv *SortedVector) Pop() (*SortedVector, error) {
	v, err := sv.vec.Pop()
	if err != nil {
		return nil, err
	}
	return &SortedVector{vec: v, key: sv.key, reverse: sv.reverse}, nil
}

// All returns a position/value iterator in sort order.
func (sv *SortedVector) All() iter.Seq2[int, Value] {
	return sv.vec.All()
}

// Values returns an iterator over the elements in sort order.
func (sv *SortedVector) Values() iter.Seq[Value] {
	return sv.vec.Values()
}

// Transient returns a mutable sorted builder sharing this vector's
// trie, in O(1).
func (sv *SortedVector) Transient() *TransientSortedVector {
	return &TransientSortedVector{tv: sv.vec.Transient(), key: sv.key, reverse: sv.reverse}
}

// Hash folds the element hashes in sort order.
func (sv *SortedVector) Hash() uint32 {
	return hashIndexed(sv)
}

// Equal reports value equality with another indexed vector.
func (sv *SortedVector) Equal(other Value) bool {
	return indexedEqual(sv, other)
}

func (sv *SortedVector) valueAt(i int) Value {
	return sv.vec.core.nth(i)
}

// ################## transient ##################################

// TransientSortedVector is the single-owner mutable builder of a
// SortedVector. Sorted input inserts at the end and stays cheap; out
// of order input pays the O(n) shift.
type TransientSortedVector struct {
	tv      *TransientVector
	key     func(Value) Value
	reverse bool
}

func (t *TransientSortedVector) keyOf(x Value) Value {
	if t.key == nil {
		return x
	}
	return t.key(x)
}

// Count returns the current number of elements.
func (t *TransientSortedVector) Count() int {
	return t.tv.Count()
}

// Conj inserts x at its sort position in place.
func (t *TransientSortedVector) Conj(x Value) error {
	if err := t.tv.editable(); err != nil {
		return err
	}

	n := t.tv.Count()
	idx, err := searchSorted(n, func(i int) Value { return t.tv.core.nth(i) }, t.keyOf, t.reverse, x)
	if err != nil {
		return err
	}

	// append and shift the tail of the order right by one
	if err := t.tv.Conj(x); err != nil {
		return err
	}
	for i := n; i > idx; i-- {
		t.tv.core.tassoc(t.tv.owner, i, t.tv.core.nth(i-1))
	}
	t.tv.core.tassoc(t.tv.owner, idx, x)
	return nil
}

// Persistent seals the transient and returns the persistent sorted
// vector, in O(1).
func (t *TransientSortedVector) Persistent() (*SortedVector, error) {
	v, err := t.tv.Persistent()
	if err != nil {
		return nil, err
	}
	return &SortedVector{vec: v, key: t.key, reverse: t.reverse}, nil
}
