// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import "slices"

// The eager tail of the sequence library: reducers, predicates and
// the collection utilities built on them.

// Reduce folds f over the elements of coll starting from init.
func Reduce(f func(acc, x Value) Value, init, coll Value) (Value, error) {
	s, err := SeqOf(coll)
	if err != nil {
		return nil, err
	}
	acc := init
	for ; s != nil; s = s.Next() {
		acc = f(acc, s.First())
	}
	return acc, nil
}

// Reductions lazily yields init and every intermediate accumulator
// of the fold.
func Reductions(f func(acc, x Value) Value, init, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		return NewCons(init, NewLazySeq(func() Value {
			s := mustSeq(coll)
			if s == nil {
				return nil
			}
			return Reductions(f, f(init, s.First()), seqRest(s))
		}))
	})
}

// Some returns the first element satisfying pred, nil when none
// does.
func Some(pred func(Value) bool, coll Value) (Value, error) {
	s, err := SeqOf(coll)
	if err != nil {
		return nil, err
	}
	for ; s != nil; s = s.Next() {
		if pred(s.First()) {
			return s.First(), nil
		}
	}
	return nil, nil
}

// Every reports whether pred holds for all elements; true for the
// empty seq.
func Every(pred func(Value) bool, coll Value) (bool, error) {
	s, err := SeqOf(coll)
	if err != nil {
		return false, err
	}
	for ; s != nil; s = s.Next() {
		if !pred(s.First()) {
			return false, nil
		}
	}
	return true, nil
}

// NotEvery is the complement of Every.
func NotEvery(pred func(Value) bool, coll Value) (bool, error) {
	ok, err := Every(pred, coll)
	return !ok, err
}

// NotAny reports whether pred holds for no element.
func NotAny(pred func(Value) bool, coll Value) (bool, error) {
	return Every(func(x Value) bool { return !pred(x) }, coll)
}

// Last walks to the final element, nil for an empty coll.
func Last(coll Value) (Value, error) {
	s, err := SeqOf(coll)
	if err != nil || s == nil {
		return nil, err
	}
	for {
		n := s.Next()
		if n == nil {
			return s.First(), nil
		}
		s = n
	}
}

// Reverse eagerly reverses coll into a list.
func Reverse(coll Value) (Value, error) {
	s, err := SeqOf(coll)
	if err != nil {
		return nil, err
	}
	var ret Value = EmptyList
	for ; s != nil; s = s.Next() {
		ret = NewCons(s.First(), ret)
	}
	return ret, nil
}

// Sort returns a vector of the elements in ascending [Compare]
// order. The sort is stable.
func Sort(coll Value) (*Vector, error) {
	return SortBy(nil, coll)
}

// SortBy sorts by the key function, identity when nil.
func SortBy(key func(Value) Value, coll Value) (*Vector, error) {
	elems, err := collectSlice(coll)
	if err != nil {
		return nil, err
	}
	if key == nil {
		key = func(x Value) Value { return x }
	}

	var cmpErr error
	slices.SortStableFunc(elems, func(a, b Value) int {
		c, err := Compare(key(a), key(b))
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return c
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	return Vec(elems...), nil
}

// SplitAt returns a two element vector of the lazy halves
// [(take n coll) (drop n coll)].
func SplitAt(n int, coll Value) *Vector {
	return Vec(Take(n, coll), Drop(n, coll))
}

// SplitWith returns a two element vector of the lazy halves
// [(take-while pred coll) (drop-while pred coll)].
func SplitWith(pred func(Value) bool, coll Value) *Vector {
	return Vec(TakeWhile(pred, coll), DropWhile(pred, coll))
}

// Zipmap builds a map from parallel key and value collections,
// ending with the shorter one.
func Zipmap(keys, vals Value) (*Map, error) {
	ks, err := SeqOf(keys)
	if err != nil {
		return nil, err
	}
	vs, err := SeqOf(vals)
	if err != nil {
		return nil, err
	}

	t := EmptyMap.Transient()
	for ks != nil && vs != nil {
		_ = t.Assoc(ks.First(), vs.First())
		ks, vs = ks.Next(), vs.Next()
	}
	return t.Persistent()
}

// GroupBy buckets the elements into a map from f(x) to the vector of
// elements with that key, in encounter order.
func GroupBy(f func(Value) Value, coll Value) (*Map, error) {
	s, err := SeqOf(coll)
	if err != nil {
		return nil, err
	}

	t := EmptyMap.Transient()
	for ; s != nil; s = s.Next() {
		x := s.First()
		k := f(x)

		bucket, ok := t.Get(k)
		if !ok {
			bucket = EmptyVector
		}
		_ = t.Assoc(k, bucket.(*Vector).Conj(x))
	}
	return t.Persistent()
}

// Frequencies counts the occurrences of each distinct element.
func Frequencies(coll Value) (*Map, error) {
	s, err := SeqOf(coll)
	if err != nil {
		return nil, err
	}

	t := EmptyMap.Transient()
	for ; s != nil; s = s.Next() {
		x := s.First()
		n, _ := t.Get(x)
		if n == nil {
			n = 0
		}
		_ = t.Assoc(x, n.(int)+1)
	}
	return t.Persistent()
}

// DoAll forces a lazy seq to its end and returns it.
func DoAll(coll Value) (Value, error) {
	s, err := SeqOf(coll)
	if err != nil {
		return nil, err
	}
	for walk := s; walk != nil; walk = walk.Next() {
	}
	return coll, nil
}

// DoRun forces a lazy seq to its end for its effects, returning
// nothing.
func DoRun(coll Value) error {
	_, err := DoAll(coll)
	return err
}

// Realized reports whether a lazy seq has been forced; every other
// value is trivially realized.
func Realized(x Value) bool {
	if l, ok := x.(*LazySeq); ok {
		return l.Realized()
	}
	return true
}

// collectSlice drains the seq of coll into a Go slice.
func collectSlice(coll Value) ([]Value, error) {
	s, err := SeqOf(coll)
	if err != nil {
		return nil, err
	}
	var elems []Value
	for ; s != nil; s = s.Next() {
		elems = append(elems, s.First())
	}
	return elems, nil
}
