// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import (
	"iter"

	"github.com/pkg/errors"
)

// Seq is the canonical abstract sequence view: a head and the seq of
// the tail. A nil Seq is the empty sequence.
//
// Seqs over persistent collections are immutable and persistent
// themselves: First and Next may be called any number of times, from
// any goroutine, with the same results.
type Seq interface {
	First() Value
	Next() Seq
}

// SeqOf coerces a value to its sequence view: nil for anything
// empty, a lazy projection for vectors, maps and sets, the (forced)
// chain for cons and lazy seqs, a rune seq for strings. Fails
// [ErrUnsupportedOp] for non-seqable values.
func SeqOf(x Value) (Seq, error) {
	switch x := x.(type) {
	case nil:
		return nil, nil
	case emptyList:
		return nil, nil
	case *Cons:
		return x, nil
	case *LazySeq:
		return x.force(), nil
	case *SortedVector:
		return seqOfIndexed(x.vec), nil
	case *Map:
		return newMapSeq(x.root, false), nil
	case *Set:
		return newMapSeq(x.m.root, true), nil
	case string:
		return seqOfString(x), nil
	case Seq:
		return x, nil
	default:
		if iv, ok := x.(indexed); ok {
			return seqOfIndexed(iv), nil
		}
		return nil, errors.Wrapf(ErrUnsupportedOp, "seq: %T is not seqable", x)
	}
}

// asValue adapts a typed (result, error) pair to the generic
// protocol signature.
func asValue[T any](v T, err error) (Value, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// First returns the head of the seq of x, nil when empty.
func First(x Value) (Value, error) {
	s, err := SeqOf(x)
	if err != nil || s == nil {
		return nil, err
	}
	return s.First(), nil
}

// Rest returns the tail of the seq of x. It is total: the rest of an
// empty or exhausted seq is the empty list, never nil.
func Rest(x Value) (Value, error) {
	s, err := SeqOf(x)
	if err != nil || s == nil {
		return EmptyList, err
	}
	if n := s.Next(); n != nil {
		return n, nil
	}
	return EmptyList, nil
}

// Count returns the number of elements in the collection or seq.
// Constant time for the counted collections, O(n) for seqs.
func Count(x Value) (int, error) {
	switch x := x.(type) {
	case nil:
		return 0, nil
	case *Map:
		return x.count, nil
	case *Set:
		return x.Count(), nil
	case string:
		n := 0
		for range x {
			n++
		}
		return n, nil
	}
	if iv, ok := x.(indexed); ok {
		return iv.Count(), nil
	}

	// seq walk
	s, err := SeqOf(x)
	if err != nil {
		return 0, err
	}
	n := 0
	for ; s != nil; s = s.Next() {
		n++
	}
	return n, nil
}

// Nth returns element i of an indexed collection in O(log n), or of
// a seq in O(n). Fails [ErrIndexOutOfRange] past the end and
// [ErrUnsupportedOp] on maps and sets.
func Nth(x Value, i int) (Value, error) {
	switch x := x.(type) {
	case *Map, *Set:
		return nil, errors.Wrapf(ErrUnsupportedOp, "nth: not supported on %T", x)
	case *Vector:
		return x.Nth(i)
	case *DoubleVector:
		return asValue(x.Nth(i))
	case *IntVector:
		return asValue(x.Nth(i))
	case *SortedVector:
		return x.Nth(i)
	}

	s, err := SeqOf(x)
	if err != nil {
		return nil, err
	}
	if i >= 0 {
		for n := 0; s != nil; s, n = s.Next(), n+1 {
			if n == i {
				return s.First(), nil
			}
		}
	}
	return nil, errors.Wrapf(ErrIndexOutOfRange, "nth: index %d", i)
}

// NthOr is Nth with a default for out of range indices.
func NthOr(x Value, i int, def Value) (Value, error) {
	v, err := Nth(x, i)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, ErrIndexOutOfRange):
		return def, nil
	}
	return nil, err
}

// Conj adds x to coll in the collection's natural place: appended to
// a vector, inserted into a map (as a [k v] entry) or set, prepended
// to a seq. Conj onto nil builds a one element list.
func Conj(coll, x Value) (Value, error) {
	switch coll := coll.(type) {
	case nil:
		return NewCons(x, EmptyList), nil
	case *Vector:
		return coll.Conj(x), nil
	case *DoubleVector:
		return asValue(coll.ConjValue(x))
	case *IntVector:
		return asValue(coll.ConjValue(x))
	case *SortedVector:
		return asValue(coll.Conj(x))
	case *Map:
		return asValue(coll.ConjEntry(x))
	case *Set:
		return coll.Conj(x), nil
	case *Cons, *LazySeq, emptyList:
		return NewCons(x, coll), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedOp, "conj: not a collection: %T", coll)
}

// Get looks k up in an associative collection, nil when absent.
// On a vector k is an index, on a set the member itself is returned.
// Non-associative collections and nil yield the default.
func Get(coll, k Value) Value {
	return GetOr(coll, k, nil)
}

// GetOr is Get with an explicit default.
func GetOr(coll, k, def Value) Value {
	switch coll := coll.(type) {
	case *Map:
		return coll.GetOr(k, def)
	case *Set:
		if coll.Contains(k) {
			return k
		}
		return def
	}
	if iv, ok := coll.(indexed); ok {
		if i, ok := intIndex(k); ok && i >= 0 && i < iv.Count() {
			return iv.valueAt(i)
		}
	}
	return def
}

// GetStrict is Get for callers that want an error instead of a
// default: fails [ErrKeyNotFound] when k is absent.
func GetStrict(coll, k Value) (Value, error) {
	missing := &struct{}{}
	if v := GetOr(coll, k, missing); v != missing {
		return v, nil
	}
	return nil, errors.Wrapf(ErrKeyNotFound, "get: %s", stringOf(k))
}

// Contains reports key membership: an index in range for vectors, a
// key for maps, a member for sets.
func Contains(coll, k Value) (bool, error) {
	switch coll := coll.(type) {
	case nil:
		return false, nil
	case *Map:
		return coll.Contains(k), nil
	case *Set:
		return coll.Contains(k), nil
	}
	if iv, ok := coll.(indexed); ok {
		i, ok := intIndex(k)
		return ok && i >= 0 && i < iv.Count(), nil
	}
	return false, errors.Wrapf(ErrUnsupportedOp, "contains?: not supported on %T", coll)
}

// Assoc associates k with v: by index on a vector (index count
// appends), by key on a map. Assoc onto nil builds a map.
func Assoc(coll, k, v Value) (Value, error) {
	switch coll := coll.(type) {
	case nil:
		return EmptyMap.Assoc(k, v), nil
	case *Map:
		return coll.Assoc(k, v), nil
	case *Vector:
		i, ok := intIndex(k)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedOp, "assoc: vector index must be an integer, got %T", k)
		}
		return asValue(coll.Assoc(i, v))
	case *DoubleVector:
		i, ok := intIndex(k)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedOp, "assoc: vector index must be an integer, got %T", k)
		}
		return asValue(coll.AssocValue(i, v))
	case *IntVector:
		i, ok := intIndex(k)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedOp, "assoc: vector index must be an integer, got %T", k)
		}
		return asValue(coll.AssocValue(i, v))
	}
	return nil, errors.Wrapf(ErrUnsupportedOp, "assoc: not associative: %T", coll)
}

// Dissoc removes k from a map. Dissoc on nil is nil.
func Dissoc(coll, k Value) (Value, error) {
	switch coll := coll.(type) {
	case nil:
		return nil, nil
	case *Map:
		return coll.Dissoc(k), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedOp, "dissoc: not a map: %T", coll)
}

// Disj removes x from a set. Disj on nil is nil.
func Disj(coll, x Value) (Value, error) {
	switch coll := coll.(type) {
	case nil:
		return nil, nil
	case *Set:
		return coll.Disj(x), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedOp, "disj: not a set: %T", coll)
}

// Empty returns the canonical empty collection of coll's kind. For a
// sorted vector the key fn and order are preserved.
func Empty(coll Value) (Value, error) {
	switch coll := coll.(type) {
	case nil:
		return nil, nil
	case *Vector:
		return EmptyVector, nil
	case *DoubleVector:
		return EmptyDoubleVector, nil
	case *IntVector:
		return EmptyIntVector, nil
	case *SortedVector:
		return SortedVec(coll.key, coll.reverse), nil
	case *Map:
		return EmptyMap, nil
	case *Set:
		return EmptySet, nil
	case *Cons, *LazySeq, emptyList:
		return EmptyList, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedOp, "empty: not a collection: %T", coll)
}

// Into conjoins every element of src into dst, using a transient of
// dst's kind where one exists. For a map dst the source elements
// must be [k v] entries (or src is itself a map).
func Into(dst, src Value) (Value, error) {
	elems, err := elements(src)
	if err != nil {
		return nil, err
	}

	switch dst := dst.(type) {
	case *Vector:
		t := dst.Transient()
		for x := range elems {
			if err := t.Conj(x); err != nil {
				return nil, err
			}
		}
		return asValue(t.Persistent())

	case *DoubleVector:
		return intoNumVector(dst, elems)

	case *IntVector:
		return intoNumVector(dst, elems)

	case *SortedVector:
		t := dst.Transient()
		for x := range elems {
			if err := t.Conj(x); err != nil {
				return nil, err
			}
		}
		return asValue(t.Persistent())

	case *Map:
		t := dst.Transient()
		for x := range elems {
			if err := t.ConjEntry(x); err != nil {
				return nil, err
			}
		}
		return asValue(t.Persistent())

	case *Set:
		t := dst.Transient()
		for x := range elems {
			if err := t.Conj(x); err != nil {
				return nil, err
			}
		}
		return asValue(t.Persistent())
	}

	// seqs and nil: fall back to repeated conj (prepends)
	acc := dst
	for x := range elems {
		var err error
		acc, err = Conj(acc, x)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func intoNumVector[T number](dst *NumVector[T], elems iter.Seq[Value]) (Value, error) {
	t := dst.Transient()
	for x := range elems {
		if err := t.ConjValue(x); err != nil {
			return nil, err
		}
	}
	return asValue(t.Persistent())
}

// elements iterates the seq of x, failing up front for a non-seqable
// x.
func elements(x Value) (iter.Seq[Value], error) {
	s, err := SeqOf(x)
	if err != nil {
		return nil, err
	}
	return func(yield func(Value) bool) {
		for ; s != nil; s = s.Next() {
			if !yield(s.First()) {
				return
			}
		}
	}, nil
}

// ################## seq implementations ########################

// vecSeq is the lazy index-walking projection of an indexed vector.
type vecSeq struct {
	v indexed
	i int
}

func seqOfIndexed(v indexed) Seq {
	if v.Count() == 0 {
		return nil
	}
	return &vecSeq{v: v}
}

func (s *vecSeq) First() Value {
	return s.v.valueAt(s.i)
}

func (s *vecSeq) Next() Seq {
	if s.i+1 < s.v.Count() {
		return &vecSeq{v: s.v, i: s.i + 1}
	}
	return nil
}

// mapCursor tracks the walk position inside one trie node.
type mapCursor struct {
	node  *mnode
	entry int
	coll  int
	sub   int
}

// mapSeq walks a map (entries as [k v] vectors) or a set (members)
// depth-first. Next copies the cursor stack, depth is bounded by the
// trie height, so the seq itself stays persistent.
type mapSeq struct {
	stack    []mapCursor
	k, v     Value
	keysOnly bool
}

func newMapSeq(root *mnode, keysOnly bool) Seq {
	if root == nil {
		return nil
	}
	ms := &mapSeq{stack: []mapCursor{{node: root}}, keysOnly: keysOnly}
	if !ms.advance() {
		return nil
	}
	return ms
}

func (s *mapSeq) First() Value {
	if s.keysOnly {
		return s.k
	}
	return Vec(s.k, s.v)
}

func (s *mapSeq) Next() Seq {
	n := &mapSeq{stack: append([]mapCursor(nil), s.stack...), keysOnly: s.keysOnly}
	if !n.advance() {
		return nil
	}
	return n
}

// advance moves to the next entry, growing and shrinking the cursor
// stack as it descends and backtracks.
func (s *mapSeq) advance() bool {
	for len(s.stack) > 0 {
		top := &s.stack[len(s.stack)-1]
		n := top.node

		switch {
		case top.entry < n.entries.Len():
			e := n.entries.Items[top.entry]
			top.entry++
			s.k, s.v = e.key, e.val
			return true

		case top.coll < len(n.coll):
			e := n.coll[top.coll]
			top.coll++
			s.k, s.v = e.key, e.val
			return true

		case top.sub < n.subs.Len():
			child := n.subs.Items[top.sub]
			top.sub++
			s.stack = append(s.stack, mapCursor{node: child})

		default:
			s.stack = s.stack[:len(s.stack)-1]
		}
	}
	return false
}

// stringSeq walks the runes of a string, yielding 1-rune strings.
type stringSeq struct {
	runes []rune
	i     int
}

func seqOfString(str string) Seq {
	if str == "" {
		return nil
	}
	return &stringSeq{runes: []rune(str)}
}

func (s *stringSeq) First() Value {
	return string(s.runes[s.i])
}

func (s *stringSeq) Next() Seq {
	if s.i+1 < len(s.runes) {
		return &stringSeq{runes: s.runes, i: s.i + 1}
	}
	return nil
}
