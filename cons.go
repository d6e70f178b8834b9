// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

// Cons is the immutable pair (first, rest) — the canonical sequence
// cell. rest is any seqable value, usually another *Cons, the empty
// list or a lazy seq.
type Cons struct {
	first Value
	rest  Value
}

// NewCons prepends x to the seqable rest.
func NewCons(x, rest Value) *Cons {
	return &Cons{first: x, rest: rest}
}

// List builds a cons list of xs, in order.
func List(xs ...Value) Value {
	var ret Value = EmptyList
	for i := len(xs) - 1; i >= 0; i-- {
		ret = NewCons(xs[i], ret)
	}
	return ret
}

// First returns the head.
func (c *Cons) First() Value {
	return c.first
}

// Next returns the seq of the tail, nil when exhausted.
func (c *Cons) Next() Seq {
	s, _ := SeqOf(c.rest)
	return s
}

// Count walks the list, O(n).
func (c *Cons) Count() int {
	n := 0
	for s := Seq(c); s != nil; s = s.Next() {
		n++
	}
	return n
}

// Hash folds the element hashes in order, like a seq.
func (c *Cons) Hash() uint32 {
	return hashSeqElems(c)
}

// Equal reports value equality with another seq (cons or lazy seq),
// element-wise.
func (c *Cons) Equal(other Value) bool {
	return seqEqual(c, other)
}

// emptyList is the distinguished empty sequence: first is nil, rest
// is itself, seq of it is nil.
type emptyList struct{}

// EmptyList is the canonical empty list. Rest of any exhausted seq
// returns it, so seq chaining is total.
var EmptyList = emptyList{}

// Hash of the empty list is the seed of the ordered seq fold, so it
// agrees with every other empty seq.
func (emptyList) Hash() uint32 {
	return hashSeqElems(nil)
}

// Equal reports whether other is an empty seq.
func (emptyList) Equal(other Value) bool {
	return seqEqual(nil, other)
}

// hashSeqElems is the ordered hash fold over a seq chain.
func hashSeqElems(s Seq) uint32 {
	h := uint32(1)
	for ; s != nil; s = s.Next() {
		h = 31*h + Hash(s.First())
	}
	return h
}

// seqEqual compares two seqable values element-wise. Only seq kinds
// (cons, lazy seq, the empty list) are comparable with each other.
func seqEqual(s Seq, other Value) bool {
	switch other.(type) {
	case *Cons, *LazySeq, emptyList:
	default:
		return false
	}

	o, _ := SeqOf(other)
	for {
		switch {
		case s == nil:
			return o == nil
		case o == nil:
			return false
		case !Equal(s.First(), o.First()):
			return false
		}
		s, o = s.Next(), o.Next()
	}
}
