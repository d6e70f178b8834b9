// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

// LazySeq is a thunk-backed sequence cell. Unrealized it holds a
// 0-arg producer; the first observation invokes the producer exactly
// once, memoizes the resulting seq and drops the thunk.
//
// Memoization is not synchronized: like the persistent collections a
// realized LazySeq may be read from anywhere, but forcing belongs to
// the owning goroutine.
type LazySeq struct {
	fn func() Value
	s  Seq
}

// NewLazySeq wraps a producer whose result is any seqable value,
// typically a cons chain or another lazy seq.
func NewLazySeq(fn func() Value) *LazySeq {
	return &LazySeq{fn: fn}
}

// force realizes the cell, returning the memoized seq, nil when the
// producer yielded an empty seq.
func (l *LazySeq) force() Seq {
	if l.fn != nil {
		fn := l.fn
		l.fn = nil
		l.s, _ = SeqOf(fn())
	}
	return l.s
}

// Realized reports whether the thunk has already run.
func (l *LazySeq) Realized() bool {
	return l.fn == nil
}

// First forces the cell and returns the head, nil when empty.
func (l *LazySeq) First() Value {
	if s := l.force(); s != nil {
		return s.First()
	}
	return nil
}

// Next forces the cell and returns the seq of the tail, nil when
// exhausted.
func (l *LazySeq) Next() Seq {
	if s := l.force(); s != nil {
		return s.Next()
	}
	return nil
}

// Hash forces the whole seq and folds the element hashes in order.
func (l *LazySeq) Hash() uint32 {
	return hashSeqElems(l.force())
}

// Equal reports element-wise equality with another seq, forcing as
// far as needed.
func (l *LazySeq) Equal(other Value) bool {
	return seqEqual(l.force(), other)
}
