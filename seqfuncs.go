// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

// The lazy combinators. Each returns a [LazySeq] that, when forced,
// computes exactly one element plus the thunk for the tail; nothing
// is materialized ahead of consumption.
//
// Laziness moves error reporting to forcing time: a combinator fed a
// non-seqable value panics with the wrapped [ErrUnsupportedOp] when
// the first cell is realized. Collection kinds are checked eagerly
// nowhere, the producer thunk is the only place the input is seen.

// mustSeq is SeqOf for lazy thunks, where no error channel exists.
func mustSeq(x Value) Seq {
	s, err := SeqOf(x)
	if err != nil {
		panic(err)
	}
	return s
}

// seqRest returns the tail of s as a seqable Value, the empty list
// when exhausted. The raw tail of a cons cell is handed out without
// forcing it, this keeps the combinators from realizing one cell
// past what the consumer pulled.
func seqRest(s Seq) Value {
	if c, ok := s.(*Cons); ok {
		if c.rest == nil {
			return EmptyList
		}
		return c.rest
	}
	if n := s.Next(); n != nil {
		return n
	}
	return EmptyList
}

// sequentialQ reports whether x is an ordered sequential collection,
// the kinds Flatten descends into.
func sequentialQ(x Value) bool {
	switch x.(type) {
	case *Cons, *LazySeq, emptyList, *SortedVector:
		return true
	}
	_, ok := x.(indexed)
	return ok
}

// MapSeq lazily applies f to every element. (The name leaves Map to
// the hash map type.)
func MapSeq(f func(Value) Value, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		s := mustSeq(coll)
		if s == nil {
			return nil
		}
		return NewCons(f(s.First()), MapSeq(f, seqRest(s)))
	})
}

// MapIndexed is MapSeq with the element index as first argument.
func MapIndexed(f func(int, Value) Value, coll Value) *LazySeq {
	return mapIndexedFrom(f, coll, 0)
}

func mapIndexedFrom(f func(int, Value) Value, coll Value, i int) *LazySeq {
	return NewLazySeq(func() Value {
		s := mustSeq(coll)
		if s == nil {
			return nil
		}
		return NewCons(f(i, s.First()), mapIndexedFrom(f, seqRest(s), i+1))
	})
}

// Filter lazily keeps the elements satisfying pred.
func Filter(pred func(Value) bool, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		for s := mustSeq(coll); s != nil; s = s.Next() {
			if pred(s.First()) {
				return NewCons(s.First(), Filter(pred, seqRest(s)))
			}
		}
		return nil
	})
}

// Keep lazily yields the non-nil results of f.
func Keep(f func(Value) Value, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		for s := mustSeq(coll); s != nil; s = s.Next() {
			if v := f(s.First()); v != nil {
				return NewCons(v, Keep(f, seqRest(s)))
			}
		}
		return nil
	})
}

// KeepIndexed is Keep with the element index as first argument.
func KeepIndexed(f func(int, Value) Value, coll Value) *LazySeq {
	return keepIndexedFrom(f, coll, 0)
}

func keepIndexedFrom(f func(int, Value) Value, coll Value, i int) *LazySeq {
	return NewLazySeq(func() Value {
		for s := mustSeq(coll); s != nil; s, i = s.Next(), i+1 {
			if v := f(i, s.First()); v != nil {
				return NewCons(v, keepIndexedFrom(f, seqRest(s), i+1))
			}
		}
		return nil
	})
}

// Take lazily yields the first n elements, fewer when exhausted.
func Take(n int, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		if n <= 0 {
			return nil
		}
		s := mustSeq(coll)
		if s == nil {
			return nil
		}
		return NewCons(s.First(), Take(n-1, seqRest(s)))
	})
}

// TakeWhile lazily yields elements while pred holds.
func TakeWhile(pred func(Value) bool, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		s := mustSeq(coll)
		if s == nil || !pred(s.First()) {
			return nil
		}
		return NewCons(s.First(), TakeWhile(pred, seqRest(s)))
	})
}

// Drop lazily skips the first n elements.
func Drop(n int, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		s := mustSeq(coll)
		for ; n > 0 && s != nil; n-- {
			s = s.Next()
		}
		return s
	})
}

// DropWhile lazily skips elements while pred holds.
func DropWhile(pred func(Value) bool, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		s := mustSeq(coll)
		for s != nil && pred(s.First()) {
			s = s.Next()
		}
		return s
	})
}

// Concat lazily chains the given collections.
func Concat(colls ...Value) *LazySeq {
	return NewLazySeq(func() Value {
		return concatStep(colls)
	})
}

func concatStep(colls []Value) Value {
	for i, c := range colls {
		s := mustSeq(c)
		if s == nil {
			continue
		}
		rest := colls[i+1:]
		return NewCons(s.First(), NewLazySeq(func() Value {
			return concatStep(append([]Value{seqRest(s)}, rest...))
		}))
	}
	return nil
}

// Iterate lazily yields x, f(x), f(f(x)), … — an infinite seq.
func Iterate(f func(Value) Value, x Value) *LazySeq {
	return NewLazySeq(func() Value {
		return NewCons(x, NewLazySeq(func() Value {
			return Iterate(f, f(x))
		}))
	})
}

// Range yields integers: Range() counts up from 0 without end,
// Range(end) counts 0..end-1, Range(start, end) and
// Range(start, end, step) as expected. A step against the direction
// of end yields nothing; step 0 repeats start forever when start < end
// and yields nothing otherwise.
func Range(args ...int) *LazySeq {
	start, step := 0, 1
	end, bounded := 0, false

	switch len(args) {
	case 0:
	case 1:
		end, bounded = args[0], true
	case 2:
		start, end, bounded = args[0], args[1], true
	default:
		start, end, step, bounded = args[0], args[1], args[2], true
	}
	return rangeStep(start, end, step, bounded)
}

func rangeStep(start, end, step int, bounded bool) *LazySeq {
	return NewLazySeq(func() Value {
		if bounded {
			if step > 0 && start >= end || step < 0 && start <= end {
				return nil
			}
			if step == 0 && start >= end {
				return nil
			}
		}
		return NewCons(start, rangeStep(start+step, end, step, bounded))
	})
}

// Cycle lazily repeats the elements of coll forever; empty input
// yields the empty seq.
func Cycle(coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		s := mustSeq(coll)
		if s == nil {
			return nil
		}
		return cycleStep(s, coll)
	})
}

func cycleStep(s Seq, coll Value) Value {
	return NewCons(s.First(), NewLazySeq(func() Value {
		if n := s.Next(); n != nil {
			return cycleStep(n, coll)
		}
		return cycleStep(mustSeq(coll), coll)
	}))
}

// Repeat lazily yields x forever.
func Repeat(x Value) *LazySeq {
	return NewLazySeq(func() Value {
		return NewCons(x, Repeat(x))
	})
}

// RepeatN lazily yields x n times.
func RepeatN(n int, x Value) *LazySeq {
	return NewLazySeq(func() Value {
		if n <= 0 {
			return nil
		}
		return NewCons(x, RepeatN(n-1, x))
	})
}

// Interleave lazily alternates elements of the collections, ending
// with the shortest.
func Interleave(colls ...Value) *LazySeq {
	return NewLazySeq(func() Value {
		seqs := make([]Seq, len(colls))
		for i, c := range colls {
			if seqs[i] = mustSeq(c); seqs[i] == nil {
				return nil
			}
		}
		return interleaveStep(seqs, 0)
	})
}

func interleaveStep(seqs []Seq, i int) Value {
	if i == len(seqs) {
		rests := make([]Seq, len(seqs))
		for j, s := range seqs {
			if rests[j] = s.Next(); rests[j] == nil {
				return nil
			}
		}
		return interleaveStep(rests, 0)
	}
	return NewCons(seqs[i].First(), NewLazySeq(func() Value {
		return interleaveStep(seqs, i+1)
	}))
}

// Interpose lazily inserts sep between the elements.
func Interpose(sep, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		s := mustSeq(coll)
		if s == nil {
			return nil
		}
		return NewCons(s.First(), interposeStep(sep, s))
	})
}

func interposeStep(sep Value, s Seq) *LazySeq {
	return NewLazySeq(func() Value {
		n := s.Next()
		if n == nil {
			return nil
		}
		return NewCons(sep, NewCons(n.First(), interposeStep(sep, n)))
	})
}

// Partition lazily yields the complete n-element groups as vectors;
// a short remainder is dropped.
func Partition(n int, coll Value) *LazySeq {
	return partitionStep(n, coll, false)
}

// PartitionAll is Partition keeping the short remainder group.
func PartitionAll(n int, coll Value) *LazySeq {
	return partitionStep(n, coll, true)
}

func partitionStep(n int, coll Value, keepShort bool) *LazySeq {
	return NewLazySeq(func() Value {
		if n <= 0 {
			return nil
		}
		s := mustSeq(coll)
		if s == nil {
			return nil
		}

		part := EmptyVector.Transient()
		for ; s != nil && part.Count() < n; s = s.Next() {
			_ = part.Conj(s.First())
		}

		group, _ := part.Persistent()
		if group.Count() < n && !keepShort {
			return nil
		}

		var rest Value = EmptyList
		if s != nil {
			rest = s
		}
		return NewCons(group, partitionStep(n, rest, keepShort))
	})
}

// Mapcat lazily applies f and concatenates the resulting
// collections.
func Mapcat(f func(Value) Value, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		for s := mustSeq(coll); s != nil; s = s.Next() {
			sub := mustSeq(f(s.First()))
			if sub == nil {
				continue
			}
			return NewCons(sub.First(), Concat(seqRest(sub), Mapcat(f, seqRest(s))))
		}
		return nil
	})
}

// Dedupe lazily removes consecutive duplicates.
func Dedupe(coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		s := mustSeq(coll)
		if s == nil {
			return nil
		}
		return NewCons(s.First(), dedupeStep(s.First(), seqRest(s)))
	})
}

func dedupeStep(prev Value, coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		for s := mustSeq(coll); s != nil; s = s.Next() {
			if !Equal(s.First(), prev) {
				return NewCons(s.First(), dedupeStep(s.First(), seqRest(s)))
			}
		}
		return nil
	})
}

// Distinct lazily removes all duplicates, keeping first occurrences.
func Distinct(coll Value) *LazySeq {
	return distinctStep(coll, EmptySet)
}

func distinctStep(coll Value, seen *Set) *LazySeq {
	return NewLazySeq(func() Value {
		for s := mustSeq(coll); s != nil; s = s.Next() {
			x := s.First()
			if !seen.Contains(x) {
				return NewCons(x, distinctStep(seqRest(s), seen.Conj(x)))
			}
		}
		return nil
	})
}

// Flatten lazily yields the leaves of arbitrarily nested sequential
// collections, left to right.
func Flatten(coll Value) *LazySeq {
	return NewLazySeq(func() Value {
		return flattenStep([]Seq{mustSeq(coll)})
	})
}

func flattenStep(stack []Seq) Value {
	stack = append([]Seq(nil), stack...)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top == nil {
			stack = stack[:len(stack)-1]
			continue
		}

		x := top.First()
		stack[len(stack)-1] = top.Next()

		if sequentialQ(x) {
			stack = append(stack, mustSeq(x))
			continue
		}

		tail := append([]Seq(nil), stack...)
		return NewCons(x, NewLazySeq(func() Value {
			return flattenStep(tail)
		}))
	}
	return nil
}
