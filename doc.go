// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package pds provides the persistent data structures of the Spork
// runtime: immutable, structurally shared collections with mutable
// transient builders and the sequence protocol over them.
//
// The collections:
//
//   - Vector: bit-partitioned 32-way trie with a tail buffer,
//     O(log32 n) access and update, amortized O(1) append and pop
//   - DoubleVector, IntVector: the same trie over packed f64/i64
//     leaves with zero-copy slab access for numeric consumers
//   - SortedVector: a vector kept ordered by a key function
//   - Map: hash array mapped trie with popcount-compressed nodes and
//     collision buckets
//   - Set: a thin wrapper over Map
//   - Cons, LazySeq: the canonical sequence cells, eager and
//     thunk-backed
//
// Updating a persistent value never mutates it: the operation
// returns a new version and the untouched subtrees are shared
// between versions. Reads, iteration, equality and hashing are safe
// to run from any number of goroutines concurrently, without locks.
//
// Transients are the single-owner bulk builders: Transient is O(1),
// mutations reuse trie nodes stamped with the builder's owner token
// and clone everything else on first touch, and Persistent seals the
// builder in O(1). A sealed transient fails every further operation
// that returns an error; the accessors that return none (Count, and
// Get/Contains on the map and set builders) do not check the seal.
//
// The generic operations (First, Rest, SeqOf, Count, Nth, Conj, Get,
// Assoc, Into, …) dispatch over all collection kinds, and the lazy
// combinators (MapSeq, Filter, Take, Concat, Iterate, Range, …)
// compute one element per forced cell, memoized.
//
// Equality is value equality: Equal compares numbers numerically
// (1 == 1.0), keywords by name and collections structurally, and
// equal values always hash equal under Hash.
package pds
