// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import "iter"

// Set is a persistent hash set, a thin wrapper over [Map] with the
// members as keys.
type Set struct {
	m *Map
}

// EmptySet is the canonical empty set.
var EmptySet = &Set{m: EmptyMap}

// HashSet builds a set of xs.
func HashSet(xs ...Value) *Set {
	if len(xs) == 0 {
		return EmptySet
	}
	t := EmptySet.Transient()
	for _, x := range xs {
		_ = t.Conj(x)
	}
	s, _ := t.Persistent()
	return s
}

// Count returns the number of members.
func (s *Set) Count() int {
	return s.m.count
}

// Contains reports whether x is a member.
func (s *Set) Contains(x Value) bool {
	return s.m.Contains(x)
}

// Conj returns a new set with x added. Adding a present member
// returns the receiver.
func (s *Set) Conj(x Value) *Set {
	if s.m.Contains(x) {
		return s
	}
	return &Set{m: s.m.Assoc(x, nil)}
}

// Disj returns a new set without x. Removing an absent member
// returns the receiver.
func (s *Set) Disj(x Value) *Set {
	nm := s.m.Dissoc(x)
	if nm == s.m {
		return s
	}
	if nm.count == 0 {
		return EmptySet
	}
	return &Set{m: nm}
}

// All returns an iterator over the members. The order is
// deterministic for a given set but unspecified across versions.
func (s *Set) All() iter.Seq[Value] {
	return s.m.Keys()
}

// Transient returns a mutable builder sharing this set's trie, in
// O(1).
func (s *Set) Transient() *TransientSet {
	return &TransientSet{tm: s.m.Transient()}
}

// Hash sums the member hashes; equal sets hash equal regardless of
// insertion history.
func (s *Set) Hash() uint32 {
	var h uint32
	for x := range s.All() {
		h += Hash(x)
	}
	return h
}

// Equal reports value equality with another set.
func (s *Set) Equal(other Value) bool {
	os, ok := other.(*Set)
	if !ok || s.Count() != os.Count() {
		return false
	}
	for x := range s.All() {
		if !os.Contains(x) {
			return false
		}
	}
	return true
}

// ################## transient ##################################

// TransientSet is the single-owner mutable builder of a Set.
type TransientSet struct {
	tm *TransientMap
}

// Count returns the current number of members.
func (t *TransientSet) Count() int {
	return t.tm.Count()
}

// Contains reports whether x is a member.
func (t *TransientSet) Contains(x Value) bool {
	_, ok := t.tm.Get(x)
	return ok
}

// Conj adds x in place.
func (t *TransientSet) Conj(x Value) error {
	return t.tm.Assoc(x, nil)
}

// Disj removes x in place.
func (t *TransientSet) Disj(x Value) error {
	return t.tm.Dissoc(x)
}

// Persistent seals the transient and returns the persistent set, in
// O(1).
func (t *TransientSet) Persistent() (*Set, error) {
	m, err := t.tm.Persistent()
	if err != nil {
		return nil, err
	}
	if m.count == 0 {
		return EmptySet, nil
	}
	return &Set{m: m}, nil
}
