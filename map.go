// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import (
	"iter"
	"slices"

	"github.com/pkg/errors"

	"github.com/spork-it/pds/internal/sparse"
)

// Map is a persistent hash map: a hash array mapped trie routed by
// 5-bit slices of the key hash. Lookup, update and removal are
// O(log32 n) expected.
//
// Keys compare with [Equal] and hash with [Hash], so 1 and 1.0 are
// the same key while Keyword("a") and the string "a" are distinct.
// nil is a legal value and distinct from an absent key.
type Map struct {
	count int
	root  *mnode // nil when empty
}

// EmptyMap is the canonical empty map.
var EmptyMap = &Map{}

// HashMap builds a map from alternating keys and values, failing
// [ErrArityMismatch] on an odd argument count. Later duplicates of a
// key win.
func HashMap(kvs ...Value) (*Map, error) {
	if len(kvs)%2 != 0 {
		return nil, errors.Wrapf(ErrArityMismatch, "hash-map: odd number of arguments (%d)", len(kvs))
	}
	if len(kvs) == 0 {
		return EmptyMap, nil
	}
	t := EmptyMap.Transient()
	for i := 0; i < len(kvs); i += 2 {
		_ = t.Assoc(kvs[i], kvs[i+1])
	}
	return t.Persistent()
}

type mapEntry struct {
	key, val Value
}

// mnode is a trie node: either a bitmap node with popcount-compressed
// entry and child arrays over disjoint slot maps, or, past hash
// exhaustion, a collision bucket holding all entries that share the
// full 32-bit hash.
type mnode struct {
	owner   token
	entries sparse.Array32[mapEntry]
	subs    sparse.Array32[*mnode]
	coll    []mapEntry
}

// editable returns n itself when owned by the given transient,
// otherwise a clone stamped with the owner.
func (n *mnode) editable(owner token) *mnode {
	if owner != noOwner && n.owner == owner {
		return n
	}
	return &mnode{
		owner:   owner,
		entries: n.entries.Copy(),
		subs:    n.subs.Copy(),
		coll:    append(n.coll[:0:0], n.coll...),
	}
}

// single reports whether n has shrunk to one entry, the candidate for
// inlining into its parent.
func (n *mnode) single() (mapEntry, bool) {
	if n.coll != nil {
		if len(n.coll) == 1 {
			return n.coll[0], true
		}
		return mapEntry{}, false
	}
	if n.entries.Len() == 1 && n.subs.Len() == 0 {
		return n.entries.Items[0], true
	}
	return mapEntry{}, false
}

// assocNode inserts or replaces (k, v) below n, cloning the path for
// foreign nodes and mutating in place for owned ones. Sets *added
// when the key was new.
func assocNode(owner token, n *mnode, shift uint, h uint32, k, v Value, added *bool) *mnode {
	// hash exhausted, linear collision bucket
	if shift >= 32 {
		ret := n.editable(owner)
		for i, e := range ret.coll {
			if Equal(e.key, k) {
				ret.coll[i].val = v
				return ret
			}
		}
		ret.coll = append(ret.coll, mapEntry{key: k, val: v})
		*added = true
		return ret
	}

	slot := uint8((h >> shift) & chunkMask)

	if e, ok := n.entries.Get(slot); ok {
		if Equal(e.key, k) {
			ret := n.editable(owner)
			ret.entries.SetAt(slot, mapEntry{key: k, val: v})
			return ret
		}

		// slot taken by another key, push both one level down
		child := mergeEntries(owner, shift+chunkBits, e, Hash(e.key), mapEntry{key: k, val: v}, h)
		ret := n.editable(owner)
		ret.entries.DeleteAt(slot)
		ret.subs.InsertAt(slot, child)
		*added = true
		return ret
	}

	if sub, ok := n.subs.Get(slot); ok {
		newSub := assocNode(owner, sub, shift+chunkBits, h, k, v, added)
		ret := n.editable(owner)
		ret.subs.SetAt(slot, newSub)
		return ret
	}

	ret := n.editable(owner)
	ret.entries.InsertAt(slot, mapEntry{key: k, val: v})
	*added = true
	return ret
}

// mergeEntries builds the subtree for two entries whose hashes agree
// on all slices up to shift.
func mergeEntries(owner token, shift uint, e1 mapEntry, h1 uint32, e2 mapEntry, h2 uint32) *mnode {
	if shift >= 32 {
		return &mnode{owner: owner, coll: []mapEntry{e1, e2}}
	}

	s1 := uint8((h1 >> shift) & chunkMask)
	s2 := uint8((h2 >> shift) & chunkMask)

	n := &mnode{owner: owner}
	if s1 != s2 {
		n.entries.InsertAt(s1, e1)
		n.entries.InsertAt(s2, e2)
	} else {
		n.subs.InsertAt(s1, mergeEntries(owner, shift+chunkBits, e1, h1, e2, h2))
	}
	return n
}

// withoutNode removes k below n. Returns nil when the node became
// empty. Singleton children are inlined into their parent on the way
// up, keeping the trie canonical: equal maps are isomorphic.
func withoutNode(owner token, n *mnode, shift uint, h uint32, k Value, removed *bool) *mnode {
	if shift >= 32 {
		idx := -1
		for i, e := range n.coll {
			if Equal(e.key, k) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return n
		}
		*removed = true
		if len(n.coll) == 1 {
			return nil
		}
		ret := n.editable(owner)
		ret.coll = slices.Delete(ret.coll, idx, idx+1)
		return ret
	}

	slot := uint8((h >> shift) & chunkMask)

	if e, ok := n.entries.Get(slot); ok && Equal(e.key, k) {
		*removed = true
		if n.entries.Len() == 1 && n.subs.Len() == 0 {
			return nil
		}
		ret := n.editable(owner)
		ret.entries.DeleteAt(slot)
		return ret
	}

	if sub, ok := n.subs.Get(slot); ok {
		newSub := withoutNode(owner, sub, shift+chunkBits, h, k, removed)
		if !*removed {
			return n
		}

		ret := n.editable(owner)
		switch {
		case newSub == nil:
			ret.subs.DeleteAt(slot)
		default:
			if e, ok := newSub.single(); ok {
				ret.subs.DeleteAt(slot)
				ret.entries.InsertAt(slot, e)
			} else {
				ret.subs.SetAt(slot, newSub)
			}
		}

		if ret.entries.Len() == 0 && ret.subs.Len() == 0 {
			return nil
		}
		return ret
	}

	return n
}

// all is the deterministic depth-first walk: entries before subtrees,
// slot order within a node.
func (n *mnode) all(yield func(Value, Value) bool) bool {
	for _, e := range n.entries.Items {
		if !yield(e.key, e.val) {
			return false
		}
	}
	for _, e := range n.coll {
		if !yield(e.key, e.val) {
			return false
		}
	}
	for _, sub := range n.subs.Items {
		if !sub.all(yield) {
			return false
		}
	}
	return true
}

// Count returns the number of entries.
func (m *Map) Count() int {
	return m.count
}

// Get returns the value for k and whether the key is present.
func (m *Map) Get(k Value) (Value, bool) {
	n := m.root
	if n == nil {
		return nil, false
	}

	h := Hash(k)
	for shift := uint(0); ; shift += chunkBits {
		if shift >= 32 {
			for _, e := range n.coll {
				if Equal(e.key, k) {
					return e.val, true
				}
			}
			return nil, false
		}

		slot := uint8((h >> shift) & chunkMask)
		if e, ok := n.entries.Get(slot); ok {
			if Equal(e.key, k) {
				return e.val, true
			}
			return nil, false
		}
		if sub, ok := n.subs.Get(slot); ok {
			n = sub
			continue
		}
		return nil, false
	}
}

// GetOr returns the value for k, or def when absent.
func (m *Map) GetOr(k, def Value) Value {
	if v, ok := m.Get(k); ok {
		return v
	}
	return def
}

// Contains reports whether k is present.
func (m *Map) Contains(k Value) bool {
	_, ok := m.Get(k)
	return ok
}

// Assoc returns a new map with k mapped to v.
func (m *Map) Assoc(k, v Value) *Map {
	var added bool

	var newRoot *mnode
	if m.root == nil {
		newRoot = &mnode{}
		newRoot.entries.InsertAt(uint8(Hash(k)&chunkMask), mapEntry{key: k, val: v})
		added = true
	} else {
		newRoot = assocNode(noOwner, m.root, 0, Hash(k), k, v, &added)
	}

	count := m.count
	if added {
		count++
	}
	return &Map{count: count, root: newRoot}
}

// Dissoc returns a new map without k. Removing an absent key returns
// the receiver.
func (m *Map) Dissoc(k Value) *Map {
	if m.root == nil {
		return m
	}

	var removed bool
	newRoot := withoutNode(noOwner, m.root, 0, Hash(k), k, &removed)
	if !removed {
		return m
	}
	if newRoot == nil {
		return EmptyMap
	}
	return &Map{count: m.count - 1, root: newRoot}
}

// ConjEntry adds an entry given as a two element vector [k v],
// failing [ErrArityMismatch] for any other shape.
func (m *Map) ConjEntry(entry Value) (*Map, error) {
	k, v, err := splitEntry(entry)
	if err != nil {
		return nil, err
	}
	return m.Assoc(k, v), nil
}

func splitEntry(entry Value) (k, v Value, err error) {
	iv, ok := entry.(indexed)
	if !ok || iv.Count() != 2 {
		return nil, nil, errors.Wrapf(ErrArityMismatch, "map entry must be a [k v] vector, got %s", stringOf(entry))
	}
	return iv.valueAt(0), iv.valueAt(1), nil
}

// All returns a key/value iterator. The order is deterministic for a
// given map but unspecified across versions.
func (m *Map) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		if m.root != nil {
			m.root.all(yield)
		}
	}
}

// Keys returns an iterator over the keys.
func (m *Map) Keys() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Vals returns an iterator over the values.
func (m *Map) Vals() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Transient returns a mutable builder sharing this map's trie, in
// O(1).
func (m *Map) Transient() *TransientMap {
	return &TransientMap{owner: newToken(), count: m.count, root: m.root}
}

// Hash sums an order-independent mix of the entry hashes, so equal
// maps hash equal regardless of insertion history.
func (m *Map) Hash() uint32 {
	var h uint32
	for k, v := range m.All() {
		h += 31*Hash(k) + Hash(v)
	}
	return h
}

// Equal reports value equality with another map: same count and an
// equal value for every key.
func (m *Map) Equal(other Value) bool {
	om, ok := other.(*Map)
	if !ok || m.count != om.count {
		return false
	}
	for k, v := range m.All() {
		ov, ok := om.Get(k)
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// ################## transient ##################################

// TransientMap is the single-owner mutable builder of a Map.
type TransientMap struct {
	owner token
	count int
	root  *mnode
}

func (t *TransientMap) editable() error {
	if t.owner == noOwner {
		return errors.Wrap(ErrTransientInvalidated, "transient map")
	}
	return nil
}

// Count returns the current number of entries.
func (t *TransientMap) Count() int {
	return t.count
}

// Get returns the value for k and whether the key is present.
func (t *TransientMap) Get(k Value) (Value, bool) {
	m := Map{count: t.count, root: t.root}
	return m.Get(k)
}

// Assoc maps k to v in place.
func (t *TransientMap) Assoc(k, v Value) error {
	if err := t.editable(); err != nil {
		return err
	}

	var added bool
	if t.root == nil {
		t.root = &mnode{owner: t.owner}
		t.root.entries.InsertAt(uint8(Hash(k)&chunkMask), mapEntry{key: k, val: v})
		added = true
	} else {
		t.root = assocNode(t.owner, t.root, 0, Hash(k), k, v, &added)
	}

	if added {
		t.count++
	}
	return nil
}

// Dissoc removes k in place.
func (t *TransientMap) Dissoc(k Value) error {
	if err := t.editable(); err != nil {
		return err
	}
	if t.root == nil {
		return nil
	}

	var removed bool
	t.root = withoutNode(t.owner, t.root, 0, Hash(k), k, &removed)
	if removed {
		t.count--
	}
	return nil
}

// ConjEntry adds an entry given as a two element vector [k v].
func (t *TransientMap) ConjEntry(entry Value) error {
	k, v, err := splitEntry(entry)
	if err != nil {
		return err
	}
	return t.Assoc(k, v)
}

// Persistent seals the transient and returns the persistent map, in
// O(1).
func (t *TransientMap) Persistent() (*Map, error) {
	if err := t.editable(); err != nil {
		return nil, err
	}
	t.owner = noOwner

	if t.count == 0 {
		return EmptyMap, nil
	}
	return &Map{count: t.count, root: t.root}, nil
}
