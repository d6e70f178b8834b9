// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package golden provides simple and slow reference collections as
// golden models for the persistent data structures: a slice-backed
// vector and an assoc-list map that is collision-proof by
// construction.
package golden

import (
	"slices"

	"github.com/spork-it/pds"
)

// Vec is the reference vector, a plain slice.
type Vec []pds.Value

func (g Vec) Count() int {
	return len(g)
}

func (g Vec) Nth(i int) (pds.Value, bool) {
	if i < 0 || i >= len(g) {
		return nil, false
	}
	return g[i], true
}

func (g Vec) Conj(x pds.Value) Vec {
	return append(g[:len(g):len(g)], x)
}

func (g Vec) Assoc(i int, x pds.Value) (Vec, bool) {
	if i < 0 || i > len(g) {
		return g, false
	}
	if i == len(g) {
		return g.Conj(x), true
	}
	ret := slices.Clone(g)
	ret[i] = x
	return ret, true
}

func (g Vec) Pop() (Vec, bool) {
	if len(g) == 0 {
		return g, false
	}
	return g[: len(g)-1 : len(g)-1], true
}

// Table is the reference map, an assoc list compared with pds.Equal,
// so forced hash collisions cannot confuse it.
type Table []TableItem

type TableItem struct {
	Key, Val pds.Value
}

func (t Table) Count() int {
	return len(t)
}

func (t Table) Get(k pds.Value) (pds.Value, bool) {
	for _, item := range t {
		if pds.Equal(item.Key, k) {
			return item.Val, true
		}
	}
	return nil, false
}

func (t Table) Assoc(k, v pds.Value) Table {
	for i, item := range t {
		if pds.Equal(item.Key, k) {
			ret := slices.Clone(t)
			ret[i].Val = v
			return ret
		}
	}
	return append(t[:len(t):len(t)], TableItem{Key: k, Val: v})
}

func (t Table) Dissoc(k pds.Value) Table {
	for i, item := range t {
		if pds.Equal(item.Key, k) {
			ret := slices.Clone(t)
			return slices.Delete(ret, i, i+1)
		}
	}
	return t
}
