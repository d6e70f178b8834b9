// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sporkjson converts the persistent collections to and from
// JSON: maps become objects with stringified keys, vectors, sets and
// seqs become arrays, keywords become ":name" strings (bare names in
// key position).
package sporkjson

import (
	goccy "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/spork-it/pds"
)

// Marshal renders a value (spork collections included) as JSON.
func Marshal(v pds.Value) ([]byte, error) {
	g, err := toGo(v)
	if err != nil {
		return nil, err
	}
	return goccy.Marshal(g)
}

// MarshalIndent is Marshal with indentation.
func MarshalIndent(v pds.Value, prefix, indent string) ([]byte, error) {
	g, err := toGo(v)
	if err != nil {
		return nil, err
	}
	return goccy.MarshalIndent(g, prefix, indent)
}

// Unmarshal parses JSON into plain Go values (map[string]any,
// []any, float64, string, bool, nil).
func Unmarshal(data []byte) (any, error) {
	var v any
	if err := goccy.Unmarshal(data, &v); err != nil {
		return nil, errors.WithStack(err)
	}
	return v, nil
}

// UnmarshalSpork parses JSON into spork collections: objects become
// persistent maps, arrays persistent vectors. With keywordize, object
// keys become keywords instead of strings.
func UnmarshalSpork(data []byte, keywordize bool) (pds.Value, error) {
	v, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return toSpork(v, keywordize)
}

// toGo recursively converts spork values into the shapes goccy
// serializes natively.
func toGo(v pds.Value) (any, error) {
	switch v := v.(type) {
	case *pds.Map:
		obj := make(map[string]any, v.Count())
		for k, val := range v.All() {
			gv, err := toGo(val)
			if err != nil {
				return nil, err
			}
			obj[keyString(k)] = gv
		}
		return obj, nil

	case *pds.Set:
		arr := make([]any, 0, v.Count())
		for x := range v.All() {
			gv, err := toGo(x)
			if err != nil {
				return nil, err
			}
			arr = append(arr, gv)
		}
		return arr, nil

	case *pds.Vector:
		arr := make([]any, 0, v.Count())
		for x := range v.Values() {
			gv, err := toGo(x)
			if err != nil {
				return nil, err
			}
			arr = append(arr, gv)
		}
		return arr, nil

	case *pds.DoubleVector:
		arr := make([]float64, 0, v.Count())
		for x := range v.Values() {
			arr = append(arr, x)
		}
		return arr, nil

	case *pds.IntVector:
		arr := make([]int64, 0, v.Count())
		for x := range v.Values() {
			arr = append(arr, x)
		}
		return arr, nil

	case *pds.SortedVector, *pds.Cons, *pds.LazySeq:
		s, err := pds.SeqOf(v)
		if err != nil {
			return nil, err
		}
		var arr []any
		for ; s != nil; s = s.Next() {
			gv, err := toGo(s.First())
			if err != nil {
				return nil, err
			}
			arr = append(arr, gv)
		}
		if arr == nil {
			arr = []any{}
		}
		return arr, nil

	case pds.Keyword:
		return ":" + v.Name, nil

	case pds.Symbol:
		return v.Name, nil
	}

	if isPrimitive(v) {
		return v, nil
	}
	return nil, errors.Errorf("sporkjson: cannot marshal %T", v)
}

func isPrimitive(v pds.Value) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// keyString stringifies a map key for JSON object position: keyword
// and symbol names bare, strings as is, anything else in reader
// syntax.
func keyString(k pds.Value) string {
	switch k := k.(type) {
	case pds.Keyword:
		return k.Name
	case pds.Symbol:
		return k.Name
	case string:
		return k
	}
	return pds.ToString(k)
}

// toSpork recursively converts parsed JSON into persistent
// collections via transient bulk builds.
func toSpork(v any, keywordize bool) (pds.Value, error) {
	switch v := v.(type) {
	case map[string]any:
		t := pds.EmptyMap.Transient()
		for k, val := range v {
			sv, err := toSpork(val, keywordize)
			if err != nil {
				return nil, err
			}
			var key pds.Value = k
			if keywordize {
				key = pds.KW(k)
			}
			if err := t.Assoc(key, sv); err != nil {
				return nil, err
			}
		}
		return t.Persistent()

	case []any:
		t := pds.EmptyVector.Transient()
		for _, e := range v {
			sv, err := toSpork(e, keywordize)
			if err != nil {
				return nil, err
			}
			if err := t.Conj(sv); err != nil {
				return nil, err
			}
		}
		return t.Persistent()
	}

	// primitives pass through unchanged
	return v, nil
}
