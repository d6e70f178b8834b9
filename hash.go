// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import (
	"hash/maphash"
	"math"

	"github.com/pkg/errors"
)

// hashSeed is the process-wide seed for string hashing. Hashes are
// stable within a process, nothing more is promised.
var hashSeed = maphash.MakeSeed()

// type tags, mixed into the hash so that e.g. Keyword("foo") and the
// strings "foo" and ":foo" land in different buckets.
const (
	tagString  = 0x9e3779b1
	tagKeyword = 0x85ebca77
	tagSymbol  = 0xc2b2ae3d
	tagBool    = 0x27d4eb2f
	tagNil     = 0x165667b1
)

// Hash returns the stable 32-bit hash of v.
//
// Numbers hash by numeric value: ints and floats that compare equal
// hash equal, so 1 and 1.0 are the same map key. Collections hash by
// their contents; [Equal] values always hash equal.
func Hash(v Value) uint32 {
	switch v := v.(type) {
	case nil:
		return tagNil
	case bool:
		if v {
			return tagBool
		}
		return ^uint32(tagBool)
	case int:
		return hashInt64(int64(v))
	case int8:
		return hashInt64(int64(v))
	case int16:
		return hashInt64(int64(v))
	case int32:
		return hashInt64(int64(v))
	case int64:
		return hashInt64(v)
	case uint:
		return hashInt64(int64(v))
	case uint8:
		return hashInt64(int64(v))
	case uint16:
		return hashInt64(int64(v))
	case uint32:
		return hashInt64(int64(v))
	case uint64:
		return hashInt64(int64(v))
	case float32:
		return hashFloat64(float64(v))
	case float64:
		return hashFloat64(v)
	case string:
		return hashString(v) ^ tagString
	case Keyword:
		return hashString(v.Name) ^ tagKeyword
	case Symbol:
		return hashString(v.Name) ^ tagSymbol
	case Hasher:
		return v.Hash()
	default:
		// comparable fallback for opaque keys
		return hashString(stringOf(v))
	}
}

// hashInt64 is the shared numeric hasher, a 64->32 bit mix derived
// from the splitmix64 finalizer.
func hashInt64(i int64) uint32 {
	z := uint64(i)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return uint32(z) ^ uint32(z>>32)
}

// hashFloat64 reduces integral floats through the shared int64 hasher
// so that 1 and 1.0 hash equal; all other floats hash their bits.
func hashFloat64(f float64) uint32 {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return hashInt64(int64(f))
	}
	bits := math.Float64bits(f)
	return hashInt64(int64(bits))
}

func hashString(s string) uint32 {
	h := maphash.String(hashSeed, s)
	return uint32(h) ^ uint32(h>>32)
}

// Equal reports semantic equality between two values.
//
// Numbers compare by numeric value across int and float types,
// strings byte-wise, keywords and symbols by name. Collections
// compare structurally, but only within the same collection family:
// an indexed vector never equals a map, a set or a seq.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	// numeric cross-type equality
	if fa, aNum := numValue(a); aNum {
		fb, bNum := numValue(b)
		return bNum && fa == fb
	}

	switch a := a.(type) {
	case bool:
		bb, ok := b.(bool)
		return ok && a == bb
	case string:
		bs, ok := b.(string)
		return ok && a == bs
	case Keyword:
		bk, ok := b.(Keyword)
		return ok && a.Name == bk.Name
	case Symbol:
		bs, ok := b.(Symbol)
		return ok && a.Name == bs.Name
	case Equaler:
		return a.Equal(b)
	default:
		if be, ok := b.(Equaler); ok {
			return be.Equal(a)
		}
		return equalFallback(a, b)
	}
}

// equalFallback compares opaque values with Go comparability.
// Incomparable types never compare equal rather than panic.
func equalFallback(a, b Value) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// numValue projects ints and floats onto float64 for cross-type
// numeric comparison. The bool result is false for non-numbers.
func numValue(v Value) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// Compare orders two values: -1, 0 or +1. Numbers order numerically,
// strings, keywords and symbols lexically by name. Mixed or unordered
// kinds fail with [ErrTypeMismatch].
func Compare(a, b Value) (int, error) {
	if fa, ok := numValue(a); ok {
		if fb, ok := numValue(b); ok {
			switch {
			case fa < fb:
				return -1, nil
			case fa > fb:
				return 1, nil
			}
			return 0, nil
		}
		return 0, errors.Wrapf(ErrTypeMismatch, "cannot compare number with %T", b)
	}

	switch a := a.(type) {
	case string:
		if bs, ok := b.(string); ok {
			return cmpString(a, bs), nil
		}
	case Keyword:
		if bk, ok := b.(Keyword); ok {
			return cmpString(a.Name, bk.Name), nil
		}
	case Symbol:
		if bs, ok := b.(Symbol); ok {
			return cmpString(a.Name, bs.Name), nil
		}
	}
	return 0, errors.Wrapf(ErrTypeMismatch, "cannot compare %T with %T", a, b)
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
