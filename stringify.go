// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import (
	"fmt"
	"strconv"
	"strings"
)

// Printed representations in reader syntax: [1 2 3], {:a 1}, #{1 2},
// (1 2 3), :kw, sym, "str". Floats always show a decimal point or
// exponent so they read back as floats.

// ToString renders any value in reader syntax.
func ToString(v Value) string {
	var sb strings.Builder
	printValue(&sb, v)
	return sb.String()
}

// stringOf is the internal shorthand for ToString.
func stringOf(v Value) string {
	return ToString(v)
}

func printValue(sb *strings.Builder, v Value) {
	switch v := v.(type) {
	case nil:
		sb.WriteString("nil")
	case bool:
		sb.WriteString(strconv.FormatBool(v))
	case string:
		sb.WriteString(strconv.Quote(v))
	case float64:
		printFloat(sb, v)
	case float32:
		printFloat(sb, float64(v))
	case fmt.Stringer:
		sb.WriteString(v.String())
	default:
		fmt.Fprintf(sb, "%v", v)
	}
}

func printFloat(sb *strings.Builder, f float64) {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && s != "NaN" {
		s += ".0"
	}
	sb.WriteString(s)
}

func printSeparated(sb *strings.Builder, vals func(yield func(Value) bool)) {
	first := true
	for v := range vals {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		printValue(sb, v)
	}
}

// String renders the keyword with its leading colon.
func (k Keyword) String() string {
	return ":" + k.Name
}

// String renders the symbol as its bare name.
func (s Symbol) String() string {
	return s.Name
}

// String renders the vector as [e0 e1 …].
func (v *Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	printSeparated(&sb, v.Values())
	sb.WriteByte(']')
	return sb.String()
}

// String renders the numeric vector as [e0 e1 …].
func (v *NumVector[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for x := range v.Values() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		printValue(&sb, x)
	}
	sb.WriteByte(']')
	return sb.String()
}

// String renders the sorted vector as [e0 e1 …] in sort order.
func (sv *SortedVector) String() string {
	return sv.vec.String()
}

// String renders the map as {k0 v0 k1 v1 …}.
func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for k, v := range m.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		printValue(&sb, k)
		sb.WriteByte(' ')
		printValue(&sb, v)
	}
	sb.WriteByte('}')
	return sb.String()
}

// String renders the set as #{e0 e1 …}.
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteString("#{")
	printSeparated(&sb, s.All())
	sb.WriteByte('}')
	return sb.String()
}

// String renders the list as (e0 e1 …).
func (c *Cons) String() string {
	return seqString(c)
}

// String renders the empty list as ().
func (emptyList) String() string {
	return "()"
}

// String forces the whole seq and renders it as (e0 e1 …).
func (l *LazySeq) String() string {
	return seqString(l.force())
}

func seqString(s Seq) string {
	var sb strings.Builder
	sb.WriteByte('(')
	first := true
	for ; s != nil; s = s.Next() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		printValue(&sb, s.First())
	}
	sb.WriteByte(')')
	return sb.String()
}
