// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package pds

import (
	"math"

	"github.com/pkg/errors"
)

// Arithmetic over boxed numbers, the way the generated code calls
// it: int-int stays int64, anything touching a float widens to
// float64. Non-numbers fail [ErrTypeMismatch].

// asInt64 reports whether v is a true integer kind; integral floats
// do not count here, they keep float semantics in arithmetic.
func asInt64(v Value) (int64, bool) {
	i, ok := intIndex(v)
	return int64(i), ok
}

func numArg(v Value) (float64, error) {
	f, ok := numValue(v)
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "not a number: %T(%v)", v, v)
	}
	return f, nil
}

func arith(a, b Value, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) (Value, error) {
	if ia, ok := asInt64(a); ok {
		if ib, ok := asInt64(b); ok {
			return intOp(ia, ib), nil
		}
	}
	fa, err := numArg(a)
	if err != nil {
		return nil, err
	}
	fb, err := numArg(b)
	if err != nil {
		return nil, err
	}
	return floatOp(fa, fb), nil
}

// Add returns a + b.
func Add(a, b Value) (Value, error) {
	return arith(a, b,
		func(x, y int64) int64 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub returns a - b.
func Sub(a, b Value) (Value, error) {
	return arith(a, b,
		func(x, y int64) int64 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul returns a * b.
func Mul(a, b Value) (Value, error) {
	return arith(a, b,
		func(x, y int64) int64 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div returns a / b as a float64.
func Div(a, b Value) (Value, error) {
	fa, err := numArg(a)
	if err != nil {
		return nil, err
	}
	fb, err := numArg(b)
	if err != nil {
		return nil, err
	}
	return fa / fb, nil
}

// Quot returns the integer quotient of a and b.
func Quot(a, b Value) (Value, error) {
	if ia, ok := asInt64(a); ok {
		if ib, ok := asInt64(b); ok {
			return ia / ib, nil
		}
	}
	fa, err := numArg(a)
	if err != nil {
		return nil, err
	}
	fb, err := numArg(b)
	if err != nil {
		return nil, err
	}
	return math.Trunc(fa / fb), nil
}

// Mod returns the modulus with the sign of the divisor, matching the
// reference semantics rather than Go's remainder.
func Mod(a, b Value) (Value, error) {
	if ia, ok := asInt64(a); ok {
		if ib, ok := asInt64(b); ok {
			m := ia % ib
			if m != 0 && (m < 0) != (ib < 0) {
				m += ib
			}
			return m, nil
		}
	}
	fa, err := numArg(a)
	if err != nil {
		return nil, err
	}
	fb, err := numArg(b)
	if err != nil {
		return nil, err
	}
	m := math.Mod(fa, fb)
	if m != 0 && (m < 0) != (fb < 0) {
		m += fb
	}
	return m, nil
}

// Inc returns a + 1.
func Inc(a Value) (Value, error) {
	return Add(a, 1)
}

// Dec returns a - 1.
func Dec(a Value) (Value, error) {
	return Sub(a, 1)
}

// Max returns the larger of a and b.
func Max(a, b Value) (Value, error) {
	c, err := Compare(a, b)
	if err != nil {
		return nil, err
	}
	if c < 0 {
		return b, nil
	}
	return a, nil
}

// Min returns the smaller of a and b.
func Min(a, b Value) (Value, error) {
	c, err := Compare(a, b)
	if err != nil {
		return nil, err
	}
	if c > 0 {
		return b, nil
	}
	return a, nil
}

// Abs returns the absolute value, preserving intness.
func Abs(a Value) (Value, error) {
	if ia, ok := asInt64(a); ok {
		if ia < 0 {
			return -ia, nil
		}
		return ia, nil
	}
	fa, err := numArg(a)
	if err != nil {
		return nil, err
	}
	return math.Abs(fa), nil
}

// EvenQ reports whether a is an even integer.
func EvenQ(a Value) (bool, error) {
	ia, ok := asInt64(a)
	if !ok {
		return false, errors.Wrapf(ErrTypeMismatch, "even?: not an integer: %T(%v)", a, a)
	}
	return ia%2 == 0, nil
}

// OddQ reports whether a is an odd integer.
func OddQ(a Value) (bool, error) {
	even, err := EvenQ(a)
	return !even, err
}

// PosQ reports whether a is positive.
func PosQ(a Value) (bool, error) {
	fa, err := numArg(a)
	return fa > 0, err
}

// NegQ reports whether a is negative.
func NegQ(a Value) (bool, error) {
	fa, err := numArg(a)
	return fa < 0, err
}

// ZeroQ reports whether a is zero.
func ZeroQ(a Value) (bool, error) {
	fa, err := numArg(a)
	return fa == 0, err
}

// bit operations, defined on integers only

func bitArgs(a, b Value) (int64, int64, error) {
	ia, ok := asInt64(a)
	if !ok {
		return 0, 0, errors.Wrapf(ErrTypeMismatch, "bit op: not an integer: %T(%v)", a, a)
	}
	ib, ok := asInt64(b)
	if !ok {
		return 0, 0, errors.Wrapf(ErrTypeMismatch, "bit op: not an integer: %T(%v)", b, b)
	}
	return ia, ib, nil
}

// BitAnd returns a & b.
func BitAnd(a, b Value) (Value, error) {
	ia, ib, err := bitArgs(a, b)
	return ia & ib, err
}

// BitOr returns a | b.
func BitOr(a, b Value) (Value, error) {
	ia, ib, err := bitArgs(a, b)
	return ia | ib, err
}

// BitXor returns a ^ b.
func BitXor(a, b Value) (Value, error) {
	ia, ib, err := bitArgs(a, b)
	return ia ^ ib, err
}

// BitAndNot returns a &^ b.
func BitAndNot(a, b Value) (Value, error) {
	ia, ib, err := bitArgs(a, b)
	return ia &^ ib, err
}

// BitNot returns ^a.
func BitNot(a Value) (Value, error) {
	ia, ok := asInt64(a)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "bit-not: not an integer: %T(%v)", a, a)
	}
	return ^ia, nil
}

// BitShiftLeft returns a << n.
func BitShiftLeft(a, n Value) (Value, error) {
	ia, in, err := bitArgs(a, n)
	return ia << uint(in), err
}

// BitShiftRight returns a >> n.
func BitShiftRight(a, n Value) (Value, error) {
	ia, in, err := bitArgs(a, n)
	return ia >> uint(in), err
}
