// Copyright 2022 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package intmath provides overflow-checked arithmetic and integer
// division conventions for int64 values.
//
// The checked operations Add64, Sub64, and Mul64 return the result
// truncated to 64 bits together with an ok flag reporting whether the
// exact result fits in an int64. They are portable and use no hardware
// intrinsics.
//
// The division helpers implement the rounding conventions that differ
// only when the operand signs differ: Go's native / operator truncates
// toward zero, FloorDiv rounds toward negative infinity, and CeilDiv
// rounds toward positive infinity. Mod is the Euclidean remainder: for
// divisor y > 0 the result lies in [0, y) regardless of the sign of x.
//
// Division or modulo by zero panics, as with the native operators.
package intmath // import "go.mpint.net/intmath"

import "fmt"

// Set debug to check documented caller preconditions (positive modulus,
// non-negative gcd operands). Violations are programming errors, so the
// checks are compiled out of normal builds.
const debug = false

// Add64 returns the sum x+y truncated to 64 bits and reports whether the
// exact sum fits in an int64. The sum of two positives overflows exactly
// when the truncated result is non-positive, symmetrically for two
// negatives; mixed signs cannot overflow.
func Add64(x, y int64) (int64, bool) {
	sum := x + y
	switch {
	case x > 0 && y > 0:
		return sum, sum > 0
	case x < 0 && y < 0:
		return sum, sum < 0
	}
	return sum, true
}

// Sub64 returns the difference x-y truncated to 64 bits and reports
// whether the exact difference fits in an int64.
func Sub64(x, y int64) (int64, bool) {
	diff := x - y
	switch {
	case x <= 0 && y > 0:
		return diff, diff < 0
	case x >= 0 && y < 0:
		return diff, diff > 0
	}
	return diff, true
}

// Mul64 returns the product x*y truncated to 64 bits and reports whether
// the exact product fits in an int64.
//
// The check runs on unsigned magnitudes so the asymmetric two's-complement
// range is handled exactly: a negative product may have magnitude 1<<63,
// one more than the largest positive value.
func Mul64(x, y int64) (int64, bool) {
	ux := uint64(x)
	if x < 0 {
		ux = -ux
	}
	uy := uint64(y)
	if y < 0 {
		uy = -uy
	}
	up := ux * uy
	neg := (x < 0) != (y < 0)
	p := int64(up)
	if neg {
		p = int64(-up)
	}
	if ux == 0 || uy == 0 {
		return p, true
	}
	const maxMag = 1 << 63 // magnitude of MinInt64
	if neg {
		return p, ux <= maxMag/uy
	}
	return p, ux <= (maxMag-1)/uy
}

// CeilDiv returns the quotient x/y rounded toward positive infinity.
//
// y must be nonzero. The result is unspecified for the single pair
// x = MinInt64, y = -1, whose true quotient 1<<63 does not fit in an
// int64; callers that may see that pair must handle it first.
func CeilDiv(x, y int64) int64 {
	d := int64(-1)
	if y < 0 {
		d = 1
	}
	if x != 0 && (x > 0) == (y > 0) {
		return (x+d)/y + 1
	}
	return x / y
}

// FloorDiv returns the quotient x/y rounded toward negative infinity.
// Same domain restriction as CeilDiv.
func FloorDiv(x, y int64) int64 {
	d := int64(1)
	if y > 0 {
		d = -1
	}
	if x != 0 && (x < 0) != (y < 0) {
		return -((-x+d)/y) - 1
	}
	return x / y
}

// Mod returns the Euclidean remainder of x by y. The divisor y must be
// positive; the result is in [0, y). Mod cannot overflow.
func Mod(x, y int64) int64 {
	if debug && y < 1 {
		panic(fmt.Sprintf("modulus %d is not positive", y))
	}
	r := x % y
	if r < 0 {
		r += y
	}
	return r
}

// GCD returns the greatest common divisor of x and y.
// Both operands must be non-negative.
// GCD(0, 0) is 0 and GCD(x, 0) is x.
func GCD(x, y int64) int64 {
	if debug && (x < 0 || y < 0) {
		panic(fmt.Sprintf("gcd of negative operand (%d, %d)", x, y))
	}
	for y != 0 {
		x, y = y, x%y
	}
	return x
}
