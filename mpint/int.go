// Copyright 2022 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mpint provides an arbitrary-precision signed integer type
// optimized for values that fit in an int64.
//
// An Int holds one of two representations: a small int64 word, or an
// arbitrary-precision big.Int. Every operation first attempts the
// checked word arithmetic of package intmath and redoes the computation
// over big.Int when the result would overflow, so arithmetic behaves
// like unbounded integers at close to native cost for in-range values.
//
// Int is a value type: operations return new values and never mutate
// their operands, so an Int may be freely copied and read concurrently.
// A result that outgrows int64 keeps the big representation even if a
// later operation shrinks it back into range; constructors such as
// MakeBigInt and ParseInt produce the small representation whenever the
// value fits. The two representations are observationally identical:
// comparison, hashing, printing, and encoding depend only on the
// numeric value.
package mpint // import "go.mpint.net/mpint"

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"strconv"

	"go.mpint.net/intmath"
)

// Set debug to check the documented preconditions of DivByPositive,
// Mod, and GCD. Violations are programming errors; the checks are
// compiled out of normal builds.
const debug = false

// An Int is an arbitrary-precision signed integer.
// The zero value is the number 0, ready to use.
type Int struct {
	small int64    // the value, if big is nil
	big   *big.Int // set by promotion and MakeBigInt; never mutated once set
}

// get returns the active representation: (v, nil) for a small value,
// (0, b) for a big one. The caller must not modify b.
func (x Int) get() (int64, *big.Int) { return x.small, x.big }

// makeSmallInt returns an Int in the small representation.
func makeSmallInt(x int64) Int { return Int{small: x} }

// makeBigInt returns an Int in the big representation.
// The caller yields ownership of b, which must not be modified
// afterwards. No canonicalization is performed: arithmetic results keep
// the big representation even when the value would fit an int64.
// Use MakeBigInt to canonicalize instead.
func makeBigInt(b *big.Int) Int { return Int{big: b} }

var (
	zero   = makeSmallInt(0)
	oneBig = big.NewInt(1)
)

// MakeInt returns an Int for the specified signed integer.
func MakeInt(x int) Int { return MakeInt64(int64(x)) }

// MakeInt64 returns an Int for the specified int64.
func MakeInt64(x int64) Int { return makeSmallInt(x) }

// MakeUint returns an Int for the specified unsigned integer.
func MakeUint(x uint) Int { return MakeUint64(uint64(x)) }

// MakeUint64 returns an Int for the specified uint64.
func MakeUint64(x uint64) Int {
	if x <= math.MaxInt64 {
		return makeSmallInt(int64(x))
	}
	return makeBigInt(new(big.Int).SetUint64(x))
}

// MakeBigInt returns an Int with the value of x, using the small
// representation if the value fits in an int64.
// The new Int contains a copy of x; the caller is free to modify x.
func MakeBigInt(x *big.Int) Int {
	if x.IsInt64() {
		return makeSmallInt(x.Int64())
	}
	return makeBigInt(new(big.Int).Set(x))
}

// ParseInt interprets s in the given base and returns the Int it
// denotes. Base 0 infers the base from a 0b, 0o, or 0x prefix,
// defaulting to decimal; otherwise base must be in [2, 36]. A leading
// + or - sign is permitted.
func ParseInt(s string, base int) (Int, error) {
	if base != 0 && (base < 2 || base > 36) {
		return zero, fmt.Errorf("invalid base %d", base)
	}
	if i, err := strconv.ParseInt(s, base, 64); err == nil {
		return makeSmallInt(i), nil
	}
	// Out of int64 range, or malformed.
	b, ok := new(big.Int).SetString(s, base)
	if !ok {
		return zero, fmt.Errorf("invalid integer literal %q", s)
	}
	if b.IsInt64() {
		return makeSmallInt(b.Int64()), nil
	}
	return makeBigInt(b), nil
}

// bigInt returns the value as a *big.Int.
// It differs from BigInt in that for a big Int it returns the actual
// reference, which the caller must not modify.
func (x Int) bigInt() *big.Int {
	if x.big != nil {
		return x.big
	}
	return big.NewInt(x.small)
}

// BigInt returns a new big.Int with the same value as x.
// The caller is free to modify the result.
func (x Int) BigInt() *big.Int {
	if x.big != nil {
		return new(big.Int).Set(x.big)
	}
	return big.NewInt(x.small)
}

// Int64 returns the value as an int64 and reports whether it is
// exactly representable.
func (x Int) Int64() (int64, bool) {
	xs, xb := x.get()
	if xb != nil {
		if !xb.IsInt64() {
			return 0, false
		}
		return xb.Int64(), true
	}
	return xs, true
}

// Uint64 returns the value as a uint64 and reports whether it is
// exactly representable.
func (x Int) Uint64() (uint64, bool) {
	xs, xb := x.get()
	if xb != nil {
		if !xb.IsUint64() {
			return 0, false
		}
		return xb.Uint64(), true
	}
	if xs < 0 {
		return 0, false
	}
	return uint64(xs), true
}

// TruncInt64 returns the low 64 bits of x as a two's-complement int64.
// Unlike Int64 it is defined for every value: a value outside the int64
// range wraps reproducibly, like a Go integer conversion.
func (x Int) TruncInt64() int64 {
	xs, xb := x.get()
	if xb == nil {
		return xs
	}
	if xb.IsInt64() {
		return xb.Int64()
	}
	var lo uint64
	for i, w := range xb.Bits() {
		shift := i * bits.UintSize // big.Word is 32 bits on 32-bit hosts
		if shift >= 64 {
			break
		}
		lo |= uint64(w) << shift
	}
	if xb.Sign() < 0 {
		return -int64(lo)
	}
	return int64(lo)
}

// Sign returns -1, 0, or +1 according to the sign of x.
func (x Int) Sign() int {
	xs, xb := x.get()
	if xb != nil {
		return xb.Sign()
	}
	return signum64(xs)
}

// signum64 returns the sign of x without branching.
func signum64(x int64) int { return int(uint64(x>>63) | (uint64(-x) >> 63)) }

// String returns the exact decimal representation of x.
func (x Int) String() string {
	xs, xb := x.get()
	if xb != nil {
		return xb.Text(10)
	}
	return strconv.FormatInt(xs, 10)
}

// Format implements fmt.Formatter, so %d, %x, %o, and %b render Ints.
func (x Int) Format(s fmt.State, ch rune) {
	xs, xb := x.get()
	if xb != nil {
		xb.Format(s, ch)
		return
	}
	big.NewInt(xs).Format(s, ch)
}

// Hash returns a hash of the value of x, for use in hash containers.
// Equal values hash equal regardless of representation.
func (x Int) Hash() uint32 {
	xs, xb := x.get()
	if xb != nil {
		return int_hash_big(xb)
	}
	return int_hash(uint64(xs))
}

// int_hash distributes a value that fits in an int64, given its
// two's-complement word.
func int_hash(lo uint64) uint32 { return 12582917 * uint32(lo+3) }

// int_hash_big hashes a value in the big representation. It must agree
// with int_hash whenever the value fits in an int64.
func int_hash_big(xb *big.Int) uint32 {
	if xb.IsInt64() {
		return int_hash(uint64(xb.Int64()))
	}
	var h uint64
	for _, w := range xb.Bits() {
		h = h*12582917 + uint64(w)
	}
	if xb.Sign() < 0 {
		h ^= 1
	}
	return uint32(h>>32) ^ uint32(h)
}

// int_cmp_small is a three-way comparison of int64 words.
// The difference x-y could overflow, so compare directly.
func int_cmp_small(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return +1
	}
	return 0
}

// Cmp compares x and y and returns -1, 0, or +1.
func (x Int) Cmp(y Int) int {
	xs, xb := x.get()
	ys, yb := y.get()
	if xb == nil && yb == nil {
		return int_cmp_small(xs, ys)
	}
	return x.bigInt().Cmp(y.bigInt())
}

// Cmp64 compares x with the int64 y. It never allocates: a big value
// outside the int64 range compares by sign alone.
func (x Int) Cmp64(y int64) int {
	xs, xb := x.get()
	if xb == nil {
		return int_cmp_small(xs, y)
	}
	if xb.IsInt64() {
		return int_cmp_small(xb.Int64(), y)
	}
	return xb.Sign()
}

// Add returns the sum x+y.
func (x Int) Add(y Int) Int {
	xs, xb := x.get()
	ys, yb := y.get()
	if xb == nil && yb == nil {
		if z, ok := intmath.Add64(xs, ys); ok {
			return makeSmallInt(z)
		}
	}
	return makeBigInt(new(big.Int).Add(x.bigInt(), y.bigInt()))
}

// Sub returns the difference x-y.
func (x Int) Sub(y Int) Int {
	xs, xb := x.get()
	ys, yb := y.get()
	if xb == nil && yb == nil {
		if z, ok := intmath.Sub64(xs, ys); ok {
			return makeSmallInt(z)
		}
	}
	return makeBigInt(new(big.Int).Sub(x.bigInt(), y.bigInt()))
}

// Mul returns the product x*y.
func (x Int) Mul(y Int) Int {
	xs, xb := x.get()
	ys, yb := y.get()
	if xb == nil && yb == nil {
		if z, ok := intmath.Mul64(xs, ys); ok {
			return makeSmallInt(z)
		}
	}
	return makeBigInt(new(big.Int).Mul(x.bigInt(), y.bigInt()))
}

// divWouldOverflow reports whether the quotient x/y overflows an int64.
// The single such case is MinInt64 / -1, whose true quotient is 1<<63.
func divWouldOverflow(x, y int64) bool {
	return x == math.MinInt64 && y == -1
}

// Div returns the quotient x/y, truncated toward zero.
// The divisor y must be nonzero.
func (x Int) Div(y Int) Int {
	xs, xb := x.get()
	ys, yb := y.get()
	if xb == nil && yb == nil {
		if !divWouldOverflow(xs, ys) {
			return makeSmallInt(xs / ys)
		}
	}
	return makeBigInt(new(big.Int).Quo(x.bigInt(), y.bigInt()))
}

// DivByPositive returns the quotient x/y, truncated toward zero, for a
// divisor known to be positive, skipping the overflow check Div makes.
// Precondition: y > 0.
func (x Int) DivByPositive(y Int) Int {
	if debug && y.Sign() < 1 {
		panic(fmt.Sprintf("DivByPositive by non-positive %v", y))
	}
	xs, xb := x.get()
	ys, yb := y.get()
	if xb == nil && yb == nil {
		return makeSmallInt(xs / ys)
	}
	return makeBigInt(new(big.Int).Quo(x.bigInt(), y.bigInt()))
}

// Mod returns the Euclidean remainder x mod y, the unique value in
// [0, y) congruent to x. Mod never overflows.
// Precondition: y > 0.
func (x Int) Mod(y Int) Int {
	if debug && y.Sign() < 1 {
		panic(fmt.Sprintf("Mod by non-positive %v", y))
	}
	xs, xb := x.get()
	ys, yb := y.get()
	if xb == nil && yb == nil {
		return makeSmallInt(intmath.Mod(xs, ys))
	}
	return makeBigInt(new(big.Int).Mod(x.bigInt(), y.bigInt()))
}

// Neg returns -x.
func (x Int) Neg() Int {
	xs, xb := x.get()
	if xb == nil && xs != math.MinInt64 {
		return makeSmallInt(-xs)
	}
	return makeBigInt(new(big.Int).Neg(x.bigInt()))
}

// Abs returns the absolute value of x.
func (x Int) Abs() Int {
	if x.Sign() >= 0 {
		return x
	}
	return x.Neg()
}

// CeilDiv returns the quotient x/y rounded toward positive infinity.
// The divisor y must be nonzero.
func CeilDiv(x, y Int) Int {
	xs, xb := x.get()
	ys, yb := y.get()
	if xb == nil && yb == nil {
		if !divWouldOverflow(xs, ys) {
			return makeSmallInt(intmath.CeilDiv(xs, ys))
		}
	}
	return int_ceildiv_big(x.bigInt(), y.bigInt())
}

// FloorDiv returns the quotient x/y rounded toward negative infinity.
// The divisor y must be nonzero.
func FloorDiv(x, y Int) Int {
	xs, xb := x.get()
	ys, yb := y.get()
	if xb == nil && yb == nil {
		if !divWouldOverflow(xs, ys) {
			return makeSmallInt(intmath.FloorDiv(xs, ys))
		}
	}
	return int_floordiv_big(x.bigInt(), y.bigInt())
}

func int_ceildiv_big(xb, yb *big.Int) Int {
	if yb.IsInt64() && yb.Int64() == -1 {
		return makeBigInt(new(big.Int).Neg(xb))
	}
	var quo, rem big.Int
	quo.QuoRem(xb, yb, &rem)
	if rem.Sign() != 0 && (xb.Sign() < 0) == (yb.Sign() < 0) {
		quo.Add(&quo, oneBig)
	}
	return makeBigInt(&quo)
}

func int_floordiv_big(xb, yb *big.Int) Int {
	if yb.IsInt64() && yb.Int64() == -1 {
		return makeBigInt(new(big.Int).Neg(xb))
	}
	var quo, rem big.Int
	quo.QuoRem(xb, yb, &rem)
	if rem.Sign() != 0 && (xb.Sign() < 0) != (yb.Sign() < 0) {
		quo.Sub(&quo, oneBig)
	}
	return makeBigInt(&quo)
}

// GCD returns the greatest common divisor of x and y.
// Both operands must be non-negative. The GCD of two zeros is zero,
// and the GCD of any x with zero is x.
func GCD(x, y Int) Int {
	if debug && (x.Sign() < 0 || y.Sign() < 0) {
		panic(fmt.Sprintf("GCD of negative operand (%v, %v)", x, y))
	}
	xs, xb := x.get()
	ys, yb := y.get()
	if xb == nil && yb == nil {
		return makeSmallInt(intmath.GCD(xs, ys))
	}
	return makeBigInt(new(big.Int).GCD(nil, nil, x.bigInt(), y.bigInt()))
}

// LCM returns the least common multiple of x and y, computed as
// |x*y| / gcd(|x|, |y|) so that the product may promote as needed.
// LCM of two zeros divides by zero.
func LCM(x, y Int) Int {
	a, b := x.Abs(), y.Abs()
	return a.Mul(b).DivByPositive(GCD(a, b))
}

// GCDRange returns the greatest common divisor of the absolute values
// of vals. It is zero for an empty or all-zero slice and stops early
// once the divisor reaches 1.
func GCDRange(vals []Int) Int {
	g := zero
	for _, v := range vals {
		g = GCD(g, v.Abs())
		if g.Cmp64(1) == 0 {
			break
		}
	}
	return g
}
