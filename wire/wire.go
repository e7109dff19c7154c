// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire implements a compact binary encoding for Int values
// using the protocol buffer wire format.
//
// A value that fits in an int64 is encoded as field 1, a zig-zag
// varint. Any other value is encoded as field 2, a length-delimited
// record holding one sign byte (0 or 1) followed by the big-endian
// magnitude. The choice depends only on the numeric value, never on
// the representation the Int happens to hold, so the encoding is
// canonical: equal values encode to equal bytes. Decoding produces
// the canonical representation for the value.
package wire // import "go.mpint.net/wire"

import (
	"fmt"
	"math/big"

	"google.golang.org/protobuf/encoding/protowire"

	"go.mpint.net/mpint"
)

// Field numbers of the encoding.
const (
	wordField  protowire.Number = 1 // zig-zag varint, any value that fits in an int64
	magField   protowire.Number = 2 // length-delimited: sign byte, then big-endian magnitude
	countField protowire.Number = 3 // varint element count preceding a vector's values
)

// Append appends the canonical encoding of x to b and returns the
// extended buffer.
func Append(b []byte, x mpint.Int) []byte {
	if v, ok := x.Int64(); ok {
		b = protowire.AppendTag(b, wordField, protowire.VarintType)
		return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
	}
	xb := x.BigInt()
	var sign byte
	if xb.Sign() < 0 {
		sign = 1
	}
	mag := xb.Bytes()
	payload := make([]byte, 1+len(mag))
	payload[0] = sign
	copy(payload[1:], mag)
	b = protowire.AppendTag(b, magField, protowire.BytesType)
	return protowire.AppendBytes(b, payload)
}

// Consume decodes one Int from the front of b, returning the value and
// the number of bytes read.
func Consume(b []byte) (mpint.Int, int, error) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return mpint.Int{}, 0, protowire.ParseError(n)
	}
	switch {
	case num == wordField && typ == protowire.VarintType:
		v, m := protowire.ConsumeVarint(b[n:])
		if m < 0 {
			return mpint.Int{}, 0, protowire.ParseError(m)
		}
		return mpint.MakeInt64(protowire.DecodeZigZag(v)), n + m, nil

	case num == magField && typ == protowire.BytesType:
		payload, m := protowire.ConsumeBytes(b[n:])
		if m < 0 {
			return mpint.Int{}, 0, protowire.ParseError(m)
		}
		if len(payload) == 0 || payload[0] > 1 {
			return mpint.Int{}, 0, fmt.Errorf("wire: malformed magnitude record")
		}
		z := new(big.Int).SetBytes(payload[1:])
		if payload[0] == 1 {
			z.Neg(z)
		}
		return mpint.MakeBigInt(z), n + m, nil
	}
	return mpint.Int{}, 0, fmt.Errorf("wire: unexpected field %d (wire type %d)", num, typ)
}

// AppendVector appends the encoding of vals to b: a count record
// followed by each value's encoding.
func AppendVector(b []byte, vals []mpint.Int) []byte {
	b = protowire.AppendTag(b, countField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(len(vals)))
	for _, v := range vals {
		b = Append(b, v)
	}
	return b
}

// ConsumeVector decodes a vector of Ints from the front of b,
// returning the values and the number of bytes read.
func ConsumeVector(b []byte) ([]mpint.Int, int, error) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	if num != countField || typ != protowire.VarintType {
		return nil, 0, fmt.Errorf("wire: expected count record, got field %d", num)
	}
	count, m := protowire.ConsumeVarint(b[n:])
	if m < 0 {
		return nil, 0, protowire.ParseError(m)
	}
	n += m
	// Each element occupies at least two bytes, so a count beyond
	// half the remaining input is malformed. This bounds the
	// allocation below against corrupt counts.
	if count > uint64(len(b)-n)/2 {
		return nil, 0, fmt.Errorf("wire: vector count %d exceeds input", count)
	}
	vals := make([]mpint.Int, 0, count)
	for i := uint64(0); i < count; i++ {
		v, m, err := Consume(b[n:])
		if err != nil {
			return nil, 0, err
		}
		vals = append(vals, v)
		n += m
	}
	return vals, n, nil
}
