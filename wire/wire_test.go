// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.mpint.net/mpint"
)

func parse(t testing.TB, s string) mpint.Int {
	t.Helper()
	x, err := mpint.ParseInt(s, 10)
	if err != nil {
		t.Fatalf("ParseInt(%q): %v", s, err)
	}
	return x
}

// sameInt compares Ints by value, ignoring representation.
var sameInt = cmp.Comparer(func(x, y mpint.Int) bool { return x.Cmp(y) == 0 })

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{
		"0",
		"1",
		"-1",
		"123456",
		"9223372036854775807",
		"-9223372036854775808",
		"9223372036854775808",
		"-9223372036854775809",
		"18446744073709551616",
		"340282366920938463463374607431768211456",
		"-340282366920938463463374607431768211455",
	} {
		x := parse(t, s)
		buf := Append(nil, x)
		got, n, err := Consume(buf)
		if err != nil {
			t.Errorf("Consume(Append(%s)): %v", s, err)
			continue
		}
		if n != len(buf) {
			t.Errorf("Consume(Append(%s)) read %d bytes, want %d", s, n, len(buf))
		}
		if got.Cmp(x) != 0 {
			t.Errorf("round trip of %s: got %s", s, got)
		}

		// Trailing data is left for the caller.
		got, n, err = Consume(append(buf, 0xFF))
		if err != nil || n != len(buf) || got.Cmp(x) != 0 {
			t.Errorf("Consume with trailing data: got %s, %d, %v; want %s, %d", got, n, err, s, len(buf))
		}
	}
}

func TestEncodingBytes(t *testing.T) {
	// Small values use field 1 with zig-zag encoding.
	if got, want := Append(nil, mpint.MakeInt64(5)), []byte{0x08, 0x0A}; !bytes.Equal(got, want) {
		t.Errorf("Append(5) = %x, want %x", got, want)
	}
	if got, want := Append(nil, mpint.MakeInt64(-3)), []byte{0x08, 0x05}; !bytes.Equal(got, want) {
		t.Errorf("Append(-3) = %x, want %x", got, want)
	}

	// 2^63 does not fit in an int64: field 2, one sign byte and an
	// eight-byte big-endian magnitude.
	want := []byte{0x12, 0x09, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if got := Append(nil, parse(t, "9223372036854775808")); !bytes.Equal(got, want) {
		t.Errorf("Append(2^63) = %x, want %x", got, want)
	}
}

func TestCanonicalEncoding(t *testing.T) {
	// The same value encodes to the same bytes regardless of which
	// representation the Int holds. Arithmetic that overflows and
	// returns never demotes, so MAX+1-1 carries a promoted
	// representation of a small value.
	small := mpint.MakeInt64(math.MaxInt64)
	promoted := small.Add(mpint.MakeInt64(1)).Sub(mpint.MakeInt64(1))
	if got, want := Append(nil, promoted), Append(nil, small); !bytes.Equal(got, want) {
		t.Errorf("promoted encoding %x differs from small encoding %x", got, want)
	}

	// A magnitude record holding a small value is not canonical, but
	// decoding accepts it and re-encoding produces canonical bytes.
	in := []byte{0x12, 0x02, 0x00, 0x05}
	got, n, err := Consume(in)
	if err != nil || n != len(in) {
		t.Fatalf("Consume(non-canonical 5): %d, %v", n, err)
	}
	if got.Cmp64(5) != 0 {
		t.Fatalf("Consume(non-canonical 5) = %s", got)
	}
	if enc := Append(nil, got); !bytes.Equal(enc, []byte{0x08, 0x0A}) {
		t.Errorf("re-encoding of non-canonical 5 = %x, want 080a", enc)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	vals := []mpint.Int{
		parse(t, "0"),
		parse(t, "-1"),
		parse(t, "9223372036854775807"),
		parse(t, "18446744073709551616"),
		parse(t, "-340282366920938463463374607431768211455"),
	}
	buf := AppendVector(nil, vals)
	got, n, err := ConsumeVector(buf)
	if err != nil {
		t.Fatalf("ConsumeVector: %v", err)
	}
	if n != len(buf) {
		t.Errorf("ConsumeVector read %d bytes, want %d", n, len(buf))
	}
	if diff := cmp.Diff(vals, got, sameInt); diff != "" {
		t.Errorf("vector round trip mismatch (-want +got):\n%s", diff)
	}

	// Empty vector.
	buf = AppendVector(nil, nil)
	got, n, err = ConsumeVector(buf)
	if err != nil || n != len(buf) || len(got) != 0 {
		t.Errorf("empty vector round trip: got %v, %d, %v", got, n, err)
	}
}

func TestAppendPrefix(t *testing.T) {
	prefix := []byte("header")
	buf := Append(prefix, mpint.MakeInt64(42))
	if !bytes.HasPrefix(buf, prefix) {
		t.Errorf("Append clobbered its prefix: %x", buf)
	}
	got, _, err := Consume(buf[len(prefix):])
	if err != nil || got.Cmp64(42) != 0 {
		t.Errorf("Consume after prefix: got %s, %v", got, err)
	}
}

func TestConsumeErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"truncated varint", []byte{0x08}},
		{"unexpected field", []byte{0x18, 0x05}},
		{"empty magnitude record", []byte{0x12, 0x00}},
		{"bad sign byte", []byte{0x12, 0x02, 0x02, 0x05}},
		{"truncated magnitude", []byte{0x12, 0x05, 0x00}},
	} {
		if _, _, err := Consume(test.input); err == nil {
			t.Errorf("%s: Consume succeeded unexpectedly", test.name)
		}
	}
}

func TestConsumeVectorErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"not a count record", []byte{0x08, 0x02}},
		{"count exceeds input", []byte{0x18, 0x05}},
		{"truncated element", []byte{0x18, 0x01, 0x08, 0x80}},
	} {
		if _, _, err := ConsumeVector(test.input); err == nil {
			t.Errorf("%s: ConsumeVector succeeded unexpectedly", test.name)
		}
	}
}
