// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func scan(src interface{}) (tokens string, err error) {
	sc, err := newScanner("foo.calc", src)
	if err != nil {
		return "", err
	}

	defer sc.recover(&err)

	var buf bytes.Buffer
	var val tokenValue
	for {
		tok := sc.nextToken(&val)

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		switch tok {
		case EOF:
			buf.WriteString("EOF")
		case IDENT:
			buf.WriteString(val.raw)
		case INT:
			fmt.Fprintf(&buf, "%d", val.int)
		default:
			buf.WriteString(tok.String())
		}
		if tok == EOF {
			break
		}
	}
	return buf.String(), nil
}

func TestScanner(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{``, "EOF"},
		{`123`, "123 EOF"},
		{`x`, "x EOF"},
		{`x + y`, "x + y EOF"},
		{`print(x)`, "print ( x ) EOF"},
		{`gcd(a, b)`, "gcd ( a , b ) EOF"},
		{`chocolate + éclair`, "chocolate + éclair EOF"},
		{`x = 7 // -2`, "x = 7 // - 2 EOF"},
		{`/ //`, "/ // EOF"},
		{`1+2*3%4`, "1 + 2 * 3 % 4 EOF"},
		{`a = 1; b = 2`, "a = 1 ; b = 2 EOF"},

		// newlines
		{"x\n", "x newline EOF"},
		{"x\n ", "x newline EOF"},
		{"x\n \n", "x newline EOF"},
		{"x\n\n\ny", "x newline y EOF"}, // consecutive newlines are consolidated
		{"\nx = (\n1\n)\n", "x = ( 1 ) newline EOF"},
		{"a\nb", "a newline b EOF"},
		{"a\r\nb", "a newline b EOF"},
		{`x = 1 + \
2`, "x = 1 + 2 EOF"},

		// comments
		{"# hello\nx", "x EOF"},
		{"x # hello\ny", "x newline y EOF"},
		{"x\n# hello", "x newline EOF"},

		// numbers
		{"0", "0 EOF"},
		{"00", "0 EOF"},
		{"1", "1 EOF"},
		{"123", "123 EOF"},
		{"12345678901234567890", "12345678901234567890 EOF"},
		{"999999999999999999999999999999999999999999999999999", "999999999999999999999999999999999999999999999999999 EOF"},
		{"0xA", "10 EOF"},
		{"0xAAG", "170 G EOF"},
		{"0XA", "10 EOF"},
		{"0x12345678deadbeef12345678", "5634002672576678570168178296 EOF"},
		{"0xG", "foo.calc:1:1: invalid hex literal"},
		{"0XG", "foo.calc:1:1: invalid hex literal"},
		{"0b1010", "10 EOF"},
		{"0B111101", "61 EOF"},
		{"0b0000", "0 EOF"},
		{"0b3", "foo.calc:1:1: invalid binary literal"},
		{"0b1010201", "10 201 EOF"},
		{"0o123", "83 EOF"},
		{"0o12834", "10 834 EOF"},
		{"0O123", "83 EOF"},
		{"0o8", "foo.calc:1:1: invalid octal literal"},
		{"0123", "foo.calc:1:1: obsolete form of octal literal; use 0o123"},
		{"012934", "foo.calc:1:1: invalid int literal"},
		{"i = 012934", "foo.calc:1:5: invalid int literal"},

		// errors
		{"x ! 0", "foo.calc:1:3: unexpected input character '!'"},
		{"x . y", "foo.calc:1:3: unexpected input character '.'"},
		{`"abc"`, `foo.calc:1:1: unexpected input character '"'`},
		{"x \\ y", `foo.calc:1:3: unexpected input character '\'`},
	} {
		got, err := scan(test.input)
		if err != nil {
			got = err.(Error).Error()
		}
		// Prefix match allows us to truncate errors in expectations.
		// Success cases all end in EOF.
		if !strings.HasPrefix(got, test.want) {
			t.Errorf("scan `%s` = [%s], want [%s]", test.input, got, test.want)
		}
	}
}

func TestScannerPosition(t *testing.T) {
	// Token positions count lines and rune columns from 1.
	sc, err := newScanner("foo.calc", "x = 10\ny = 0x20\n")
	if err != nil {
		t.Fatal(err)
	}
	var val tokenValue
	for i, want := range []struct {
		tok       Token
		line, col int32
	}{
		{IDENT, 1, 1},
		{EQ, 1, 3},
		{INT, 1, 5},
		{NEWLINE, 1, 7},
		{IDENT, 2, 1},
		{EQ, 2, 3},
		{INT, 2, 5},
		{NEWLINE, 2, 9},
		{EOF, 3, 1},
	} {
		tok := sc.nextToken(&val)
		if tok != want.tok || val.pos.Line != want.line || val.pos.Col != want.col {
			t.Errorf("token %d: got %s at %s, want %s at foo.calc:%d:%d",
				i, tok, val.pos, want.tok, want.line, want.col)
		}
	}
}
