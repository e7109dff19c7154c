// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// A lexical scanner for the calculator language.

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.mpint.net/mpint"
)

// A Token represents a lexical token.
type Token int8

const (
	ILLEGAL Token = iota
	EOF
	NEWLINE

	// Tokens with values
	IDENT // x
	INT   // 123

	// Punctuation
	PLUS       // +
	MINUS      // -
	STAR       // *
	SLASH      // /
	SLASHSLASH // //
	PERCENT    // %
	LPAREN     // (
	RPAREN     // )
	COMMA      // ,
	SEMI       // ;
	EQ         // =

	maxToken
)

func (tok Token) String() string { return tokenNames[tok] }

var tokenNames = [maxToken]string{
	ILLEGAL:    "illegal token",
	EOF:        "end of file",
	NEWLINE:    "newline",
	IDENT:      "identifier",
	INT:        "int literal",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	SLASHSLASH: "//",
	PERCENT:    "%",
	LPAREN:     "(",
	RPAREN:     ")",
	COMMA:      ",",
	SEMI:       ";",
	EQ:         "=",
}

// A Position describes the location of a rune of input.
type Position struct {
	file *string // filename (indirect for compactness)
	Line int32   // 1-based line number; 0 if line unknown
	Col  int32   // 1-based column (rune) number; 0 if column unknown
}

// MakePosition returns position with the specified components.
func MakePosition(file *string, line, col int32) Position {
	return Position{file, line, col}
}

// IsValid reports whether the position is valid.
func (p Position) IsValid() bool { return p.file != nil }

// Filename returns the name of the file containing this position.
func (p Position) Filename() string {
	if p.file != nil {
		return *p.file
	}
	return "<invalid>"
}

func (p Position) String() string {
	file := p.Filename()
	if p.Line > 0 {
		if p.Col > 0 {
			return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Col)
		}
		return fmt.Sprintf("%s:%d", file, p.Line)
	}
	return file
}

// add returns the position at the end of s, assuming it starts at p.
func (p Position) add(s string) Position {
	if n := strings.Count(s, "\n"); n > 0 {
		p.Line += int32(n)
		s = s[strings.LastIndex(s, "\n")+1:]
		p.Col = 1
	}
	p.Col += int32(utf8.RuneCountInString(s))
	return p
}

// An Error describes the nature and position of a scanner or parser error.
type Error struct {
	Pos Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// tokenValue records the position and value associated with each token.
type tokenValue struct {
	raw string    // raw text of token
	int mpint.Int // decoded integer (INT)
	pos Position  // start position of token
}

// A scanner tokenizes an input stream of calculator source.
type scanner struct {
	rest      []byte   // rest of input
	token     []byte   // token being scanned
	pos       Position // current input position
	depth     int      // nesting of ( )
	lineStart bool     // no token yet on this line; suppresses NEWLINE for blank lines
}

func newScanner(filename string, src interface{}) (*scanner, error) {
	data, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}
	return &scanner{
		rest:      data,
		pos:       MakePosition(&filename, 1, 1),
		lineStart: true,
	}, nil
}

// readSource returns the content of the named file or, if src is
// non-nil, the source it provides: a string or a []byte.
func readSource(filename string, src interface{}) ([]byte, error) {
	switch src := src.(type) {
	case nil:
		return os.ReadFile(filename)
	case string:
		return []byte(src), nil
	case []byte:
		return src, nil
	default:
		return nil, fmt.Errorf("invalid source: %T", src)
	}
}

// errorf reports an error at the specified position by panicking with
// an Error; the recover method converts it to an error return.
func (sc *scanner) errorf(pos Position, format string, args ...interface{}) {
	panic(Error{pos, fmt.Sprintf(format, args...)})
}

// recover converts a panicking scanner or parser into an error return.
func (sc *scanner) recover(err *error) {
	switch e := recover().(type) {
	case nil:
		// no panic
	case Error:
		*err = e
	default:
		*err = fmt.Errorf("parser panic: %v", e)
	}
}

// readRune consumes and returns the next rune in the input.
func (sc *scanner) readRune() rune {
	// fast path: ASCII
	if b := sc.rest[0]; b < utf8.RuneSelf {
		sc.rest = sc.rest[1:]
		if b == '\n' {
			sc.pos.Line++
			sc.pos.Col = 1
		} else {
			sc.pos.Col++
		}
		return rune(b)
	}

	r, size := utf8.DecodeRune(sc.rest)
	sc.rest = sc.rest[size:]
	sc.pos.Col++
	return r
}

// peekRune returns the next rune in the input without consuming it.
func (sc *scanner) peekRune() rune {
	if len(sc.rest) == 0 {
		return 0
	}
	if b := sc.rest[0]; b < utf8.RuneSelf {
		return rune(b)
	}
	r, _ := utf8.DecodeRune(sc.rest)
	return r
}

// startToken marks the beginning of the next input token.
func (sc *scanner) startToken(val *tokenValue) {
	sc.token = sc.rest
	val.raw = ""
	val.pos = sc.pos
}

// endToken records the end of the current token.
func (sc *scanner) endToken(val *tokenValue) {
	if val.raw == "" {
		val.raw = string(sc.token[:len(sc.token)-len(sc.rest)])
	}
}

// nextToken is called by the parser to obtain the next input token.
// It returns the token value and sets val to the data associated with
// the token.
//
// For all tokens, val.pos is the token's start position and val.raw
// its input text. For INT tokens, val.int additionally holds the
// decoded value.
func (sc *scanner) nextToken(val *tokenValue) Token {
	// Skip spaces, comments, line continuations, and newlines that
	// are not tokens: a newline is a token only at the top level, at
	// the end of a non-blank line.
skip:
	for {
		sc.startToken(val)
		if len(sc.rest) == 0 {
			sc.endToken(val)
			return EOF
		}
		switch sc.peekRune() {
		case ' ', '\t', '\r':
			sc.readRune()
		case '#':
			for len(sc.rest) > 0 && sc.peekRune() != '\n' {
				sc.readRune()
			}
		case '\\':
			if len(sc.rest) < 2 || sc.rest[1] != '\n' {
				sc.errorf(sc.pos, `unexpected input character '\'`)
			}
			sc.readRune()
			sc.readRune()
		case '\n':
			sc.readRune()
			if sc.depth == 0 && !sc.lineStart {
				sc.lineStart = true
				sc.endToken(val)
				return NEWLINE
			}
		default:
			break skip
		}
	}
	sc.lineStart = false

	c := sc.peekRune()

	if isIdentStart(c) {
		for isIdent(sc.peekRune()) {
			sc.readRune()
		}
		sc.endToken(val)
		return IDENT
	}

	if isdigit(c) {
		return sc.scanNumber(val, c)
	}

	start := sc.pos
	sc.readRune()
	sc.endToken(val)
	switch c {
	case '+':
		return PLUS
	case '-':
		return MINUS
	case '*':
		return STAR
	case '/':
		if sc.peekRune() == '/' {
			sc.readRune()
			sc.endToken(val)
			return SLASHSLASH
		}
		return SLASH
	case '%':
		return PERCENT
	case '(':
		sc.depth++
		return LPAREN
	case ')':
		if sc.depth > 0 {
			sc.depth--
		}
		return RPAREN
	case ',':
		return COMMA
	case ';':
		return SEMI
	case '=':
		return EQ
	}
	sc.errorf(start, "unexpected input character %q", c)
	panic("unreachable")
}

// scanNumber scans an integer literal: decimal, hexadecimal (0x),
// octal (0o), or binary (0b). The legacy C form of octal literal,
// 0755, is an error.
func (sc *scanner) scanNumber(val *tokenValue, c rune) Token {
	start := sc.pos

	if c == '0' {
		sc.readRune()
		switch sc.peekRune() {
		case 'x', 'X':
			sc.readRune()
			if !isxdigit(sc.peekRune()) {
				sc.errorf(start, "invalid hex literal")
			}
			for isxdigit(sc.peekRune()) {
				sc.readRune()
			}
		case 'o', 'O':
			sc.readRune()
			if !isodigit(sc.peekRune()) {
				sc.errorf(start, "invalid octal literal")
			}
			for isodigit(sc.peekRune()) {
				sc.readRune()
			}
		case 'b', 'B':
			sc.readRune()
			if !isbdigit(sc.peekRune()) {
				sc.errorf(start, "invalid binary literal")
			}
			for isbdigit(sc.peekRune()) {
				sc.readRune()
			}
		default:
			// Decimal digits after a leading zero: either harmless
			// (all zeros) or a legacy octal literal, which we reject.
			allzeros, octal := true, true
			for isdigit(sc.peekRune()) {
				c = sc.readRune()
				if c != '0' {
					allzeros = false
				}
				if c > '7' {
					octal = false
				}
			}
			if !allzeros {
				sc.endToken(val)
				if octal {
					sc.errorf(start, "obsolete form of octal literal; use 0o%s", val.raw[1:])
				} else {
					sc.errorf(start, "invalid int literal")
				}
			}
		}
	} else {
		for isdigit(sc.peekRune()) {
			sc.readRune()
		}
	}
	sc.endToken(val)

	x, err := mpint.ParseInt(val.raw, 0)
	if err != nil {
		sc.errorf(start, "invalid int literal %s", val.raw)
	}
	val.int = x
	return INT
}

func isIdentStart(c rune) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		c == '_' ||
		c >= utf8.RuneSelf && unicode.IsLetter(c)
}

func isIdent(c rune) bool  { return isdigit(c) || isIdentStart(c) }
func isdigit(c rune) bool  { return '0' <= c && c <= '9' }
func isodigit(c rune) bool { return '0' <= c && c <= '7' }
func isxdigit(c rune) bool { return isdigit(c) || 'A' <= c && c <= 'F' || 'a' <= c && c <= 'f' }
func isbdigit(c rune) bool { return '0' == c || c == '1' }
