// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import "log"

const debug = false // print debug info

// Parse parses the input data and returns the corresponding parse tree.
//
// If src != nil, it must be a string or a []byte and provides the
// source text; the filename is used only for positions and error
// messages. If src == nil, Parse reads the named file.
func Parse(filename string, src interface{}) (f *File, err error) {
	in, err := newScanner(filename, src)
	if err != nil {
		return nil, err
	}
	p := parser{in: in}
	defer p.in.recover(&err)

	p.nextToken() // read first lookahead token
	f = p.parseFile()
	if f != nil {
		f.Path = filename
	}
	return f, nil
}

// ParseExpr parses an input string as an expression.
func ParseExpr(filename string, src interface{}) (expr Expr, err error) {
	in, err := newScanner(filename, src)
	if err != nil {
		return nil, err
	}
	p := parser{in: in}
	defer p.in.recover(&err)

	p.nextToken() // read first lookahead token
	expr = p.parseExpr()

	// A trailing newline is not part of the expression.
	if p.tok == NEWLINE {
		p.nextToken()
	}
	if p.tok != EOF {
		p.in.errorf(p.tokval.pos, "got %s after expression, want end of file", p.tok)
	}
	return expr, nil
}

type parser struct {
	in     *scanner
	tok    Token
	tokval tokenValue
}

// nextToken advances the scanner and returns the position of the
// previous token.
func (p *parser) nextToken() Position {
	oldpos := p.tokval.pos
	p.tok = p.in.nextToken(&p.tokval)
	// enable to see the token stream
	if debug {
		log.Printf("nextToken: %s %s", p.tok, p.tokval.pos)
	}
	return oldpos
}

// consume checks that the current token is t and advances past it.
func (p *parser) consume(t Token) Position {
	if p.tok != t {
		p.in.errorf(p.tokval.pos, "got %s, want %s", p.tok, t)
	}
	return p.nextToken()
}

// parseFile parses a file: a sequence of newline-terminated statements.
func (p *parser) parseFile() *File {
	var stmts []Stmt
	for p.tok != EOF {
		if p.tok == NEWLINE {
			p.nextToken()
			continue
		}
		stmts = append(stmts, p.parseStmt())
	}
	return &File{Stmts: stmts}
}

// parseStmt parses a statement and its terminator: a newline, or a
// semicolon separating statements on one line.
//
// An assignment target is parsed as an expression and then checked to
// be a name; the grammar needs no extra lookahead that way.
func (p *parser) parseStmt() Stmt {
	x := p.parseExpr()

	var stmt Stmt
	if p.tok == EQ {
		opPos := p.nextToken()
		lhs, ok := x.(*Ident)
		if !ok {
			p.in.errorf(opPos, "can only assign to a name")
		}
		rhs := p.parseExpr()
		stmt = &AssignStmt{OpPos: opPos, LHS: lhs, RHS: rhs}
	} else {
		stmt = &ExprStmt{X: x}
	}

	if p.tok == SEMI {
		p.nextToken()
		// A trailing semicolon before the newline is permitted.
		if p.tok == NEWLINE {
			p.nextToken()
		}
		return stmt
	}
	if p.tok != NEWLINE && p.tok != EOF {
		p.in.errorf(p.tokval.pos, "got %s, want newline", p.tok)
	}
	if p.tok == NEWLINE {
		p.nextToken()
	}
	return stmt
}

// Binary operators of equal precedence, from lowest to highest.
var preclevels = [][]Token{
	{PLUS, MINUS},
	{STAR, SLASH, SLASHSLASH, PERCENT},
}

var precedence [maxToken]int8

func init() {
	// populate precedence table
	for i := range precedence {
		precedence[i] = -1
	}
	for i, tokens := range preclevels {
		for _, tok := range tokens {
			precedence[tok] = int8(i)
		}
	}
}

func (p *parser) parseExpr() Expr { return p.parseBinopExpr(0) }

// parseBinopExpr parses an expression using binary operators of
// precedence >= prec. All operators associate to the left.
func (p *parser) parseBinopExpr(prec int8) Expr {
	x := p.parseUnaryExpr()
	for {
		opprec := precedence[p.tok]
		if opprec < prec {
			return x
		}
		op := p.tok
		opPos := p.nextToken()
		y := p.parseBinopExpr(opprec + 1)
		x = &BinaryExpr{OpPos: opPos, Op: op, X: x, Y: y}
	}
}

// parseUnaryExpr parses a unary expression: +x, -x.
func (p *parser) parseUnaryExpr() Expr {
	if p.tok == PLUS || p.tok == MINUS {
		op := p.tok
		opPos := p.nextToken()
		x := p.parseUnaryExpr()
		return &UnaryExpr{OpPos: opPos, Op: op, X: x}
	}
	return p.parsePrimary()
}

// parsePrimary parses a primary expression: a literal, a name, a
// call, or a parenthesized expression.
func (p *parser) parsePrimary() Expr {
	switch p.tok {
	case INT:
		lit := &Literal{
			Token:    p.tok,
			TokenPos: p.tokval.pos,
			Raw:      p.tokval.raw,
			Value:    p.tokval.int,
		}
		p.nextToken()
		return lit

	case IDENT:
		id := &Ident{NamePos: p.tokval.pos, Name: p.tokval.raw}
		p.nextToken()
		if p.tok == LPAREN {
			return p.parseCall(id)
		}
		return id

	case LPAREN:
		lparen := p.nextToken()
		x := p.parseExpr()
		rparen := p.consume(RPAREN)
		return &ParenExpr{Lparen: lparen, X: x, Rparen: rparen}
	}
	p.in.errorf(p.tokval.pos, "got %s, want primary expression", p.tok)
	panic("unreachable")
}

// parseCall parses the argument list of a call: fn(a, b, c).
// A trailing comma is permitted.
func (p *parser) parseCall(fn *Ident) Expr {
	lparen := p.consume(LPAREN)
	var args []Expr
	for p.tok != RPAREN {
		if len(args) > 0 {
			p.consume(COMMA)
			if p.tok == RPAREN {
				break
			}
		}
		args = append(args, p.parseExpr())
	}
	rparen := p.consume(RPAREN)
	return &CallExpr{Fn: fn, Lparen: lparen, Args: args, Rparen: rparen}
}
