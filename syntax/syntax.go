// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax provides a parser and abstract syntax tree for a
// small language of arbitrary-precision integer expressions.
//
// A program is a sequence of newline-terminated statements. A
// statement is either an assignment to a name, x = e, or a bare
// expression. Expressions combine integer literals, names, function
// calls, and the arithmetic operators + - * / // %.
package syntax // import "go.mpint.net/syntax"

import "go.mpint.net/mpint"

// A Node is a node in a syntax tree.
type Node interface {
	// Span returns the start and end position of the expression.
	Span() (start, end Position)
}

// Start returns the start position of the expression.
func Start(n Node) Position {
	start, _ := n.Span()
	return start
}

// End returns the end position of the expression.
func End(n Node) Position {
	_, end := n.Span()
	return end
}

// A File represents a source file holding a sequence of statements.
type File struct {
	Path  string
	Stmts []Stmt
}

func (x *File) Span() (start, end Position) {
	if len(x.Stmts) == 0 {
		return
	}
	start, _ = x.Stmts[0].Span()
	_, end = x.Stmts[len(x.Stmts)-1].Span()
	return start, end
}

// A Stmt is a statement.
type Stmt interface {
	Node
	stmt()
}

func (*AssignStmt) stmt() {}
func (*ExprStmt) stmt()   {}

// An AssignStmt binds the value of an expression to a name: x = e.
type AssignStmt struct {
	OpPos Position
	LHS   *Ident
	RHS   Expr
}

func (x *AssignStmt) Span() (start, end Position) {
	start, _ = x.LHS.Span()
	_, end = x.RHS.Span()
	return
}

// An ExprStmt is an expression evaluated for its value.
type ExprStmt struct {
	X Expr
}

func (x *ExprStmt) Span() (start, end Position) {
	return x.X.Span()
}

// An Expr is an expression.
type Expr interface {
	Node
	expr()
}

func (*BinaryExpr) expr() {}
func (*CallExpr) expr()   {}
func (*Ident) expr()      {}
func (*Literal) expr()    {}
func (*ParenExpr) expr()  {}
func (*UnaryExpr) expr()  {}

// An Ident represents an identifier.
type Ident struct {
	NamePos Position
	Name    string
}

func (x *Ident) Span() (start, end Position) {
	return x.NamePos, x.NamePos.add(x.Name)
}

// A Literal represents an integer literal.
type Literal struct {
	Token    Token // = INT
	TokenPos Position
	Raw      string // uninterpreted text
	Value    mpint.Int
}

func (x *Literal) Span() (start, end Position) {
	return x.TokenPos, x.TokenPos.add(x.Raw)
}

// A ParenExpr represents a parenthesized expression: (X).
type ParenExpr struct {
	Lparen Position
	X      Expr
	Rparen Position
}

func (x *ParenExpr) Span() (start, end Position) {
	return x.Lparen, x.Rparen.add(")")
}

// A CallExpr represents a function call: Fn(Args).
type CallExpr struct {
	Fn     *Ident
	Lparen Position
	Args   []Expr
	Rparen Position
}

func (x *CallExpr) Span() (start, end Position) {
	start, _ = x.Fn.Span()
	return start, x.Rparen.add(")")
}

// A UnaryExpr represents a unary expression: Op X.
type UnaryExpr struct {
	OpPos Position
	Op    Token
	X     Expr
}

func (x *UnaryExpr) Span() (start, end Position) {
	_, end = x.X.Span()
	return x.OpPos, end
}

// A BinaryExpr represents a binary expression: X Op Y.
type BinaryExpr struct {
	X     Expr
	OpPos Position
	Op    Token
	Y     Expr
}

func (x *BinaryExpr) Span() (start, end Position) {
	start, _ = x.X.Span()
	_, end = x.Y.Span()
	return start, end
}
