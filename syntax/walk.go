// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Walk traverses a syntax tree in depth-first order.
// It starts by calling f(n); n must not be nil.
// If f returns true, Walk calls itself recursively for each
// non-nil child of n, then calls f(nil).
func Walk(n Node, f func(Node) bool) {
	if n == nil {
		panic("nil")
	}
	if !f(n) {
		return
	}

	switch n := n.(type) {
	case *File:
		for _, stmt := range n.Stmts {
			Walk(stmt, f)
		}
	case *ExprStmt:
		Walk(n.X, f)
	case *AssignStmt:
		Walk(n.LHS, f)
		Walk(n.RHS, f)
	case *Ident, *Literal:
		// leaf
	case *ParenExpr:
		Walk(n.X, f)
	case *CallExpr:
		Walk(n.Fn, f)
		for _, arg := range n.Args {
			Walk(arg, f)
		}
	case *UnaryExpr:
		Walk(n.X, f)
	case *BinaryExpr:
		Walk(n.X, f)
		Walk(n.Y, f)
	default:
		panic(n)
	}

	f(nil)
}
