// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calc evaluates programs in the calculator language over
// arbitrary-precision integers.
//
// A program is a sequence of statements executed in an environment,
// a mutable mapping from names to values. An assignment statement
// updates the environment; the value of each expression statement is
// printed. The / operator truncates toward zero, the // operator
// rounds toward negative infinity, and the % operator requires a
// positive divisor and yields a result in [0, divisor).
package calc // import "go.mpint.net/calc"

import (
	"fmt"
	"io"
	"sort"

	"go.mpint.net/internal/spell"
	"go.mpint.net/mpint"
	"go.mpint.net/syntax"
)

// An Env is the set of name bindings of a calculator program.
type Env map[string]mpint.Int

// Has reports whether the environment contains the specified name.
func (e Env) Has(name string) bool { _, ok := e[name]; return ok }

// Keys returns the sorted list of bound names.
func (e Env) Keys() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// An EvalError is an error during the evaluation of a program, with
// the position where it occurred.
type EvalError struct {
	Pos syntax.Position
	Msg string
}

func (e *EvalError) Error() string { return e.Pos.String() + ": " + e.Msg }

func errorf(pos syntax.Position, format string, args ...interface{}) *EvalError {
	return &EvalError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// ExecFile parses and executes a program in the specified
// environment, which may be modified during execution. The value of
// each expression statement is printed to out.
//
// The filename and src parameters are as for syntax.Parse.
func ExecFile(filename string, src interface{}, env Env, out io.Writer) error {
	f, err := syntax.Parse(filename, src)
	if err != nil {
		return err
	}
	return ExecStmts(f.Stmts, env, out)
}

// ExecStmts executes a sequence of parsed statements.
func ExecStmts(stmts []syntax.Stmt, env Env, out io.Writer) error {
	for _, stmt := range stmts {
		if err := exec(stmt, env, out); err != nil {
			return err
		}
	}
	return nil
}

func exec(stmt syntax.Stmt, env Env, out io.Writer) error {
	switch stmt := stmt.(type) {
	case *syntax.ExprStmt:
		v, err := EvalExpr(stmt.X, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, v)
		return nil

	case *syntax.AssignStmt:
		v, err := EvalExpr(stmt.RHS, env)
		if err != nil {
			return err
		}
		env[stmt.LHS.Name] = v
		return nil
	}
	start, _ := stmt.Span()
	return errorf(start, "unexpected statement %T", stmt)
}

// Eval parses and evaluates an expression within the specified
// environment. Evaluation cannot modify the environment.
func Eval(filename string, src interface{}, env Env) (mpint.Int, error) {
	expr, err := syntax.ParseExpr(filename, src)
	if err != nil {
		return mpint.Int{}, err
	}
	return EvalExpr(expr, env)
}

// EvalExpr evaluates a parsed expression within the specified
// environment.
func EvalExpr(e syntax.Expr, env Env) (mpint.Int, error) {
	switch e := e.(type) {
	case *syntax.Literal:
		return e.Value, nil

	case *syntax.Ident:
		if v, ok := env[e.Name]; ok {
			return v, nil
		}
		var hint string
		if n := spell.Nearest(e.Name, env.Keys()); n != "" {
			hint = fmt.Sprintf(" (did you mean %s?)", n)
		}
		return mpint.Int{}, errorf(e.NamePos, "undefined name %s%s", e.Name, hint)

	case *syntax.ParenExpr:
		return EvalExpr(e.X, env)

	case *syntax.UnaryExpr:
		x, err := EvalExpr(e.X, env)
		if err != nil {
			return mpint.Int{}, err
		}
		y, err := Unary(e.Op, x)
		if err != nil {
			return mpint.Int{}, errorf(e.OpPos, "%v", err)
		}
		return y, nil

	case *syntax.BinaryExpr:
		x, err := EvalExpr(e.X, env)
		if err != nil {
			return mpint.Int{}, err
		}
		y, err := EvalExpr(e.Y, env)
		if err != nil {
			return mpint.Int{}, err
		}
		z, err := Binary(e.Op, x, y)
		if err != nil {
			return mpint.Int{}, errorf(e.OpPos, "%v", err)
		}
		return z, nil

	case *syntax.CallExpr:
		return evalCall(e, env)
	}
	return mpint.Int{}, errorf(syntax.Start(e), "unexpected expression %T", e)
}

// Unary applies a unary operator (+, -) to its operand.
func Unary(op syntax.Token, x mpint.Int) (mpint.Int, error) {
	switch op {
	case syntax.PLUS:
		return x, nil
	case syntax.MINUS:
		return x.Neg(), nil
	}
	return mpint.Int{}, fmt.Errorf("unknown unary op: %s", op)
}

// Binary applies a binary operator (+, -, *, /, //, %) to its
// operands.
func Binary(op syntax.Token, x, y mpint.Int) (mpint.Int, error) {
	switch op {
	case syntax.PLUS:
		return x.Add(y), nil
	case syntax.MINUS:
		return x.Sub(y), nil
	case syntax.STAR:
		return x.Mul(y), nil
	case syntax.SLASH:
		if y.Sign() == 0 {
			return mpint.Int{}, fmt.Errorf("division by zero")
		}
		return x.Div(y), nil
	case syntax.SLASHSLASH:
		if y.Sign() == 0 {
			return mpint.Int{}, fmt.Errorf("floored division by zero")
		}
		return mpint.FloorDiv(x, y), nil
	case syntax.PERCENT:
		if y.Sign() <= 0 {
			return mpint.Int{}, fmt.Errorf("modulo requires a positive divisor")
		}
		return x.Mod(y), nil
	}
	return mpint.Int{}, fmt.Errorf("unknown binary op: %s", op)
}

// A builtin is a function of fixed arity available to all programs.
type builtin struct {
	arity int
	fn    func(args []mpint.Int) (mpint.Int, error)
}

var builtins = map[string]builtin{
	"abs": {1, func(args []mpint.Int) (mpint.Int, error) {
		return args[0].Abs(), nil
	}},
	"gcd": {2, func(args []mpint.Int) (mpint.Int, error) {
		if args[0].Sign() < 0 || args[1].Sign() < 0 {
			return mpint.Int{}, fmt.Errorf("gcd requires non-negative operands")
		}
		return mpint.GCD(args[0], args[1]), nil
	}},
	"lcm": {2, func(args []mpint.Int) (mpint.Int, error) {
		if args[0].Sign() == 0 && args[1].Sign() == 0 {
			return mpint.Int{}, fmt.Errorf("lcm(0, 0) is undefined")
		}
		return mpint.LCM(args[0], args[1]), nil
	}},
	"ceildiv": {2, func(args []mpint.Int) (mpint.Int, error) {
		if args[1].Sign() == 0 {
			return mpint.Int{}, fmt.Errorf("ceiling division by zero")
		}
		return mpint.CeilDiv(args[0], args[1]), nil
	}},
	"floordiv": {2, func(args []mpint.Int) (mpint.Int, error) {
		if args[1].Sign() == 0 {
			return mpint.Int{}, fmt.Errorf("floored division by zero")
		}
		return mpint.FloorDiv(args[0], args[1]), nil
	}},
	"mod": {2, func(args []mpint.Int) (mpint.Int, error) {
		if args[1].Sign() <= 0 {
			return mpint.Int{}, fmt.Errorf("modulo requires a positive divisor")
		}
		return args[0].Mod(args[1]), nil
	}},
}

// Builtins returns the sorted names of the built-in functions.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func evalCall(call *syntax.CallExpr, env Env) (mpint.Int, error) {
	fn, ok := builtins[call.Fn.Name]
	if !ok {
		var hint string
		if n := spell.Nearest(call.Fn.Name, Builtins()); n != "" {
			hint = fmt.Sprintf(" (did you mean %s?)", n)
		}
		return mpint.Int{}, errorf(call.Fn.NamePos, "undefined function %s%s", call.Fn.Name, hint)
	}
	if len(call.Args) != fn.arity {
		return mpint.Int{}, errorf(call.Lparen, "%s: got %d arguments, want %d", call.Fn.Name, len(call.Args), fn.arity)
	}
	args := make([]mpint.Int, len(call.Args))
	for i, arg := range call.Args {
		v, err := EvalExpr(arg, env)
		if err != nil {
			return mpint.Int{}, err
		}
		args[i] = v
	}
	v, err := fn.fn(args)
	if err != nil {
		return mpint.Int{}, errorf(call.Lparen, "%v", err)
	}
	return v, nil
}
