// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/eval/print loop for the calculator.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// Each input line is parsed as a sequence of statements.
// Assignments update the environment; expression statements
// print their value in decimal.
package repl // import "go.mpint.net/repl"

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"

	"go.mpint.net/calc"
	"go.mpint.net/syntax"
)

// REPL executes a read, eval, print loop against env.
//
// Assignments entered at the prompt persist in env across lines, so a
// caller may seed bindings before the loop and inspect them after it
// returns.
func REPL(env calc.Env) {
	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, env); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, evaluates, and prints one line.
//
// It returns an error (possibly readline.ErrInterrupt) only if
// reading failed. Scan, parse, and evaluation errors are printed.
func rep(rl *readline.Instance, env calc.Env) error {
	line, err := rl.Readline()
	if err != nil {
		return err // io.EOF or readline.ErrInterrupt
	}

	f, err := syntax.Parse("<stdin>", line+"\n")
	if err != nil {
		PrintError(err)
		return nil
	}

	if err := calc.ExecStmts(f.Stmts, env, os.Stdout); err != nil {
		PrintError(err)
	}
	return nil
}

// PrintError prints the error to stderr.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, err)
}
