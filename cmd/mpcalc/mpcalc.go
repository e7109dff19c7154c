// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The mpcalc command evaluates a calculator file.
// With no arguments, it starts a read-eval-print loop (REPL)
// if standard input is a terminal, or evaluates standard input
// as a file if it is not.
package main // import "go.mpint.net/cmd/mpcalc"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"golang.org/x/term"

	"go.mpint.net/calc"
	"go.mpint.net/repl"
)

// flags
var (
	cpuprofile = flag.String("cpuprofile", "", "gather Go CPU profile in this file")
	memprofile = flag.String("memprofile", "", "gather Go memory profile in this file")
	showenv    = flag.Bool("showenv", false, "on success, print final environment")
	execprog   = flag.String("c", "", "execute program `prog`")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("mpcalc: ")
	log.SetFlags(0)
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		check(err)
		err = pprof.StartCPUProfile(f)
		check(err)
		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			check(err)
		}()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		check(err)
		defer func() {
			runtime.GC()
			err := pprof.Lookup("heap").WriteTo(f, 0)
			check(err)
			err = f.Close()
			check(err)
		}()
	}

	env := make(calc.Env)

	switch {
	case flag.NArg() == 1 || *execprog != "":
		var (
			filename string
			src      interface{}
		)
		if *execprog != "" {
			// Execute provided program.
			filename = "cmdline"
			src = *execprog
		} else {
			// Execute specified file.
			filename = flag.Arg(0)
		}
		if err := calc.ExecFile(filename, src, env, os.Stdout); err != nil {
			repl.PrintError(err)
			return 1
		}
	case flag.NArg() == 0:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Println("Welcome to mpcalc (go.mpint.net)")
			repl.REPL(env)
		} else {
			// Evaluate the file piped on standard input.
			data, err := io.ReadAll(os.Stdin)
			check(err)
			if err := calc.ExecFile("<stdin>", data, env, os.Stdout); err != nil {
				repl.PrintError(err)
				return 1
			}
		}
	default:
		log.Print("want at most one file name")
		return 1
	}

	// Print the final environment.
	if *showenv {
		for _, name := range env.Keys() {
			if !strings.HasPrefix(name, "_") {
				fmt.Fprintf(os.Stderr, "%s = %s\n", name, env[name])
			}
		}
	}

	return 0
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
