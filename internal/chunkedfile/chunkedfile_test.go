// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunkedfile

import (
	"fmt"
	"testing"
)

type testReporter struct {
	reported []string
}

func (r *testReporter) Errorf(format string, args ...interface{}) {
	r.reported = append(r.reported, fmt.Sprintf(format, args...))
}

func (r *testReporter) assertNone(t *testing.T) {
	t.Helper()
	if len(r.reported) > 0 {
		t.Errorf("reporter expected no errors, got %d: %v", len(r.reported), r.reported)
	}
}

func (r *testReporter) assertOne(t *testing.T, exp string) {
	t.Helper()
	if len(r.reported) != 1 {
		t.Fatalf("reporter expected 1 error, got %d", len(r.reported))
	}
	if r.reported[0] != exp {
		t.Fatalf("reporter expected %q, got %q", exp, r.reported[0])
	}
}

func (r *testReporter) reset() {
	r.reported = nil
}

func TestChunkedFile(t *testing.T) {
	data := []byte(`x = 1 / 0 ### "division by zero"
---
x = 1
print(x)
`)

	reporter := &testReporter{}
	chunks := readBytes("test_file", data, reporter)

	reporter.assertNone(t)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	// The first chunk carries one expected error.
	chunk := chunks[0]
	if exp := `x = 1 / 0 ### "division by zero"`; chunk.Source != exp {
		t.Fatalf("expected %q, got %q", exp, chunk.Source)
	}
	if len(chunk.wantErrs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(chunk.wantErrs))
	}
	for _, re := range chunk.wantErrs {
		if exp := "division by zero"; re.String() != exp {
			t.Fatalf("expected %q, got %q", exp, re.String())
		}
	}

	// A matching error satisfies and consumes the expectation.
	chunk.GotError(1, "division by zero")
	reporter.assertNone(t)
	if len(chunk.wantErrs) != 0 {
		t.Fatalf("expected 0 errors, got %d", len(chunk.wantErrs))
	}

	// The same error again is now unexpected.
	chunk.GotError(1, "division by zero")
	reporter.assertOne(t, "\ntest_file:1: unexpected error: division by zero")

	// The second chunk is padded with blank lines so its content
	// keeps the line numbers of the original file, and carries no
	// expectations.
	chunk = chunks[1]
	if exp := "\n\nx = 1\nprint(x)\n"; chunk.Source != exp {
		t.Fatalf("expected %q, got %q", exp, chunk.Source)
	}
	if len(chunk.wantErrs) != 0 {
		t.Fatalf("expected 0 errors, got %d", len(chunk.wantErrs))
	}

	reporter.reset()
	chunk.GotError(123, "foobar")
	reporter.assertOne(t, "\ntest_file:123: unexpected error: foobar")

	// Done reports expectations that were never satisfied.
	reporter.reset()
	chunks = readBytes("test_file", data, reporter)
	chunks[0].Done()
	reporter.assertOne(t, "\ntest_file:1: expected error matching \"division by zero\"")
}
