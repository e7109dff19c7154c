// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpint

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testIters = 10000

var (
	// testInts is a zipf-distributed array of Ints and corresponding
	// int64s. Every other entry is forced into the big representation
	// so that map operations constantly cross representations.
	makeTestIntsOnce sync.Once
	testInts         [3 * testIters]struct {
		Int   Int
		goInt int64
	}
)

func makeTestInts() {
	zipf := rand.NewZipf(rand.New(rand.NewSource(0)), 1.1, 1.0, 1000.0)
	for i := range &testInts {
		r := int64(zipf.Uint64())
		testInts[i].goInt = r
		if i%2 == 0 {
			testInts[i].Int = MakeInt64(r)
		} else {
			testInts[i].Int = forceBig(r)
		}
	}
}

func TestIntMap(t *testing.T) {
	makeTestIntsOnce.Do(makeTestInts)
	testIntMap(t, make(map[int64]bool))
}

func BenchmarkIntMap(b *testing.B) {
	makeTestIntsOnce.Do(makeTestInts)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		testIntMap(b, nil)
	}
}

// testIntMap is both a test and a benchmark of Map.
// When sane != nil, it acts as a test against the semantics of Go's map.
func testIntMap(tb testing.TB, sane map[int64]bool) {
	var i int // index into testInts

	var m Map

	// Insert 10000 random ints into the map.
	for j := 0; j < testIters; j++ {
		k := testInts[i]
		i++
		m.Set(k.Int, true)
		if sane != nil {
			sane[k.goInt] = true
		}
	}

	// Do 10000 random lookups in the map.
	for j := 0; j < testIters; j++ {
		k := testInts[i]
		i++
		_, found := m.Get(k.Int)
		if sane != nil {
			if _, found2 := sane[k.goInt]; found != found2 {
				tb.Fatal("sanity check failed")
			}
		}
	}

	// Do 10000 random deletes from the map.
	for j := 0; j < testIters; j++ {
		k := testInts[i]
		i++
		_, found := m.Delete(k.Int)
		if sane != nil {
			if _, found2 := sane[k.goInt]; found != found2 {
				tb.Fatal("sanity check failed")
			}
			delete(sane, k.goInt)
		}
	}

	if sane != nil {
		if m.Len() != len(sane) {
			tb.Fatal("sanity check failed")
		}
	}
}

func TestMapBasics(t *testing.T) {
	var m Map
	if m.Len() != 0 {
		t.Errorf("zero Map has Len %d", m.Len())
	}
	if _, found := m.Get(MakeInt64(1)); found {
		t.Error("Get on empty Map reported a hit")
	}
	if _, found := m.Delete(MakeInt64(1)); found {
		t.Error("Delete on empty Map reported a hit")
	}

	m.Set(MakeInt64(7), "small")
	if v, found := m.Get(forceBig(7)); !found || v != "small" {
		t.Errorf("cross-representation Get = %v, %v", v, found)
	}
	m.Set(forceBig(7), "big") // must replace, not insert
	if m.Len() != 1 {
		t.Errorf("Len = %d after replacing a key", m.Len())
	}

	huge := MakeInt64(math.MaxInt64).Mul(MakeInt64(3))
	m.Set(huge, "huge")

	got := make(map[string]interface{})
	m.Range(func(k Int, v interface{}) bool {
		got[k.String()] = v
		return true
	})
	want := map[string]interface{}{
		"7":                    "big",
		"27670116110564327421": "huge",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	n := 0
	m.Range(func(Int, interface{}) bool { n++; return false })
	if n != 1 {
		t.Errorf("Range visited %d entries after returning false", n)
	}

	if v, found := m.Delete(forceBig(7)); !found || v != "big" {
		t.Errorf("Delete = %v, %v", v, found)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d after Delete", m.Len())
	}
}
