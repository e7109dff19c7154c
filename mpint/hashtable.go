// Copyright 2023 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpint

// A Map is a mapping from Int keys to arbitrary values.
// Keys are bucketed by Hash and resolved by Cmp, so a key stored under
// one representation is found when looked up under the other.
// The zero value is an empty map ready to use.
// A Map is not safe for concurrent use.
type Map struct {
	buckets map[uint32][]mapEntry
	length  int
}

type mapEntry struct {
	key   Int
	value interface{}
}

// Len returns the number of entries in the map.
func (m *Map) Len() int { return m.length }

// Get returns the value stored for key and whether it was present.
func (m *Map) Get(key Int) (interface{}, bool) {
	for _, e := range m.buckets[key.Hash()] {
		if e.key.Cmp(key) == 0 {
			return e.value, true
		}
	}
	return nil, false
}

// Set stores value under key, replacing any previous value.
func (m *Map) Set(key Int, value interface{}) {
	if m.buckets == nil {
		m.buckets = make(map[uint32][]mapEntry)
	}
	h := key.Hash()
	bucket := m.buckets[h]
	for i := range bucket {
		if bucket[i].key.Cmp(key) == 0 {
			bucket[i].value = value
			return
		}
	}
	m.buckets[h] = append(bucket, mapEntry{key, value})
	m.length++
}

// Delete removes the entry for key, returning its value and whether it
// was present.
func (m *Map) Delete(key Int) (interface{}, bool) {
	h := key.Hash()
	bucket := m.buckets[h]
	for i := range bucket {
		if bucket[i].key.Cmp(key) == 0 {
			v := bucket[i].value
			last := len(bucket) - 1
			bucket[i] = bucket[last]
			bucket[last] = mapEntry{} // let the displaced value be collected
			if last == 0 {
				delete(m.buckets, h)
			} else {
				m.buckets[h] = bucket[:last]
			}
			m.length--
			return v, true
		}
	}
	return nil, false
}

// Range calls f for each entry in unspecified order until f returns
// false. f must not mutate the map.
func (m *Map) Range(f func(key Int, value interface{}) bool) {
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			if !f(e.key, e.value) {
				return
			}
		}
	}
}
