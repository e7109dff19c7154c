// Copyright 2022 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpint

import "fmt"

// MarshalText implements encoding.TextMarshaler.
// The text is the exact decimal representation of x.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// The text must be a possibly signed decimal integer.
func (x *Int) UnmarshalText(text []byte) error {
	z, err := ParseInt(string(text), 10)
	if err != nil {
		return fmt.Errorf("mpint: cannot unmarshal %q into an Int", text)
	}
	*x = z
	return nil
}

// MarshalJSON implements json.Marshaler.
// The value is encoded as a JSON number of arbitrary precision.
func (x Int) MarshalJSON() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
// Null is ignored, as in the main JSON package.
func (x *Int) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	return x.UnmarshalText(text)
}
