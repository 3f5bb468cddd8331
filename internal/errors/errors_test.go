// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import "testing"

func TestValidationErrorMessage(t *testing.T) {
	err := New(IllegalPointer, "offset %d out of range", 42)
	want := "wire: IllegalPointer: offset 42 out of range"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestValidationErrorIs(t *testing.T) {
	a := New(IllegalHandle, "index %d already claimed", 3)
	b := New(IllegalHandle, "different message")
	if !a.Is(b) {
		t.Fatalf("expected errors of the same Kind to match via Is")
	}
	c := New(UnexpectedNullPointer, "")
	if a.Is(c) {
		t.Fatalf("expected errors of different Kind not to match via Is")
	}
}

func TestKindString(t *testing.T) {
	kinds := []Kind{
		IllegalPointer, UnexpectedNullPointer, IllegalHandle,
		UnexpectedStructHeader, UnexpectedArrayHeader,
		DifferentSizedArraysInMap, DuplicateMapKey, InvalidUTF8,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "" || s == "UnknownValidationError" {
			t.Fatalf("Kind %d stringified to %q", k, s)
		}
		if seen[s] {
			t.Fatalf("duplicate Kind string %q", s)
		}
		seen[s] = true
	}
}
