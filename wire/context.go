// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

// Context is per-sub-region scratch state threaded through every recursive
// Encode/Decode call. It is cheap to copy by value, the same way the
// original Mojo bindings carry a Clone-cheap Context through recursion.
type Context struct {
	base    int
	isUnion bool
}

// Base returns the byte offset, in the full message, of the sub-region this
// Context was created for.
func (c Context) Base() int { return c.base }

// IsUnion reports whether this Context's sub-region is itself the inline
// payload of a union. It governs the embedding rule in §4.6: a union field
// nested inside another union is allocated by pointer instead of inlined.
func (c Context) IsUnion() bool { return c.isUnion }

// WithUnion returns a copy of c with IsUnion set to v. Union nesting is
// carried through Context rather than overloading EmbedSize, so EmbedSize
// stays a pure function of type.
func (c Context) WithUnion(v bool) Context {
	c.isUnion = v
	return c
}

func rootContext() Context {
	return Context{}
}
