// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors implements the closed validation-error taxonomy returned
// from decode paths.
//
// Unlike a general-purpose error package, every error constructed here is
// terminal: there is no merging or collection step, because a single
// validation failure aborts the whole decode (spec: decode errors are
// non-retriable). The package exists to keep the taxonomy closed and the
// formatting consistent, the same way golang-protobuf's internal/errors
// keeps its own error vocabulary in one place.
package errors

import "fmt"

// Kind identifies which member of the closed validation taxonomy an error
// belongs to. Kind is exhaustively switched on by callers that want to
// react differently to different failures (tests, mostly); production code
// should usually just propagate the error.
type Kind int

const (
	// IllegalPointer: a pointer offset was misaligned, past the end of the
	// buffer, pointed backward, or overlapped an already-claimed region.
	IllegalPointer Kind = iota
	// UnexpectedNullPointer: a null pointer was found where a non-nullable
	// pointer-typed field was required.
	UnexpectedNullPointer
	// IllegalHandle: a handle index was out of range, already claimed, or
	// claimed at the wrong kind.
	IllegalHandle
	// UnexpectedStructHeader: a struct's (size, version) pair was not
	// present in the type's version table.
	UnexpectedStructHeader
	// UnexpectedArrayHeader: an array's size was inconsistent with its
	// element count, or a fixed-length array's count didn't match its
	// declared arity.
	UnexpectedArrayHeader
	// DifferentSizedArraysInMap: a map's keys and values arrays decoded to
	// different lengths.
	DifferentSizedArraysInMap
	// DuplicateMapKey: a map decoded two entries under the same key.
	// Resolves spec.md's open question against the original's
	// silent-overwrite behavior.
	DuplicateMapKey
	// InvalidUTF8: a string's decoded bytes were not valid UTF-8. The
	// closed taxonomy table doesn't name this one explicitly, but §4.5
	// requires treating it as fatal, so it gets its own Kind rather than
	// being folded into UnexpectedArrayHeader, which means something
	// unrelated (a length mismatch, not a content violation).
	InvalidUTF8
)

func (k Kind) String() string {
	switch k {
	case IllegalPointer:
		return "IllegalPointer"
	case UnexpectedNullPointer:
		return "UnexpectedNullPointer"
	case IllegalHandle:
		return "IllegalHandle"
	case UnexpectedStructHeader:
		return "UnexpectedStructHeader"
	case UnexpectedArrayHeader:
		return "UnexpectedArrayHeader"
	case DifferentSizedArraysInMap:
		return "DifferentSizedArraysInMap"
	case DuplicateMapKey:
		return "DuplicateMapKey"
	case InvalidUTF8:
		return "InvalidUTF8"
	default:
		return "UnknownValidationError"
	}
}

// ValidationError is the single error type returned from every decode path.
type ValidationError struct {
	Kind Kind
	msg  string
}

func (e *ValidationError) Error() string {
	if e.msg == "" {
		return "wire: " + e.Kind.String()
	}
	return "wire: " + e.Kind.String() + ": " + e.msg
}

// Is reports whether err is a *ValidationError of the same Kind, so callers
// can write errors.Is(err, errors.New(IllegalPointer, "")) style checks, or more
// simply compare err.(*ValidationError).Kind after an errors.As.
func (e *ValidationError) Is(target error) bool {
	other, ok := target.(*ValidationError)
	return ok && other.Kind == e.Kind
}

// New constructs a ValidationError of the given kind with a formatted
// message.
func New(kind Kind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}
