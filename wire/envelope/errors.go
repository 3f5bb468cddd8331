// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope

import (
	"fmt"

	werr "github.com/gomojo/wire/internal/errors"
)

// SendError is returned from sending a message over an interface.
type SendError struct {
	// FailedWrite carries the transport-level failure code when the
	// underlying write itself failed. Zero when OldVersionHave is set
	// instead.
	FailedWrite int
	// OldVersionHave/OldVersionNeed are set when the peer's interface
	// version is too old to accept the message being sent; OldVersionNeed
	// is then non-zero, while OldVersionHave may be 0.
	OldVersionHave, OldVersionNeed uint32
}

func (e *SendError) Error() string {
	if e.OldVersionNeed != 0 {
		return fmt.Sprintf("envelope: peer version %d too old, need %d", e.OldVersionHave, e.OldVersionNeed)
	}
	return fmt.Sprintf("envelope: write failed (code %d)", e.FailedWrite)
}

// NewFailedWrite wraps a transport write failure.
func NewFailedWrite(code int) *SendError { return &SendError{FailedWrite: code} }

// NewOldVersion reports that the peer's version is behind what a message
// requires.
func NewOldVersion(have, need uint32) *SendError {
	return &SendError{OldVersionHave: have, OldVersionNeed: need}
}

// RecvError is returned from receiving a message over an interface.
type RecvError struct {
	// FailedRead carries the transport-level failure code when the read
	// itself failed. Zero when Validation is set instead.
	FailedRead int
	// Validation carries the decode failure when the read succeeded but
	// the bytes didn't decode.
	Validation *werr.ValidationError
}

func (e *RecvError) Error() string {
	if e.Validation != nil {
		return fmt.Sprintf("envelope: %v", e.Validation)
	}
	return fmt.Sprintf("envelope: read failed (code %d)", e.FailedRead)
}

func (e *RecvError) Unwrap() error {
	if e.Validation != nil {
		return e.Validation
	}
	return nil
}

// NewFailedRead wraps a transport read failure.
func NewFailedRead(code int) *RecvError { return &RecvError{FailedRead: code} }

// NewFailedValidation wraps a decode-side validation failure.
func NewFailedValidation(err *werr.ValidationError) *RecvError {
	return &RecvError{Validation: err}
}
