// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

// EncodeOptions configures Encode. The zero value is the default: encoding
// has no optional relaxations today, but the type gives callers a stable
// extension point, the way golang-protobuf's proto.MarshalOptions does for
// its own marshaler.
type EncodeOptions struct{}

// DecodeOptions configures Decode. The zero value enables no optional
// strictness; use StrictDecodeOptions for the recommended defaults.
type DecodeOptions struct {
	// RejectDuplicateMapKeys makes a map decode fail with DuplicateMapKey
	// instead of keeping the last entry seen for a repeated key. spec.md
	// §9 leaves this as an open question against the original's
	// silent-overwrite behavior; DESIGN.md resolves it in favor of
	// rejection by default.
	RejectDuplicateMapKeys bool
}

// StrictDecodeOptions returns the recommended DecodeOptions: every optional
// stricter-than-required check turned on.
func StrictDecodeOptions() DecodeOptions {
	return DecodeOptions{RejectDuplicateMapKeys: true}
}
