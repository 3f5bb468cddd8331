// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire implements the Mojo binary wire format: a relative-pointer,
// region-based encoding used to move structured messages and owned OS
// handles between cooperating processes.
//
// A message is produced into a contiguous byte Buffer paired with an
// ordered HandleVector; the receiving side reverses the process, validating
// every offset and handle reference before materializing values. The
// Encodable family of interfaces lets arbitrary user-defined aggregates
// (structs, unions, maps, arrays, strings, handles, interface references,
// and nullable wrappers over all of the above) participate in encoding and
// decoding uniformly; see encodable.go.
//
// Types that implement these interfaces are ordinarily produced by a code
// generator, not written by hand; package example shows what generated
// code looks like.
package wire
