// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

// AutoSerialize encodes v as a single top-level region: the shape spec.md
// §6.2 calls auto_serialize, used when a value is sent on its own rather
// than wrapped in a message envelope (see package envelope for the framed
// form). v's own ComputeSize sizes the buffer exactly; there is no growth
// and no slack.
func AutoSerialize(v PointerType) ([]byte, *HandleVector) {
	size := v.ComputeSize(Context{})
	enc := NewEncoder(size)
	EncodePointerNew(v, enc, Context{})
	return enc.Finalize()
}

// Deserialize reverses AutoSerialize: it decodes a T out of buf starting at
// offset 0, claiming handles out of handles as it goes. PT must be *T
// implementing PointerDecodable.
func Deserialize[T any, PT interface {
	*T
	PointerDecodable
}](buf []byte, handles *HandleVector) (T, error) {
	dec := NewDecoder(buf, handles)
	return DecodePointerNew[T, PT](dec, 0)
}
