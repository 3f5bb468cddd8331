// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package example

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomojo/wire/bitpack"
	"github.com/gomojo/wire/wire"
)

// TestShapeUnionInlineRoundTrip exercises the inline embedding form: Shape
// is a direct struct field, so its 16-byte cell sits right in ShapeHolder's
// own region rather than behind a pointer.
func TestShapeUnionInlineRoundTrip(t *testing.T) {
	h := ShapeHolder{Shape: NewShapeRadius(2.5)}

	buf, handles := wire.AutoSerialize(h)
	assert.Equal(t, h.ComputeSize(wire.Context{}), len(buf))

	// ShapeHolder's region: 8-byte data header, then the union cell inline
	// at +8: size (4), tag (4), payload (8).
	cell := buf[8:24]
	assert.Equal(t, uint32(bitpack.UnionDataSize), binary.LittleEndian.Uint32(cell[0:4]))
	assert.Equal(t, uint32(ShapeTagRadius), binary.LittleEndian.Uint32(cell[4:8]))

	got, err := wire.Deserialize[ShapeHolder, *ShapeHolder](buf, handles)
	require.NoError(t, err)
	assert.Equal(t, ShapeTagRadius, got.Shape.tag)
	assert.Equal(t, float32(2.5), got.Shape.Radius())
}

// TestShapeUnionInlinePointerVariantRoundTrip exercises a Pointer-category
// payload (Box) embedded in the inline cell.
func TestShapeUnionInlinePointerVariantRoundTrip(t *testing.T) {
	rect := Rect{X: 1, Y: 2, Width: 3, Height: 4}
	h := ShapeHolder{Shape: NewShapeBox(rect)}

	buf, handles := wire.AutoSerialize(h)
	got, err := wire.Deserialize[ShapeHolder, *ShapeHolder](buf, handles)
	require.NoError(t, err)
	assert.Equal(t, ShapeTagBox, got.Shape.tag)
	assert.Equal(t, rect, got.Shape.Box())
}

// TestShapeBoxUnionNestedRoundTrip exercises the nested embedding form: Box
// wraps a ShapeUnion that — because it sits inside another union's payload —
// is always encoded via EncodeUnionNested, a pointer to its own
// freshly-allocated 16-byte cell, regardless of whether ShapeBoxUnion itself
// was inlined or nested at the top level.
func TestShapeBoxUnionNestedRoundTrip(t *testing.T) {
	hb := ShapeBoxHolder{Box: NewShapeBoxInner(NewShapeRadius(9.5))}

	buf, handles := wire.AutoSerialize(hb)
	assert.Equal(t, hb.ComputeSize(wire.Context{}), len(buf))

	// ShapeBoxHolder's region: 8-byte data header, then Box's own cell
	// inline at +8 (size, tag, 8-byte payload). Since Box's tag is
	// ShapeBoxTagInner and the payload is itself a union, that 8-byte
	// payload is a relative pointer, not a literal value.
	cell := buf[8:24]
	payload := cell[8:16]
	assert.NotEqual(t, make([]byte, 8), payload, "nested union payload must be a non-null pointer")

	got, err := wire.Deserialize[ShapeBoxHolder, *ShapeBoxHolder](buf, handles)
	require.NoError(t, err)
	assert.Equal(t, ShapeBoxTagInner, got.Box.tag)
	assert.Equal(t, ShapeTagRadius, got.Box.Inner().tag)
	assert.Equal(t, float32(9.5), got.Box.Inner().Radius())
}

// TestShapeBoxUnionNestedPointerVariantRoundTrip nests a union whose own
// active field is itself Pointer-category, combining both indirections in
// one message.
func TestShapeBoxUnionNestedPointerVariantRoundTrip(t *testing.T) {
	rect := Rect{X: 5, Y: 6, Width: 7, Height: 8}
	hb := ShapeBoxHolder{Box: NewShapeBoxInner(NewShapeBox(rect))}

	buf, handles := wire.AutoSerialize(hb)
	got, err := wire.Deserialize[ShapeBoxHolder, *ShapeBoxHolder](buf, handles)
	require.NoError(t, err)
	assert.Equal(t, ShapeTagBox, got.Box.Inner().tag)
	assert.Equal(t, rect, got.Box.Inner().Box())
}
