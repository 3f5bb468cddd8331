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
	"github.com/gomojo/wire/wire/handle"
)

// TestServiceRefPairRoundTrip round-trips a present interface field
// alongside an absent one, and checks the absent field's wire bytes are the
// null handle sentinel followed by a zero version.
func TestServiceRefPairRoundTrip(t *testing.T) {
	ep, _ := handle.NewMessageEndpointPair()
	pair := ServiceRefPair{
		Primary:  ServiceRef{Endpoint: ep, Version: 3},
		Fallback: wire.None[ServiceRef](),
	}

	buf, handles := wire.AutoSerialize(pair)
	require.Equal(t, 1, handles.Len(), "only Primary's endpoint is appended; Fallback is absent")

	// ServiceRefPair's region: 8-byte data header, Primary at +8 (4-byte
	// handle index, 4-byte version), Fallback at +16.
	fallback := buf[16:24]
	assert.Equal(t, uint32(bitpack.NullHandleIndex), binary.LittleEndian.Uint32(fallback[0:4]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(fallback[4:8]))

	got, err := wire.Deserialize[ServiceRefPair, *ServiceRefPair](buf, handles)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Primary.Version)
	assert.Equal(t, ep.NativeID(), got.Primary.Endpoint.NativeID())
	assert.False(t, got.Fallback.Present)
}

// TestServiceRefPairBothPresent exercises the non-nullable path of
// DecodeInterfaceField for both fields, each claiming its own handle slot.
func TestServiceRefPairBothPresent(t *testing.T) {
	primaryEp, _ := handle.NewMessageEndpointPair()
	fallbackEp, _ := handle.NewMessageEndpointPair()
	pair := ServiceRefPair{
		Primary:  ServiceRef{Endpoint: primaryEp, Version: 1},
		Fallback: wire.Some(ServiceRef{Endpoint: fallbackEp, Version: 2}),
	}

	buf, handles := wire.AutoSerialize(pair)
	require.Equal(t, 2, handles.Len())

	got, err := wire.Deserialize[ServiceRefPair, *ServiceRefPair](buf, handles)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Primary.Version)
	assert.True(t, got.Fallback.Present)
	assert.EqualValues(t, 2, got.Fallback.Value.Version)
	assert.Equal(t, fallbackEp.NativeID(), got.Fallback.Value.Endpoint.NativeID())
}
