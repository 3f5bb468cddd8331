// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"github.com/gomojo/wire/bitpack"
	werr "github.com/gomojo/wire/internal/errors"
	"github.com/gomojo/wire/wire"
)

// Map is a wire map: a 24-byte struct (version 0) holding pointers to two
// parallel arrays, keys and values. Decode rejects unequal array lengths,
// and duplicate keys when the decoder's RejectDuplicateMapKeys option is set
// (otherwise a later duplicate overwrites an earlier one), materializing
// into a Go map for set semantics.
type Map[K interface {
	wire.Encodable
	comparable
}, PK interface {
	*K
	wire.Decodable
}, V wire.Encodable, PV interface {
	*V
	wire.Decodable
}] struct {
	Entries map[K]V
}

// NewMap wraps an existing Go map.
func NewMap[K interface {
	wire.Encodable
	comparable
}, PK interface {
	*K
	wire.Decodable
}, V wire.Encodable, PV interface {
	*V
	wire.Decodable
}](entries map[K]V) Map[K, PK, V, PV] {
	return Map[K, PK, V, PV]{Entries: entries}
}

func (m Map[K, PK, V, PV]) Category() wire.Category            { return wire.CategoryPointer }
func (m Map[K, PK, V, PV]) Alignment() int                      { return 8 }
func (m Map[K, PK, V, PV]) EmbedSize(wire.Context) bitpack.Bits { return 64 }

func (m Map[K, PK, V, PV]) HeaderData() wire.HeaderValue { return wire.VersionHeader(0) }

func (m Map[K, PK, V, PV]) SerializedSize(wire.Context) int { return bitpack.MapDataSize }

func (m Map[K, PK, V, PV]) keysValues() (Array[K, PK], Array[V, PV]) {
	keys := make([]K, 0, len(m.Entries))
	vals := make([]V, 0, len(m.Entries))
	for k, v := range m.Entries {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	return Array[K, PK]{Elements: keys}, Array[V, PV]{Elements: vals}
}

// ComputeSize is the map's own 24-byte region (align_default'd) plus the
// keys array's contribution, align_default'd, plus the values array's
// contribution — each array's own ComputeSize already rounds its region up
// to a multiple of 8 bytes, so every sub-region this produces starts
// 8-byte aligned.
func (m Map[K, PK, V, PV]) ComputeSize(ctx wire.Context) int {
	keys, vals := m.keysValues()
	total := bitpack.AlignBytes(m.SerializedSize(ctx), 8)
	total += keys.ComputeSize(wire.Context{})
	total += vals.ComputeSize(wire.Context{})
	return total
}

func (m Map[K, PK, V, PV]) Encode(enc *wire.Encoder, state *wire.EncodingState, ctx wire.Context) {
	wire.EncodeAsPointer(m, enc, state, ctx)
}

// EncodeValue writes the map's two pointer fields, keys then values, each
// allocating and filling its own array region.
func (m Map[K, PK, V, PV]) EncodeValue(enc *wire.Encoder, state *wire.EncodingState, _ wire.Context) {
	keys, vals := m.keysValues()
	keys.Encode(enc, state, wire.Context{})
	vals.Encode(enc, state, wire.Context{})
}

// Decode reads the map's pointer field and decodes its region.
func (m *Map[K, PK, V, PV]) Decode(dec *wire.Decoder, state *wire.DecoderState, _ wire.Context) error {
	v, err := wire.DecodeNonNullPointer[Map[K, PK, V, PV], *Map[K, PK, V, PV]](dec, state)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// DecodeValue reads the map's struct header and its two array fields,
// checks the parallel-array invariant, and rejects duplicate keys when
// RejectDuplicateMapKeys is set.
func (m *Map[K, PK, V, PV]) DecodeValue(dec *wire.Decoder, state *wire.DecoderState, ctx wire.Context) error {
	if err := state.DecodeMapHeader(); err != nil {
		return err
	}
	var keys Array[K, PK]
	if err := keys.Decode(dec, state, ctx); err != nil {
		return err
	}
	var vals Array[V, PV]
	if err := vals.Decode(dec, state, ctx); err != nil {
		return err
	}
	if len(keys.Elements) != len(vals.Elements) {
		return werr.New(werr.DifferentSizedArraysInMap, "map has %d keys but %d values", len(keys.Elements), len(vals.Elements))
	}
	reject := dec.Options().RejectDuplicateMapKeys
	entries := make(map[K]V, len(keys.Elements))
	for i, k := range keys.Elements {
		if _, dup := entries[k]; dup && reject {
			return werr.New(werr.DuplicateMapKey, "map contains a duplicate key")
		}
		entries[k] = vals.Elements[i]
	}
	m.Entries = entries
	return nil
}
