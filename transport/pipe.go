// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport supplies the in-memory message pipe used to carry
// envelope.MessagePipe traffic between two ends of a handle.MessageEndpoint
// pair. It has no notion of interfaces or payload types — it just moves
// whole (bytes, handles) messages, preserving order, the same contract a
// real kernel-backed message pipe gives a Mojo binding.
package transport

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/pion/logging"

	"github.com/gomojo/wire/wire"
	"github.com/gomojo/wire/wire/handle"
)

// Pipe is one end of a connected pair. Bytes travel over an in-process
// net.Conn (net.Pipe), length-prefixed so Read can recover exact message
// boundaries from the stream; handles travel alongside on a small FIFO
// queue since a net.Conn has no way to carry them itself.
type Pipe struct {
	endpoint handle.MessageEndpoint
	conn     net.Conn
	log      logging.LeveledLogger

	mu          sync.Mutex
	outQueue    *handleQueue
	peerHandles *handleQueue

	// pendingWrites counts writes currently blocked handing data to the
	// peer. A real kernel pipe buffers and reports Readable the instant
	// bytes land; net.Pipe has no buffer, so a write in flight is the
	// closest this mock gets to "there's something to read right now."
	pendingWrites atomic.Int32
	peerClosed    atomic.Bool
}

// handleQueue is the side channel a connected Pipe pair shares for handle
// payloads, one entry per message written, dequeued in write order.
type handleQueue struct {
	mu    sync.Mutex
	items [][]wire.Handle
}

func (q *handleQueue) push(h []wire.Handle) {
	q.mu.Lock()
	q.items = append(q.items, h)
	q.mu.Unlock()
}

func (q *handleQueue) pop() []wire.Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	h := q.items[0]
	q.items = q.items[1:]
	return h
}

// NewPipe creates a connected pair of message pipe endpoints, identified by
// a freshly minted handle.MessageEndpoint pair, logging through factory at
// scope "transport".
func NewPipe(factory logging.LoggerFactory) (*Pipe, *Pipe) {
	idA, idB := handle.NewMessageEndpointPair()
	connA, connB := net.Pipe()
	qAtoB := &handleQueue{}
	qBtoA := &handleQueue{}
	log := factory.NewLogger("transport")

	a := &Pipe{endpoint: idA, conn: connA, log: log, peerHandles: qBtoA}
	b := &Pipe{endpoint: idB, conn: connB, log: log, peerHandles: qAtoB}
	a.endpoint = idA.WithCloser(func() { connA.Close() })
	b.endpoint = idB.WithCloser(func() { connB.Close() })
	a.outbound(qAtoB)
	b.outbound(qBtoA)
	return a, b
}

// outbound records which queue this pipe's Write calls push handles onto.
func (p *Pipe) outbound(q *handleQueue) { p.outQueue = q }

// Endpoint returns this pipe's own handle identity.
func (p *Pipe) Endpoint() handle.MessageEndpoint { return p.endpoint }

// Write sends one whole message: a length-prefixed byte frame over the
// underlying conn, and the accompanying handles over the side queue.
func (p *Pipe) Write(buf []byte, handles []wire.Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Handles must be visible to the peer's queue before the length-prefix
	// write unblocks its matching Read: net.Pipe is a synchronous rendezvous,
	// so pushing after the byte write would race the reader's pop.
	p.outQueue.push(handles)
	p.pendingWrites.Add(1)
	defer p.pendingWrites.Add(-1)
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(buf)))
	if _, err := p.conn.Write(lenPrefix[:]); err != nil {
		p.peerClosed.Store(true)
		return fmt.Errorf("transport: write length prefix: %w", err)
	}
	if len(buf) > 0 {
		if _, err := p.conn.Write(buf); err != nil {
			p.peerClosed.Store(true)
			return fmt.Errorf("transport: write payload: %w", err)
		}
	}
	p.log.Debugf("wrote message: %d bytes, %d handles", len(buf), len(handles))
	return nil
}

// Read blocks for the next whole message written by the peer.
func (p *Pipe) Read() ([]byte, []wire.Handle, error) {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(p.conn, lenPrefix[:]); err != nil {
		if err == io.EOF || err == io.ErrClosedPipe {
			p.peerClosed.Store(true)
		}
		return nil, nil, fmt.Errorf("transport: read length prefix: %w", err)
	}
	size := binary.BigEndian.Uint32(lenPrefix[:])
	buf := make([]byte, size)
	if size > 0 {
		if _, err := io.ReadFull(p.conn, buf); err != nil {
			return nil, nil, fmt.Errorf("transport: read payload: %w", err)
		}
	}
	handles := p.peerHandles.pop()
	p.log.Debugf("read message: %d bytes, %d handles", len(buf), len(handles))
	return buf, handles, nil
}

// Close releases this end's identity and its underlying connection.
func (p *Pipe) Close() { p.endpoint.Close() }

// Signals reports this pipe's current state for package trap's WaitSet:
// Readable when a peer write is in flight, Writable as long as the peer
// hasn't closed, PeerClosed once a read or write has observed the peer
// going away.
func (p *Pipe) Signals() (handle.SignalsState, error) {
	closed := p.peerClosed.Load()
	s := handle.SignalsState{
		Satisfiable: handle.SignalReadable | handle.SignalWritable | handle.SignalPeerClosed,
	}
	if closed {
		s.Satisfied = handle.SignalPeerClosed
		s.Satisfiable = handle.SignalPeerClosed
		return s, nil
	}
	s.Satisfied = handle.SignalWritable
	if p.pendingWrites.Load() > 0 {
		s.Satisfied |= handle.SignalReadable
	}
	return s, nil
}
