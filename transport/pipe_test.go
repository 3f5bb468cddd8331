// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"net"
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"

	"github.com/gomojo/wire/wire"
	"github.com/gomojo/wire/wire/handle"
)

func quietFactory() logging.LoggerFactory {
	f := logging.NewDefaultLoggerFactory()
	f.DefaultLogLevel = logging.LogLevelDisabled
	return f
}

// TestUnderlyingConnConformsToNetConn runs the x/net/nettest conformance suite
// against the raw net.Conn pair backing a Pipe, the same conns Write/Read
// frame messages over. golang.org/x/net/nettest only supplies the harness
// (TestConn), not a pipe constructor, so the pipe itself still comes from
// stdlib net.Pipe by way of NewPipe.
func TestUnderlyingConnConformsToNetConn(t *testing.T) {
	nettest.TestConn(t, func() (c1, c2 net.Conn, stop func(), err error) {
		a, b := NewPipe(quietFactory())
		return a.conn, b.conn, func() { a.Close(); b.Close() }, nil
	})
}

func TestPipeWriteReadRoundTrip(t *testing.T) {
	a, b := NewPipe(quietFactory())
	defer a.Close()
	defer b.Close()

	ep, _ := handle.NewMessageEndpointPair()
	want := []byte("hello, mojo")

	errc := make(chan error, 1)
	go func() { errc <- a.Write(want, []wire.Handle{ep}) }()

	got, handles, err := b.Read()
	require.NoError(t, err)
	require.NoError(t, <-errc)
	require.Equal(t, want, got)
	require.Len(t, handles, 1)
}

func TestPipeWriteEmptyPayload(t *testing.T) {
	a, b := NewPipe(quietFactory())
	defer a.Close()
	defer b.Close()

	errc := make(chan error, 1)
	go func() { errc <- a.Write(nil, nil) }()

	got, handles, err := b.Read()
	require.NoError(t, err)
	require.NoError(t, <-errc)
	require.Empty(t, got)
	require.Empty(t, handles)
}

func TestPipeSignalsReflectPeerClose(t *testing.T) {
	a, b := NewPipe(quietFactory())
	defer a.Close()

	sig, err := a.Signals()
	require.NoError(t, err)
	require.True(t, sig.Satisfied.Is(handle.SignalWritable))
	require.False(t, sig.Satisfied.Is(handle.SignalPeerClosed))

	b.Close()
	_, _, err = a.Read()
	require.Error(t, err)

	sig, err = a.Signals()
	require.NoError(t, err)
	require.True(t, sig.Satisfied.Is(handle.SignalPeerClosed))
}
