// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope_test

import (
	"testing"

	"github.com/gomojo/wire/example"
	"github.com/gomojo/wire/wire"
	"github.com/gomojo/wire/wire/envelope"
)

// greetingDispatch is the kind of tiny tagged-union dispatcher a generator
// would emit for an interface with a single method.
type greetingDispatch struct {
	got example.Greeting
}

func (d *greetingDispatch) DecodePayload(header envelope.Header, payload []byte, handles *wire.HandleVector) error {
	v, err := envelope.DecodePayload[example.Greeting, *example.Greeting](payload, handles)
	if err != nil {
		return err
	}
	d.got = v
	return nil
}

func TestCreateRequestAndDecodeMessageRoundTrip(t *testing.T) {
	g := example.Greeting{Text: "hello"}
	buf, handles := envelope.CreateRequest(g, 7)

	var dst greetingDispatch
	reqID, err := envelope.DecodeMessage(&dst, buf, handles.Handles())
	if err != nil {
		t.Fatal(err)
	}
	if reqID != 7 {
		t.Fatalf("got request id %d, want 7", reqID)
	}
	if dst.got.Text != "hello" {
		t.Fatalf("got payload %q, want %q", dst.got.Text, "hello")
	}
}

func TestHeaderFieldsRoundTrip(t *testing.T) {
	g := example.Greeting{Text: "hi"}
	h := g.CreateHeader()
	h.RequestID = 99
	h.Flags = 1

	buf, _ := envelope.EncodeMessage(h, g)

	var dst greetingDispatch
	reqID, err := envelope.DecodeMessage(&dst, buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if reqID != 99 {
		t.Fatalf("got request id %d, want 99", reqID)
	}
}

// futureGreeting is a Greeting whose method requires interface version 1.
type futureGreeting struct{ example.Greeting }

func (futureGreeting) MinVersion() uint32 { return 1 }

func TestInterfaceSenderRejectsOldVersion(t *testing.T) {
	sender := envelope.InterfaceSender[futureGreeting]{Pipe: nil, Version: 0}
	err := sender.SendRequest(1, futureGreeting{example.Greeting{Text: "x"}})
	if err == nil {
		t.Fatal("expected an old-version error when sender version is below the message's MinVersion")
	}
}

func TestDecodeMessageTooShortForPayload(t *testing.T) {
	g := example.Greeting{Text: "x"}
	buf, handles := envelope.CreateRequest(g, 1)

	var dst greetingDispatch
	// Cut into the string's own bytes, not just its trailing padding.
	truncated := buf[:len(buf)-8]
	if _, err := envelope.DecodeMessage(&dst, truncated, handles.Handles()); err == nil {
		t.Fatal("expected an error decoding a truncated message")
	}
}
