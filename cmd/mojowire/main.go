// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command mojowire is a small demonstration CLI for package wire: it wires
// up an in-process transport.Pipe pair, sends a Greeting or a
// StringToByteMap message across it, and prints what came back out the
// other end — useful for poking at the codec from a terminal without
// writing a Go program.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pion/logging"
	"github.com/spf13/cobra"

	"github.com/gomojo/wire/example"
	"github.com/gomojo/wire/transport"
	"github.com/gomojo/wire/wire"
	"github.com/gomojo/wire/wire/container"
	"github.com/gomojo/wire/wire/envelope"
)

var (
	requestID uint64
	verbose   bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("mojowire: %v", err))
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mojowire",
		Short: "Round-trip a message through the wire codec over an in-process pipe.",
		Long: `mojowire drives github.com/gomojo/wire end to end: it opens a connected
transport.Pipe pair, encodes a message on one end, writes it across the
pipe, reads it back on the other end, and reports what decoded out.`,
	}
	root.PersistentFlags().Uint64Var(&requestID, "request-id", 1, "request id to stamp the outgoing message with")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log wire-level transport activity")
	root.AddCommand(greetCmd(), mapCmd())
	return root
}

func greetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "greet [text]",
		Short: "Round-trip a Greeting message carrying a single string.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b := newPipePair()
			defer a.Close()
			defer b.Close()

			msg := example.Greeting{Text: container.Str(args[0])}
			sender := envelope.InterfaceSender[example.Greeting]{Pipe: a, Version: example.GreetingMinVersion}
			if err := sender.SendRequest(requestID, msg); err != nil {
				return fmt.Errorf("send: %w", err)
			}

			var dst greetingOption
			receiver := envelope.InterfaceReceiver[*greetingOption]{Pipe: b}
			reqID, err := receiver.Recv(&dst)
			if err != nil {
				return fmt.Errorf("recv: %w", err)
			}

			fmt.Printf("%s request #%d: %s\n", color.GreenString("ok"), reqID, dst.got.Text)
			return nil
		},
	}
}

func mapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map [key=value ...]",
		Short: "Round-trip a StringToByteMap message carrying key/value byte pairs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := map[string]byte{}
			for _, kv := range args {
				k, val, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("bad key=value pair %q: missing '='", kv)
				}
				var v byte
				if _, err := fmt.Sscanf(val, "%d", &v); err != nil {
					return fmt.Errorf("bad key=value pair %q: %w", kv, err)
				}
				entries[k] = v
			}

			a, b := newPipePair()
			defer a.Close()
			defer b.Close()

			msg := example.NewStringToByteMap(entries)
			sender := envelope.InterfaceSender[example.StringToByteMap]{Pipe: a, Version: example.StringToByteMapMinVersion}
			if err := sender.SendRequest(requestID, msg); err != nil {
				return fmt.Errorf("send: %w", err)
			}

			var dst mapOption
			receiver := envelope.InterfaceReceiver[*mapOption]{Pipe: b}
			if _, err := receiver.Recv(&dst); err != nil {
				return fmt.Errorf("recv: %w", err)
			}

			for k, v := range dst.got.Entries.Entries {
				fmt.Printf("%s %d\n", color.CyanString("%s ->", string(k)), v)
			}
			return nil
		},
	}
}

func newPipePair() (*transport.Pipe, *transport.Pipe) {
	factory := logging.NewDefaultLoggerFactory()
	if !verbose {
		factory.DefaultLogLevel = logging.LogLevelDisabled
	}
	return transport.NewPipe(factory)
}

// greetingOption is the hand-written dispatch a generator would emit for
// an interface with a single Greeting method.
type greetingOption struct {
	got example.Greeting
}

func (d *greetingOption) DecodePayload(header envelope.Header, payload []byte, handles *wire.HandleVector) error {
	v, err := envelope.DecodePayload[example.Greeting, *example.Greeting](payload, handles)
	if err != nil {
		return err
	}
	d.got = v
	return nil
}

// mapOption is the dispatch counterpart for StringToByteMap.
type mapOption struct {
	got example.StringToByteMap
}

func (d *mapOption) DecodePayload(header envelope.Header, payload []byte, handles *wire.HandleVector) error {
	v, err := envelope.DecodePayload[example.StringToByteMap, *example.StringToByteMap](payload, handles)
	if err != nil {
		return err
	}
	d.got = v
	return nil
}
