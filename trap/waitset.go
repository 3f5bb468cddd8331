// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trap implements a wait set: a collection of handles a caller can
// block on together, woken by whichever one satisfies its requested signals
// first. It is the polling counterpart to the original bindings' callback-
// driven UnsafeTrap, chosen because a callback registered against global
// state has no good shape in a library that wants ordinary test harnesses
// to exercise it directly.
package trap

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gomojo/wire/wire/handle"
)

// Source is anything a WaitSet can poll for its current signal state. The
// methods transport.Pipe exposes satisfy this directly.
type Source interface {
	Signals() (handle.SignalsState, error)
}

// Cookie identifies one entry added to a WaitSet, returned to the caller so
// a satisfied wait can be attributed back to the handle that triggered it.
type Cookie uint64

type entry struct {
	cookie Cookie
	source Source
	want   handle.HandleSignals
}

// WaitSet is a mutable collection of (source, wanted signals) pairs. It is
// not safe for concurrent use from multiple goroutines without external
// synchronization, matching the original bindings' single-owner wait_set.
type WaitSet struct {
	entries    []entry
	nextCookie Cookie
	pollEvery  time.Duration
}

// NewWaitSet returns an empty set that polls its sources every interval
// while waiting. A real kernel wait set wakes on an edge; this mock has to
// poll, so interval trades wake-up latency for CPU spend.
func NewWaitSet(interval time.Duration) *WaitSet {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &WaitSet{pollEvery: interval}
}

// Add registers source, waking a Wait call whenever its signals satisfy
// want. It returns the cookie identifying this entry for later Remove or
// for matching it in a Result.
func (ws *WaitSet) Add(source Source, want handle.HandleSignals) Cookie {
	ws.nextCookie++
	c := ws.nextCookie
	ws.entries = append(ws.entries, entry{cookie: c, source: source, want: want})
	return c
}

// Remove drops the entry added under cookie. It reports whether an entry
// was actually found.
func (ws *WaitSet) Remove(cookie Cookie) bool {
	for i, e := range ws.entries {
		if e.cookie == cookie {
			ws.entries = append(ws.entries[:i], ws.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Result reports which entry woke a Wait call and its signal snapshot at
// that moment.
type Result struct {
	Cookie  Cookie
	Signals handle.SignalsState
}

// Wait blocks until at least one entry's wanted signals are satisfied, ctx
// is done, or every entry has become permanently unsatisfiable (every
// signal it could ever deliver has already fired and gone stale). Entries
// are polled concurrently via an errgroup so one slow Signals() call
// doesn't stall the rest.
func (ws *WaitSet) Wait(ctx context.Context) (Result, error) {
	if len(ws.entries) == 0 {
		return Result{}, fmt.Errorf("trap: wait set is empty")
	}
	ticker := time.NewTicker(ws.pollEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-ticker.C:
		}
		res, unsatisfiable, err := ws.pollOnce(ctx)
		if err != nil {
			return Result{}, err
		}
		if res != nil {
			return *res, nil
		}
		if unsatisfiable == len(ws.entries) {
			return Result{}, fmt.Errorf("trap: every handle in the wait set became unsatisfiable")
		}
	}
}

func (ws *WaitSet) pollOnce(ctx context.Context) (*Result, int, error) {
	results := make([]handle.SignalsState, len(ws.entries))
	g, _ := errgroup.WithContext(ctx)
	for i, e := range ws.entries {
		g.Go(func() error {
			s, err := e.source.Signals()
			if err != nil {
				return fmt.Errorf("trap: polling cookie %d: %w", e.cookie, err)
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	unsatisfiable := 0
	for i, e := range ws.entries {
		s := results[i]
		if s.Satisfied.Is(e.want) {
			return &Result{Cookie: e.cookie, Signals: s}, 0, nil
		}
		if !s.Satisfiable.Is(e.want) {
			unsatisfiable++
		}
	}
	return nil, unsatisfiable, nil
}
