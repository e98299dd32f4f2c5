// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import "github.com/google/uuid"

// Receiver is a suspended `receive`/`receive?` waiting for a value, or
// notification that the channel closed (spec §3, §4.5).
type Receiver struct {
	Resolve func(Value)
	Reject  func(err error)
}

// Channel is a named queue of pending values plus a queue of suspended
// receivers (spec §3). It is either open or closed. Channel carries no
// synchronization primitive of its own: the single-threaded cooperative
// model (spec §5) means send/receive are called from one logical thread
// of control at a time, with suspension and resumption mediated entirely
// by the effect/scheduler layer (package sched) rather than by locks here.
type Channel struct {
	ID     uuid.UUID
	Name   string
	pend   []Value
	waiter []Receiver
	closed bool
}

func (*Channel) Kind() Kind { return KindChannel }

// NewChannel creates an open channel with the given name.
func NewChannel(name string) *Channel {
	return &Channel{ID: uuid.New(), Name: name}
}

// Closed reports whether the channel has been closed.
func (c *Channel) Closed() bool { return c.closed }

// Send delivers v. If a receiver is already queued it is resolved
// directly; otherwise v is enqueued for a future receiver (spec §4.5).
// Returns false if the channel is closed.
func (c *Channel) Send(v Value) bool {
	if c.closed {
		return false
	}
	if len(c.waiter) > 0 {
		w := c.waiter[0]
		c.waiter = c.waiter[1:]
		w.Resolve(v)
		return true
	}
	c.pend = append(c.pend, v)
	return true
}

// Receive registers w to be resolved with the next available value, or
// invoked immediately if a value is already pending. Returns true if w
// was resolved synchronously.
func (c *Channel) Receive(w Receiver) bool {
	if len(c.pend) > 0 {
		v := c.pend[0]
		c.pend = c.pend[1:]
		w.Resolve(v)
		return true
	}
	if c.closed {
		w.Reject(errChannelClosed{name: c.Name})
		return true
	}
	c.waiter = append(c.waiter, w)
	return false
}

// TrySend is the non-blocking `send?` primitive: it never queues a
// receiver wait, returning a status symbol instead (spec §4.5).
func (c *Channel) TrySend(v Value) Symbol {
	if c.closed {
		return SymClosed
	}
	if len(c.waiter) > 0 {
		w := c.waiter[0]
		c.waiter = c.waiter[1:]
		w.Resolve(v)
		return SymOk
	}
	c.pend = append(c.pend, v)
	return SymOk
}

// TryReceive is the non-blocking `receive?` primitive.
func (c *Channel) TryReceive() (Value, Symbol) {
	if len(c.pend) > 0 {
		v := c.pend[0]
		c.pend = c.pend[1:]
		return v, SymOk
	}
	if c.closed {
		return Nil, SymClosed
	}
	return Nil, SymNone
}

// Close closes the channel, rejecting every pending receiver with a
// channel-closed error (spec §4.5). Sending afterwards fails.
func (c *Channel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	waiters := c.waiter
	c.waiter = nil
	for _, w := range waiters {
		w.Reject(errChannelClosed{name: c.Name})
	}
}

// errChannelClosed is the sentinel error handed to a receiver rejected by
// Close or by Receive on an already-closed, empty channel.
type errChannelClosed struct{ name string }

func (e errChannelClosed) Error() string { return "channel closed: " + e.name }

// IsChannelClosed reports whether err is the channel-closed sentinel.
func IsChannelClosed(err error) bool {
	_, ok := err.(errChannelClosed)
	return ok
}
