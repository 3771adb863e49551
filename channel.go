// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfchan

import (
	"iter"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// closedBit marks the channel closed in the state word.
// The low bits count senders currently inside Send or TrySend.
const closedBit = uint64(1) << 63

// Channel is a bounded, closable MPMC channel.
//
// Values travel through a Queue as messages; a message without a value is
// the close sentinel. Each receiver that dequeues the sentinel puts it back
// before reporting closure, so one Close releases every receiver, blocked
// or future.
//
// States: open → closed (terminal). In the open state Send blocks only on
// capacity; in the closed state Send always fails.
type Channel[T any] struct {
	_     pad
	state atomix.Uint64 // closedBit | in-flight senders
	_     pad
	q     *Queue[message[T]]
}

// message is an optional value. ok == false is the close sentinel.
type message[T any] struct {
	val T
	ok  bool
}

// NewChannel creates a new open channel.
// Returns ErrInvalidCapacity unless capacity is a power of 2 and >= 2.
func NewChannel[T any](capacity int) (*Channel[T], error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	return newChannel[T](capacity), nil
}

// MustChannel is like NewChannel but panics on an invalid capacity.
func MustChannel[T any](capacity int) *Channel[T] {
	c, err := NewChannel[T](capacity)
	if err != nil {
		panic(err)
	}
	return c
}

// The ring has twice the permitted capacity so the sentinel always finds a
// spare slot, even when Close meets a full channel.
func newChannel[T any](capacity int) *Channel[T] {
	return &Channel[T]{q: newQueueSpare[message[T]](capacity, 2*capacity)}
}

// Send delivers v, blocking while the channel is full.
// Returns false iff the channel is closed; v is then not delivered.
//
// Send holds no lock while blocked, so a concurrent Close is never delayed
// by a full channel.
func (c *Channel[T]) Send(v T) bool {
	if !c.enter() {
		return false
	}
	m := message[T]{val: v, ok: true}
	c.q.Enqueue(&m)
	c.leave()
	return true
}

// TrySend delivers v without waiting for capacity.
// Returns ErrClosed if the channel is closed, ErrWouldBlock if it is full.
func (c *Channel[T]) TrySend(v T) error {
	if !c.enter() {
		return ErrClosed
	}
	m := message[T]{val: v, ok: true}
	err := c.q.TryEnqueue(&m)
	c.leave()
	return err
}

// Recv takes delivery of the next value, blocking while the channel is
// empty and open. Returns (zero-value, false) once the channel is closed
// and every accepted value has been received.
func (c *Channel[T]) Recv() (T, bool) {
	m := c.q.Dequeue()
	if !m.ok {
		c.relay(&m)
		var zero T
		return zero, false
	}
	return m.val, true
}

// TryRecv takes delivery of the next value without blocking.
// Returns ErrClosed once closed and drained, ErrWouldBlock if no value is
// available yet.
//
// Once the state is closed with no sender in flight, every accepted value
// is already in the queue. No filled permit after that means drained, even
// while another receiver is relaying the sentinel.
func (c *Channel[T]) TryRecv() (T, error) {
	s := c.state.LoadAcquire()
	m, err := c.q.TryDequeue()
	if err != nil {
		var zero T
		if s == closedBit {
			return zero, ErrClosed
		}
		return zero, err
	}
	if !m.ok {
		c.relay(&m)
		var zero T
		return zero, ErrClosed
	}
	return m.val, nil
}

// All returns an iterator that receives values until the channel is closed
// and drained. Breaking out of the loop leaves remaining values in the
// channel.
func (c *Channel[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := c.Recv()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close marks the channel closed. Values already accepted by Send are still
// delivered; receivers observe closure after them.
//
// Close takes effect exactly once. Later calls return ErrClosed.
func (c *Channel[T]) Close() error {
	sw := spin.Wait{}
	for {
		s := c.state.LoadAcquire()
		if s&closedBit != 0 {
			return ErrClosed
		}
		if c.state.CompareAndSwapAcqRel(s, s|closedBit) {
			if s == 0 {
				c.publish()
			}
			return nil
		}
		sw.Once()
	}
}

// Closed reports whether Close has been called.
func (c *Channel[T]) Closed() bool {
	return c.state.LoadAcquire()&closedBit != 0
}

// Cap returns the channel capacity.
func (c *Channel[T]) Cap() int {
	return c.q.Cap()
}

// enter registers an in-flight sender. Reports false if closed.
func (c *Channel[T]) enter() bool {
	sw := spin.Wait{}
	for {
		s := c.state.LoadAcquire()
		if s&closedBit != 0 {
			return false
		}
		if c.state.CompareAndSwapAcqRel(s, s+1) {
			return true
		}
		sw.Once()
	}
}

// leave deregisters an in-flight sender. The last sender out of a closed
// channel publishes the sentinel on behalf of Close.
func (c *Channel[T]) leave() {
	if c.state.AddAcqRel(^uint64(0)) == closedBit {
		c.publish()
	}
}

// publish enqueues the single close sentinel into a spare slot. It runs
// once no sender is in flight, so it never waits.
func (c *Channel[T]) publish() {
	var m message[T]
	c.q.pushSpare(&m)
}

// relay puts a dequeued sentinel back for the next receiver. Dequeuing it
// released a permit and no sender can enter once closed, so this never
// waits.
func (c *Channel[T]) relay(m *message[T]) {
	c.q.Enqueue(m)
}
