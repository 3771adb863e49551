// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfchan

import "iter"

// Producer is the interface for non-blocking enqueueing.
//
// The element is passed by pointer to avoid copying large structs. The
// implementation stores a copy of the pointed-to value, so the original can
// be modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element (non-blocking).
	// Returns nil on success, ErrWouldBlock if no slot is free.
	Enqueue(elem *T) error
}

// Consumer is the interface for non-blocking dequeueing.
//
// The element is returned by value. The slot is cleared to allow garbage
// collection of referenced objects.
type Consumer[T any] interface {
	// Dequeue removes and returns an element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if no item is published.
	Dequeue() (T, error)
}

// Sender is the producer side of a Channel.
type Sender[T any] interface {
	// Send delivers v, blocking while the channel is full.
	// Returns false iff the channel is closed; v is then discarded.
	Send(v T) bool

	// TrySend is Send without blocking.
	// Returns ErrClosed or ErrWouldBlock when v was not accepted.
	TrySend(v T) error

	// Close signals that no more values will be sent.
	// Returns ErrClosed if the channel was already closed.
	Close() error
}

// Receiver is the consumer side of a Channel.
type Receiver[T any] interface {
	// Recv takes delivery of the next value, blocking while the channel is
	// empty and open. Returns false iff the channel is closed and drained.
	Recv() (T, bool)

	// TryRecv is Recv without blocking.
	// Returns ErrClosed once closed and drained, ErrWouldBlock if empty.
	TryRecv() (T, error)

	// All returns an iterator over received values until closed.
	All() iter.Seq[T]
}

var (
	_ Producer[int] = (*Ring[int])(nil)
	_ Consumer[int] = (*Ring[int])(nil)
	_ Sender[int]   = (*Channel[int])(nil)
	_ Receiver[int] = (*Channel[int])(nil)
)
