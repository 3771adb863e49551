// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfchan

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Ring is a CAS-based multi-producer multi-consumer bounded ring buffer.
//
// Each slot carries a sequence stamp, the only synchronization signal
// between the producer and consumer contending for that slot:
//   - Full ABA safety via sequence-based validation
//   - Items delivered in the order their producer claims committed
//   - No item delivered twice, no claimed slot lost
//
// Enqueue and Dequeue never block; they return ErrWouldBlock on transient
// full or empty. Use Queue for blocking semantics.
//
// Memory: n slots, each an 8-byte sequence, the element and 56 bytes of
// padding (64 + sizeof(T) bytes, rounded up to alignment).
type Ring[T any] struct {
	_      pad
	tail   atomix.Uint64 // Producer cursor
	_      pad
	head   atomix.Uint64 // Consumer cursor
	_      pad
	buffer []ringSlot[T]
	mask   uint64
	size   uint64
}

type ringSlot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort // Pad to cache line
}

// NewRing creates a new ring buffer.
// Returns ErrInvalidCapacity unless capacity is a power of 2 and >= 2.
func NewRing[T any](capacity int) (*Ring[T], error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	return newRing[T](capacity), nil
}

// MustRing is like NewRing but panics on an invalid capacity.
// Intended for capacities fixed at compile time.
func MustRing[T any](capacity int) *Ring[T] {
	r, err := NewRing[T](capacity)
	if err != nil {
		panic(err)
	}
	return r
}

func newRing[T any](capacity int) *Ring[T] {
	n := uint64(capacity)
	r := &Ring[T]{
		buffer: make([]ringSlot[T], n),
		mask:   n - 1,
		size:   n,
	}

	for i := uint64(0); i < n; i++ {
		r.buffer[i].seq.StoreRelaxed(i)
	}

	return r
}

// Enqueue adds an element to the ring.
// Returns ErrWouldBlock if the ring is full.
func (r *Ring[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		tail := r.tail.LoadRelaxed()
		slot := &r.buffer[tail&r.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(tail)

		if diff == 0 {
			if r.tail.CompareAndSwapAcqRel(tail, tail+1) {
				slot.data = *elem
				slot.seq.StoreRelease(tail + 1)
				return nil
			}
		} else if diff < 0 {
			// Slot still holds the previous lap's item
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns an element from the ring.
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (r *Ring[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		head := r.head.LoadRelaxed()
		slot := &r.buffer[head&r.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(head+1)

		if diff == 0 {
			if r.head.CompareAndSwapAcqRel(head, head+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(head + r.size)
				return elem, nil
			}
		} else if diff < 0 {
			// Not yet published for this lap
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int {
	return int(r.size)
}
