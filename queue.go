// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfchan

import "code.hybscloud.com/spin"

// Queue is a bounded blocking MPMC queue.
//
// Queue gates a Ring with two semaphores: free counts empty slots and
// filled counts published items. Enqueue waits on free and Dequeue waits on
// filled, so neither spins against a structurally full or empty ring. Once
// past the semaphore the caller retries only the lock-free ring attempt,
// which can lose a CAS race but always has a slot or item reserved for it.
//
// At quiescence free.Count() + filled.Count() == Cap().
type Queue[T any] struct {
	ring     *Ring[T]
	free     Semaphore
	filled   Semaphore
	capacity int
}

// NewQueue creates a new blocking queue.
// Returns ErrInvalidCapacity unless capacity is a power of 2 and >= 2.
func NewQueue[T any](capacity int) (*Queue[T], error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	return newQueue[T](capacity), nil
}

// MustQueue is like NewQueue but panics on an invalid capacity.
func MustQueue[T any](capacity int) *Queue[T] {
	q, err := NewQueue[T](capacity)
	if err != nil {
		panic(err)
	}
	return q
}

func newQueue[T any](capacity int) *Queue[T] {
	return newQueueSpare[T](capacity, capacity)
}

// newQueueSpare backs a queue of the given capacity with a ring of ringCap
// slots. Slots beyond capacity are reachable only through pushSpare.
func newQueueSpare[T any](capacity, ringCap int) *Queue[T] {
	q := &Queue[T]{ring: newRing[T](ringCap), capacity: capacity}
	q.free.count = capacity
	return q
}

// Enqueue adds an element, blocking while the queue is full.
func (q *Queue[T]) Enqueue(elem *T) {
	q.free.Wait()
	q.push(elem)
}

// TryEnqueue adds an element without blocking.
// Returns ErrWouldBlock if the queue is full.
func (q *Queue[T]) TryEnqueue(elem *T) error {
	if !q.free.TryWait() {
		return ErrWouldBlock
	}
	q.push(elem)
	return nil
}

// Dequeue removes and returns an element, blocking while the queue is empty.
func (q *Queue[T]) Dequeue() T {
	q.filled.Wait()
	return q.pop()
}

// TryDequeue removes and returns an element without blocking.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Queue[T]) TryDequeue() (T, error) {
	if !q.filled.TryWait() {
		var zero T
		return zero, ErrWouldBlock
	}
	return q.pop(), nil
}

// push stores elem into the ring. The caller holds a free-slot permit.
func (q *Queue[T]) push(elem *T) {
	sw := spin.Wait{}
	for q.ring.Enqueue(elem) != nil {
		sw.Once()
	}
	q.filled.Post()
}

// pushSpare stores elem without taking a free-slot permit. The caller
// guarantees a spare ring slot exists. The permit released when the element
// is later dequeued is the caller's to reclaim.
func (q *Queue[T]) pushSpare(elem *T) {
	q.push(elem)
}

// pop takes one item from the ring. The caller holds a filled-slot permit.
func (q *Queue[T]) pop() T {
	sw := spin.Wait{}
	for {
		elem, err := q.ring.Dequeue()
		if err == nil {
			q.free.Post()
			return elem
		}
		sw.Once()
	}
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int {
	return q.capacity
}
