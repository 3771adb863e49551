// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfchan

import "sync"

// Semaphore is a counting semaphore.
//
// Wait blocks until the count is positive and then decrements it; Post
// increments the count and wakes one waiter. The count is not bounded above,
// so a Semaphore is not a mutex. There is no timeout or cancellation.
//
// The zero value is a semaphore with count 0, ready to use.
type Semaphore struct {
	mu    sync.Mutex
	cond  sync.Cond
	count int
}

// NewSemaphore creates a semaphore with the given initial count.
// Panics if count is negative.
func NewSemaphore(count int) *Semaphore {
	if count < 0 {
		panic("lfchan: semaphore count must be >= 0")
	}
	return &Semaphore{count: count}
}

// Wait blocks until the count is positive, then decrements it.
func (s *Semaphore) Wait() {
	s.mu.Lock()
	if s.cond.L == nil {
		s.cond.L = &s.mu
	}
	for s.count == 0 {
		s.cond.Wait()
	}
	s.count--
	s.mu.Unlock()
}

// TryWait decrements the count if it is positive.
// Reports whether the count was decremented.
func (s *Semaphore) TryWait() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count == 0 {
		return false
	}
	s.count--
	return true
}

// Post increments the count and wakes one waiter, if any.
func (s *Semaphore) Post() {
	s.mu.Lock()
	s.count++
	if s.cond.L == nil {
		s.cond.L = &s.mu
	}
	s.mu.Unlock()
	s.cond.Signal()
}

// Count returns a snapshot of the current count.
// The value may be stale by the time it is used.
func (s *Semaphore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
