// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfchan

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// Options configures Ring, Queue and Channel creation.
type Options struct {
	// Capacity (power of 2, or rounded up when roundUp is set)
	capacity int

	// Accept any capacity >= 2 and round it to the next power of 2
	roundUp bool
}

// Builder creates rings, queues and channels with fluent configuration.
//
// Example:
//
//	// Exact capacity, must be a power of 2
//	ch, err := lfchan.BuildChannel[Job](lfchan.New(1024))
//
//	// Capacity taken from user configuration
//	q, err := lfchan.BuildQueue[Job](lfchan.New(cfg.Capacity).RoundUp())
type Builder struct {
	opts Options
}

// New creates a builder with the given capacity.
//
// The capacity is validated when a Build function is called, so New never
// fails.
func New(capacity int) *Builder {
	return &Builder{opts: Options{capacity: capacity}}
}

// RoundUp accepts any capacity >= 2 and rounds it up to the next power of 2.
// For example, capacity=3 results in actual capacity=4, capacity=1000
// results in actual capacity=1024.
func (b *Builder) RoundUp() *Builder {
	b.opts.roundUp = true
	return b
}

// Capacity returns the capacity a Build call would use, or
// ErrInvalidCapacity.
func (b *Builder) Capacity() (int, error) {
	n := b.opts.capacity
	if b.opts.roundUp && n >= 2 {
		n = roundToPow2(n)
	}
	if err := checkCapacity(n); err != nil {
		return 0, err
	}
	return n, nil
}

// BuildRing creates a Ring[T] from the builder configuration.
func BuildRing[T any](b *Builder) (*Ring[T], error) {
	n, err := b.Capacity()
	if err != nil {
		return nil, err
	}
	return newRing[T](n), nil
}

// BuildQueue creates a Queue[T] from the builder configuration.
func BuildQueue[T any](b *Builder) (*Queue[T], error) {
	n, err := b.Capacity()
	if err != nil {
		return nil, err
	}
	return newQueue[T](n), nil
}

// BuildChannel creates a Channel[T] from the builder configuration.
func BuildChannel[T any](b *Builder) (*Channel[T], error) {
	n, err := b.Capacity()
	if err != nil {
		return nil, err
	}
	return newChannel[T](n), nil
}

// checkCapacity reports ErrInvalidCapacity unless n is a power of 2 and >= 2.
func checkCapacity(n int) error {
	if n < 2 || n&(n-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, n)
	}
	return nil
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad = cpu.CacheLinePad

// padShort is padding to fill cache line after 8-byte field.
type padShort [64 - 8]byte
