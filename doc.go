// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfchan provides a bounded multi-producer multi-consumer
// message-passing stack.
//
// The package is built in layers, each usable on its own:
//
//   - Ring: lock-free bounded ring buffer with per-slot sequence stamps
//   - Semaphore: counting semaphore (Wait/Post) on a mutex and condition variable
//   - Queue: blocking bounded queue, one Ring gated by two Semaphores
//   - Channel: closable Queue with a broadcast shutdown signal
//
// # Quick Start
//
// Direct constructors validate capacity and return an error:
//
//	ch, err := lfchan.NewChannel[Job](64)
//	if err != nil {
//	    return err // capacity not a power of 2 or < 2
//	}
//
// Builder API for configuration-driven capacities:
//
//	ch, err := lfchan.BuildChannel[Job](lfchan.New(cfg.Capacity).RoundUp())
//
// # Worker Pool
//
// A single Close releases every receiver, however many there are:
//
//	ch := lfchan.MustChannel[Job](64)
//
//	var wg sync.WaitGroup
//	for range numWorkers {
//	    wg.Add(1)
//	    go func() {
//	        defer wg.Done()
//	        for {
//	            job, ok := ch.Recv()
//	            if !ok {
//	                return // closed and drained
//	            }
//	            job.Run()
//	        }
//	    }()
//	}
//
//	for _, job := range jobs {
//	    ch.Send(job)
//	}
//	ch.Close()
//	wg.Wait()
//
// The same loop reads as a range statement:
//
//	for job := range ch.All() {
//	    job.Run()
//	}
//
// # Shutdown Protocol
//
// Channel carries optional values internally. Close publishes a single
// "no value" marker (the sentinel) behind every accepted value. A receiver
// that dequeues the sentinel puts it straight back before reporting closed,
// so the one marker is relayed to every present and future receiver without
// the closer knowing how many receivers exist.
//
// Close never waits on blocked senders. The channel state is one atomic word
// holding a closed bit and the number of senders currently inside Send.
// Whoever observes "closed with no sender in flight" (Close itself, or the
// last sender to leave) publishes the sentinel, so a value accepted by Send
// is always delivered before receivers observe closure. The backing ring
// keeps spare slots beyond the channel capacity, so publishing the sentinel
// never waits, even on a full channel. Close is exactly once: later calls
// return [ErrClosed] and publish nothing.
//
// # Ring Algorithm
//
// Each slot holds a sequence stamp. A producer at position p may write slot
// p&mask only when the stamp equals p; it claims the position with a CAS on
// the producer cursor, writes, then publishes stamp p+1. A consumer at
// position c reads only when the stamp equals c+1 and republishes c+N for the
// next lap. Stamps behind the cursor mean full (producer) or empty (consumer);
// stamps ahead of it mean a stale cursor and the attempt is retried.
//
// Failed attempts never block. They return [ErrWouldBlock], which Queue turns
// into a semaphore wait. Queue retries only the lock-free attempt after a
// successful Wait, since the semaphore accounting guarantees a free slot or
// a published item exists.
//
// # Capacity
//
// Capacity must be a power of 2 and at least 2:
//
//	lfchan.NewRing[int](4)    // ok, Cap()=4
//	lfchan.NewRing[int](3)    // ErrInvalidCapacity
//	lfchan.NewRing[int](1)    // ErrInvalidCapacity
//
// Builder.RoundUp accepts any capacity >= 2 and rounds it to the next power
// of 2.
//
// # Error Handling
//
// Non-blocking operations return [ErrWouldBlock] when they cannot proceed.
// This error is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency:
//
//	lfchan.IsWouldBlock(err)  // true if full/empty
//	lfchan.IsSemantic(err)    // true if control flow signal
//	lfchan.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// Blocking operations never surface ErrWouldBlock. Channel reports closure as
// a boolean from Send and Recv, and as [ErrClosed] from TrySend, TryRecv and a
// repeated Close.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before edges carried by
// acquire-release orderings on a different variable than the protected data.
// Ring slots are protected by their sequence stamps, so concurrent tests over
// Ring and everything built on it are excluded under -race via
// [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package lfchan
