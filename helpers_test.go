// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfchan_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"go.uber.org/goleak"

	"code.hybscloud.com/lfchan"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// Test Helpers
// =============================================================================

// retryWithTimeout retries f until it returns true or timeout expires.
// Reports failure with the given message if timeout is reached.
func retryWithTimeout(t *testing.T, timeout time.Duration, f func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for !f() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v: %s", timeout, msg)
		}
		backoff.Wait()
	}
}

// waitForCount waits until counter reaches target or timeout expires.
func waitForCount(t *testing.T, timeout time.Duration, counter *atomix.Int64, target int64, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for counter.Load() < target {
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v: %s (got %d, want %d)", timeout, msg, counter.Load(), target)
		}
		backoff.Wait()
	}
}

// stillBlocked reports whether done stays open for d.
func stillBlocked(done <-chan struct{}, d time.Duration) bool {
	select {
	case <-done:
		return false
	case <-time.After(d):
		return true
	}
}

// finishes reports whether done closes within d.
func finishes(done <-chan struct{}, d time.Duration) bool {
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}

// =============================================================================
// Linearizability Test Helper
// =============================================================================

// linearizabilityTest launches numP producers and numC consumers over a
// non-blocking enqueue/dequeue pair. Values are encoded as
// producerID*100000 + sequence. Every value must be consumed exactly once.
type linearizabilityTest struct {
	t            *testing.T
	numP, numC   int
	itemsPerProd int
	timeout      time.Duration
}

func (lt *linearizabilityTest) run(
	enqueue func(v int) error,
	dequeue func() (int, error),
) {
	t := lt.t
	t.Helper()
	if lfchan.RaceEnabled {
		t.Skip("skip: linearizability test requires concurrent access")
	}

	var wg sync.WaitGroup
	expectedTotal := lt.numP * lt.itemsPerProd
	seen := make([]atomix.Int32, expectedTotal)
	var consumeCount atomix.Int64
	var timedOut atomix.Bool

	// Producers
	for p := range lt.numP {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			deadline := time.Now().Add(lt.timeout)
			backoff := iox.Backoff{}
			for i := range lt.itemsPerProd {
				v := id*100000 + i
				for enqueue(v) != nil {
					if time.Now().After(deadline) {
						timedOut.Store(true)
						return
					}
					backoff.Wait()
				}
				backoff.Reset()
			}
		}(p)
	}

	// Consumers
	for range lt.numC {
		wg.Add(1)
		go func() {
			defer wg.Done()
			deadline := time.Now().Add(lt.timeout)
			backoff := iox.Backoff{}
			for consumeCount.Load() < int64(expectedTotal) {
				if time.Now().After(deadline) {
					timedOut.Store(true)
					return
				}
				v, err := dequeue()
				if err != nil {
					backoff.Wait()
					continue
				}
				backoff.Reset()
				producerID := v / 100000
				seq := v % 100000
				if producerID < 0 || producerID >= lt.numP || seq < 0 || seq >= lt.itemsPerProd {
					t.Errorf("value out of range: %d", v)
					consumeCount.Add(1)
					continue
				}
				seen[producerID*lt.itemsPerProd+seq].Add(1)
				consumeCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if timedOut.Load() {
		t.Fatalf("timeout after %v: consumed %d/%d", lt.timeout, consumeCount.Load(), expectedTotal)
	}

	var missing, duplicates int
	for i := range expectedTotal {
		switch seen[i].Load() {
		case 0:
			missing++
		case 1:
		default:
			duplicates++
		}
	}
	if duplicates > 0 {
		t.Errorf("linearizability violation: %d duplicates detected", duplicates)
	}
	if missing > 0 {
		t.Errorf("lost items: %d of %d never consumed", missing, expectedTotal)
	}
}
