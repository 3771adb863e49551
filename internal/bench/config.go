// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bench measures matrix workloads fanned out over an lfchan.Channel
// to a fixed worker pool, against the same workload run inline.
package bench

import (
	"errors"
	"fmt"

	"code.hybscloud.com/lfchan"
)

// ErrConfig is returned by Config.Validate.
var ErrConfig = errors.New("bench: invalid config")

// Config describes one benchmark run.
type Config struct {
	Workers  int  // worker goroutines receiving operations
	Capacity int  // channel capacity, rounded up to a power of 2
	Ops      int  // operations per sample
	Samples  int  // timed samples
	Size     int  // square matrix dimension
	Serial   bool // execute inline instead of through the worker pool
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Workers:  4,
		Capacity: 64,
		Ops:      1000,
		Samples:  100,
		Size:     32,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d < 1", ErrConfig, c.Workers)
	case c.Ops < 1:
		return fmt.Errorf("%w: ops %d < 1", ErrConfig, c.Ops)
	case c.Samples < 1:
		return fmt.Errorf("%w: samples %d < 1", ErrConfig, c.Samples)
	case c.Size < 1:
		return fmt.Errorf("%w: size %d < 1", ErrConfig, c.Size)
	}
	if _, err := lfchan.New(c.Capacity).RoundUp().Capacity(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}
