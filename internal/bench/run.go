// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/lfchan"
	"code.hybscloud.com/lfchan/internal/matrix"
	"code.hybscloud.com/lfchan/internal/op"
)

// Runner executes benchmark samples for a validated Config.
type Runner struct {
	cfg     Config
	log     *slog.Logger
	metrics *Metrics
}

// NewRunner validates cfg and returns a Runner. A nil logger discards
// output; a nil metrics records nothing.
func NewRunner(cfg Config, log *slog.Logger, metrics *Metrics) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{cfg: cfg, log: log, metrics: metrics}, nil
}

// Workload returns n operations cycling through Sum, Multiply and Transpose
// over size×size random operands. The operands are shared by all returned
// operations and outlive them. Panics if an operation cannot be built.
func Workload(n, size int) []op.Operation {
	a, b := matrix.Random(size, size), matrix.Random(size, size)
	ops := make([]op.Operation, 0, n)
	for i := range n {
		var o op.Operation
		var err error
		switch k := op.Kinds[i%len(op.Kinds)]; k {
		case op.Sum:
			o, err = op.NewSum(a, b)
		case op.Multiply:
			o, err = op.NewMultiply(a, b)
		case op.Transpose:
			o, err = op.NewTranspose(a)
		default:
			err = fmt.Errorf("%w: no workload for %v", op.ErrOperand, k)
		}
		if err != nil {
			panic(err)
		}
		ops = append(ops, o)
	}
	return ops
}

// Sample runs cfg.Samples timed runs and returns their durations.
func (r *Runner) Sample(ctx context.Context) ([]time.Duration, error) {
	samples := make([]time.Duration, 0, r.cfg.Samples)
	for i := range r.cfg.Samples {
		if err := ctx.Err(); err != nil {
			return samples, err
		}
		ops := Workload(r.cfg.Ops, r.cfg.Size)

		var d time.Duration
		var err error
		if r.cfg.Serial {
			d, err = r.RunSerial(ops)
		} else {
			d, err = r.RunParallel(ctx, ops)
		}
		if err != nil {
			return samples, err
		}
		samples = append(samples, d)
		r.metrics.ObserveSample(d)
		r.log.Debug("sample", "index", i, "elapsed", d)
	}
	return samples, nil
}

// RunSerial executes ops inline and returns the elapsed time.
func (r *Runner) RunSerial(ops []op.Operation) (time.Duration, error) {
	start := time.Now()
	for _, o := range ops {
		if err := r.execute(o); err != nil {
			return time.Since(start), err
		}
	}
	return time.Since(start), nil
}

// RunParallel sends ops over a channel to cfg.Workers workers and returns
// the time until every worker has observed the close.
//
// Cancelling ctx stops the producer early; operations already sent are
// still executed. The first execution error is returned after the pool
// drains.
func (r *Runner) RunParallel(ctx context.Context, ops []op.Operation) (time.Duration, error) {
	ch, err := lfchan.BuildChannel[op.Operation](lfchan.New(r.cfg.Capacity).RoundUp())
	if err != nil {
		return 0, err
	}

	start := time.Now()
	var g errgroup.Group
	for range r.cfg.Workers {
		g.Go(func() error { return r.work(ch) })
	}
	g.Go(func() error {
		defer ch.Close()
		return produce(ctx, ch, ops)
	})
	err = g.Wait()
	return time.Since(start), err
}

// produce sends ops until done or ctx is cancelled.
func produce(ctx context.Context, tx lfchan.Sender[op.Operation], ops []op.Operation) error {
	for _, o := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !tx.Send(o) {
			return lfchan.ErrClosed
		}
	}
	return nil
}

// work executes received operations until the channel is closed. It keeps
// draining after a failure so the producer is never left blocked.
func (r *Runner) work(rx lfchan.Receiver[op.Operation]) error {
	var first error
	for o := range rx.All() {
		if err := r.execute(o); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (r *Runner) execute(o op.Operation) error {
	start := time.Now()
	_, err := o.Execute()
	r.metrics.ObserveOp(o.Kind, time.Since(start), err)
	if err != nil {
		r.log.Warn("operation failed", "kind", o.Kind, "err", err)
	}
	return err
}
