// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command matbench times matrix workloads dispatched through an lfchan
// channel to a worker pool.
//
// Usage:
//
//	go run ./cmd/matbench -workers 8 -ops 1000 -samples 100 -out samples.txt
//
// Each line of the -out file holds one sample in seconds.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"code.hybscloud.com/lfchan/internal/bench"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "matbench:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := bench.DefaultConfig()
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker goroutines")
	flag.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "channel capacity (rounded up to a power of 2)")
	flag.IntVar(&cfg.Ops, "ops", cfg.Ops, "operations per sample")
	flag.IntVar(&cfg.Samples, "samples", cfg.Samples, "number of timed samples")
	flag.IntVar(&cfg.Size, "size", cfg.Size, "square matrix dimension")
	flag.BoolVar(&cfg.Serial, "serial", false, "execute inline without the worker pool")
	out := flag.String("out", "", "write one sample per line to this file")
	metricsOut := flag.String("metrics", "", "write Prometheus text metrics to this file")
	verbose := flag.Bool("v", false, "log every sample")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := bench.NewMetrics()
	r, err := bench.NewRunner(cfg, log, metrics)
	if err != nil {
		return err
	}

	log.Info("starting",
		"workers", cfg.Workers, "capacity", cfg.Capacity, "ops", cfg.Ops,
		"samples", cfg.Samples, "size", cfg.Size, "serial", cfg.Serial)

	samples, err := r.Sample(ctx)
	if err != nil {
		log.Error("run aborted", "completed", len(samples), "err", err)
	}

	xs := bench.Seconds(samples)
	s := bench.Summarize(xs)
	log.Info("summary",
		"samples", s.N, "mean_s", s.Mean, "stddev_s", s.StdDev,
		"min_s", s.Min, "max_s", s.Max)
	if means := bench.RunningMeans(xs); len(means) > 0 {
		log.Debug("running mean", "final_s", means[len(means)-1])
	}

	if *out != "" {
		if werr := writeFile(*out, func(f *os.File) error { return bench.Dump(f, samples) }); werr != nil {
			return werr
		}
	}
	if *metricsOut != "" {
		if werr := writeFile(*metricsOut, func(f *os.File) error { return metrics.WriteText(f) }); werr != nil {
			return werr
		}
	}
	return err
}

func writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
