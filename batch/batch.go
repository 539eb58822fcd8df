//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package batch runs the same ordered pass pipeline over many independent
// modules concurrently, one worker per module, via a bounded ants pool.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/flowgraph/rvsdg-go/graph"
	"github.com/flowgraph/rvsdg-go/opt"
	"github.com/flowgraph/rvsdg-go/stats"
)

// Job names one module to optimize and the pipeline to run over it.
type Job struct {
	Module *graph.Module
	Specs  []opt.PassSpec
	RC     *opt.RunContext
}

// Result reports the outcome of running one Job.
type Result struct {
	Module *graph.Module
	Err    error
}

type runParam struct {
	idx     int
	ctx     context.Context
	runner  *Runner
	job     Job
	results []Result
	wg      *sync.WaitGroup
}

func (p *runParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.runner = nil
	p.job = Job{}
	p.results = nil
	p.wg = nil
}

var runParamPool = &sync.Pool{
	New: func() any { return new(runParam) },
}

// Runner drives opt.Driver.Run over many modules concurrently.
type Runner struct {
	driver    *opt.Driver
	collector *stats.Collector
	pool      *ants.PoolWithFunc
}

// NewRunner builds a Runner that dispatches to driver, recording every pass
// run through collector, with at most concurrency jobs in flight at once.
func NewRunner(driver *opt.Driver, collector *stats.Collector, concurrency int) (*Runner, error) {
	if concurrency <= 0 {
		return nil, errors.New("batch: concurrency must be greater than 0")
	}
	r := &Runner{driver: driver, collector: collector}
	pool, err := ants.NewPoolWithFunc(concurrency, func(args any) {
		param, ok := args.(*runParam)
		if !ok {
			panic("batch: pool arg type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			runParamPool.Put(param)
		}()
		err := param.runner.driver.Run(param.ctx, param.job.Module, param.job.Specs, param.job.RC, param.runner.collector)
		param.results[param.idx] = Result{Module: param.job.Module, Err: err}
	})
	if err != nil {
		return nil, fmt.Errorf("batch: create pool: %w", err)
	}
	r.pool = pool
	return r, nil
}

// Run submits every job to the pool and blocks until all have completed,
// returning one Result per job in the same order as jobs. A job whose
// submission itself fails (the pool is saturated and non-blocking, or has
// been released) gets a Result carrying that error instead of running.
func (r *Runner) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	var wg sync.WaitGroup
	for idx, job := range jobs {
		wg.Add(1)
		param := runParamPool.Get().(*runParam)
		param.idx = idx
		param.ctx = ctx
		param.runner = r
		param.job = job
		param.results = results
		param.wg = &wg
		if err := r.pool.Invoke(param); err != nil {
			wg.Done()
			results[idx] = Result{Module: job.Module, Err: fmt.Errorf("batch: submit job %d: %w", idx, err)}
			param.reset()
			runParamPool.Put(param)
		}
	}
	wg.Wait()
	return results
}

// Close releases the underlying worker pool. A Runner must not be used
// after Close.
func (r *Runner) Close() {
	r.pool.Release()
}
