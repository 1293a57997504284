// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-bank-registry/internal/logger"
)

var (
	// ErrPoolStopped is returned by [Pool.Submit] once [Pool.Stop] was called.
	ErrPoolStopped = errors.New("worker pool is stopped")
	// ErrTaskPanicked is returned by [Pool.Submit] when the task panicked.
	ErrTaskPanicked = errors.New("task panicked")
)

type task struct {
	fn   func()
	done chan error
}

// Pool executes submitted tasks on a fixed number of goroutines.
//
// The task channel is unbuffered, so a task is handed over only when a
// worker is free to take it. Callers wait for a free worker in Submit,
// which is where the bound on concurrent work comes from.
type Pool struct {
	name  string
	size  int
	tasks chan task
	quit  chan struct{}

	runOnce  sync.Once
	stopOnce sync.Once
	wg       sync.WaitGroup

	logger *logger.Logger
}

// NewPool creates a pool with size workers. A non-positive size is
// treated as 1. The pool does nothing until [Pool.Run] is called.
func NewPool(name string, size int, log *logger.Logger) *Pool {
	if size < 1 {
		size = 1
	}

	return &Pool{
		name:   name,
		size:   size,
		tasks:  make(chan task),
		quit:   make(chan struct{}),
		logger: log,
	}
}

// Size returns the number of worker goroutines.
func (p *Pool) Size() int {
	return p.size
}

// Run starts the worker goroutines. Subsequent calls are no-ops.
func (p *Pool) Run() {
	p.runOnce.Do(func() {
		p.wg.Add(p.size)
		for i := 0; i < p.size; i++ {
			go p.work()
		}
		p.logger.Info().Str("pool", p.name).Int("size", p.size).Msg("worker pool started")
	})
}

// Stop prevents new submissions and waits for running tasks to finish.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
		p.logger.Info().Str("pool", p.name).Msg("worker pool stopped")
	})
}

// Submit runs fn on one of the pool workers and blocks until it returns.
//
// While waiting for a free worker Submit honours ctx: if ctx is done first,
// fn is never executed and ctx.Err() is returned. Once a worker has taken
// fn, Submit waits for it to complete regardless of ctx.
func (p *Pool) Submit(ctx context.Context, fn func()) error {
	t := task{fn: fn, done: make(chan error, 1)}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrPoolStopped
	case p.tasks <- t:
	}

	return <-t.done
}

func (p *Pool) work() {
	defer p.wg.Done()

	for {
		select {
		case <-p.quit:
			return
		case t := <-p.tasks:
			t.done <- p.execute(t.fn)
		}
	}
}

func (p *Pool) execute(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Str("pool", p.name).Any("panic", r).Msg("task panicked")
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()

	fn()
	return nil
}
