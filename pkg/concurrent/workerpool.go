// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool bounds the number of goroutines used for a batch of tasks.
type WorkerPool struct {
	workerCount int
}

// NewWorkerPool creates a pool limited to workerCount concurrent tasks.
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &WorkerPool{workerCount: workerCount}
}

// Run executes all tasks and stops the batch on the first error.
func (wp *WorkerPool) Run(ctx context.Context, tasks ...func() error) error {
	if len(tasks) == 0 {
		return nil
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.workerCount)

	for _, task := range tasks {
		g.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}
			return task()
		})
	}

	return g.Wait()
}

// RunAll executes every task regardless of failures and returns the
// non-nil errors collected across the batch.
func (wp *WorkerPool) RunAll(ctx context.Context, tasks ...func() error) []error {
	if len(tasks) == 0 {
		return nil
	}

	errorChan := make(chan error, len(tasks))

	g := new(errgroup.Group)
	g.SetLimit(wp.workerCount)

	for _, task := range tasks {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				errorChan <- ctx.Err()
				return nil
			default:
			}
			if err := task(); err != nil {
				errorChan <- err
			}
			return nil
		})
	}

	_ = g.Wait()
	close(errorChan)

	var errs []error
	for err := range errorChan {
		errs = append(errs, err)
	}
	return errs
}
