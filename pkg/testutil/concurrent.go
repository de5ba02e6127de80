package testutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"rickmorty/internal/character/models"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes      int32
	NotFounds      int32
	UpstreamErrors int32
	Errors         int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.NotFounds + r.UpstreamErrors + r.Errors
}

// RunConcurrent executes fn in parallel goroutines and buckets the outcomes
// into success, not found, upstream failure, or any other error.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, notFounds, upstreamErrs, errs atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			var nf *models.NotFoundError
			var ue *models.UpstreamError
			switch {
			case err == nil:
				successes.Add(1)
			case errors.As(err, &nf):
				notFounds.Add(1)
			case errors.As(err, &ue):
				upstreamErrs.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes:      successes.Load(),
		NotFounds:      notFounds.Load(),
		UpstreamErrors: upstreamErrs.Load(),
		Errors:         errs.Load(),
	}
}

// RunConcurrentCtx executes fn in parallel goroutines with context support.
func RunConcurrentCtx(ctx context.Context, goroutines int, fn func(ctx context.Context, idx int) error) *ConcurrentResult {
	return RunConcurrent(goroutines, func(idx int) error {
		return fn(ctx, idx)
	})
}

// RunConcurrentCollect executes fn in parallel and collects all errors.
func RunConcurrentCollect(goroutines int, fn func(idx int) error) (successes int32, errs []error) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successCount atomic.Int32
	collected := make([]error, 0)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := fn(idx); err != nil {
				mu.Lock()
				collected = append(collected, err)
				mu.Unlock()
				return
			}
			successCount.Add(1)
		}(i)
	}

	wg.Wait()
	return successCount.Load(), collected
}
