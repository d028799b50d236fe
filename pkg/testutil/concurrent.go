package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	dErrors "kycscan/pkg/domain-errors"
)

// ConcurrentResult tallies outcomes of concurrent test operations by error code.
type ConcurrentResult struct {
	Successes int32
	Errors    int32
	ByCode    map[dErrors.Code]int32
}

// Total returns the number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors
}

// RunConcurrent runs fn in n goroutines and tallies the results.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes atomic.Int32
		errs      atomic.Int32
		byCode    = make(map[dErrors.Code]int32)
	)

	for i := range n {
		wg.Go(func() {
			err := fn(i)
			if err == nil {
				successes.Add(1)
				return
			}
			errs.Add(1)
			mu.Lock()
			byCode[dErrors.CodeOf(err)]++
			mu.Unlock()
		})
	}
	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		Errors:    errs.Load(),
		ByCode:    byCode,
	}
}

// RunConcurrentCtx is RunConcurrent with a shared context.
func RunConcurrentCtx(ctx context.Context, n int, fn func(ctx context.Context, idx int) error) *ConcurrentResult {
	return RunConcurrent(n, func(idx int) error {
		return fn(ctx, idx)
	})
}
