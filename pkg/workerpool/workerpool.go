// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

// Process runs a worker pool over the provided work items, invoking process
// for each. A failing item never stops its siblings: every item is attempted
// unless the context is cancelled, and the per-item errors are joined into
// the returned error.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
) error {
	if workerCount < 1 {
		workerCount = 1
	}

	tasks := make(chan T)
	errs := make(chan error, len(items))
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if err := process(ctx, item); err != nil {
					errs <- err
				}
			}
		}()
	}

	var feedErr error
	for _, item := range items {
		if feedErr = ctx.Err(); feedErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			feedErr = ctx.Err()
		case tasks <- item:
			continue
		}
		break
	}
	close(tasks)

	wg.Wait()
	close(errs)

	collected := make([]error, 0, len(items)+1)
	if feedErr != nil {
		collected = append(collected, feedErr)
	}
	for err := range errs {
		collected = append(collected, err)
	}
	return errors.Join(collected...)
}
