// Package dispatch runs upstream requests concurrently while spreading their
// start times to stay friendly to rate-limited APIs.
package dispatch

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one task. Exactly one of Value or Err is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Staggered runs n tasks concurrently, starting task i after i*stagger, and
// waits for every task to settle. Failures are reported per task and never
// cancel the remaining tasks. Tasks whose delay is interrupted by ctx report
// ctx.Err() without running.
func Staggered[T any](ctx context.Context, n int, stagger time.Duration, task func(ctx context.Context, i int) (T, error)) []Result[T] {
	if n <= 0 {
		return nil
	}

	results := make([]Result[T], n)

	// Tasks never return an error to the group so one failure cannot cancel the others.
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := wait(ctx, time.Duration(i)*stagger); err != nil {
				results[i].Err = err
				return nil
			}
			results[i] = run(ctx, i, task)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func run[T any](ctx context.Context, i int, task func(ctx context.Context, i int) (T, error)) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Err: &PanicError{Value: r, Stack: debug.Stack()}}
		}
	}()
	v, err := task(ctx, i)
	return Result[T]{Value: v, Err: err}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Values returns the successful values in task order together with the number of failed tasks.
func Values[T any](results []Result[T]) ([]T, int) {
	values := make([]T, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		values = append(values, r.Value)
	}
	return values, failed
}
