// Package batch executes independent operations over a collection with a
// bounded concurrency ceiling.
//
// Each item's outcome is captured in a Result rather than propagated, so
// one failing item never aborts its siblings. The result collection is
// always the same length as the input and position i always holds the
// outcome for item i, regardless of completion order.
package batch

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency is the ceiling used when a caller passes limit <= 0.
const DefaultConcurrency = 10

// Result is the tagged outcome of one batch item: a value or a captured
// failure, never both.
type Result[T any] struct {
	Value T
	Err   error
}

// Failed reports whether the item's operation returned an error.
func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// Operation maps one input item to one output value or an error.
type Operation[In, Out any] func(ctx context.Context, item In) (Out, error)

// Run executes op over items with at most limit operations in flight.
//
// Admission is a counting semaphore acquired before each dispatch, so
// items enter their operation in input order and limit = 1 degenerates to
// strictly sequential execution. A limit larger than len(items) behaves as
// unlimited concurrency for the call. Empty input returns an empty result
// slice without invoking op.
//
// If ctx is cancelled, items not yet admitted get ctx's error captured as
// their outcome; already in-flight operations are not interrupted beyond
// what op itself does with ctx.
func Run[In, Out any](ctx context.Context, items []In, limit int, op Operation[In, Out]) []Result[Out] {
	results := make([]Result[Out], len(items))
	if len(items) == 0 {
		return results
	}
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	sem := semaphore.NewWeighted(int64(limit))
	var wg sync.WaitGroup
	for i, item := range items {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = Result[Out]{Err: err}
			continue
		}
		wg.Add(1)
		go func(i int, item In) {
			defer wg.Done()
			defer sem.Release(1)
			out, err := op(ctx, item)
			results[i] = Result[Out]{Value: out, Err: err}
		}(i, item)
	}
	wg.Wait()
	return results
}

// RunKeyed is the label-keyed variant of Run: outcomes are returned in a
// map holding exactly the input keys. Concurrency and partial-failure
// semantics are identical to Run.
func RunKeyed[Out any](ctx context.Context, keys []string, limit int, op Operation[string, Out]) map[string]Result[Out] {
	results := Run(ctx, keys, limit, op)
	keyed := make(map[string]Result[Out], len(keys))
	for i, key := range keys {
		keyed[key] = results[i]
	}
	return keyed
}
