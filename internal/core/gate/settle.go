package gate

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	perr "adscope/internal/platform/errors"
)

// Outcome is the settled result of one unit
type Outcome[K any, T any] struct {
	Key   K
	Value T
	Err   error
}

// Settle runs fn once per key on its own goroutine and waits for all of them
// a failing or panicking unit never cancels its siblings
// outcomes are returned in key order
func Settle[K any, T any](ctx context.Context, keys []K, fn func(context.Context, K) (T, error)) []Outcome[K, T] {
	out := make([]Outcome[K, T], len(keys))
	var wg sync.WaitGroup
	wg.Add(len(keys))
	for i, k := range keys {
		go func(i int, k K) {
			defer wg.Done()
			out[i] = run(ctx, i, k, fn)
		}(i, k)
	}
	wg.Wait()
	return out
}

func run[K any, T any](ctx context.Context, i int, k K, fn func(context.Context, K) (T, error)) (o Outcome[K, T]) {
	o.Key = k
	defer func() {
		if r := recover(); r != nil {
			o.Err = perr.Wrap(fmt.Errorf("%v\n%s", r, debug.Stack()), perr.ErrorCodePanic, fmt.Sprintf("unit %d panicked", i))
		}
	}()
	o.Value, o.Err = fn(ctx, k)
	return o
}
