package dataflow

import (
	"context"
	"sync"
	"time"
)

// Stream is a read-only channel of messages.
type Stream[T any] <-chan T

// Generate runs produce in its own goroutine and streams what it emits. emit
// returns false once ctx is done. The returned wait func blocks until produce
// has returned and reports its error; call it after draining the stream.
func Generate[T any](ctx context.Context, produce func(ctx context.Context, emit func(T) bool) error, opts ...Option) (Stream[T], func() error) {
	cfg := newConfig(opts)
	out := make(chan T, cfg.bufferSize)
	done := make(chan struct{})
	var err error

	go func() {
		defer close(done)
		defer close(out)
		err = produce(ctx, func(item T) bool {
			select {
			case <-ctx.Done():
				return false
			case out <- item:
				return true
			}
		})
	}()

	return out, func() error {
		<-done
		return err
	}
}

// Batch groups consecutive items into slices of up to size items.
// The last batch may be shorter.
func Batch[T any](ctx context.Context, input Stream[T], size int) Stream[[]T] {
	if size < 1 {
		size = 1
	}
	out := make(chan []T)

	go func() {
		defer close(out)
		batch := make([]T, 0, size)
		flush := func() bool {
			if len(batch) == 0 {
				return true
			}
			select {
			case <-ctx.Done():
				return false
			case out <- batch:
			}
			batch = make([]T, 0, size)
			return true
		}

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					flush()
					return
				}
				batch = append(batch, msg)
				if len(batch) == size && !flush() {
					return
				}
			}
		}
	}()
	return out
}

// ForEach executes an action for every item in the stream.
// It blocks until the stream is exhausted or context cancelled, and returns
// the first error no handler accepted.
func ForEach[T any](ctx context.Context, input Stream[T], fn func(T) error, opts ...Option) error {
	cfg := newConfig(opts)

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}

				err := cfg.run(ctx, func() error { return fn(msg) })
				if err == nil {
					continue
				}
				if cfg.errorHandler != nil && cfg.errorHandler(err) {
					continue
				}
				errOnce.Do(func() {
					firstErr = err
				})
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return firstErr
}

// run calls op once plus up to maxRetries more times while it fails.
func (c *config) run(ctx context.Context, op func() error) error {
	err := op()
	for i := 1; err != nil && i <= c.maxRetries; i++ {
		if c.backoff != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff(i)):
			}
		}
		err = op()
	}
	return err
}
