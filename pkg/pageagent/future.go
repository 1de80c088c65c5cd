package pageagent

import (
	"context"
	"sync"
)

// Future holds the single response to one request. Resolve may be called any
// number of times; only the first call counts.
type Future struct {
	once sync.Once
	done chan struct{}
	resp *Response
	err  error
}

func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Go runs fn in its own goroutine and returns a Future for its result.
func Go(fn func() (*Response, error)) *Future {
	f := NewFuture()
	go func() {
		f.Resolve(fn())
	}()
	return f
}

func (f *Future) Resolve(resp *Response, err error) {
	f.once.Do(func() {
		f.resp = resp
		f.err = err
		close(f.done)
	})
}

func (f *Future) Await(ctx context.Context) (*Response, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
