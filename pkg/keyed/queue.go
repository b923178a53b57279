package keyed

import (
	"context"
	"sync"
)

// Queue serializes reconciliation triggers for a List with latest-wins
// coalescing. While a pass runs, further submissions only replace the pending
// input; the goroutine that started draining runs passes until nothing is
// pending.
type Queue[T any, K comparable, V comparable] struct {
	list *List[T, K, V]

	mu      sync.Mutex
	pending *queued[T, K]
	running bool
	done    chan struct{}

	coalesced uint64
	onError   func(error)
}

type queued[T any, K comparable] struct {
	items []T
	keyFn KeyFunc[T, K]
}

// NewQueue wraps list. onError receives the errors of passes run for
// submissions whose caller had already returned; when it is nil they are
// logged on the list's logger.
func NewQueue[T any, K comparable, V comparable](list *List[T, K, V], onError func(error)) *Queue[T, K, V] {
	return &Queue[T, K, V]{
		list:    list,
		onError: onError,
	}
}

// List returns the wrapped list.
func (q *Queue[T, K, V]) List() *List[T, K, V] {
	return q.list
}

// Submit records items as the newest input. If no pass is running, the
// calling goroutine drains the queue and Submit returns the result of the
// pass run for its own input, or zero Stats and nil if a later submission
// replaced it. Otherwise Submit returns immediately and the running drainer
// picks the input up, reporting a failure through onError.
func (q *Queue[T, K, V]) Submit(items []T, keyFn KeyFunc[T, K]) (Stats, error) {
	in := &queued[T, K]{items: items, keyFn: keyFn}

	q.mu.Lock()
	if q.pending != nil {
		q.coalesced++
	}
	q.pending = in
	if q.running {
		q.mu.Unlock()
		return Stats{}, nil
	}
	q.running = true
	q.done = make(chan struct{})
	q.mu.Unlock()

	return q.drain(in)
}

func (q *Queue[T, K, V]) drain(own *queued[T, K]) (ownStats Stats, ownErr error) {
	finished := false
	defer func() {
		if finished {
			return
		}
		// A panicking pass drops whatever was pending with it.
		q.mu.Lock()
		q.running = false
		q.pending = nil
		close(q.done)
		q.mu.Unlock()
	}()

	for {
		q.mu.Lock()
		in := q.pending
		q.pending = nil
		if in == nil {
			q.running = false
			close(q.done)
			finished = true
			q.mu.Unlock()
			return ownStats, ownErr
		}
		q.mu.Unlock()

		stats, err := q.list.Reconcile(in.items, in.keyFn)
		switch {
		case in == own:
			ownStats, ownErr = stats, err
		case err != nil:
			q.report(err)
		}
	}
}

func (q *Queue[T, K, V]) report(err error) {
	if q.onError != nil {
		q.onError(err)
		return
	}
	q.list.cfg.logger.Warn("queued pass failed", "list", q.list.cfg.name, "error", err)
}

// Flush blocks until no pass is running or ctx is done.
func (q *Queue[T, K, V]) Flush(ctx context.Context) error {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return nil
	}
	done := q.done
	q.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Coalesced returns how many submissions were replaced before they ran.
func (q *Queue[T, K, V]) Coalesced() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.coalesced
}
