package vango

import (
	"sync"

	"github.com/vango-dev/loadboard/pkg/keyed"
)

// ForList is a keyed list bound to a reactive item source.
type ForList[T any, K comparable, V comparable] struct {
	list   *keyed.List[T, K, V]
	effect *Effect

	mu    sync.Mutex
	stats keyed.Stats
	err   error
}

// For renders items() through host, keyed by key. The list reconciles on
// creation and whenever a signal or memo read by items() changes. It is
// closed, destroying every view, when the current owner is disposed.
//
// Host callbacks run untracked: signals read while rendering a view do not
// re-trigger the list.
func For[T any, K comparable, V comparable](items func() []T, key keyed.KeyFunc[T, K], host keyed.Host[T, V], opts ...keyed.Option) *ForList[T, K, V] {
	return ForWithKey(items, func() keyed.KeyFunc[T, K] { return key }, host, opts...)
}

// ForWithKey is For with a reactive key function: swapping the key function
// also triggers a pass.
func ForWithKey[T any, K comparable, V comparable](items func() []T, key func() keyed.KeyFunc[T, K], host keyed.Host[T, V], opts ...keyed.Option) *ForList[T, K, V] {
	f := &ForList[T, K, V]{list: keyed.New[T, K, V](host, opts...)}

	f.effect = CreateEffect(func() Cleanup {
		in := items()
		keyFn := key()
		var (
			stats keyed.Stats
			err   error
		)
		Untracked(func() {
			stats, err = f.list.Reconcile(in, keyFn)
		})
		f.mu.Lock()
		f.stats, f.err = stats, err
		f.mu.Unlock()
		return nil
	})
	OnCleanup(f.list.Close)
	return f
}

// List returns the underlying keyed list.
func (f *ForList[T, K, V]) List() *keyed.List[T, K, V] {
	return f.list
}

// Stats returns the statistics of the latest pass.
func (f *ForList[T, K, V]) Stats() keyed.Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

// Err returns the error of the latest pass.
func (f *ForList[T, K, V]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Dispose stops reacting and destroys every view.
func (f *ForList[T, K, V]) Dispose() {
	f.effect.Dispose()
	f.list.Close()
}
