package keyed

import (
	"sync"
	"time"
)

// KeyFunc derives the key of item at index.
type KeyFunc[T any, K comparable] func(index int, item T) K

// IndexKey keys every item by its position.
func IndexKey[T any](index int, _ T) int {
	return index
}

// Stats summarizes one reconciliation pass.
type Stats struct {
	// Count is the number of items passed to the pass, duplicates included.
	Count int

	// Created and Destroyed count host view creations and destructions.
	Created   int
	Destroyed int

	// Updated counts context re-binds of retained views.
	Updated int

	// Moved counts retained views whose index changed since the last pass.
	Moved int

	// HostMoves counts MoveView calls. It can be lower than Moved because a
	// view whose neighbours were removed already sits at its new index.
	HostMoves int

	// Duplicates counts items whose key was already seen in the pass.
	Duplicates int
}

// entry is a registry slot. dead is set once the view is destroyed.
type entry[V comparable] struct {
	view  V
	index int
	dead  bool
}

// List is a keyed view registry reconciled against ordered sequences.
type List[T any, K comparable, V comparable] struct {
	mu     sync.Mutex
	host   Host[T, V]
	cfg    config
	views  map[K]*entry[V]
	order  []K
	closed bool
	passes uint64
}

// New creates an empty List driving host.
func New[T any, K comparable, V comparable](host Host[T, V], opts ...Option) *List[T, K, V] {
	cfg := config{name: "list"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}
	return &List[T, K, V]{
		host:  host,
		cfg:   cfg,
		views: make(map[K]*entry[V]),
	}
}

// Reconcile brings the registry in line with items.
//
// keyFn is called exactly once per item. A panic raised by keyFn propagates
// to the caller before the host is touched. Views destroyed by a pass stay
// destroyed even if a later step of the same pass panics in the host.
func (l *List[T, K, V]) Reconcile(items []T, keyFn KeyFunc[T, K]) (Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return Stats{}, ErrClosed
	}
	if keyFn == nil {
		fn, err := indexKeyFunc[T, K]()
		if err != nil {
			return Stats{}, err
		}
		keyFn = fn
	}

	start := time.Now()
	count := len(items)
	stats := Stats{Count: count}

	keys := make([]K, count)
	present := make(map[K]int, count)
	for i, item := range items {
		k := keyFn(i, item)
		keys[i] = k
		if first, seen := present[k]; seen {
			if l.cfg.duplicates == DuplicateReject {
				return Stats{}, &DuplicateKeyError{Key: k, First: first, Second: i}
			}
			stats.Duplicates++
			l.cfg.logger.Debug("duplicate key, last occurrence wins",
				"list", l.cfg.name, "key", k, "first", first, "index", i)
		}
		present[k] = i
	}

	// Removals go first so no stale view shares a position with a new one.
	for _, k := range l.order {
		if _, keep := present[k]; keep {
			continue
		}
		if e, ok := l.views[k]; ok && !e.dead {
			l.host.DestroyView(e.view)
			e.dead = true
			stats.Destroyed++
		}
	}

	// Each key is rendered once, at the rank of its last occurrence among
	// the kept items, so positions and Count always match the host.
	kept := make([]int, 0, len(present))
	for i, k := range keys {
		if present[k] == i {
			kept = append(kept, i)
		}
	}

	next := make(map[K]*entry[V], len(present))
	order := make([]K, 0, len(present))
	for i, src := range kept {
		k := keys[src]
		ctx := NewContext(items[src], i, len(kept))

		e, ok := l.views[k]
		order = append(order, k)
		if ok {
			l.host.UpdateContext(e.view, ctx)
			stats.Updated++
			if e.index != i {
				stats.Moved++
				e.index = i
			}
			if l.host.IndexOf(e.view) != i {
				l.host.MoveView(e.view, i)
				stats.HostMoves++
			}
		} else {
			e = &entry[V]{view: l.host.CreateView(i, ctx), index: i}
			stats.Created++
		}
		next[k] = e
	}

	l.views = next
	l.order = order
	l.passes++

	elapsed := time.Since(start)
	if l.cfg.observer != nil {
		l.cfg.observer.ObservePass(l.cfg.name, stats, elapsed)
	}
	return stats, nil
}

// Close destroys every live view. Later passes return ErrClosed.
func (l *List[T, K, V]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	for i := len(l.order) - 1; i >= 0; i-- {
		e := l.views[l.order[i]]
		if e == nil || e.dead {
			continue
		}
		l.host.DestroyView(e.view)
		e.dead = true
	}
	l.views = make(map[K]*entry[V])
	l.order = nil
}

// Len returns the number of live views.
func (l *List[T, K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.views)
}

// Keys returns the live keys in rendered order.
func (l *List[T, K, V]) Keys() []K {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]K, len(l.order))
	copy(out, l.order)
	return out
}

// View returns the live view registered for key.
func (l *List[T, K, V]) View(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.views[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.view, true
}

// Views returns the live views in rendered order.
func (l *List[T, K, V]) Views() []V {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]V, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.views[k].view)
	}
	return out
}

// Passes returns the number of completed passes.
func (l *List[T, K, V]) Passes() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.passes
}

// Closed reports whether Close has been called.
func (l *List[T, K, V]) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func indexKeyFunc[T any, K comparable]() (KeyFunc[T, K], error) {
	var zero K
	if _, ok := any(zero).(int); !ok {
		return nil, ErrNoKeyFunc
	}
	return func(index int, _ T) K {
		return any(index).(K)
	}, nil
}
