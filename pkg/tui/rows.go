package tui

import (
	"slices"
	"sync"

	"github.com/vango-dev/loadboard/pkg/keyed"
)

// Row is one rendered line of a keyed list.
type Row struct {
	Key  string
	Text string
	Odd  bool
}

// Format renders an item as a row key and text.
type Format[T any] func(ctx keyed.Context[T]) (key, text string)

// Rows keeps the live rows of a keyed list in display order. Its methods
// may be called from any goroutine.
type Rows[T any] struct {
	format Format[T]

	mu   sync.Mutex
	rows []*Row
}

var _ keyed.Host[int, *Row] = (*Rows[int])(nil)

// NewRows creates an empty host.
func NewRows[T any](format Format[T]) *Rows[T] {
	return &Rows[T]{format: format}
}

func (r *Rows[T]) CreateView(index int, ctx keyed.Context[T]) *Row {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := &Row{}
	r.bind(row, ctx)
	r.rows = slices.Insert(r.rows, clamp(index, len(r.rows)), row)
	return row
}

func (r *Rows[T]) MoveView(row *Row, index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	from := slices.Index(r.rows, row)
	if from < 0 {
		return
	}
	r.rows = slices.Delete(r.rows, from, from+1)
	r.rows = slices.Insert(r.rows, clamp(index, len(r.rows)), row)
}

func (r *Rows[T]) DestroyView(row *Row) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := slices.Index(r.rows, row); i >= 0 {
		r.rows = slices.Delete(r.rows, i, i+1)
	}
}

func (r *Rows[T]) UpdateContext(row *Row, ctx keyed.Context[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bind(row, ctx)
}

func (r *Rows[T]) IndexOf(row *Row) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Index(r.rows, row)
}

// Rows returns a copy of the rows in display order.
func (r *Rows[T]) Rows() []Row {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Row, len(r.rows))
	for i, row := range r.rows {
		out[i] = *row
	}
	return out
}

// Len returns the number of live rows.
func (r *Rows[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *Rows[T]) bind(row *Row, ctx keyed.Context[T]) {
	row.Key, row.Text = r.format(ctx)
	row.Odd = ctx.Odd
}

func clamp(i, n int) int {
	return min(max(i, 0), n)
}
