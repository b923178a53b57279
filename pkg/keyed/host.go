package keyed

// Host is the rendering capability a List drives.
//
// V is the host's view handle. Handles must stay valid and comparable for as
// long as the view is live; a List never passes a destroyed handle back to
// the host.
type Host[T any, V comparable] interface {
	// CreateView instantiates the host template at index with ctx.
	CreateView(index int, ctx Context[T]) V

	// MoveView repositions a live view to index. The view is not recreated.
	MoveView(view V, index int)

	// DestroyView releases every resource held by view.
	DestroyView(view V)

	// UpdateContext re-binds a live view to ctx.
	UpdateContext(view V, ctx Context[T])

	// IndexOf reports the current rendered position of view, or -1.
	IndexOf(view V) int
}

// HostFuncs adapts plain functions to Host. Nil fields are no-ops, and a nil
// IndexOfFunc reports -1, which makes every retained view move.
type HostFuncs[T any, V comparable] struct {
	CreateFunc  func(index int, ctx Context[T]) V
	MoveFunc    func(view V, index int)
	DestroyFunc func(view V)
	UpdateFunc  func(view V, ctx Context[T])
	IndexOfFunc func(view V) int
}

func (h HostFuncs[T, V]) CreateView(index int, ctx Context[T]) V {
	if h.CreateFunc == nil {
		var zero V
		return zero
	}
	return h.CreateFunc(index, ctx)
}

func (h HostFuncs[T, V]) MoveView(view V, index int) {
	if h.MoveFunc != nil {
		h.MoveFunc(view, index)
	}
}

func (h HostFuncs[T, V]) DestroyView(view V) {
	if h.DestroyFunc != nil {
		h.DestroyFunc(view)
	}
}

func (h HostFuncs[T, V]) UpdateContext(view V, ctx Context[T]) {
	if h.UpdateFunc != nil {
		h.UpdateFunc(view, ctx)
	}
}

func (h HostFuncs[T, V]) IndexOf(view V) int {
	if h.IndexOfFunc == nil {
		return -1
	}
	return h.IndexOfFunc(view)
}
