// Package vango provides the reactive core that drives loadboard views.
//
// Dependencies are tracked at runtime: reading a Signal or Memo inside an
// Effect subscribes the effect, and writing the signal schedules the effect
// on its Owner.
//
//	groups := NewSignal(all)
//	selected := NewSignal("stg-1")
//	current := NewMemo(func() Group { return find(groups.Get(), selected.Get()) })
//
//	CreateEffect(func() Cleanup {
//	    render(current.Get())
//	    return nil
//	})
//
// # Owners
//
// Effects created while an Owner is current belong to it. Scheduled effects
// run when the host calls RunPendingEffects, so one trigger is fully drained
// before the next one is looked at. Disposing an owner disposes its effects,
// children and cleanups.
//
// # Keyed Lists
//
// For binds a keyed.List to a reactive item source. The list reconciles
// whenever the source changes and is closed with its owner.
//
// # Thread Safety
//
// Primitives are safe for concurrent use. The tracking context is
// per-goroutine; use WithOwner to carry an owner into a new goroutine.
package vango
