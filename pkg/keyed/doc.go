// Package keyed implements a view-recycling list renderer.
//
// A List keeps one live view per distinct key of an ordered item sequence.
// Each call to Reconcile diffs the previous registry of views against a new
// sequence: views whose key disappeared are destroyed first, surviving views
// are re-bound and repositioned, and new keys get freshly created views.
//
// The list never touches a rendering engine directly. Views are created,
// moved, re-bound and destroyed through a Host supplied by the caller:
//
//	list := keyed.New[Group, string, *vdom.VNode](container)
//	stats, err := list.Reconcile(groups, func(_ int, g Group) string {
//	    return g.ID
//	})
//
// # Binding Context
//
// Every view receives a Context describing its item and position (index,
// count, first, last, even, odd). The context is recomputed on every pass in
// which the view survives.
//
// # Keys
//
// Keys are expected to be unique within one sequence. When they are not, the
// default DuplicateLastWins policy leaves a single view bound to the last
// occurrence; DuplicateReject fails the pass before the host is touched.
// Under DuplicateLastWins the earlier occurrences are dropped before
// positions are assigned: the view sits at the rank of the last occurrence
// among the kept items, and Context.Count is the number of distinct keys.
//
// A nil KeyFunc keys items by index. Views are then never treated as moved,
// only re-bound at each position.
//
// # Thread Safety
//
// A pass always runs to completion. Concurrent calls on the same List are
// serialized. Queue adds latest-wins coalescing for hosts whose triggers may
// overlap.
package keyed
