package vango

// Batch runs fn and defers change notifications until the outermost batch
// returns. Each listener is notified once.
func Batch(fn func()) {
	tc := currentTracking()
	tc.batchDepth++
	defer func() {
		tc.batchDepth--
		if tc.batchDepth == 0 {
			flushPending(tc)
		}
	}()
	fn()
}

func flushPending(tc *trackingContext) {
	pending := tc.pending
	tc.pending = nil
	if len(pending) == 0 {
		return
	}
	seen := make(map[uint64]struct{}, len(pending))
	for _, l := range pending {
		if _, dup := seen[l.ID()]; dup {
			continue
		}
		seen[l.ID()] = struct{}{}
		l.MarkDirty()
	}
}

// Untracked runs fn without subscribing the current listener to anything
// fn reads.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
