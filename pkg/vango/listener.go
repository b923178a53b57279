package vango

// Listener is notified when one of its dependencies changes.
// Memos invalidate; effects schedule a re-run.
type Listener interface {
	MarkDirty()
	ID() uint64
}

// Cleanup runs before an effect re-runs and when it is disposed.
type Cleanup func()

// sourceTracker is implemented by listeners that remember what they read.
type sourceTracker interface {
	Listener
	addSource(source *signalBase)
}
