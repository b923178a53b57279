package vango

import (
	"runtime"
	"sync"
)

// trackingContext is the reactive state of one goroutine.
type trackingContext struct {
	owner      *Owner
	listener   Listener
	batchDepth int
	pending    []Listener
}

var trackingContexts sync.Map

// goroutineID parses the id from the "goroutine N [" stack header.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func currentTracking() *trackingContext {
	gid := goroutineID()
	if tc, ok := trackingContexts.Load(gid); ok {
		return tc.(*trackingContext)
	}
	tc := &trackingContext{}
	trackingContexts.Store(gid, tc)
	return tc
}

func getCurrentListener() Listener {
	return currentTracking().listener
}

func setCurrentListener(l Listener) Listener {
	tc := currentTracking()
	old := tc.listener
	tc.listener = l
	return old
}

func getCurrentOwner() *Owner {
	return currentTracking().owner
}

func setCurrentOwner(o *Owner) *Owner {
	tc := currentTracking()
	old := tc.owner
	tc.owner = o
	return old
}

// trackRead subscribes the current listener to source.
func trackRead(source *signalBase) {
	l := getCurrentListener()
	if l == nil {
		return
	}
	source.subscribe(l)
	if st, ok := l.(sourceTracker); ok {
		st.addSource(source)
	}
}

// WithOwner runs fn with owner as the current owner.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// CurrentOwner returns the owner of the calling goroutine, or nil.
func CurrentOwner() *Owner {
	return getCurrentOwner()
}

// Release drops the tracking context of the calling goroutine. Long-lived
// goroutines that touched reactive state call it before exiting.
func Release() {
	trackingContexts.Delete(goroutineID())
}
