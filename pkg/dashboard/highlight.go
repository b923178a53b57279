package dashboard

import (
	"sync/atomic"

	"github.com/vango-dev/loadboard/pkg/vdom"
)

// Highlight paints an element's background while the pointer is over it.
type Highlight struct {
	color    string
	sink     vdom.PatchSink
	attached atomic.Int64
}

// NewHighlight emits its style patches to sink.
func NewHighlight(color string, sink vdom.PatchSink) *Highlight {
	return &Highlight{color: color, sink: sink}
}

// Color returns the highlight color.
func (h *Highlight) Color() string { return h.color }

// Attached returns the number of live attachments.
func (h *Highlight) Attached() int { return int(h.attached.Load()) }

// Attach registers pointer handlers on el. They stop emitting and the
// attachment is counted off when scope is released.
func (h *Highlight) Attach(el *vdom.VNode, scope *vdom.Scope) {
	var released atomic.Bool
	h.attached.Add(1)
	scope.OnCleanup(func() {
		released.Store(true)
		h.attached.Add(-1)
	})

	if el.Props == nil {
		el.Props = make(vdom.Props)
	}
	el.Props["onpointerenter"] = vdom.Handler(func(vdom.Event) {
		if released.Load() {
			return
		}
		h.sink.Emit(vdom.Patch{Op: vdom.PatchSetStyle, HID: el.HID, Key: "background-color", Value: h.color})
	})
	el.Props["onpointerleave"] = vdom.Handler(func(vdom.Event) {
		if released.Load() {
			return
		}
		h.sink.Emit(vdom.Patch{Op: vdom.PatchRemoveStyle, HID: el.HID, Key: "background-color"})
	})
}
