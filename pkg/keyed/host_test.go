package keyed

import "fmt"

// fakeView records the lifecycle of a single view.
type fakeView struct {
	id        int
	ctx       Context[item]
	destroyed bool
	updates   int
}

type item struct {
	K int
	V string
}

// fakeHost is an ordered slice of views with call counters.
type fakeHost struct {
	views   []*fakeView
	nextID  int
	creates int
	moves   int
	destroy int
	updates int
}

func (h *fakeHost) CreateView(index int, ctx Context[item]) *fakeView {
	h.nextID++
	h.creates++
	v := &fakeView{id: h.nextID, ctx: ctx}
	h.insert(v, index)
	return v
}

func (h *fakeHost) MoveView(v *fakeView, index int) {
	if v.destroyed {
		panic(fmt.Sprintf("move of destroyed view %d", v.id))
	}
	h.moves++
	h.remove(v)
	h.insert(v, index)
}

func (h *fakeHost) DestroyView(v *fakeView) {
	if v.destroyed {
		panic(fmt.Sprintf("view %d destroyed twice", v.id))
	}
	h.destroy++
	v.destroyed = true
	h.remove(v)
}

func (h *fakeHost) UpdateContext(v *fakeView, ctx Context[item]) {
	if v.destroyed {
		panic(fmt.Sprintf("update of destroyed view %d", v.id))
	}
	h.updates++
	v.updates++
	v.ctx = ctx
}

func (h *fakeHost) IndexOf(v *fakeView) int {
	for i, cur := range h.views {
		if cur == v {
			return i
		}
	}
	return -1
}

func (h *fakeHost) insert(v *fakeView, index int) {
	if index > len(h.views) {
		index = len(h.views)
	}
	h.views = append(h.views, nil)
	copy(h.views[index+1:], h.views[index:])
	h.views[index] = v
}

func (h *fakeHost) remove(v *fakeView) {
	i := h.IndexOf(v)
	if i < 0 {
		return
	}
	h.views = append(h.views[:i], h.views[i+1:]...)
}

func (h *fakeHost) values() []string {
	out := make([]string, len(h.views))
	for i, v := range h.views {
		out[i] = v.ctx.Item.V
	}
	return out
}

func (h *fakeHost) reset() {
	h.creates, h.moves, h.destroy, h.updates = 0, 0, 0, 0
}

func items(vals ...string) []item {
	out := make([]item, len(vals))
	for i, v := range vals {
		out[i] = item{K: int(v[0]), V: v}
	}
	return out
}

func byK(_ int, it item) int { return it.K }

func byValue(_ int, it item) string { return it.V }
