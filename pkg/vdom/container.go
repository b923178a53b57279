package vdom

import (
	"sync"

	"github.com/vango-dev/loadboard/pkg/keyed"
)

// Template renders the view for one item. Cleanups registered on scope run
// when the view is destroyed or re-rendered.
type Template[T any] func(ctx keyed.Context[T], scope *Scope) *VNode

// Container is a keyed.Host over the children of a parent element.
//
// Views are the root nodes returned by the template. A view pointer stays the
// same for as long as the view is live: UpdateContext re-renders into the
// existing node and records the difference as patches.
type Container[T any] struct {
	mu      sync.Mutex
	parent  *VNode
	tmpl    Template[T]
	gen     *HIDGenerator
	scopes  map[*VNode]*Scope
	patches []Patch
}

// NewContainer creates a container rendering tmpl into parent. parent must
// already carry a HID; gen supplies HIDs for new nodes.
func NewContainer[T any](parent *VNode, gen *HIDGenerator, tmpl Template[T]) *Container[T] {
	if gen == nil {
		gen = NewHIDGenerator()
	}
	if parent.HID == "" {
		parent.HID = gen.Next()
	}
	return &Container[T]{
		parent: parent,
		tmpl:   tmpl,
		gen:    gen,
		scopes: make(map[*VNode]*Scope),
	}
}

// Parent returns the element the container renders into.
func (c *Container[T]) Parent() *VNode {
	return c.parent
}

// CreateView implements keyed.Host.
func (c *Container[T]) CreateView(index int, ctx keyed.Context[T]) *VNode {
	scope := &Scope{}
	node := c.tmpl(ctx, scope)
	if node == nil {
		node = Fragment()
	}
	AssignHIDs(node, c.gen)

	c.mu.Lock()
	defer c.mu.Unlock()

	index = clamp(index, len(c.parent.Children))
	c.parent.Children = insertAt(c.parent.Children, index, node)
	c.scopes[node] = scope
	c.patches = append(c.patches, Patch{
		Op:       PatchInsertNode,
		ParentID: c.parent.HID,
		Index:    index,
		Node:     node.Clone(),
	})
	return node
}

// MoveView implements keyed.Host.
func (c *Container[T]) MoveView(view *VNode, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.indexOf(view)
	if from < 0 {
		return
	}
	children := removeAt(c.parent.Children, from)
	index = clamp(index, len(children))
	c.parent.Children = insertAt(children, index, view)
	c.patches = append(c.patches, Patch{
		Op:       PatchMoveNode,
		HID:      view.HID,
		ParentID: c.parent.HID,
		Index:    index,
	})
}

// DestroyView implements keyed.Host.
func (c *Container[T]) DestroyView(view *VNode) {
	c.mu.Lock()
	if i := c.indexOf(view); i >= 0 {
		c.parent.Children = removeAt(c.parent.Children, i)
	}
	scope := c.scopes[view]
	delete(c.scopes, view)
	c.patches = append(c.patches, Patch{Op: PatchRemoveNode, HID: view.HID})
	c.mu.Unlock()

	if scope != nil {
		scope.Release()
	}
}

// UpdateContext implements keyed.Host.
func (c *Container[T]) UpdateContext(view *VNode, ctx keyed.Context[T]) {
	scope := &Scope{}
	next := c.tmpl(ctx, scope)
	if next == nil {
		next = Fragment()
	}
	patches := Diff(view, next)
	AssignHIDs(next, c.gen)

	c.mu.Lock()
	old := c.scopes[view]
	c.scopes[view] = scope
	*view = *next
	c.patches = append(c.patches, patches...)
	c.mu.Unlock()

	if old != nil {
		old.Release()
	}
}

// IndexOf implements keyed.Host.
func (c *Container[T]) IndexOf(view *VNode) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexOf(view)
}

// Emit appends patches produced outside a pass, e.g. by event handlers.
func (c *Container[T]) Emit(p ...Patch) {
	c.mu.Lock()
	c.patches = append(c.patches, p...)
	c.mu.Unlock()
}

// Drain returns and clears the pending patches.
func (c *Container[T]) Drain() []Patch {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.patches
	c.patches = nil
	return out
}

// Pending returns the number of undrained patches.
func (c *Container[T]) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.patches)
}

// Live returns the number of views holding a scope.
func (c *Container[T]) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.scopes)
}

func (c *Container[T]) indexOf(view *VNode) int {
	for i, n := range c.parent.Children {
		if n == view {
			return i
		}
	}
	return -1
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func insertAt(s []*VNode, i int, n *VNode) []*VNode {
	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = n
	return s
}

func removeAt(s []*VNode, i int) []*VNode {
	copy(s[i:], s[i+1:])
	s[len(s)-1] = nil
	return s[:len(s)-1]
}
