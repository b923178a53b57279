package vdom

import (
	"strconv"
	"sync"
)

// HIDGenerator hands out hydration ids "h1", "h2", ...
type HIDGenerator struct {
	mu      sync.Mutex
	counter uint32
}

// NewHIDGenerator creates a generator starting at h1.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next id.
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return "h" + strconv.FormatUint(uint64(g.counter), 10)
}

// Current returns the last id number handed out.
func (g *HIDGenerator) Current() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// AssignHIDs gives an id to every element that lacks one. Text, raw and
// fragment nodes are addressed through their parent element.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	node.Walk(func(n *VNode) bool {
		if n.Kind == KindElement && n.HID == "" {
			n.HID = gen.Next()
		}
		return true
	})
}
