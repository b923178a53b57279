package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <select>, ...
	KindText                  // text node
	KindFragment              // children without a wrapper
	KindRaw                   // trusted HTML
)

// String returns the kind name.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a virtual DOM node.
type VNode struct {
	Kind     VKind
	Tag      string
	Props    Props
	Children []*VNode
	Key      string
	Text     string
	HID      string
}

// Props holds attributes and event handlers. Handler props start with "on".
type Props map[string]any

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty reports whether the attribute carries no key.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// IsInteractive reports whether the node carries an event handler.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if isEventProp(key) {
			return true
		}
	}
	return false
}

// Handler returns the handler registered for event, e.g. "change".
func (v *VNode) Handler(event string) (Handler, bool) {
	if v == nil || v.Props == nil {
		return nil, false
	}
	h, ok := v.Props["on"+event].(Handler)
	return h, ok
}

// Events returns the names of the events the node listens to.
func (v *VNode) Events() []string {
	if v == nil {
		return nil
	}
	var out []string
	for key := range v.Props {
		if isEventProp(key) {
			out = append(out, strings.ToLower(key[2:]))
		}
	}
	return out
}

// Find returns the first node in the tree with the given HID.
func (v *VNode) Find(hid string) *VNode {
	if v == nil || hid == "" {
		return nil
	}
	if v.HID == hid {
		return v
	}
	for _, c := range v.Children {
		if n := c.Find(hid); n != nil {
			return n
		}
	}
	return nil
}

// Walk calls fn for every node in depth-first order until fn returns false.
func (v *VNode) Walk(fn func(*VNode) bool) bool {
	if v == nil {
		return true
	}
	if !fn(v) {
		return false
	}
	for _, c := range v.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// isEventProp is case-insensitive so "onClick" and "ONCLICK" never leak
// into rendered attributes.
func isEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}
