package vdom

import (
	"fmt"
	"strconv"
)

// Diff compares two trees and returns the patches that transform prev into
// next. HIDs are carried from prev to next for every node that survives.
func Diff(prev, next *VNode) []Patch {
	var patches []Patch
	diff(prev, next, "", &patches)
	return patches
}

// parentHID addresses text and raw children, which have no HID of their own.
func diff(prev, next *VNode, parentHID string, patches *[]Patch) {
	if prev == nil {
		return
	}
	if next == nil {
		*patches = append(*patches, Patch{Op: PatchRemoveNode, HID: prev.HID})
		return
	}
	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		target := prev.HID
		if target == "" {
			target = parentHID
		}
		*patches = append(*patches, Patch{Op: PatchReplaceNode, HID: target, Node: next})
		return
	}

	next.HID = prev.HID
	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			*patches = append(*patches, Patch{Op: PatchSetText, HID: textTarget(prev, parentHID), Value: next.Text})
		}
	case KindRaw:
		if prev.Text != next.Text {
			*patches = append(*patches, Patch{Op: PatchReplaceNode, HID: textTarget(prev, parentHID), Node: next})
		}
	case KindElement:
		diffProps(prev, next, patches)
		diffChildren(prev, next, prev.HID, patches)
	case KindFragment:
		diffChildren(prev, next, parentHID, patches)
	}
}

func textTarget(n *VNode, parentHID string) string {
	if n.HID != "" {
		return n.HID
	}
	return parentHID
}

func diffProps(prev, next *VNode, patches *[]Patch) {
	for key, prevVal := range prev.Props {
		if isEventProp(key) {
			continue
		}
		nextVal, ok := next.Props[key]
		switch {
		case !ok || isFalse(nextVal):
			if !isFalse(prevVal) {
				*patches = append(*patches, removeProp(prev.HID, key))
			}
		case !propsEqual(prevVal, nextVal):
			*patches = append(*patches, setProp(prev.HID, key, nextVal))
		}
	}
	for key, nextVal := range next.Props {
		if isEventProp(key) || isFalse(nextVal) {
			continue
		}
		if prevVal, ok := prev.Props[key]; !ok || isFalse(prevVal) {
			*patches = append(*patches, setProp(prev.HID, key, nextVal))
		}
	}
}

func setProp(hid, key string, v any) Patch {
	return Patch{Op: PatchSetAttr, HID: hid, Key: key, Value: PropString(v)}
}

func removeProp(hid, key string) Patch {
	return Patch{Op: PatchRemoveAttr, HID: hid, Key: key}
}

func isFalse(v any) bool {
	b, ok := v.(bool)
	return v == nil || (ok && !b)
}

func diffChildren(prev, next *VNode, parentHID string, patches *[]Patch) {
	if hasKeys(prev.Children) || hasKeys(next.Children) {
		diffKeyedChildren(prev, next.Children, parentHID, patches)
		return
	}
	p, n := prev.Children, next.Children
	for i := 0; i < max(len(p), len(n)); i++ {
		switch {
		case i >= len(p):
			*patches = append(*patches, Patch{Op: PatchInsertNode, ParentID: prev.HID, Index: i, Node: n[i]})
		case i >= len(n):
			*patches = append(*patches, Patch{Op: PatchRemoveNode, HID: p[i].HID})
		default:
			diff(p[i], n[i], parentHID, patches)
		}
	}
}

func diffKeyedChildren(parent *VNode, next []*VNode, parentHID string, patches *[]Patch) {
	prev := parent.Children
	prevIdx := make(map[string]int, len(prev))
	for i, c := range prev {
		if c.Key != "" {
			prevIdx[c.Key] = i
		}
	}

	matched := make(map[int]bool, len(prev))
	var inserts, moves []Patch
	for i, nc := range next {
		j, ok := prevIdx[nc.Key]
		if nc.Key == "" || !ok || matched[j] {
			inserts = append(inserts, Patch{Op: PatchInsertNode, ParentID: parent.HID, Index: i, Node: nc})
			continue
		}
		matched[j] = true
		if j != i {
			moves = append(moves, Patch{Op: PatchMoveNode, HID: prev[j].HID, ParentID: parent.HID, Index: i})
		}
		diff(prev[j], nc, parentHID, patches)
	}
	// Removals first so move and insert indices refer to the final list.
	var removes []Patch
	for i, c := range prev {
		if !matched[i] {
			removes = append(removes, Patch{Op: PatchRemoveNode, HID: c.HID})
		}
	}
	*patches = append(*patches, removes...)
	*patches = append(*patches, moves...)
	*patches = append(*patches, inserts...)
}

func hasKeys(children []*VNode) bool {
	for _, c := range children {
		if c != nil && c.Key != "" {
			return true
		}
	}
	return false
}

func propsEqual(a, b any) bool {
	return PropString(a) == PropString(b)
}

// PropString formats a prop value the way it appears in HTML. Boolean true
// renders as the empty string.
func PropString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return ""
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
