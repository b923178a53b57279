package vdom

import "maps"

// Clone returns a deep copy of the tree. Prop values are shared.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	out := *v
	out.Props = maps.Clone(v.Props)
	if v.Children != nil {
		out.Children = make([]*VNode, len(v.Children))
		for i, c := range v.Children {
			out.Children[i] = c.Clone()
		}
	}
	return &out
}
