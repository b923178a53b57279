// Package vdom provides the server-side virtual DOM used by loadboard.
//
// VNode trees are built with element factories and rendered to HTML by the
// render package. Once a tree is live in a browser, changes travel as Patch
// operations addressed by hydration id (HID).
//
//	Div(Class("card"),
//	    H2(Text("Yuklama taqsimoti")),
//	    Select(ID("group-select"), OnChange(handler), options),
//	)
//
// # Diffing
//
// Diff compares two trees and returns the patches that turn one into the
// other. Children carrying keys are matched by key.
//
// # Containers
//
// Container is a keyed.Host backed by the children of one element. Each view
// is the root VNode produced by a Template; creating, moving, re-binding and
// destroying views records the matching patches for the session to flush.
package vdom
