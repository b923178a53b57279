// Package dashboard composes the workload dashboard page.
//
// A Page owns one viewer's virtual DOM tree. The group <select> options and
// the chart panels are keyed lists bound to the viewer's workload.Store with
// vango.For, so selecting a group or reloading the catalog turns into a
// minimal batch of patches:
//
//	page := dashboard.NewPage(store, dashboard.Options{})
//	page.HandleEvent(vdom.Event{Type: "change", HID: page.SelectHID(), Value: "stg-2"})
//	patches := page.Flush()
//
// A Page is used from one goroutine at a time; the server serializes calls
// per session.
package dashboard
