// Package tui shows the dashboard in a terminal.
//
// The group list and the per-category totals are keyed lists rendered
// through Rows, a keyed.Host whose views are plain text lines. Moving the
// cursor selects a group the same way the browser select does, and a
// ReloadMsg re-reads the catalog after the fixture watcher replaced it.
//
//	m := tui.New(workload.NewStore(catalog), tui.Options{})
//	_, err := tea.NewProgram(m).Run()
package tui
