// Package server serves the dashboard over HTTP and keeps one live session
// per websocket connection.
//
// GET / renders the page. The client script then dials /live, where the
// session builds its own dashboard.Page, answers with a Hello frame and a
// ReplaceNode patch for the whole tree, and from then on sends only the
// patches produced by client events and catalog reloads.
//
// Each session runs three goroutines:
//
//	ReadLoop   decodes frames and queues events
//	EventLoop  owns the page: handles events, flushes patches
//	PingLoop   sends websocket pings and protocol Ping frames
//
// All page access happens on EventLoop, so the reactive graph of a session
// is only ever touched by one goroutine at a time.
//
// The JSON routes under /api expose the catalog to tools that do not speak
// the live protocol:
//
//	GET /api/groups              group ids and names
//	GET /api/groups/{id}         one group with its series
//	GET /api/groups/{id}/charts  the panels and chart options for a group
package server
