// Package middleware provides the observability layer of loadboard.
//
// # Prometheus Metrics
//
// Metrics collects:
//   - loadboard_reconcile_passes_total: keyed passes by list
//   - loadboard_reconcile_views_total: view operations by list and op
//   - loadboard_reconcile_duration_seconds: pass duration histogram
//   - loadboard_http_requests_total and loadboard_http_request_duration_seconds
//   - loadboard_active_sessions: current live sessions
//   - loadboard_patches_sent_total: patches written to clients
//   - loadboard_events_total: client events by type and status
//   - loadboard_catalog_reloads_total: fixture reloads by result
//
// Metrics implements keyed.Observer, so it can be handed to any keyed list:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	list := keyed.New[T, K, V](host, keyed.WithObserver(m))
//
// Every recording method is a no-op on a nil *Metrics.
//
// # OpenTelemetry
//
// Tracing starts a server span per HTTP request and names it after the chi
// route pattern. TraceEvent and TraceReconcile wrap session work in child
// spans. Spans come from the global tracer provider unless one is passed
// with WithTracerProvider.
package middleware
