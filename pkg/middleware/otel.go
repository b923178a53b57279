package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/loadboard/pkg/keyed"
)

// Default tracer name.
const defaultTracerName = "loadboard"

// TracingConfig configures the OpenTelemetry middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "loadboard").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider

	// Filter determines which requests to trace.
	// If nil, all requests are traced.
	Filter func(r *http.Request) bool
}

// TracingOption configures the OpenTelemetry middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = tp
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(r *http.Request) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// Tracer resolves the tracer described by opts.
func Tracer(opts ...TracingOption) trace.Tracer {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerName == "" {
		config.TracerName = defaultTracerName
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	return config.Provider.Tracer(config.TracerName)
}

// Tracing starts a server span for every request. The span is renamed to
// the matched chi route once the handler returns and carries the response
// status; 5xx responses mark it as failed.
func Tracing(opts ...TracingOption) func(http.Handler) http.Handler {
	config := TracingConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	tracer := Tracer(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Filter != nil && !config.Filter(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := tracer.Start(r.Context(), "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if rc := chi.RouteContext(ctx); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					span.SetName(fmt.Sprintf("HTTP %s %s", r.Method, p))
					span.SetAttributes(attribute.String("http.route", p))
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

// TraceEvent runs fn in a span describing one client event.
func TraceEvent(ctx context.Context, tracer trace.Tracer, sessionID, eventType, hid string, fn func(context.Context) (int, error)) error {
	ctx, span := tracer.Start(ctx, "loadboard."+eventType,
		trace.WithAttributes(
			attribute.String("loadboard.session_id", sessionID),
			attribute.String("loadboard.event_type", eventType),
			attribute.String("loadboard.event_target", hid),
		),
	)
	defer span.End()

	patches, err := fn(ctx)
	span.SetAttributes(attribute.Int("loadboard.patch_count", patches))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// TraceReconcile runs one keyed pass in a span carrying its statistics.
func TraceReconcile(ctx context.Context, tracer trace.Tracer, list string, pass func() (keyed.Stats, error)) (keyed.Stats, error) {
	_, span := tracer.Start(ctx, "keyed.reconcile",
		trace.WithAttributes(attribute.String("keyed.list", list)))
	defer span.End()

	stats, err := pass()
	span.SetAttributes(
		attribute.Int("keyed.count", stats.Count),
		attribute.Int("keyed.created", stats.Created),
		attribute.Int("keyed.destroyed", stats.Destroyed),
		attribute.Int("keyed.moved", stats.Moved),
		attribute.Int("keyed.host_moves", stats.HostMoves),
		attribute.Int("keyed.duplicates", stats.Duplicates),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return stats, err
}
