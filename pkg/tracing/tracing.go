package tracing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attributes recorded on action and call spans
const (
	AttrActionType  = attribute.Key("collably.action.type")
	AttrActionToken = attribute.Key("collably.action.token")
	AttrSlice       = attribute.Key("collably.store.slice")
	AttrOp          = attribute.Key("collably.store.op")
	AttrRoute       = attribute.Key("collably.api.route")
	AttrMethod      = attribute.Key("http.request.method")
	AttrPath        = attribute.Key("url.template")
)

var tracer trace.Tracer

// SetTracer sets the tracer to be used for tracing.
func SetTracer(t trace.Tracer) {
	tracer = t
}

// GetActiveSpan returns the active span from the context.
func GetActiveSpan(ctx context.Context) trace.Span {
	if tracer == nil {
		return nil
	}
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}
	return span
}

// StartSpan starts a new span with the given name and returns the context and span.
func StartSpan(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// StartAction starts the span covering one run of an async action
func StartAction(ctx context.Context, actionType, slice, op, token string) (context.Context, trace.Span) {
	return StartSpan(ctx, "action "+actionType,
		AttrActionType.String(actionType),
		AttrSlice.String(slice),
		AttrOp.String(op),
		AttrActionToken.String(token),
	)
}

// StartCall starts the span for one route table call. Inside an action it nests under the action span.
func StartCall(ctx context.Context, routeKey, method, path string) (context.Context, trace.Span) {
	return StartSpan(ctx, "call "+routeKey,
		AttrRoute.String(routeKey),
		AttrMethod.String(method),
		AttrPath.String(path),
	)
}

// EndSpan ends the span. A cancellation is recorded as an event; any other error marks the span failed.
func EndSpan(span trace.Span, err error) {
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		span.AddEvent("canceled")
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetTraceID returns the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	span := GetActiveSpan(ctx)
	if span == nil {
		return ""
	}
	return span.SpanContext().TraceID().String()
}
