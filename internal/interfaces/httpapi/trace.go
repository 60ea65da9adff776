package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	tracer       = otel.Tracer("squad-builder/internal/interfaces/httpapi")
	disabledSpan = trace.SpanFromContext(context.Background())
)

// startSpan opens a server-side child span for handler names only. Middleware
// and helper names, and requests the trace middleware skipped, get a
// non-recording span so the caller can still defer End.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !isHandlerSpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, disabledSpan
	}
	return tracer.Start(ctx, name)
}

func isHandlerSpan(name string) bool {
	op, ok := strings.CutPrefix(name, handlerSpanPrefix)
	return ok && op != ""
}
