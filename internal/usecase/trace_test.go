package usecase

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

type markerKey struct{}

func TestStartUsecaseSpan_UntracedContextPassesThrough(t *testing.T) {
	ctx := context.WithValue(context.Background(), markerKey{}, "marker")

	got, span := startUsecaseSpan(ctx, "usecase.LineupService.Generate")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected the caller context back")
	}
	if span.SpanContext().IsValid() || span.IsRecording() {
		t.Fatalf("expected a non-recording span without a parent")
	}
}

func TestStartUsecaseSpan_KeepsParentTrace(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x0a, 0x01},
		SpanID:     trace.SpanID{0x0b, 0x01},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	got, span := startUsecaseSpan(ctx, "usecase.CardService.Analyze")
	defer span.End()

	if trace.SpanContextFromContext(got).TraceID() != parent.TraceID() {
		t.Fatalf("expected child context to keep trace %s", parent.TraceID())
	}

	blankCtx, blank := startUsecaseSpan(ctx, "  ")
	defer blank.End()
	if blankCtx != ctx {
		t.Fatalf("expected a blank span name to leave ctx untouched")
	}
}
