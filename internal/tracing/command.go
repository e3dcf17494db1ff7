package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartCommand opens the root span for one CLI invocation. The returned
// finish func ends it, recording err when non-nil.
func StartCommand(ctx context.Context, tracer trace.Tracer, path string, args []string) (context.Context, func(err error)) {
	ctx, span := tracer.Start(ctx, SpanPrefixCommand+strings.ReplaceAll(path, " ", "."),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(AttrCommandPath, path),
			attribute.Int(AttrCommandArgs, len(args)),
		),
	)
	return ctx, func(err error) {
		End(span, err)
	}
}

// End sets the span status from err and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
