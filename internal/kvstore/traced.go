package kvstore

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/maragym/gymlog/internal/tracing"
)

// TracedBackend records a span around every call to the inner Backend.
// Spans are children of the span carried by the context given at
// construction, normally the span of the running command.
type TracedBackend struct {
	inner  Backend
	tracer trace.Tracer
	ctx    context.Context
}

var _ Backend = (*TracedBackend)(nil)

// NewTracedBackend wraps inner. ctx supplies the parent span.
func NewTracedBackend(ctx context.Context, inner Backend, tracer trace.Tracer) *TracedBackend {
	return &TracedBackend{inner: inner, tracer: tracer, ctx: context.WithoutCancel(ctx)}
}

func (t *TracedBackend) start(op, key string) trace.Span {
	_, span := t.tracer.Start(t.ctx, tracing.SpanPrefixKV+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrKVOp, op),
			attribute.String(tracing.AttrKVKey, key),
		),
	)
	return span
}

func (t *TracedBackend) Get(key string) (string, bool, error) {
	span := t.start("get", key)
	v, ok, err := t.inner.Get(key)
	span.SetAttributes(attribute.Bool(tracing.AttrKVFound, ok), attribute.Int(tracing.AttrKVBytes, len(v)))
	tracing.End(span, err)
	return v, ok, err
}

func (t *TracedBackend) Set(key, value string) error {
	span := t.start("set", key)
	span.SetAttributes(attribute.Int(tracing.AttrKVBytes, len(value)))
	err := t.inner.Set(key, value)
	tracing.End(span, err)
	return err
}

func (t *TracedBackend) Remove(key string) error {
	span := t.start("remove", key)
	err := t.inner.Remove(key)
	tracing.End(span, err)
	return err
}

func (t *TracedBackend) Close() error {
	if err := t.inner.Close(); err != nil {
		return fmt.Errorf("closing traced backend: %w", err)
	}
	return nil
}
