// Package tracing provides an OpenTelemetry span policy for SafetyNet
// chains. It is entirely optional; the core packages carry no tracing of
// their own beyond the breaker's state-change hook.
package tracing

import (
	"context"

	gss "github.com/Keksclan/goSafeSquirrel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the OpenTelemetry configuration used by the span policy.
type Config struct {
	// TracerProvider supplies the Tracer used to create spans. When nil the
	// global otel.GetTracerProvider() is used.
	TracerProvider trace.TracerProvider
}

// tracer returns a configured [trace.Tracer].
func (c *Config) tracer() trace.Tracer {
	tp := c.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer("github.com/Keksclan/goSafeSquirrel/tracing")
}

// Policy wraps each execution of an operation in a span. Place it first in
// a SafetyNet so the span covers every retry and breaker decision made by
// the inner policies.
type Policy struct {
	cfg      *Config
	spanName string
}

// NewPolicy creates a span policy. If cfg is nil the policy is a no-op
// passthrough.
func NewPolicy(cfg *Config, spanName string) *Policy {
	return &Policy{cfg: cfg, spanName: spanName}
}

// Wrap implements the root package's Policy contract.
func (p *Policy) Wrap(next gss.Operation) gss.Operation {
	if p.cfg == nil {
		return next
	}
	return func(ctx context.Context) (any, error) {
		ctx, span := p.cfg.tracer().Start(ctx, p.spanName, trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()

		res, err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		span.SetStatus(codes.Ok, "")
		return res, nil
	}
}
