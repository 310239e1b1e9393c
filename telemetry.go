package keyring

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/rbaliyan/keyring"

const (
	opEncrypt        = "encrypt"
	opDecrypt        = "decrypt"
	opNeedsReEncrypt = "needs_re_encrypt"
)

// telemetry records a counter, a duration histogram and a span per operation.
type telemetry struct {
	tracer     trace.Tracer
	operations metric.Int64Counter
	duration   metric.Float64Histogram
}

func newTelemetry(mp metric.MeterProvider, tp trace.TracerProvider) (*telemetry, error) {
	meter := mp.Meter(instrumentationName)

	operations, err := meter.Int64Counter(
		"keyring_operations_total",
		metric.WithDescription("Total number of keyring operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("keyring: failed to create operation counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"keyring_operation_duration_seconds",
		metric.WithDescription("Duration of keyring operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("keyring: failed to create duration histogram: %w", err)
	}

	return &telemetry{
		tracer:     tp.Tracer(instrumentationName),
		operations: operations,
		duration:   duration,
	}, nil
}

// start begins an operation and returns a context carrying its span. The returned
// func must be called exactly once with the key id involved (empty if unknown) and
// the operation's error.
func (t *telemetry) start(ctx context.Context, operation, group string) (context.Context, func(keyID string, err error)) {
	begin := time.Now()
	ctx, span := t.tracer.Start(ctx, "keyring."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("keyring.key_group", group)),
	)

	return ctx, func(keyID string, err error) {
		status := statusOf(err)
		if keyID != "" {
			span.SetAttributes(attribute.String("keyring.key_id", keyID))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, status)
		}
		span.End()

		attrs := metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("key_group", group),
			attribute.String("status", status),
		)
		t.operations.Add(ctx, 1, attrs)
		t.duration.Record(ctx, time.Since(begin).Seconds(), attrs)
	}
}

// statusOf maps an error to a low-cardinality status label.
func statusOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsUnknownKeyID(err):
		return "unknown_key_id"
	case IsInvalidEnvelope(err):
		return "invalid_envelope"
	case IsAuthenticationFailed(err):
		return "authentication_failed"
	case IsNoActiveKey(err):
		return "no_active_key"
	default:
		return "error"
	}
}
