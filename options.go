package keyring

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures an Encryptor.
type Option func(*options)

type options struct {
	cipher         Cipher
	logger         *slog.Logger
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

func defaultOptions() options {
	return options{
		cipher:         XChaCha20Poly1305(),
		logger:         slog.New(slog.DiscardHandler),
		meterProvider:  otel.GetMeterProvider(),
		tracerProvider: otel.GetTracerProvider(),
	}
}

// WithCipher sets the authenticated cipher. Defaults to XChaCha20Poly1305.
// Envelopes carry no algorithm marker, so every encryptor sharing stored
// envelopes must use the same cipher.
func WithCipher(c Cipher) Option {
	return func(o *options) {
		if c != nil {
			o.cipher = c
		}
	}
}

// WithLogger sets the logger. Records carry key groups and key ids, never key
// material or plaintext. Logging is disabled by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider. Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}
