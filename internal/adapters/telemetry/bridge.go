package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports"
)

// levelKey is the span event attribute holding the domain.LogLevel of a vertex message.
const levelKey attribute.Key = "level"

// Bridge implements sdktrace.SpanProcessor and reports the messages logged on a span at
// MinLevel or above to a logger when the span ends.
type Bridge struct {
	logger   ports.Logger
	minLevel domain.LogLevel
}

// NewBridge returns a Bridge forwarding warnings and errors to logger.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger, minLevel: domain.LogLevelWarn}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	for _, ev := range s.Events() {
		level, ok := eventLevel(ev.Attributes)
		if !ok || level < b.minLevel {
			continue
		}
		msg := s.Name() + ": " + ev.Name
		if level >= domain.LogLevelError {
			b.logger.Error(errors.New(msg))
			continue
		}
		b.logger.Warn(msg)
	}
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func eventLevel(attrs []attribute.KeyValue) (domain.LogLevel, bool) {
	for _, kv := range attrs {
		if kv.Key == levelKey {
			return domain.LogLevel(kv.Value.AsInt64()), true
		}
	}
	return 0, false
}
