// Package telemetry records image resolutions as progrock vertices and OpenTelemetry spans.
package telemetry

import (
	"context"
	"errors"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/itinerary/internal/core/ports"
)

// InstrumentationName is the OpenTelemetry tracer name used by New.
const InstrumentationName = "go.trai.ch/itinerary"

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry.
type Recorder struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	tracer trace.Tracer
	// provider is set when the Recorder owns its tracer provider.
	provider *sdktrace.TracerProvider

	closeOnce sync.Once
	closeErr  error
}

// New creates a Recorder writing to an in-memory tape. It installs a tracer provider whose
// spans report their warnings and errors to logger.
func New(logger ports.Logger) *Recorder {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	)
	otel.SetTracerProvider(tp)

	r := NewRecorder(progrock.NewTape(), tp.Tracer(InstrumentationName))
	r.provider = tp
	return r
}

// NewRecorder creates a Recorder with the given writer and tracer.
func NewRecorder(w progrock.Writer, tracer trace.Tracer) *Recorder {
	return &Recorder{
		w:      w,
		rec:    progrock.NewRecorder(w),
		tracer: tracer,
	}
}

// Record starts a vertex and a span named name.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	ctx, span := r.tracer.Start(ctx, name)
	v := r.rec.Vertex(digest.FromString(name), name)
	return ctx, &Vertex{vertex: v, span: span}
}

// Close flushes and closes the recording session. Later calls return the first result.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		if c, ok := r.w.(interface{ Close() error }); ok {
			r.closeErr = c.Close()
		}
		if r.provider != nil {
			r.closeErr = errors.Join(r.closeErr, r.provider.Shutdown(context.Background()))
		}
	})
	return r.closeErr
}
