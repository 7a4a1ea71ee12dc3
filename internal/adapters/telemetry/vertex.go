package telemetry

import (
	"fmt"
	"io"

	"github.com/vito/progrock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/itinerary/internal/core/domain"
)

// Vertex implements ports.Vertex over a progrock vertex and its span.
type Vertex struct {
	vertex *progrock.VertexRecorder
	span   trace.Span
}

// Stdout returns a writer to the vertex output stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Log writes msg to the vertex output and adds it as a span event.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "[%s] %s\n", level.String(), msg)
	v.span.AddEvent(msg, trace.WithAttributes(levelKey.Int(int(level))))
}

// Complete finishes the vertex and ends the span.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
	if err != nil {
		v.span.RecordError(err)
		v.span.SetStatus(codes.Error, err.Error())
	} else {
		v.span.SetStatus(codes.Ok, "")
	}
	v.span.End()
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
	v.span.SetAttributes(attribute.Bool("cached", true))
}
