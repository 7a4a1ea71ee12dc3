package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/itinerary/internal/adapters/telemetry"
	"go.trai.ch/itinerary/internal/core/domain"
	"go.trai.ch/itinerary/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRecorder(t *testing.T) (*telemetry.Recorder, *tracetest.SpanRecorder) {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	return telemetry.NewRecorder(progrock.NewTape(), tp.Tracer("test")), spans
}

func TestRecorder_SuccessfulVertex(t *testing.T) {
	rec, spans := newRecorder(t)

	_, v := rec.Record(context.Background(), "resolve /images/a.jpg")
	_, err := v.Stdout().Write([]byte("attempt 1\n"))
	require.NoError(t, err)
	v.Log(domain.LogLevelInfo, "loaded")
	v.Complete(nil)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "resolve /images/a.jpg", ended[0].Name())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "loaded", ended[0].Events()[0].Name)

	require.NoError(t, rec.Close())
}

func TestRecorder_FailedVertex(t *testing.T) {
	rec, spans := newRecorder(t)

	_, v := rec.Record(context.Background(), "resolve /images/b.jpg")
	v.Complete(errors.New("boom"))

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestRecorder_CachedVertex(t *testing.T) {
	rec, spans := newRecorder(t)

	_, v := rec.Record(context.Background(), "resolve /images/c.jpg")
	v.Cached()
	v.Complete(nil)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	var cached bool
	for _, kv := range ended[0].Attributes() {
		if kv.Key == "cached" {
			cached = kv.Value.AsBool()
		}
	}
	assert.True(t, cached)
}

func TestNew_ReportsWarningsToLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("display /images/b.jpg: showing placeholder for /images/b.jpg")

	rec := telemetry.New(log)
	_, v := rec.Record(context.Background(), "display /images/b.jpg")
	v.Log(domain.LogLevelInfo, "attempt 1")
	v.Log(domain.LogLevelWarn, "showing placeholder for /images/b.jpg")
	v.Complete(nil)

	assert.NoError(t, rec.Close())
	assert.NoError(t, rec.Close())
}

func TestBridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		log.EXPECT().Warn("download Visa: retrying"),
		log.EXPECT().Error(gomock.Any()).Do(func(err error) {
			assert.EqualError(t, err, "download Visa: gave up")
		}),
	)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	rec := telemetry.NewRecorder(progrock.NewTape(), tp.Tracer("test"))

	_, v := rec.Record(context.Background(), "download Visa")
	v.Log(domain.LogLevelDebug, "attempt 1")
	v.Log(domain.LogLevelWarn, "retrying")
	v.Log(domain.LogLevelError, "gave up")
	v.Complete(errors.New("HTTP Error: 404"))
}
