package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/config"
	"naturekids/infras/otel"
	"naturekids/infras/otel/mocks"
)

func TestNew_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "naturekids"

	tracer := otel.New(cfg)

	ctx, scope := tracer.NewScope(context.Background(), "service", "service.Checkout")
	require.NotNil(t, ctx)

	scope.SetAttributes(map[string]any{
		"activity_id":  int64(1),
		"participants": 3,
		"rating":       4.5,
		"owner":        "1",
		"paid":         true,
		"times":        []string{"09:00 AM"},
	})
	scope.AddEvent("charged")
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("declined"))
	scope.End()

	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func TestAttribute(t *testing.T) {
	assert.Equal(t, "1050", otel.Attribute("total", int64(1050)).Value.Emit())
	assert.Equal(t, "true", otel.Attribute("paid", true).Value.Emit())
	assert.Equal(t, int64(2000), otel.Attribute("delay", 2*time.Second).Value.AsInt64())
	assert.Equal(t, "delay.ms", string(otel.Attribute("delay", 2*time.Second).Key))
	assert.Equal(t, "{upcoming}", otel.Attribute("status", struct{ s string }{"upcoming"}).Value.AsString())
}

func TestRecorder(t *testing.T) {
	recorder := mocks.NewRecorder()

	_, scope := recorder.NewScope(context.Background(), "service", "service.Cancel")
	scope.SetAttribute("booking.id", "b-1")
	scope.AddEvent("cancelled")
	scope.TraceIfError(errors.New("boom"))
	scope.End()

	span, ok := recorder.Span("service.Cancel")
	require.True(t, ok)
	assert.True(t, span.Ended)
	assert.Equal(t, "b-1", span.Attributes["booking.id"])
	assert.Equal(t, []string{"cancelled"}, span.Events)
	require.Len(t, span.Errors, 1)

	_, ok = recorder.Span("missing")
	assert.False(t, ok)
}
