package audit

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	before := time.Now()
	event := NewEvent("validate_sensor_lla")

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "validate_sensor_lla", event.Operation)
	assert.False(t, event.Timestamp.Before(before))
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	a := NewEvent("op")
	b := NewEvent("op")

	assert.NotEqual(t, a.ID, b.ID)
}

func TestEvent_Chaining(t *testing.T) {
	event := NewEvent("query_device_metadata").
		WithRequestID("req-1").
		WithDevice("f4d_test", "aaaaaaaaaaaa").
		WithTable("iucc-f4d.f4d_test.aaaaaaaaaaaa_metadata").
		WithParameters(map[string]any{"lla": "fd00"}).
		WithResult(true, "", 42)

	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, "f4d_test", event.Hostname)
	assert.Equal(t, "aaaaaaaaaaaa", event.MacAddress)
	assert.Equal(t, "iucc-f4d.f4d_test.aaaaaaaaaaaa_metadata", event.Table)
	assert.Equal(t, map[string]any{"lla": "fd00"}, event.Parameters)
	assert.True(t, event.Success)
	assert.Empty(t, event.ErrorMessage)
	assert.Equal(t, int64(42), event.DurationMS)
}

func TestSlogLogger(t *testing.T) {
	logger := NewSlogLogger(slog.Default())

	err := logger.Log(context.Background(), *NewEvent("op"))
	require.NoError(t, err)

	_, err = logger.Query(context.Background(), QueryFilter{})
	assert.Error(t, err)

	assert.NoError(t, logger.Close())
}

func TestNop(t *testing.T) {
	var logger Logger = Nop{}

	require.NoError(t, logger.Log(context.Background(), *NewEvent("op")))

	events, err := logger.Query(context.Background(), QueryFilter{})
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.NoError(t, logger.Close())
}
