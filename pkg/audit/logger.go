// Package audit records warehouse query events for operational review.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Logger defines the interface for recording query events. Implementations
// must never fail the request path; Log errors are surfaced to the caller
// for logging only.
type Logger interface {
	// Log records a query event.
	Log(ctx context.Context, event Event) error

	// Query retrieves recorded events matching the filter.
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)

	// Close releases resources.
	Close() error
}

// Event is a single recorded warehouse query.
type Event struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	DurationMS   int64          `json:"duration_ms"`
	RequestID    string         `json:"request_id,omitempty"`
	Operation    string         `json:"operation"`
	Hostname     string         `json:"hostname,omitempty"`
	MacAddress   string         `json:"mac_address,omitempty"`
	Table        string         `json:"table,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty"`
	Success      bool           `json:"success"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// QueryFilter defines criteria for querying recorded events.
type QueryFilter struct {
	StartTime *time.Time
	EndTime   *time.Time
	Operation string
	Hostname  string
	Success   *bool
	Limit     int
	Offset    int
}

// SlogLogger writes events to the process log. It retains nothing, so Query
// is unsupported.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a log-only event recorder.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

// Log writes the event as a structured log line.
func (l *SlogLogger) Log(_ context.Context, event Event) error {
	l.logger.Info("query event",
		"event_id", event.ID,
		"operation", event.Operation,
		"request_id", event.RequestID,
		"hostname", event.Hostname,
		"mac_address", event.MacAddress,
		"table", event.Table,
		"success", event.Success,
		"duration_ms", event.DurationMS,
		"error", event.ErrorMessage,
	)
	return nil
}

// Query is unsupported for the log-only recorder.
func (*SlogLogger) Query(context.Context, QueryFilter) ([]Event, error) {
	return nil, errors.New("slog audit logger does not retain events")
}

// Close is a no-op.
func (*SlogLogger) Close() error { return nil }

// Nop discards all events.
type Nop struct{}

// Log discards the event.
func (Nop) Log(context.Context, Event) error { return nil }

// Query returns no events.
func (Nop) Query(context.Context, QueryFilter) ([]Event, error) { return nil, nil }

// Close is a no-op.
func (Nop) Close() error { return nil }

// Verify interface compliance.
var (
	_ Logger = (*SlogLogger)(nil)
	_ Logger = Nop{}
)
