package audit

import (
	"time"

	"github.com/google/uuid"
)

// NewEvent creates an event for the named operation with a fresh id and the
// current timestamp.
func NewEvent(operation string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Operation: operation,
	}
}

// WithRequestID attaches the HTTP request id.
func (e *Event) WithRequestID(requestID string) *Event {
	e.RequestID = requestID
	return e
}

// WithDevice attaches the owner/device pair.
func (e *Event) WithDevice(hostname, macAddress string) *Event {
	e.Hostname = hostname
	e.MacAddress = macAddress
	return e
}

// WithTable attaches the fully-qualified table name that was queried.
func (e *Event) WithTable(table string) *Event {
	e.Table = table
	return e
}

// WithParameters attaches the request parameters.
func (e *Event) WithParameters(params map[string]any) *Event {
	e.Parameters = params
	return e
}

// WithResult attaches the query result summary.
func (e *Event) WithResult(success bool, errorMsg string, durationMS int64) *Event {
	e.Success = success
	e.ErrorMessage = errorMsg
	e.DurationMS = durationMS
	return e
}
