// Package warehouse defines the execution capability used to run parameterized
// queries against the cloud data warehouse, plus the BigQuery implementation.
package warehouse

import (
	"context"
	"errors"
	"fmt"
)

// ParamType tags the warehouse type of a bound parameter.
type ParamType string

// Supported parameter types.
const (
	TypeString ParamType = "STRING"
	TypeInt64  ParamType = "INT64"
)

// Parameter is a named, typed query parameter. Values are always bound,
// never interpolated into query text.
type Parameter struct {
	Name  string
	Type  ParamType
	Value any
}

// Row maps column names to values for a single result row.
type Row map[string]any

// Executor runs a parameterized query and returns the result rows.
// Implementations must be safe for concurrent use: a single Executor handle
// is shared by all in-flight requests.
type Executor interface {
	Query(ctx context.Context, sql string, params []Parameter) ([]Row, error)
}

// ErrTableNotFound reports that the target table does not exist. Callers
// treat this as an expected condition, not a failure.
var ErrTableNotFound = errors.New("table not found")

// BackendError wraps any warehouse failure other than a missing table.
// The message is forwarded verbatim and never parsed.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("warehouse backend: %s", e.Message)
}
