package metadata

import (
	"errors"

	"github.com/iucc-f4d/metadata-api/pkg/warehouse"
)

// OutcomeKind categorizes the result of a single warehouse query.
type OutcomeKind int

// Outcome categories. Exactly one applies per query.
const (
	// OutcomeFound means the target value matched at least one row.
	OutcomeFound OutcomeKind = iota
	// OutcomeNotFound means the query ran but matched nothing.
	OutcomeNotFound
	// OutcomeTableAbsent means the metadata table does not exist. Whether
	// this is an error depends on the request path: validation treats it as
	// a legitimate negative, listing as a 404.
	OutcomeTableAbsent
	// OutcomeBackendError covers every other warehouse failure.
	OutcomeBackendError
)

// Outcome classifies a single query execution.
type Outcome struct {
	Kind    OutcomeKind
	Count   int64  // populated for OutcomeFound
	Message string // populated for OutcomeBackendError
}

// classifyExecution maps an executor error onto an outcome.
func classifyExecution(err error) Outcome {
	if errors.Is(err, warehouse.ErrTableNotFound) {
		return Outcome{Kind: OutcomeTableAbsent}
	}

	var backendErr *warehouse.BackendError
	if errors.As(err, &backendErr) {
		return Outcome{Kind: OutcomeBackendError, Message: backendErr.Message}
	}
	return Outcome{Kind: OutcomeBackendError, Message: err.Error()}
}

// classifyCount maps a validation COUNT result onto an outcome. Counts above
// one are expected: a sensor may exist in multiple historical records.
func classifyCount(count int64) Outcome {
	if count >= 1 {
		return Outcome{Kind: OutcomeFound, Count: count}
	}
	return Outcome{Kind: OutcomeNotFound}
}

// countFromRows extracts the COUNT(*) value from a single-row result set.
func countFromRows(rows []warehouse.Row) int64 {
	if len(rows) == 0 {
		return 0
	}

	switch v := rows[0]["count"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
