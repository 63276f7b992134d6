package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/iucc-f4d/metadata-api/pkg/audit"
	"github.com/iucc-f4d/metadata-api/pkg/warehouse"
)

// ErrTableAbsent reports that the metadata table for the requested device
// does not exist. The HTTP layer maps this to 404 on the listing and dump
// paths; the validation path never returns it.
var ErrTableAbsent = errors.New("metadata table not found")

// Service runs metadata queries against the warehouse. It is stateless per
// request; the executor handle is shared across concurrent requests.
type Service struct {
	project string
	exec    warehouse.Executor
	auditor audit.Logger
	logger  *slog.Logger
}

// NewService creates a Service. The executor is a required dependency;
// auditor and logger fall back to no-op and the default logger.
func NewService(project string, exec warehouse.Executor, auditor audit.Logger, logger *slog.Logger) *Service {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		project: project,
		exec:    exec,
		auditor: auditor,
		logger:  logger,
	}
}

// ValidationResult is the always-returned value of the validation path.
// Backend failures are carried in Error rather than raised, so callers
// receive a structured result regardless of warehouse state.
type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ListingResult carries ordered metadata rows for a device.
type ListingResult struct {
	Table TableIdentifier
	Rows  []warehouse.Row
	Count int
}

// ValidateSensorLLA checks whether the LLA was registered for the given
// owner/device pair. It never returns an error: every backend outcome,
// including a missing table, is folded into the result value.
func (s *Service) ValidateSensorLLA(ctx context.Context, req ValidationRequest) ValidationResult {
	start := time.Now()
	table := Resolve(s.project, req.Hostname, req.MacAddress)

	s.logger.Info("validating sensor LLA",
		"hostname", req.Hostname,
		"mac_address", req.MacAddress,
		"lla", req.LLA,
		"table", table.String(),
	)

	query, params := BuildValidationQuery(table, req)

	var outcome Outcome
	rows, err := s.exec.Query(ctx, query, params)
	if err != nil {
		outcome = classifyExecution(err)
	} else {
		outcome = classifyCount(countFromRows(rows))
	}

	result := shapeValidation(outcome, req.MacAddress, table)
	s.record(ctx, "validate_sensor_lla", req.Hostname, req.MacAddress, table,
		map[string]any{"lla": req.LLA}, outcome, start)

	return result
}

// shapeValidation maps a classified outcome onto the validation response.
func shapeValidation(outcome Outcome, macAddress string, table TableIdentifier) ValidationResult {
	switch outcome.Kind {
	case OutcomeFound:
		message := "LLA found in metadata"
		if outcome.Count > 1 {
			message = fmt.Sprintf("LLA found in metadata (exists in %d record(s))", outcome.Count)
		}
		return ValidationResult{IsValid: true, Message: message}

	case OutcomeNotFound:
		return ValidationResult{IsValid: false, Message: "LLA not found in metadata"}

	case OutcomeTableAbsent:
		return ValidationResult{
			IsValid: false,
			Message: fmt.Sprintf("Metadata table not found for MAC address: %s", macAddress),
			Error:   fmt.Sprintf("metadata table not found: %s", table),
		}

	default:
		return ValidationResult{
			IsValid: false,
			Message: "Validation failed",
			Error:   outcome.Message,
		}
	}
}

// ListMetadata returns metadata rows for a device, optionally filtered by
// LLA and experiment. Unlike validation, a missing table is an error here:
// the caller asked for a table it expects to exist.
func (s *Service) ListMetadata(ctx context.Context, req ListingRequest) (*ListingResult, error) {
	start := time.Now()
	table := Resolve(s.project, req.Hostname, req.MacAddress)

	s.logger.Info("querying device metadata",
		"hostname", req.Hostname,
		"mac_address", req.MacAddress,
		"lla", req.LLA,
		"experiment", req.Experiment,
		"all", req.All,
		"table", table.String(),
	)

	query, params, warn := BuildListingQuery(table, req)
	if warn != nil {
		s.logger.Warn("dropping malformed experiment filter",
			"experiment", req.Experiment, "error", warn)
	}

	auditParams := map[string]any{"lla": req.LLA, "experiment": req.Experiment, "all": req.All}
	return s.fetch(ctx, "query_device_metadata", req.Hostname, req.MacAddress,
		table, query, params, auditParams, start)
}

// DumpTable pages through a table without filtering. The caller names the
// dataset and table directly; limit and offset pass through unclamped.
func (s *Service) DumpTable(ctx context.Context, dataset, tableName string, limit, offset int64) (*ListingResult, error) {
	start := time.Now()
	table := TableIdentifier{Project: s.project, Dataset: dataset, Table: tableName}

	s.logger.Info("dumping metadata table",
		"table", table.String(), "limit", limit, "offset", offset)

	query, params := BuildDumpQuery(table, limit, offset)
	auditParams := map[string]any{"limit": limit, "offset": offset}
	return s.fetch(ctx, "dump_metadata_table", dataset, "", table, query, params, auditParams, start)
}

// fetch runs a listing-style query and classifies failures into the typed
// errors the HTTP layer maps to status codes.
func (s *Service) fetch(ctx context.Context, operation, hostname, macAddress string,
	table TableIdentifier, query string, params []warehouse.Parameter,
	auditParams map[string]any, start time.Time) (*ListingResult, error) {

	rows, err := s.exec.Query(ctx, query, params)
	if err != nil {
		outcome := classifyExecution(err)
		s.record(ctx, operation, hostname, macAddress, table, auditParams, outcome, start)

		if outcome.Kind == OutcomeTableAbsent {
			return nil, fmt.Errorf("%w: %s", ErrTableAbsent, table)
		}
		return nil, err
	}

	s.record(ctx, operation, hostname, macAddress, table, auditParams,
		Outcome{Kind: OutcomeFound, Count: int64(len(rows))}, start)

	return &ListingResult{Table: table, Rows: rows, Count: len(rows)}, nil
}

// record writes an audit event for a completed query. Audit failures are
// logged and never affect the request.
func (s *Service) record(ctx context.Context, operation, hostname, macAddress string,
	table TableIdentifier, params map[string]any, outcome Outcome, start time.Time) {

	event := audit.NewEvent(operation).
		WithRequestID(middleware.GetReqID(ctx)).
		WithDevice(hostname, macAddress).
		WithTable(table.String()).
		WithParameters(params).
		WithResult(outcome.Kind != OutcomeBackendError, outcome.Message, time.Since(start).Milliseconds())

	if err := s.auditor.Log(ctx, *event); err != nil {
		s.logger.Warn("recording audit event", "operation", operation, "error", err)
	}
}
