package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/iucc-f4d/metadata-api/pkg/metadata"
	"github.com/iucc-f4d/metadata-api/pkg/warehouse"
)

const (
	defaultDumpLimit  = 100
	defaultDumpOffset = 0
)

// ---------------------------------------------------------------------------
// Response types
// ---------------------------------------------------------------------------

// DumpResponse is the envelope for GET /GCP-BQ/metadata.
type DumpResponse struct {
	Success   bool            `json:"success"`
	Project   string          `json:"project"`
	Dataset   string          `json:"dataset"`
	Table     string          `json:"table"`
	FullTable string          `json:"full_table"`
	Limit     int64           `json:"limit"`
	Offset    int64           `json:"offset"`
	Count     int             `json:"count"`
	Data      []warehouse.Row `json:"data"`
}

// ListingResponse is the envelope for GET /GCP-BQ/metadata/active.
type ListingResponse struct {
	Success   bool            `json:"success"`
	Project   string          `json:"project"`
	Dataset   string          `json:"dataset"`
	Table     string          `json:"table"`
	FullTable string          `json:"full_table"`
	Count     int             `json:"count"`
	Data      []warehouse.Row `json:"data"`
}

// ValidationResponse is the envelope for GET /GCP-BQ/metadata/validate.
type ValidationResponse struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error" example:"metadata table not found"`
}

// ---------------------------------------------------------------------------
// GET /GCP-BQ/metadata
// ---------------------------------------------------------------------------

// handleDump godoc
//
//	@Summary		Dump a metadata table
//	@Description	Returns raw rows from the named table with limit/offset paging.
//	@Tags			metadata
//	@Produce		json
//	@Param			dataset	query		string	true	"Dataset name"	example(f4d_test)
//	@Param			table	query		string	true	"Table name"	example(aaaaaaaaaaaa_metadata)
//	@Param			limit	query		int		false	"Max rows"		default(100)
//	@Param			offset	query		int		false	"Rows to skip"	default(0)
//	@Success		200		{object}	DumpResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/GCP-BQ/metadata [get]
func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dataset := q.Get("dataset")
	table := q.Get("table")
	if dataset == "" || table == "" {
		writeErr(w, http.StatusBadRequest, "dataset and table are required")
		return
	}

	limit, err := parseIntParam(q.Get("limit"), defaultDumpLimit)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseIntParam(q.Get("offset"), defaultDumpOffset)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.svc.DumpTable(r.Context(), dataset, table, limit, offset)
	if err != nil {
		s.writeQueryErr(w, r, "dump table", err)
		return
	}

	writeJSON(w, http.StatusOK, DumpResponse{
		Success:   true,
		Project:   result.Table.Project,
		Dataset:   result.Table.Dataset,
		Table:     result.Table.Table,
		FullTable: result.Table.String(),
		Limit:     limit,
		Offset:    offset,
		Count:     result.Count,
		Data:      rowsOrEmpty(result.Rows),
	})
}

// ---------------------------------------------------------------------------
// GET /GCP-BQ/metadata/active
// ---------------------------------------------------------------------------

// handleListing godoc
//
//	@Summary		List device metadata
//	@Description	Returns metadata rows for a device, optionally filtered by LLA and
//	@Description	experiment ("<id>_<name>"). all=true ignores both filters.
//	@Tags			metadata
//	@Produce		json
//	@Param			hostname	query		string	true	"Owner hostname"	example(f4d_test)
//	@Param			mac_address	query		string	true	"Device MAC"		example(aaaaaaaaaaaa)
//	@Param			lla			query		string	false	"LLA filter"
//	@Param			experiment	query		string	false	"Experiment filter"	example(1_Image_V2)
//	@Param			all			query		bool	false	"Return all rows"	default(false)
//	@Success		200			{object}	ListingResponse
//	@Failure		400			{object}	errorResponse
//	@Failure		404			{object}	errorResponse
//	@Failure		500			{object}	errorResponse
//	@Router			/GCP-BQ/metadata/active [get]
func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := metadata.ListingRequest{
		Hostname:   q.Get("hostname"),
		MacAddress: q.Get("mac_address"),
		LLA:        q.Get("lla"),
		Experiment: q.Get("experiment"),
		All:        q.Get("all") == "true",
	}
	if req.Hostname == "" || req.MacAddress == "" {
		writeErr(w, http.StatusBadRequest, "hostname and mac_address are required")
		return
	}

	result, err := s.svc.ListMetadata(r.Context(), req)
	if err != nil {
		s.writeQueryErr(w, r, "list metadata", err)
		return
	}

	writeJSON(w, http.StatusOK, ListingResponse{
		Success:   true,
		Project:   result.Table.Project,
		Dataset:   result.Table.Dataset,
		Table:     result.Table.Table,
		FullTable: result.Table.String(),
		Count:     result.Count,
		Data:      rowsOrEmpty(result.Rows),
	})
}

// ---------------------------------------------------------------------------
// GET /GCP-BQ/metadata/validate
// ---------------------------------------------------------------------------

// handleValidate godoc
//
//	@Summary		Validate a sensor LLA
//	@Description	Checks whether the LLA is registered for the owner/device pair.
//	@Description	Always responds 200; backend failures are reported in the body.
//	@Tags			metadata
//	@Produce		json
//	@Param			hostname	query		string	true	"Owner hostname"	example(f4d_test)
//	@Param			mac_address	query		string	true	"Device MAC"		example(aaaaaaaaaaaa)
//	@Param			lla			query		string	true	"LLA to validate"	example(fd002124b00ccf7399b)
//	@Success		200			{object}	ValidationResponse
//	@Failure		400			{object}	errorResponse
//	@Router			/GCP-BQ/metadata/validate [get]
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := metadata.ValidationRequest{
		Hostname:   q.Get("hostname"),
		MacAddress: q.Get("mac_address"),
		LLA:        q.Get("lla"),
	}
	if req.Hostname == "" || req.MacAddress == "" || req.LLA == "" {
		writeErr(w, http.StatusBadRequest, "hostname, mac_address and lla are required")
		return
	}

	result := s.svc.ValidateSensorLLA(r.Context(), req)

	writeJSON(w, http.StatusOK, ValidationResponse{
		IsValid: result.IsValid,
		Message: result.Message,
		Error:   result.Error,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// writeQueryErr maps service errors onto transport status codes: a missing
// table is 404, everything else 500.
func (s *Server) writeQueryErr(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, metadata.ErrTableAbsent) {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Error(op, "path", r.URL.Path, "error", err)
	writeErr(w, http.StatusInternalServerError, err.Error())
}

func parseIntParam(raw string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value %q", raw)
	}
	return v, nil
}

// rowsOrEmpty keeps the data field a JSON array even with no rows.
func rowsOrEmpty(rows []warehouse.Row) []warehouse.Row {
	if rows == nil {
		return []warehouse.Row{}
	}
	return rows
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
