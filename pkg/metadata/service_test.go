package metadata

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iucc-f4d/metadata-api/pkg/warehouse"
)

// fakeExecutor returns canned rows or a canned error and records the last
// query it received.
type fakeExecutor struct {
	rows []warehouse.Row
	err  error

	gotSQL    string
	gotParams []warehouse.Parameter
	calls     int
}

func (f *fakeExecutor) Query(_ context.Context, sql string, params []warehouse.Parameter) ([]warehouse.Row, error) {
	f.calls++
	f.gotSQL = sql
	f.gotParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func countRows(n int64) []warehouse.Row {
	return []warehouse.Row{{"count": n}}
}

func newTestService(exec warehouse.Executor) *Service {
	return NewService("iucc-f4d", exec, nil, nil)
}

func TestValidateSensorLLA_NotFound(t *testing.T) {
	exec := &fakeExecutor{rows: countRows(0)}
	svc := newTestService(exec)

	result := svc.ValidateSensorLLA(context.Background(), ValidationRequest{
		Hostname: "f4d_test", MacAddress: "aaaaaaaaaaaa", LLA: "fd00",
	})

	assert.False(t, result.IsValid)
	assert.Equal(t, "LLA not found in metadata", result.Message)
	assert.Empty(t, result.Error)
}

func TestValidateSensorLLA_Found(t *testing.T) {
	exec := &fakeExecutor{rows: countRows(1)}
	svc := newTestService(exec)

	result := svc.ValidateSensorLLA(context.Background(), ValidationRequest{
		Hostname: "f4d_test", MacAddress: "aaaaaaaaaaaa", LLA: "fd00",
	})

	assert.True(t, result.IsValid)
	assert.Equal(t, "LLA found in metadata", result.Message)
	assert.Empty(t, result.Error)
}

func TestValidateSensorLLA_FoundDuplicates(t *testing.T) {
	exec := &fakeExecutor{rows: countRows(5)}
	svc := newTestService(exec)

	result := svc.ValidateSensorLLA(context.Background(), ValidationRequest{
		Hostname: "f4d_test", MacAddress: "aaaaaaaaaaaa", LLA: "fd00",
	})

	assert.True(t, result.IsValid)
	assert.Contains(t, result.Message, "5")
}

func TestValidateSensorLLA_TableAbsent(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("%w: not found", warehouse.ErrTableNotFound)}
	svc := newTestService(exec)

	// An unregistered device has no table yet; this is a legitimate
	// negative, returned as a normal value.
	result := svc.ValidateSensorLLA(context.Background(), ValidationRequest{
		Hostname: "f4d_test", MacAddress: "bbbbbbbbbbbb", LLA: "fd00",
	})

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Message, "bbbbbbbbbbbb")
	assert.NotEmpty(t, result.Error)
}

func TestValidateSensorLLA_BackendError(t *testing.T) {
	exec := &fakeExecutor{err: &warehouse.BackendError{Message: "quota exceeded"}}
	svc := newTestService(exec)

	result := svc.ValidateSensorLLA(context.Background(), ValidationRequest{
		Hostname: "f4d_test", MacAddress: "aaaaaaaaaaaa", LLA: "fd00",
	})

	assert.False(t, result.IsValid)
	assert.Equal(t, "Validation failed", result.Message)
	assert.Equal(t, "quota exceeded", result.Error)
}

func TestValidateSensorLLA_UsesBoundParameters(t *testing.T) {
	exec := &fakeExecutor{rows: countRows(1)}
	svc := newTestService(exec)

	svc.ValidateSensorLLA(context.Background(), ValidationRequest{
		Hostname: "f4d_test", MacAddress: "aaaaaaaaaaaa", LLA: "fd00' OR '1'='1",
	})

	require.Len(t, exec.gotParams, 3)
	assert.NotContains(t, exec.gotSQL, "OR '1'='1")
	assert.Equal(t, "fd00' OR '1'='1", exec.gotParams[2].Value)
}

func TestListMetadata_Success(t *testing.T) {
	rows := []warehouse.Row{
		{"Owner": "f4d_test", "LLA": "fd00", "Exp_ID": int64(1)},
		{"Owner": "f4d_test", "LLA": "fd01", "Exp_ID": int64(1)},
	}
	exec := &fakeExecutor{rows: rows}
	svc := newTestService(exec)

	result, err := svc.ListMetadata(context.Background(), ListingRequest{
		Hostname: "f4d_test", MacAddress: "aaaaaaaaaaaa",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, rows, result.Rows)
	assert.Equal(t, "iucc-f4d.f4d_test.aaaaaaaaaaaa_metadata", result.Table.String())
}

func TestListMetadata_TableAbsent(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("%w: not found", warehouse.ErrTableNotFound)}
	svc := newTestService(exec)

	_, err := svc.ListMetadata(context.Background(), ListingRequest{
		Hostname: "f4d_test", MacAddress: "aaaaaaaaaaaa",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTableAbsent)
}

func TestListMetadata_BackendError(t *testing.T) {
	backendErr := &warehouse.BackendError{Message: "syntax error"}
	exec := &fakeExecutor{err: backendErr}
	svc := newTestService(exec)

	_, err := svc.ListMetadata(context.Background(), ListingRequest{
		Hostname: "f4d_test", MacAddress: "aaaaaaaaaaaa",
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTableAbsent)

	var got *warehouse.BackendError
	assert.ErrorAs(t, err, &got)
}

func TestListMetadata_MalformedExperimentProceeds(t *testing.T) {
	exec := &fakeExecutor{rows: []warehouse.Row{{"LLA": "fd00"}}}
	svc := newTestService(exec)

	result, err := svc.ListMetadata(context.Background(), ListingRequest{
		Hostname: "f4d_test", MacAddress: "aaaaaaaaaaaa", Experiment: "Image_V2",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.NotContains(t, exec.gotSQL, "@exp_id")
}

func TestDumpTable(t *testing.T) {
	exec := &fakeExecutor{rows: []warehouse.Row{{"LLA": "fd00"}}}
	svc := newTestService(exec)

	result, err := svc.DumpTable(context.Background(), "f4d_test", "aaaaaaaaaaaa_metadata", 100, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Contains(t, exec.gotSQL, "`iucc-f4d.f4d_test.aaaaaaaaaaaa_metadata`")
	require.Len(t, exec.gotParams, 2)
	assert.Equal(t, int64(100), exec.gotParams[0].Value)
}

func TestDumpTable_TableAbsent(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("%w: not found", warehouse.ErrTableNotFound)}
	svc := newTestService(exec)

	_, err := svc.DumpTable(context.Background(), "f4d_test", "missing_metadata", 100, 0)

	assert.ErrorIs(t, err, ErrTableAbsent)
}

func TestCountFromRows(t *testing.T) {
	assert.Equal(t, int64(0), countFromRows(nil))
	assert.Equal(t, int64(3), countFromRows([]warehouse.Row{{"count": int64(3)}}))
	assert.Equal(t, int64(2), countFromRows([]warehouse.Row{{"count": 2}}))
	assert.Equal(t, int64(0), countFromRows([]warehouse.Row{{"count": "bad"}}))
}

func TestClassifyExecution(t *testing.T) {
	absent := classifyExecution(fmt.Errorf("%w: gone", warehouse.ErrTableNotFound))
	assert.Equal(t, OutcomeTableAbsent, absent.Kind)

	backend := classifyExecution(&warehouse.BackendError{Message: "boom"})
	assert.Equal(t, OutcomeBackendError, backend.Kind)
	assert.Equal(t, "boom", backend.Message)

	plain := classifyExecution(errors.New("unexpected"))
	assert.Equal(t, OutcomeBackendError, plain.Kind)
	assert.Equal(t, "unexpected", plain.Message)
}
