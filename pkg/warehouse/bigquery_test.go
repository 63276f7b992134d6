package warehouse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestClassifyError_NotFound(t *testing.T) {
	apiErr := &googleapi.Error{Code: http.StatusNotFound, Message: "Not found: Table x:y.z"}

	err := classifyError(apiErr)

	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestClassifyError_WrappedNotFound(t *testing.T) {
	apiErr := &googleapi.Error{Code: http.StatusNotFound, Message: "gone"}
	wrapped := fmt.Errorf("query failed: %w", apiErr)

	err := classifyError(wrapped)

	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestClassifyError_OtherAPIError(t *testing.T) {
	apiErr := &googleapi.Error{Code: http.StatusForbidden, Message: "quota exceeded"}

	err := classifyError(apiErr)

	assert.NotErrorIs(t, err, ErrTableNotFound)

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Contains(t, backendErr.Message, "quota exceeded")
}

func TestClassifyError_PlainError(t *testing.T) {
	err := classifyError(errors.New("connection reset"))

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "connection reset", backendErr.Message)
}

func TestToBigQueryParameters(t *testing.T) {
	params := []Parameter{
		{Name: "hostname", Type: TypeString, Value: "f4d_test"},
		{Name: "exp_id", Type: TypeInt64, Value: int64(12)},
	}

	out := toBigQueryParameters(params)

	require.Len(t, out, 2)
	assert.Equal(t, "hostname", out[0].Name)
	assert.Equal(t, "f4d_test", out[0].Value)
	assert.Equal(t, "exp_id", out[1].Name)
	assert.Equal(t, int64(12), out[1].Value)
}

func TestNewBigQueryExecutor_RequiresProject(t *testing.T) {
	_, err := NewBigQueryExecutor(context.Background(), BigQueryConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "project id")
}

func TestBackendError_Message(t *testing.T) {
	err := &BackendError{Message: "rateLimitExceeded"}

	assert.Equal(t, "warehouse backend: rateLimitExceeded", err.Error())
	// The raw message stays available for verbatim forwarding.
	assert.Equal(t, "rateLimitExceeded", err.Message)
}
