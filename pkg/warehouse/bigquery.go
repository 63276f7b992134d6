package warehouse

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// BigQueryConfig configures the BigQuery executor. When neither credential
// field is set the client falls back to application-default credentials.
type BigQueryConfig struct {
	ProjectID       string
	CredentialsJSON string
	CredentialsPath string
}

// BigQueryExecutor implements Executor using the BigQuery client.
type BigQueryExecutor struct {
	client *bigquery.Client
}

// NewBigQueryExecutor creates a BigQuery-backed executor. The executor is
// constructed once at startup and injected into the components that need it.
func NewBigQueryExecutor(ctx context.Context, cfg BigQueryConfig) (*BigQueryExecutor, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("warehouse project id is required")
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	client, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client: %w", err)
	}

	return &BigQueryExecutor{client: client}, nil
}

// Query executes sql with bound parameters and collects all result rows.
func (e *BigQueryExecutor) Query(ctx context.Context, sql string, params []Parameter) ([]Row, error) {
	q := e.client.Query(sql)
	q.Parameters = toBigQueryParameters(params)

	it, err := q.Read(ctx)
	if err != nil {
		return nil, classifyError(err)
	}

	var rows []Row
	for {
		var vals map[string]bigquery.Value
		err := it.Next(&vals)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classifyError(err)
		}

		row := make(Row, len(vals))
		for name, v := range vals {
			row[name] = v
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Close releases the underlying client.
func (e *BigQueryExecutor) Close() error {
	return e.client.Close()
}

func toBigQueryParameters(params []Parameter) []bigquery.QueryParameter {
	out := make([]bigquery.QueryParameter, len(params))
	for i, p := range params {
		out[i] = bigquery.QueryParameter{Name: p.Name, Value: p.Value}
	}
	return out
}

// classifyError maps BigQuery failures onto the executor error taxonomy.
// A 404 means the target table or dataset does not exist, which callers
// handle as a normal outcome.
func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrTableNotFound, apiErr.Message)
	}
	return &BackendError{Message: err.Error()}
}

// Verify interface compliance.
var _ Executor = (*BigQueryExecutor)(nil)
