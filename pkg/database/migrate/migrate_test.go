package migrate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	expectedFiles := []string{
		"000001_query_events.up.sql",
		"000001_query_events.down.sql",
	}
	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		names[entry.Name()] = true
	}
	for _, f := range expectedFiles {
		assert.True(t, names[f], "missing migration file %s", f)
	}
}

func TestMigrationsPaired(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", name)
		}
	}

	assert.Equal(t, ups, downs, "every up migration needs a matching down")
}

func TestUpMigrationCreatesEventTable(t *testing.T) {
	data, err := migrations.ReadFile("migrations/000001_query_events.up.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS query_events")
	for _, column := range []string{"id", "timestamp", "operation", "hostname", "mac_address", "success"} {
		assert.Contains(t, sql, column)
	}
}
