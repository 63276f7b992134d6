// Package metadata implements the core of the sensor metadata API: table
// resolution, parameterized query construction, and classification of
// warehouse query outcomes.
package metadata

import "fmt"

// tableSuffix is appended to the device MAC address to form the table name.
const tableSuffix = "_metadata"

// TableIdentifier names a fully-qualified warehouse table. It is a pure
// function of its inputs and recomputed per request, never persisted.
type TableIdentifier struct {
	Project string
	Dataset string
	Table   string
}

// Resolve derives the metadata table identifier for an owner/device pair.
// The dataset is the owner hostname and the table is "<mac>_metadata".
// Content is not validated beyond what the caller supplied: a malformed
// identifier is rejected by the warehouse as table-not-found, which the
// interpreter classifies normally.
func Resolve(project, hostname, macAddress string) TableIdentifier {
	return TableIdentifier{
		Project: project,
		Dataset: hostname,
		Table:   macAddress + tableSuffix,
	}
}

// FQN renders the back-tick-quoted fully-qualified name used in query text.
func (t TableIdentifier) FQN() string {
	return fmt.Sprintf("`%s.%s.%s`", t.Project, t.Dataset, t.Table)
}

// String returns the dot-separated identifier without quoting.
func (t TableIdentifier) String() string {
	return t.Project + "." + t.Dataset + "." + t.Table
}
