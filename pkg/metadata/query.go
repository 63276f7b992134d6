package metadata

import (
	"fmt"
	"strings"

	"github.com/iucc-f4d/metadata-api/pkg/warehouse"
)

// ValidationRequest asks whether an LLA is registered for a device. All
// fields are caller-supplied and matched exactly, with no normalization.
type ValidationRequest struct {
	Hostname   string
	MacAddress string
	LLA        string
}

// ListingRequest selects metadata rows for a device, optionally narrowed by
// LLA and experiment. When All is set the optional filters are ignored.
type ListingRequest struct {
	Hostname   string
	MacAddress string
	LLA        string
	Experiment string
	All        bool
}

// BuildValidationQuery constructs the COUNT query for LLA validation. The
// three comparison values are bound parameters; only the table identifier is
// interpolated into the text.
func BuildValidationQuery(table TableIdentifier, req ValidationRequest) (string, []warehouse.Parameter) {
	query := fmt.Sprintf(`SELECT COUNT(*) AS count
FROM %s
WHERE Owner = @hostname
  AND Mac_Address = @mac_address
  AND LLA = @lla`, table.FQN())

	params := []warehouse.Parameter{
		{Name: "hostname", Type: warehouse.TypeString, Value: req.Hostname},
		{Name: "mac_address", Type: warehouse.TypeString, Value: req.MacAddress},
		{Name: "lla", Type: warehouse.TypeString, Value: req.LLA},
	}

	return query, params
}

// BuildListingQuery constructs the filtered listing query. Conditions are
// appended in a fixed order (owner, device, LLA, experiment) so equal
// requests produce byte-identical text and parameter lists.
//
// A malformed experiment filter is dropped and reported through the returned
// warning; the query remains valid without it.
func BuildListingQuery(table TableIdentifier, req ListingRequest) (string, []warehouse.Parameter, error) {
	conditions := []string{
		"Owner = @hostname",
		"Mac_Address = @mac_address",
	}
	params := []warehouse.Parameter{
		{Name: "hostname", Type: warehouse.TypeString, Value: req.Hostname},
		{Name: "mac_address", Type: warehouse.TypeString, Value: req.MacAddress},
	}

	if req.LLA != "" && !req.All {
		conditions = append(conditions, "LLA = @lla")
		params = append(params, warehouse.Parameter{Name: "lla", Type: warehouse.TypeString, Value: req.LLA})
	}

	var warn error
	if req.Experiment != "" && !req.All {
		exp, err := ParseExperimentFilter(req.Experiment)
		if err != nil {
			warn = err
		} else {
			conditions = append(conditions, "(Exp_ID = @exp_id AND Exp_Name = @exp_name)")
			params = append(params,
				warehouse.Parameter{Name: "exp_id", Type: warehouse.TypeInt64, Value: exp.ID},
				warehouse.Parameter{Name: "exp_name", Type: warehouse.TypeString, Value: exp.Name},
			)
		}
	}

	query := fmt.Sprintf(`SELECT *
FROM %s
WHERE %s
ORDER BY Exp_ID, Exp_Name, LLA`, table.FQN(), strings.Join(conditions, "\n  AND "))

	return query, params, warn
}

// BuildDumpQuery constructs the unfiltered paging query. Limit and offset are
// caller-supplied and passed through unclamped.
func BuildDumpQuery(table TableIdentifier, limit, offset int64) (string, []warehouse.Parameter) {
	query := fmt.Sprintf(`SELECT *
FROM %s
LIMIT @row_limit
OFFSET @row_offset`, table.FQN())

	params := []warehouse.Parameter{
		{Name: "row_limit", Type: warehouse.TypeInt64, Value: limit},
		{Name: "row_offset", Type: warehouse.TypeInt64, Value: offset},
	}

	return query, params
}
