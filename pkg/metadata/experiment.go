package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// ExperimentFilter identifies a data-collection campaign by id and name.
type ExperimentFilter struct {
	ID   int64
	Name string
}

// ParseExperimentFilter parses the "<id>_<name>" form used on the wire.
// The first underscore separates the id from the name; the name may itself
// contain underscores. A parse failure is a soft condition: callers drop the
// filter and proceed.
func ParseExperimentFilter(s string) (ExperimentFilter, error) {
	idPart, name, ok := strings.Cut(s, "_")
	if !ok {
		return ExperimentFilter{}, fmt.Errorf("experiment filter %q: missing separator", s)
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return ExperimentFilter{}, fmt.Errorf("experiment filter %q: id segment is not an integer", s)
	}

	return ExperimentFilter{ID: id, Name: name}, nil
}
