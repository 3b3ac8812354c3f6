package stats

import (
	"errors"
	"fmt"
	"strings"
)

// Valid choices reported by InvalidArgumentError.
var (
	ValidMetrics    = []string{"runs", "wickets", "average", "economy"}
	ValidCategories = []string{"batsmen", "bowlers"}
)

// InvalidArgumentError reports a caller value the engine cannot act on.
type InvalidArgumentError struct {
	Param  string
	Value  string
	Valid  []string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	if len(e.Valid) > 0 {
		return fmt.Sprintf("invalid %s %q. Choose from: %s", e.Param, e.Value, strings.Join(e.Valid, ", "))
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Param, e.Value, e.Reason)
}

// AsInvalidArgument unwraps err to an InvalidArgumentError when it is, or
// wraps, one.
func AsInvalidArgument(err error) (*InvalidArgumentError, bool) {
	var iae *InvalidArgumentError
	if errors.As(err, &iae) {
		return iae, true
	}
	return nil, false
}
