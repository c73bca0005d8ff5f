package scrape

import (
	"fmt"
	"strings"

	"pitchdeck-scraper/internal/scrape/types"
)

type Operation string

const (
	OpCompanies Operation = "companies"
	OpPitches   Operation = "pitches"
	OpAll       Operation = "all"
)

// Operations lists every accepted operation name.
var Operations = []Operation{OpCompanies, OpPitches, OpAll}

// ParseOperation accepts a case-insensitive operation name. Anything else is
// a ConfigurationError.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Operations {
		if op == known {
			return op, nil
		}
	}
	return "", &types.ConfigurationError{
		Field:  "operation",
		Reason: fmt.Sprintf("unknown operation %q, want one of companies, pitches, all", s),
	}
}

// Pipelines returns the pipeline names an operation runs, in order.
func (op Operation) Pipelines() []string {
	switch op {
	case OpCompanies:
		return []string{string(OpCompanies)}
	case OpPitches:
		return []string{string(OpPitches)}
	case OpAll:
		return []string{string(OpCompanies), string(OpPitches)}
	}
	return nil
}
