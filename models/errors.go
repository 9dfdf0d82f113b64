package models

import (
	"sort"
	"strings"
)

// ValidationError reports submitted fields that failed validation, keyed by
// form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// IncompleteSelectionError signals that a total was requested before a plan
// was resolved. The controller's preconditions should make this unreachable;
// if it surfaces anyway the request must fail rather than report a wrong total.
type IncompleteSelectionError struct{}

func (e IncompleteSelectionError) Error() string {
	return "cannot calculate total: no plan resolved"
}
