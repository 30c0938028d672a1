package domain

import (
	"sort"
	"strings"
)

// ValidationError collects field-level failures for a write request. The
// request is rejected as a whole: nothing is persisted when Fields is
// non-empty.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], "; "))
	}
	return strings.Join(parts, " | ")
}
