package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries per-field messages so the API layer can return
// them as a 400 validation map.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Archivable is implemented by every entity that supports soft delete.
type Archivable interface {
	Archived() bool
}

// Counts reports live table state for an entity's count endpoint. Recent is
// the number of active records created within the last 7 days.
type Counts struct {
	TotalActive int64 `json:"total_active"`
	Recent      int64 `json:"recent_count"`
	Archived    int64 `json:"archived_count"`
}
