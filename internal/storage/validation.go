// Package storage provides the data persistence layer for the labledger
// application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labtools/labledger/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidID      = errors.New("id must be positive")
	ErrInvalidStudent = errors.New("invalid student")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a row id is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateComponent validates a component before insert.
func validateComponent(c *model.Component) error {
	if c == nil {
		return fmt.Errorf("%w: component", ErrNilParameter)
	}
	if strings.TrimSpace(c.Identifier) == "" {
		return fmt.Errorf("%w: component identifier", ErrEmptyString)
	}
	return nil
}

// validateStudent validates a student before insert.
func validateStudent(s *model.Student) error {
	if s == nil {
		return fmt.Errorf("%w: student", ErrNilParameter)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidStudent)
	}
	if strings.TrimSpace(s.Number) == "" {
		return fmt.Errorf("%w: missing number", ErrInvalidStudent)
	}
	return nil
}
