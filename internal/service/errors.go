// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service implements the taxonomy and content services: the
// business rules between the HTTP handlers and the stores. All failures
// surface as one of the domain error kinds below; raw store errors never
// leave this package untranslated.
package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when a caller tries to mutate a post they
	// do not own.
	ErrForbidden = errors.New("not allowed to modify this resource")

	// ErrDuplicateName is returned when a category name (in any casing)
	// or its derived slug collides with an existing category.
	ErrDuplicateName = errors.New("category with this name already exists")

	// ErrInvalidCategory is returned when a post references a category
	// that does not exist.
	ErrInvalidCategory = errors.New("category does not exist")
)

// ValidationError reports a field-level input violation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validationf builds a ValidationError for a field.
func validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// DependentsError is returned by category deletion while posts still
// reference the category. Count is included so callers can report it.
type DependentsError struct {
	Count int
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("cannot delete category: it has %d post(s) associated with it", e.Count)
}

// StorageError wraps any unanticipated store failure. Handlers present it
// as a generic server error; the wrapped cause stays available for logs.
// Nothing retries these automatically.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storage wraps err as a StorageError, passing through errors that are
// already domain kinds.
func storage(err error) error {
	var ve *ValidationError
	var de *DependentsError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrDuplicateName) || errors.Is(err, ErrInvalidCategory) ||
		errors.As(err, &ve) || errors.As(err, &de) {
		return err
	}
	return &StorageError{Err: err}
}

// Postgres error codes the services translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgErrCode extracts the Postgres error code from err, if any.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation reports whether err is a unique-index violation.
// The indexes are the source of truth for uniqueness; application-level
// pre-checks are only a fast path.
func isUniqueViolation(err error) bool {
	return pgErrCode(err) == pgUniqueViolation
}

// isForeignKeyViolation reports whether err is a foreign-key violation,
// e.g. a post insert racing a category delete.
func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == pgForeignKeyViolation
}
