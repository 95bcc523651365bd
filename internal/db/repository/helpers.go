// Package repository implements domain repository interfaces using SQLite.
package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"pingsocial/internal/domain"
)

// timeLayout is fixed-width so lexical order of stored timestamps equals
// chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

// inClause returns "?, ?, ?" for n placeholders and the values as []any.
func inClause(values []string) (string, []any) {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", "), args
}

// jsonIDs encodes ids as a JSON array for json_each(?). The whole set binds
// as one parameter, so callers are not bounded by SQLITE_MAX_VARIABLE_NUMBER.
func jsonIDs(ids []string) (string, error) {
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode ids: %w", err)
	}
	return string(b), nil
}

// mapDBError translates driver errors into domain errors. Constraint
// violations are the authoritative uniqueness and self-edge guard, so they
// must map to the same kinds the service pre-checks produce.
func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Message: "resource not found"}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return &domain.ConflictError{Message: "resource already exists"}
		case sqlite3.ErrConstraintCheck:
			return &domain.SelfReferenceError{Message: "self-referencing relation is not allowed"}
		case sqlite3.ErrConstraintForeignKey:
			return &domain.NotFoundError{Message: "referenced resource not found"}
		}
	}

	// Drivers wrapped by other layers (or mocked in tests) only carry the text.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &domain.ConflictError{Message: "resource already exists"}
	case strings.Contains(msg, "CHECK constraint failed"):
		return &domain.SelfReferenceError{Message: "self-referencing relation is not allowed"}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &domain.NotFoundError{Message: "referenced resource not found"}
	}
	return err
}
