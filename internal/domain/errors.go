// Package domain defines core types, interfaces, and errors for the social graph.
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable, enumerable classification of a failure.
// The presentation layer maps kinds to status codes without reading messages.
type ErrorKind string

// Error kinds surfaced by graph, tribe and feed operations.
const (
	KindInvalidArgument    ErrorKind = "INVALID_ARGUMENT"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindSelfReference      ErrorKind = "SELF_REFERENCE"
	KindAlreadyExists      ErrorKind = "ALREADY_EXISTS"
	KindEdgeNotFound       ErrorKind = "EDGE_NOT_FOUND"
	KindUnsupportedFilter  ErrorKind = "UNSUPPORTED_FILTER"
	KindNoTribesConfigured ErrorKind = "NO_TRIBES_CONFIGURED"
	KindInternal           ErrorKind = "INTERNAL"
)

// NotFoundError indicates a referenced user, tribe or post does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates malformed or missing required input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a duplicate follow edge or tribe membership.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// SelfReferenceError indicates an operation applied to the same user on both sides.
type SelfReferenceError struct {
	Message string
}

func (e *SelfReferenceError) Error() string { return e.Message }

// EdgeNotFoundError indicates an unfollow of an edge that does not exist.
type EdgeNotFoundError struct {
	FollowerID string
	FollowedID string
}

func (e *EdgeNotFoundError) Error() string {
	return fmt.Sprintf("user %s does not follow user %s", e.FollowerID, e.FollowedID)
}

// UnsupportedFilterError indicates an unknown feed filter mode.
type UnsupportedFilterError struct {
	Filter string
}

func (e *UnsupportedFilterError) Error() string {
	return fmt.Sprintf("unsupported post filter %q", e.Filter)
}

// NoTribesConfiguredError indicates the tribe catalogue is empty.
type NoTribesConfiguredError struct{}

func (e *NoTribesConfiguredError) Error() string { return "no tribes configured" }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrSelfReference creates a SelfReferenceError with a formatted message.
func ErrSelfReference(format string, args ...interface{}) *SelfReferenceError {
	return &SelfReferenceError{Message: fmt.Sprintf(format, args...)}
}

// KindOf classifies err. Unknown errors are KindInternal; nil has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var notFound *NotFoundError
	var validation *ValidationError
	var conflict *ConflictError
	var self *SelfReferenceError
	var edge *EdgeNotFoundError
	var filter *UnsupportedFilterError
	var noTribes *NoTribesConfiguredError

	switch {
	case errors.As(err, &validation):
		return KindInvalidArgument
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &self):
		return KindSelfReference
	case errors.As(err, &conflict):
		return KindAlreadyExists
	case errors.As(err, &edge):
		return KindEdgeNotFound
	case errors.As(err, &filter):
		return KindUnsupportedFilter
	case errors.As(err, &noTribes):
		return KindNoTribesConfigured
	default:
		return KindInternal
	}
}
