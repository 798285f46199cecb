// Package apperr defines the error taxonomy shared by all engine operations.
// Every operation fails with one of these types on the first violated
// precondition; callers branch with errors.As or the Is* helpers and map the
// types to transport-level codes at the boundary.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Message)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for the given field.
func Validation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entity id that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity kind and id.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ForbiddenError reports an actor lacking permission for a mutation.
type ForbiddenError struct {
	ActorID string
	Message string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Message)
}

// Forbidden builds a ForbiddenError for the given actor.
func Forbidden(actorID, format string, args ...any) error {
	return &ForbiddenError{ActorID: actorID, Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness violation, such as a second
// retrospective session for the same sprint.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

// Conflict builds a ConflictError.
func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// LimitExceededError reports a quota violation, such as the per-user vote cap.
type LimitExceededError struct {
	Limit   int
	Message string
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("limit exceeded: %s", e.Message)
}

// LimitExceeded builds a LimitExceededError with the applicable limit.
func LimitExceeded(limit int, format string, args ...any) error {
	return &LimitExceededError{Limit: limit, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsForbidden(err error) bool {
	var e *ForbiddenError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsLimitExceeded(err error) bool {
	var e *LimitExceededError
	return errors.As(err, &e)
}
