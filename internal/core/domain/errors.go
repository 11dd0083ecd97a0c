package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnknownSectionType indicates a section type outside the closed variant set.
	// Passing one to the section factory is a programming error.
	ErrUnknownSectionType = errors.New("unknown section type")

	// ErrParse indicates a backup file could not be decoded.
	// Imports that fail with ErrParse leave stored properties untouched.
	ErrParse = errors.New("parse error")

	// ErrAdminRequired indicates an editing intent was sent outside admin mode.
	ErrAdminRequired = errors.New("admin mode required")

	// ErrInvalidCredentials indicates the admin credential check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionClosed indicates the edit session has been shut down.
	ErrSessionClosed = errors.New("session closed")

	// External Service Errors.

	// ErrExternalService indicates an AI or storage collaborator failed.
	// The in-memory document is never modified when this is returned.
	ErrExternalService = errors.New("external service error")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Geocoding and nearby place suggestions are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Storage error kinds, matched through StoreError.Is.

	// ErrNetwork indicates the backing store could not be reached.
	ErrNetwork = errors.New("network error")

	// ErrPermission indicates the backing store rejected the caller.
	ErrPermission = errors.New("permission denied")
)

// StoreErrorKind classifies a persistence failure.
type StoreErrorKind string

// Persistence failure kinds surfaced by save operations.
const (
	// KindNetwork covers unreachable or failing backends.
	KindNetwork StoreErrorKind = "network"

	// KindPermission covers authentication and authorisation refusals.
	KindPermission StoreErrorKind = "permission"

	// KindValidation covers documents the backend (or the pre-save check) rejected.
	KindValidation StoreErrorKind = "validation"
)

// StoreError is returned by persistence operations.
// The Kind decides which sentinel it matches with errors.Is.
type StoreError struct {
	Kind StoreErrorKind
	Op   string
	Err  error
}

// NewStoreError wraps err with a kind and the failing operation name.
func NewStoreError(kind StoreErrorKind, op string, err error) *StoreError {
	return &StoreError{Kind: kind, Op: op, Err: err}
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports whether the error kind corresponds to target.
func (e *StoreError) Is(target error) bool {
	switch e.Kind {
	case KindNetwork:
		return target == ErrNetwork
	case KindPermission:
		return target == ErrPermission
	case KindValidation:
		return target == ErrInvalidInput
	default:
		return false
	}
}
