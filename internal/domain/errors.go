package domain

import (
	"errors"
	"fmt"
)

// Code pool failures. None of these are retryable without changing the
// request.
var (
	ErrOutOfCodes       = errors.New("code pool exhausted")
	ErrUnknownBase      = errors.New("no pool entry for base")
	ErrAlreadyAllocated = errors.New("code already allocated")
	ErrChecksumMismatch = errors.New("code checksum mismatch")
	ErrNotAllocated     = errors.New("code not allocated")
)

// ValidationError marks a malformed request, rejected before any storage
// access. Resending the same payload will fail the same way.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a transient persistence failure. The caller may retry
// the identical payload; settlement is idempotent.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
