// SPDX-License-Identifier: MIT
// Package bkterr: typed error kinds shared across the adaptive engine.
//
// Mirrors the sentinel-error discipline of lvlath/matrix (wrap with fmt.Errorf
// and %w, match with errors.Is/errors.As) but carries structured detail, since
// callers of the engine need to distinguish a caller contract violation
// (ValidationError) from a numerically-impossible operation (NumericDomainError)
// from a storage-backend failure (StorageError) without string-matching.
package bkterr

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel matched by errors.Is(err, ErrValidation) for
// any *ValidationError. Kept alongside the typed error so callers that only
// care "was this a validation problem" don't need errors.As.
var ErrValidation = errors.New("bkt: validation error")

// ErrNumericDomain is the sentinel for *NumericDomainError.
var ErrNumericDomain = errors.New("bkt: numeric domain error")

// ErrStorage is the sentinel for *StorageError.
var ErrStorage = errors.New("bkt: storage error")

// ValidationError reports that a caller violated the contract of an
// operation: an out-of-range score, a mismatched matrix shape, an unknown
// activity index.
type ValidationError struct {
	Op     string // operation that rejected the input, e.g. "UpdateFromScore"
	Field  string // the offending field/argument name
	Reason string // human-readable reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bkt: validation error in %s: %s: %s", e.Op, e.Field, e.Reason)
}

// Is enables errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError constructs a *ValidationError.
func NewValidationError(op, field, reason string) *ValidationError {
	return &ValidationError{Op: op, Field: field, Reason: reason}
}

// NumericDomainError reports a probability/odds value outside its legal
// domain when the caller did not opt into clipping, or a denominator that
// the estimator's mask logic should have guarded but did not.
type NumericDomainError struct {
	Op    string  // operation, e.g. "Odds"
	Value float64 // the offending value
	Want  string  // the expected domain, e.g. "[0,1]"
}

func (e *NumericDomainError) Error() string {
	return fmt.Sprintf("bkt: numeric domain error in %s: value %v outside %s", e.Op, e.Value, e.Want)
}

// Is enables errors.Is(err, ErrNumericDomain).
func (e *NumericDomainError) Is(target error) bool { return target == ErrNumericDomain }

// NewNumericDomainError constructs a *NumericDomainError.
func NewNumericDomainError(op string, value float64, want string) *NumericDomainError {
	return &NumericDomainError{Op: op, Value: value, Want: want}
}

// StorageError wraps a failure raised by the storage capability (§4.7). The
// engine never interprets storage failures; it passes them through unchanged
// except for this thin wrapper so callers can tell "my backend failed" apart
// from "my input was invalid".
type StorageError struct {
	Op  string // storage operation, e.g. "WriteMastery"
	Err error  // underlying backend error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("bkt: storage error in %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying backend error to errors.Is/errors.As.
func (e *StorageError) Unwrap() error { return e.Err }

// Is enables errors.Is(err, ErrStorage).
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NewStorageError constructs a *StorageError.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
