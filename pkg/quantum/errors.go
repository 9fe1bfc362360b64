package quantum

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrEmptySector      = errors.New("sector contains no nodes")
	ErrShapeMismatch    = errors.New("shape mismatch")
	ErrHarmonyIndex     = errors.New("harmony index outside adjacency bounds")
	ErrNumericalFailure = errors.New("wavefunction collapsed to an invalid state")
)

// SectorError provides structured error information for sector optimization.
type SectorError struct {
	Op       string // Operation that failed (e.g., "optimize", "evolve")
	SectorID int
	Cause    error  // Underlying error
	Context  string // Additional context
}

// Error implements the error interface.
func (e *SectorError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s sector %d (%s): %v", e.Op, e.SectorID, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s sector %d: %v", e.Op, e.SectorID, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SectorError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *SectorError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// sectorError builds a SectorError for the given operation.
func sectorError(op string, sectorID int, cause error, context string) error {
	return &SectorError{Op: op, SectorID: sectorID, Cause: cause, Context: context}
}

// IsValidation returns true if the error is a validation failure
// (empty sector or mismatched shapes).
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptySector) || errors.Is(err, ErrShapeMismatch)
}

// IsNumerical returns true if the error is a numerical failure during
// evolution.
func IsNumerical(err error) bool {
	return errors.Is(err, ErrNumericalFailure)
}
