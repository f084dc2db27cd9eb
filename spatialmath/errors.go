package spatialmath

import (
	"fmt"

	"github.com/pkg/errors"
)

// A ShapeError is returned when a point set or vector does not have the expected number of columns.
type ShapeError struct {
	Rows     int
	Cols     int
	WantCols int
}

// NewShapeError returns a ShapeError for a rows x cols input where wantCols columns were expected.
func NewShapeError(rows, cols, wantCols int) error {
	return &ShapeError{Rows: rows, Cols: cols, WantCols: wantCols}
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("expected a non-empty array with %d columns, got shape (%d, %d)", e.WantCols, e.Rows, e.Cols)
}

// IsShapeError returns whether the given error is a ShapeError.
func IsShapeError(err error) bool {
	var errArt *ShapeError
	return errors.As(err, &errArt)
}

// A SingularMatrixError is returned when a matrix that must be inverted is singular or too close to it.
type SingularMatrixError struct {
	Condition float64
}

// NewSingularMatrixError returns a SingularMatrixError carrying the estimated condition number.
func NewSingularMatrixError(condition float64) error {
	return &SingularMatrixError{Condition: condition}
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("matrix is singular (condition number %g)", e.Condition)
}

// IsSingularMatrixError returns whether the given error is a SingularMatrixError.
func IsSingularMatrixError(err error) bool {
	var errArt *SingularMatrixError
	return errors.As(err, &errArt)
}
