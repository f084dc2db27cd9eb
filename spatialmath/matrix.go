package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ComposeExtrinsic builds the 4x4 homogeneous matrix [[R | t], [0 0 0 1]] from a 3x3 rotation matrix
// and a translation.
func ComposeExtrinsic(rotationMatrix mat.Matrix, translation r3.Vector) *mat.Dense {
	extrinsic := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			extrinsic.Set(i, j, rotationMatrix.At(i, j))
		}
	}
	extrinsic.Set(0, 3, translation.X)
	extrinsic.Set(1, 3, translation.Y)
	extrinsic.Set(2, 3, translation.Z)
	extrinsic.Set(3, 3, 1)
	return extrinsic
}

// IsFinite reports whether every entry of m is neither NaN nor infinite.
func IsFinite(m mat.Matrix) bool {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Inverse returns the inverse of a square matrix. Singular and near-singular matrices, and matrices
// with NaN or infinite entries, produce a SingularMatrixError instead of a degenerate result.
func Inverse(m mat.Matrix) (*mat.Dense, error) {
	if m == nil {
		return nil, NewShapeError(0, 0, 0)
	}
	rows, cols := m.Dims()
	if rows == 0 || rows != cols {
		return nil, NewShapeError(rows, cols, rows)
	}
	if !IsFinite(m) {
		return nil, NewSingularMatrixError(math.Inf(1))
	}
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, NewSingularMatrixError(float64(cond))
		}
		return nil, err
	}
	// gonum's condition check is false for NaN
	if !IsFinite(&inv) {
		return nil, NewSingularMatrixError(math.Inf(1))
	}
	return &inv, nil
}
