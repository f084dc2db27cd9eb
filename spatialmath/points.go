package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// CheckPoints verifies that points is a non-empty Nx3 array.
func CheckPoints(points mat.Matrix) error {
	if points == nil {
		return NewShapeError(0, 0, 3)
	}
	if d, ok := points.(*mat.Dense); ok && (d == nil || d.IsEmpty()) {
		return NewShapeError(0, 0, 3)
	}
	rows, cols := points.Dims()
	if rows == 0 || cols != 3 {
		return NewShapeError(rows, cols, 3)
	}
	return nil
}

// PointsFromVectors builds an Nx3 point set, one row per vector.
func PointsFromVectors(vectors ...r3.Vector) (*mat.Dense, error) {
	if len(vectors) == 0 {
		return nil, NewShapeError(0, 0, 3)
	}
	points := mat.NewDense(len(vectors), 3, nil)
	for i, v := range vectors {
		points.SetRow(i, []float64{v.X, v.Y, v.Z})
	}
	return points, nil
}

// VectorsFromPoints returns one vector per row of an Nx3 point set.
func VectorsFromPoints(points mat.Matrix) ([]r3.Vector, error) {
	if err := CheckPoints(points); err != nil {
		return nil, err
	}
	rows, _ := points.Dims()
	vectors := make([]r3.Vector, 0, rows)
	for i := 0; i < rows; i++ {
		vectors = append(vectors, r3.Vector{X: points.At(i, 0), Y: points.At(i, 1), Z: points.At(i, 2)})
	}
	return vectors, nil
}

// VectorFromSlice converts a three element slice into a vector.
func VectorFromSlice(values []float64) (r3.Vector, error) {
	if len(values) != 3 {
		return r3.Vector{}, NewShapeError(1, len(values), 3)
	}
	return r3.Vector{X: values[0], Y: values[1], Z: values[2]}, nil
}

// OffsetPoints returns a copy of an Nx3 point set with offset added to every row.
func OffsetPoints(points mat.Matrix, offset r3.Vector) *mat.Dense {
	components := [3]float64{offset.X, offset.Y, offset.Z}
	var out mat.Dense
	out.Apply(func(_, j int, v float64) float64 {
		return v + components[j]
	}, points)
	return &out
}
