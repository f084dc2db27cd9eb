package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestCheckPoints(t *testing.T) {
	test.That(t, CheckPoints(mat.NewDense(1, 3, nil)), test.ShouldBeNil)
	test.That(t, CheckPoints(mat.NewDense(7, 3, nil)), test.ShouldBeNil)

	for _, cols := range []int{1, 2, 4} {
		for _, rows := range []int{1, 5} {
			err := CheckPoints(mat.NewDense(rows, cols, nil))
			test.That(t, IsShapeError(err), test.ShouldBeTrue)
		}
	}

	var typedNil *mat.Dense
	test.That(t, IsShapeError(CheckPoints(typedNil)), test.ShouldBeTrue)
	test.That(t, IsShapeError(CheckPoints(&mat.Dense{})), test.ShouldBeTrue)
	test.That(t, IsShapeError(CheckPoints(nil)), test.ShouldBeTrue)
}

func TestVectorConversions(t *testing.T) {
	vectors := []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0, Z: 0.5}}
	points, err := PointsFromVectors(vectors...)
	test.That(t, err, test.ShouldBeNil)
	back, err := VectorsFromPoints(points)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back, test.ShouldResemble, vectors)

	_, err = PointsFromVectors()
	test.That(t, IsShapeError(err), test.ShouldBeTrue)

	v, err := VectorFromSlice([]float64{1, 2, 3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})

	_, err = VectorFromSlice([]float64{1, 2})
	test.That(t, IsShapeError(err), test.ShouldBeTrue)
}

func TestOffsetPoints(t *testing.T) {
	points := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	shifted := OffsetPoints(points, r3.Vector{X: 1, Y: -2, Z: 0.5})
	test.That(t, shifted.RawRowView(0), test.ShouldResemble, []float64{2, 0, 3.5})
	test.That(t, shifted.RawRowView(1), test.ShouldResemble, []float64{5, 3, 6.5})
	test.That(t, points.At(0, 0), test.ShouldEqual, 1.)
}
