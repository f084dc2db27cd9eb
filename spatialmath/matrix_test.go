package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestComposeExtrinsic(t *testing.T) {
	rm := RotationMatrixFromVector(r3.Vector{X: 0.2, Y: 0.1, Z: -0.3})
	translation := r3.Vector{X: 1, Y: -2, Z: 3}
	ext := ComposeExtrinsic(rm, translation)

	rows, cols := ext.Dims()
	test.That(t, rows, test.ShouldEqual, 4)
	test.That(t, cols, test.ShouldEqual, 4)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			test.That(t, ext.At(i, j), test.ShouldEqual, rm.At(i, j))
		}
	}
	test.That(t, ext.At(0, 3), test.ShouldEqual, 1.)
	test.That(t, ext.At(1, 3), test.ShouldEqual, -2.)
	test.That(t, ext.At(2, 3), test.ShouldEqual, 3.)
	test.That(t, ext.RawRowView(3), test.ShouldResemble, []float64{0, 0, 0, 1})
}

func TestInverse(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{2, 0, 0, 0, 4, 0, 0, 0, 8})
	inv, err := Inverse(m)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mat.EqualApprox(inv, mat.NewDense(3, 3, []float64{.5, 0, 0, 0, .25, 0, 0, 0, .125}), 1e-12), test.ShouldBeTrue)

	_, err = Inverse(mat.NewDense(3, 3, nil))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, IsSingularMatrixError(err), test.ShouldBeTrue)

	_, err = Inverse(mat.NewDense(3, 3, []float64{1, 2, 3, 2, 4, 6, 0, 0, 1}))
	test.That(t, IsSingularMatrixError(err), test.ShouldBeTrue)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = Inverse(mat.NewDense(3, 3, []float64{bad, 0, 0, 0, 1, 0, 0, 0, 1}))
		test.That(t, IsSingularMatrixError(err), test.ShouldBeTrue)
	}

	_, err = Inverse(mat.NewDense(2, 3, nil))
	test.That(t, IsShapeError(err), test.ShouldBeTrue)

	wrapped := errors.Wrap(NewSingularMatrixError(0), "inverting")
	test.That(t, IsSingularMatrixError(wrapped), test.ShouldBeTrue)
	test.That(t, IsShapeError(wrapped), test.ShouldBeFalse)
}

func TestIsFinite(t *testing.T) {
	test.That(t, IsFinite(mat.NewDense(2, 2, []float64{1, -2, 1e300, 0})), test.ShouldBeTrue)
	test.That(t, IsFinite(mat.NewDense(1, 3, []float64{0, math.NaN(), 0})), test.ShouldBeFalse)
	test.That(t, IsFinite(mat.NewDense(1, 3, []float64{0, 0, math.Inf(-1)})), test.ShouldBeFalse)
}
