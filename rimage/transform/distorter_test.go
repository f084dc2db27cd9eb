package transform

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestNewBrownConrady(t *testing.T) {
	bc, err := NewBrownConrady(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bc.Parameters(), test.ShouldResemble, []float64{0, 0, 0, 0})

	bc, err = NewBrownConrady([]float64{0.1, 0.2, 0.3, 0.4})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bc.RadialK1, test.ShouldEqual, 0.1)
	test.That(t, bc.TangentialP2, test.ShouldEqual, 0.4)
	test.That(t, bc.Parameters(), test.ShouldResemble, []float64{0.1, 0.2, 0.3, 0.4})

	bc, err = NewBrownConrady([]float64{0.1, 0.2, 0.3, 0.4, 0.5})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bc.RadialK3, test.ShouldEqual, 0.5)
	test.That(t, bc.Parameters(), test.ShouldHaveLength, 5)

	_, err = NewBrownConrady([]float64{0.1, 0.2, 0.3})
	test.That(t, err, test.ShouldBeError, "expected 4 or 5 distortion coefficients, got 3")
}

func TestBrownConradyTransform(t *testing.T) {
	bc, err := NewBrownConrady([]float64{0, 0, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	x, y := bc.Transform(0.3, -0.2)
	test.That(t, x, test.ShouldEqual, 0.3)
	test.That(t, y, test.ShouldEqual, -0.2)

	bc, err = NewBrownConrady([]float64{0, 0, 0.01, 0.02})
	test.That(t, err, test.ShouldBeNil)
	x, y = bc.Transform(0.5, 0.5)
	// r² = 0.5
	test.That(t, x, test.ShouldAlmostEqual, 0.5+2*0.01*0.25+0.02*(0.5+0.5))
	test.That(t, y, test.ShouldAlmostEqual, 0.5+0.01*(0.5+0.5)+2*0.02*0.25)

	var nilModel *BrownConrady
	x, y = nilModel.Transform(1, 2)
	test.That(t, x, test.ShouldEqual, 1.)
	test.That(t, y, test.ShouldEqual, 2.)
	test.That(t, nilModel.CheckValid(), test.ShouldNotBeNil)
}

func TestNewDistorter(t *testing.T) {
	d, err := NewDistorter(BrownConradyDistortionType, []float64{0.1, 0, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.ModelType(), test.ShouldEqual, BrownConradyDistortionType)
	test.That(t, d.CheckValid(), test.ShouldBeNil)

	d, err = NewDistorter(BrownConradyDistortionType, []float64{0, 0, 0, 0, math.Inf(-1)})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.CheckValid(), test.ShouldNotBeNil)

	_, err = NewDistorter("fisheye", nil)
	test.That(t, err, test.ShouldBeError, `do not know how to parse "fisheye" distortion model`)
}
