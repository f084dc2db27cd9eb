package transform

import (
	"math"

	"github.com/pkg/errors"
)

// BrownConrady is the radial and tangential lens distortion model. Coefficients follow the
// OpenCV ordering (k1, k2, p1, p2[, k3]).
type BrownConrady struct {
	RadialK1     float64 `json:"rk1"`
	RadialK2     float64 `json:"rk2"`
	TangentialP1 float64 `json:"tp1"`
	TangentialP2 float64 `json:"tp2"`
	RadialK3     float64 `json:"rk3"`

	withK3 bool
}

// NewBrownConrady takes in a slice of 0, 4 or 5 coefficients in OpenCV order.
// An empty slice means no distortion.
func NewBrownConrady(inp []float64) (*BrownConrady, error) {
	switch len(inp) {
	case 0:
		return &BrownConrady{}, nil
	case 4:
		return &BrownConrady{RadialK1: inp[0], RadialK2: inp[1], TangentialP1: inp[2], TangentialP2: inp[3]}, nil
	case 5:
		return &BrownConrady{
			RadialK1: inp[0], RadialK2: inp[1], TangentialP1: inp[2], TangentialP2: inp[3], RadialK3: inp[4],
			withK3: true,
		}, nil
	default:
		return nil, errors.Errorf("expected 4 or 5 distortion coefficients, got %d", len(inp))
	}
}

// CheckValid checks if the fields for BrownConrady have valid inputs.
func (bc *BrownConrady) CheckValid() error {
	if bc == nil {
		return InvalidDistortionError("BrownConrady shaped distortion_parameters not provided")
	}
	for _, p := range []float64{bc.RadialK1, bc.RadialK2, bc.TangentialP1, bc.TangentialP2, bc.RadialK3} {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return InvalidDistortionError("BrownConrady coefficients must be finite")
		}
	}
	return nil
}

// ModelType returns the type of distortion model.
func (bc *BrownConrady) ModelType() DistortionType {
	return BrownConradyDistortionType
}

// Parameters returns the coefficients in OpenCV order. Four values are returned unless k3 was given.
func (bc *BrownConrady) Parameters() []float64 {
	if bc == nil {
		return []float64{0, 0, 0, 0}
	}
	params := []float64{bc.RadialK1, bc.RadialK2, bc.TangentialP1, bc.TangentialP2}
	if bc.withK3 {
		params = append(params, bc.RadialK3)
	}
	return params
}

// Transform distorts normalized image coordinates:
//
//	x_d = x * (1 + k1*r² + k2*r⁴ + k3*r⁶) + 2*p1*x*y + p2*(r² + 2*x²)
//	y_d = y * (1 + k1*r² + k2*r⁴ + k3*r⁶) + p1*(r² + 2*y²) + 2*p2*x*y
func (bc *BrownConrady) Transform(x, y float64) (float64, float64) {
	if bc == nil {
		return x, y
	}
	r2 := x*x + y*y
	r4 := r2 * r2
	r6 := r4 * r2
	radial := 1 + bc.RadialK1*r2 + bc.RadialK2*r4 + bc.RadialK3*r6
	xd := x*radial + 2*bc.TangentialP1*x*y + bc.TangentialP2*(r2+2*x*x)
	yd := y*radial + bc.TangentialP1*(r2+2*y*y) + 2*bc.TangentialP2*x*y
	return xd, yd
}
