package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// See here for a thorough explanation: https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation
// Basic explanation: an orientation can be expressed by first specifying an axis, i.e. a line from the origin
// to a point on the unit sphere, represented by (rx, ry, rz), and a rotation around that axis, theta.
// These four numbers can be used as-is (R4), or they can be converted to R3, where theta is multiplied by each of
// the unit sphere components to give a vector whose length is theta and whose direction is the original axis.
// Device poses store the R3 form, which is also called a rotation vector.

// R4AA represents an R4 axis angle.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// NewR4AA creates an R4AA struct representing no rotation.
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// Normalize scales the x, y, and z components of a R4 axis angle to be on the unit sphere.
// An axis of zero length is replaced by the z axis.
func (r4 *R4AA) Normalize() {
	norm := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if norm == 0.0 {
		r4.RX, r4.RY, r4.RZ = 0, 0, 1
		return
	}
	r4.RX /= norm
	r4.RY /= norm
	r4.RZ /= norm
}

// RotationMatrix returns the 3x3 rotation matrix of the axis angle, using Rodrigues' formula
// R = I + sin(th)K + (1-cos(th))K^2 where K is the cross product matrix of the unit axis.
func (r4 *R4AA) RotationMatrix() *mat.Dense {
	r4.Normalize()
	x, y, z := r4.RX, r4.RY, r4.RZ
	c := math.Cos(r4.Theta)
	s := math.Sin(r4.Theta)
	v := 1 - c
	return mat.NewDense(3, 3, []float64{
		c + x*x*v, x*y*v - z*s, x*z*v + y*s,
		y*x*v + z*s, c + y*y*v, y*z*v - x*s,
		z*x*v - y*s, z*y*v + x*s, c + z*z*v,
	})
}

// R3ToR4 converts an R3 angle axis to R4. The zero vector maps to no rotation.
func R3ToR4(aa r3.Vector) *R4AA {
	theta := aa.Norm()
	if theta == 0 {
		return NewR4AA()
	}
	return &R4AA{theta, aa.X / theta, aa.Y / theta, aa.Z / theta}
}

// RotationMatrixFromVector returns the orthonormal, right-handed rotation matrix of a rotation vector,
// whose direction is the rotation axis and whose magnitude is the angle in radians.
func RotationMatrixFromVector(rotation r3.Vector) *mat.Dense {
	return R3ToR4(rotation).RotationMatrix()
}
