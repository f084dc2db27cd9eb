// Package utils contains small helpers shared by devicepose packages.
package utils

import (
	"math"

	"github.com/golang/geo/r3"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// VectorDegToRad converts every component of a vector from degrees to radians.
func VectorDegToRad(v r3.Vector) r3.Vector {
	return r3.Vector{X: DegToRad(v.X), Y: DegToRad(v.Y), Z: DegToRad(v.Z)}
}

// VectorRadToDeg converts every component of a vector from radians to degrees.
func VectorRadToDeg(v r3.Vector) r3.Vector {
	return r3.Vector{X: RadToDeg(v.X), Y: RadToDeg(v.Y), Z: RadToDeg(v.Z)}
}
