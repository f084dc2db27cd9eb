package transform

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/devicepose/spatialmath"
)

// ProjectPoints maps an Nx3 set of points to Nx2 pixel coordinates with a pinhole model.
// rotation and translation take points into the camera frame (p_cam = R(rotation) * p + translation),
// only fx, fy, ppx and ppy are read from cameraMatrix, and a nil distorter means no distortion.
// Points with zero depth in the camera frame are projected as if their depth was one.
func ProjectPoints(
	points mat.Matrix,
	rotation, translation r3.Vector,
	cameraMatrix mat.Matrix,
	distortion Distorter,
) (*mat.Dense, error) {
	if err := spatialmath.CheckPoints(points); err != nil {
		return nil, err
	}
	if cameraMatrix == nil {
		return nil, NewNoIntrinsicsError("camera matrix not provided")
	}
	if rows, cols := cameraMatrix.Dims(); rows != 3 || cols != 3 {
		return nil, spatialmath.NewShapeError(rows, cols, 3)
	}
	fx, fy := cameraMatrix.At(0, 0), cameraMatrix.At(1, 1)
	ppx, ppy := cameraMatrix.At(0, 2), cameraMatrix.At(1, 2)

	var inCamera mat.Dense
	inCamera.Mul(points, spatialmath.RotationMatrixFromVector(rotation).T())

	rows, _ := points.Dims()
	pixels := mat.NewDense(rows, 2, nil)
	for i := 0; i < rows; i++ {
		x := inCamera.At(i, 0) + translation.X
		y := inCamera.At(i, 1) + translation.Y
		z := inCamera.At(i, 2) + translation.Z
		if z != 0 {
			z = 1 / z
		} else {
			z = 1
		}
		x, y = x*z, y*z
		if distortion != nil {
			x, y = distortion.Transform(x, y)
		}
		pixels.Set(i, 0, fx*x+ppx)
		pixels.Set(i, 1, fy*y+ppy)
	}
	return pixels, nil
}
