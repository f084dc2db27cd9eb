package device

import (
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/devicepose/rimage/transform"
	"go.viam.com/devicepose/spatialmath"
)

// DefaultCameraName is used when a camera is constructed with an empty name.
const DefaultCameraName = "camera"

// Camera is a Device with a pinhole intrinsic model and Brown-Conrady distortion.
type Camera struct {
	*Device

	intrinsicsMu sync.RWMutex
	matrix       *mat.Dense
	intrinsics   *transform.PinholeCameraIntrinsics
	distortion   transform.Distorter
}

// NewCamera returns a camera. Without WithMatrix or WithIntrinsics the intrinsic matrix is all zeros,
// and projection or back-projection fail until one is set. Without WithDistortion there is no distortion.
// Cameras are never scaled: WithScale is ignored and the camera's scale is always one.
func NewCamera(name string, opts ...Option) (*Camera, error) {
	o := buildOptions(opts)
	o.scale = nil
	if name == "" {
		name = DefaultCameraName
	}
	if o.matrix != nil && o.intrinsics != nil {
		return nil, errors.Errorf("camera %q given both an intrinsic matrix and intrinsic parameters", name)
	}
	d, err := newDevice(name, o)
	if err != nil {
		return nil, err
	}
	c := &Camera{Device: d, matrix: mat.NewDense(3, 3, nil)}
	if o.matrix != nil {
		if err := c.SetMatrix(o.matrix); err != nil {
			return nil, err
		}
	}
	if o.intrinsics != nil {
		if err := c.SetIntrinsics(o.intrinsics); err != nil {
			return nil, err
		}
	}
	if err := c.SetDistortion(o.distortion...); err != nil {
		return nil, err
	}
	if o.registry != nil {
		o.registry.Set(c)
	}
	return c, nil
}

// Matrix returns a copy of the 3x3 intrinsic matrix.
func (c *Camera) Matrix() *mat.Dense {
	c.intrinsicsMu.RLock()
	defer c.intrinsicsMu.RUnlock()
	return mat.DenseCopyOf(c.matrix)
}

// Intrinsics returns the pinhole parameters the matrix was built from, or nil if it was set directly.
func (c *Camera) Intrinsics() *transform.PinholeCameraIntrinsics {
	c.intrinsicsMu.RLock()
	defer c.intrinsicsMu.RUnlock()
	return c.intrinsics
}

// DistortionModel returns the type of the distortion model.
func (c *Camera) DistortionModel() transform.DistortionType {
	c.intrinsicsMu.RLock()
	defer c.intrinsicsMu.RUnlock()
	return c.distortion.ModelType()
}

// Distortion returns the distortion coefficients in OpenCV order.
func (c *Camera) Distortion() []float64 {
	c.intrinsicsMu.RLock()
	defer c.intrinsicsMu.RUnlock()
	return c.distortion.Parameters()
}

// SetMatrix replaces the intrinsic matrix. Every entry must be finite.
func (c *Camera) SetMatrix(matrix mat.Matrix) error {
	if matrix == nil {
		return spatialmath.NewShapeError(0, 0, 3)
	}
	if rows, cols := matrix.Dims(); rows != 3 || cols != 3 {
		return spatialmath.NewShapeError(rows, cols, 3)
	}
	if !spatialmath.IsFinite(matrix) {
		return errors.Errorf("intrinsic matrix of camera %q has non-finite entries", c.Name())
	}
	c.intrinsicsMu.Lock()
	defer c.intrinsicsMu.Unlock()
	c.matrix = mat.DenseCopyOf(matrix)
	c.intrinsics = nil
	return nil
}

// SetIntrinsics replaces the intrinsic matrix with the one built from pinhole parameters.
func (c *Camera) SetIntrinsics(intrinsics *transform.PinholeCameraIntrinsics) error {
	if err := intrinsics.CheckValid(); err != nil {
		return err
	}
	params := *intrinsics
	c.intrinsicsMu.Lock()
	defer c.intrinsicsMu.Unlock()
	c.matrix = params.GetCameraMatrix()
	c.intrinsics = &params
	return nil
}

// SetDistortion replaces the distortion coefficients. No coefficients means no distortion.
func (c *Camera) SetDistortion(coefficients ...float64) error {
	distortion, err := transform.NewDistorter(transform.BrownConradyDistortionType, coefficients)
	if err != nil {
		return errors.Wrapf(err, "invalid distortion for camera %q", c.Name())
	}
	if err := distortion.CheckValid(); err != nil {
		return errors.Wrapf(err, "invalid distortion for camera %q", c.Name())
	}
	c.intrinsicsMu.Lock()
	defer c.intrinsicsMu.Unlock()
	c.distortion = distortion
	return nil
}

func (c *Camera) intrinsicModel() (*mat.Dense, transform.Distorter) {
	c.intrinsicsMu.RLock()
	defer c.intrinsicsMu.RUnlock()
	return c.matrix, c.distortion
}

// ProjectVectors projects an Nx3 set of origin frame points into Nx2 pixel coordinates.
// It fails with a SingularMatrixError while the intrinsic matrix is not invertible.
func (c *Camera) ProjectVectors(points mat.Matrix) (*mat.Dense, error) {
	if err := spatialmath.CheckPoints(points); err != nil {
		return nil, err
	}
	matrix, distortion := c.intrinsicModel()
	if _, err := spatialmath.Inverse(matrix); err != nil {
		return nil, errors.Wrapf(err, "camera %q has no usable intrinsic matrix", c.Name())
	}
	rotation, translation, rotationMatrix := c.pose()
	inv, err := spatialmath.Inverse(rotationMatrix)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot invert rotation matrix of %q", c.Name())
	}
	// the pose maps camera to origin, so the origin to camera pair is (-r, -R^-1 * t)
	var t mat.VecDense
	t.MulVec(inv, mat.NewVecDense(3, []float64{translation.X, translation.Y, translation.Z}))
	toCamera := r3.Vector{X: -t.AtVec(0), Y: -t.AtVec(1), Z: -t.AtVec(2)}
	return transform.ProjectPoints(points, rotation.Mul(-1), toCamera, matrix, distortion)
}

// FindRayPoint back-projects an Nx3 set of homogeneous image points through the inverse intrinsic
// matrix. Depth is carried by the homogeneous scale of each row. The resulting camera frame points
// are mapped into the origin frame unless toOrigin is unset.
func (c *Camera) FindRayPoint(imagePoints mat.Matrix, toOrigin bool) (*mat.Dense, error) {
	if err := spatialmath.CheckPoints(imagePoints); err != nil {
		return nil, err
	}
	matrix, _ := c.intrinsicModel()
	inv, err := spatialmath.Inverse(matrix)
	if err != nil {
		return nil, errors.Wrapf(err, "camera %q has no usable intrinsic matrix", c.Name())
	}
	var rays mat.Dense
	rays.Mul(imagePoints, inv.T())
	if toOrigin {
		return c.VectorsToOrigin(&rays, true)
	}
	return &rays, nil
}
