// Package device models rigid-body devices and cameras placed in a shared origin frame.
//
// A device pose is a rotation vector and a translation, such that a point p expressed in the
// device frame sits at R*p + t in the origin frame. The rotation matrix and the 4x4 extrinsic
// matrix are recomputed on every pose update and are never stale.
package device

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/devicepose/spatialmath"
)

// DefaultDeviceName is used when a device is constructed with an empty name.
const DefaultDeviceName = "device"

// A Frame is anything with a pose in the origin frame. Both *Device and *Camera are Frames.
type Frame interface {
	Name() string
	ID() uuid.UUID
	Scale() float64
	Rotation() r3.Vector
	Translation() r3.Vector
	RotationMatrix() *mat.Dense
	ExtrinsicMatrix() *mat.Dense
	SetRotation(rotation r3.Vector)
	SetTranslation(translation r3.Vector)
	SetPose(rotation, translation r3.Vector)
	VectorsToSelf(points mat.Matrix, applyTranslation bool) (*mat.Dense, error)
	VectorsToOrigin(points mat.Matrix, applyTranslation bool) (*mat.Dense, error)
}

// Device is a rigid body with a pose in the origin frame.
type Device struct {
	name  string
	id    uuid.UUID
	scale float64

	mu              sync.RWMutex
	rotation        r3.Vector
	translation     r3.Vector
	rotationMatrix  *mat.Dense
	extrinsicMatrix *mat.Dense
}

// NewDevice returns a device with zero rotation and translation unless given otherwise.
// Camera options are rejected.
func NewDevice(name string, opts ...Option) (*Device, error) {
	o := buildOptions(opts)
	if o.hasCameraOptions() {
		return nil, errors.Errorf("device %q cannot take intrinsic parameters, construct a camera instead", name)
	}
	if name == "" {
		name = DefaultDeviceName
	}
	d, err := newDevice(name, o)
	if err != nil {
		return nil, err
	}
	if o.registry != nil {
		o.registry.Set(d)
	}
	return d, nil
}

func newDevice(name string, o *options) (*Device, error) {
	scale := 1.
	if o.scale != nil {
		if !(*o.scale > 0) || math.IsInf(*o.scale, 1) {
			return nil, errors.Errorf("scale of %q must be a positive number, got %v", name, *o.scale)
		}
		scale = *o.scale
	}
	d := &Device{name: name, id: uuid.New(), scale: scale}
	if o.rotation != nil {
		d.rotation = divide(*o.rotation, scale)
	}
	if o.translation != nil {
		d.translation = divide(*o.translation, scale)
	}
	d.updateRotationMatrix()
	d.updateExtrinsicMatrix()
	return d, nil
}

func divide(v r3.Vector, scale float64) r3.Vector {
	return r3.Vector{X: v.X / scale, Y: v.Y / scale, Z: v.Z / scale}
}

// Name returns the registry key of the device.
func (d *Device) Name() string {
	return d.name
}

// ID uniquely identifies this instance, even across devices sharing a name.
func (d *Device) ID() uuid.UUID {
	return d.id
}

// Scale returns the scale the initial pose was divided by.
func (d *Device) Scale() float64 {
	return d.scale
}

// Rotation returns the rotation vector.
func (d *Device) Rotation() r3.Vector {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rotation
}

// Translation returns the translation vector.
func (d *Device) Translation() r3.Vector {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.translation
}

// RotationMatrix returns a copy of the 3x3 rotation matrix.
func (d *Device) RotationMatrix() *mat.Dense {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return mat.DenseCopyOf(d.rotationMatrix)
}

// ExtrinsicMatrix returns a copy of the 4x4 matrix [[R | t], [0 0 0 1]].
func (d *Device) ExtrinsicMatrix() *mat.Dense {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return mat.DenseCopyOf(d.extrinsicMatrix)
}

// SetRotation replaces the rotation vector and recomputes the rotation and extrinsic matrices.
// The scale is not applied.
func (d *Device) SetRotation(rotation r3.Vector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rotation = rotation
	d.updateRotationMatrix()
	d.updateExtrinsicMatrix()
}

// SetTranslation replaces the translation and recomputes the extrinsic matrix.
// The scale is not applied.
func (d *Device) SetTranslation(translation r3.Vector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.translation = translation
	d.updateExtrinsicMatrix()
}

// SetPose replaces rotation and translation together.
func (d *Device) SetPose(rotation, translation r3.Vector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rotation = rotation
	d.translation = translation
	d.updateRotationMatrix()
	d.updateExtrinsicMatrix()
}

// must hold mu.
func (d *Device) updateRotationMatrix() {
	d.rotationMatrix = spatialmath.RotationMatrixFromVector(d.rotation)
}

// must hold mu, and run after updateRotationMatrix.
func (d *Device) updateExtrinsicMatrix() {
	d.extrinsicMatrix = spatialmath.ComposeExtrinsic(d.rotationMatrix, d.translation)
}

// pose returns a consistent snapshot of the rotation vector, translation and rotation matrix.
func (d *Device) pose() (r3.Vector, r3.Vector, *mat.Dense) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rotation, d.translation, d.rotationMatrix
}

// VectorsToSelf maps an Nx3 set of points from the origin frame into the device frame.
// With applyTranslation unset the points are treated as directions and only rotated.
func (d *Device) VectorsToSelf(points mat.Matrix, applyTranslation bool) (*mat.Dense, error) {
	if err := spatialmath.CheckPoints(points); err != nil {
		return nil, err
	}
	_, translation, rotationMatrix := d.pose()
	inv, err := spatialmath.Inverse(rotationMatrix)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot invert rotation matrix of %q", d.name)
	}
	if applyTranslation {
		points = spatialmath.OffsetPoints(points, translation.Mul(-1))
	}
	// (R^-1 * P^T)^T == P * R^-T
	var out mat.Dense
	out.Mul(points, inv.T())
	return &out, nil
}

// VectorsToOrigin maps an Nx3 set of points from the device frame into the origin frame.
// With applyTranslation unset the points are treated as directions and only rotated.
func (d *Device) VectorsToOrigin(points mat.Matrix, applyTranslation bool) (*mat.Dense, error) {
	if err := spatialmath.CheckPoints(points); err != nil {
		return nil, err
	}
	_, translation, rotationMatrix := d.pose()
	var out mat.Dense
	out.Mul(points, rotationMatrix.T())
	if applyTranslation {
		return spatialmath.OffsetPoints(&out, translation), nil
	}
	return &out, nil
}
