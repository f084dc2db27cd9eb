package device

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/devicepose/rimage/transform"
)

// options records which construction inputs were given. A field left nil was not provided,
// so explicit zero values are always honored.
type options struct {
	translation *r3.Vector
	rotation    *r3.Vector
	scale       *float64
	registry    *Registry

	matrix     *mat.Dense
	intrinsics *transform.PinholeCameraIntrinsics
	distortion []float64
}

func (o *options) hasCameraOptions() bool {
	return o.matrix != nil || o.intrinsics != nil || o.distortion != nil
}

// An Option configures a Device or Camera at construction.
type Option func(*options)

// WithTranslation sets the initial translation. It is divided by the scale.
func WithTranslation(translation r3.Vector) Option {
	return func(o *options) {
		o.translation = &translation
	}
}

// WithRotation sets the initial rotation vector. It is divided by the scale.
func WithRotation(rotation r3.Vector) Option {
	return func(o *options) {
		o.rotation = &rotation
	}
}

// WithScale sets the unit scale that the initial rotation and translation are divided by.
// Later pose updates are not scaled, and cameras ignore it.
func WithScale(scale float64) Option {
	return func(o *options) {
		o.scale = &scale
	}
}

// WithRegistry registers the constructed device under its name, replacing any previous entry.
func WithRegistry(registry *Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithMatrix sets the 3x3 intrinsic matrix of a camera.
func WithMatrix(matrix mat.Matrix) Option {
	return func(o *options) {
		if matrix != nil {
			o.matrix = mat.DenseCopyOf(matrix)
		}
	}
}

// WithIntrinsics sets the intrinsic matrix of a camera from pinhole parameters.
func WithIntrinsics(intrinsics *transform.PinholeCameraIntrinsics) Option {
	return func(o *options) {
		o.intrinsics = intrinsics
	}
}

// WithDistortion sets the Brown-Conrady coefficients (k1, k2, p1, p2[, k3]) of a camera.
func WithDistortion(coefficients ...float64) Option {
	return func(o *options) {
		o.distortion = append([]float64{}, coefficients...)
	}
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
