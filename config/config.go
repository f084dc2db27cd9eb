// Package config defines the JSON description of a rig of devices and builds registries from it.
package config

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/devicepose/device"
	"go.viam.com/devicepose/rimage/transform"
	"go.viam.com/devicepose/spatialmath"
	"go.viam.com/devicepose/utils"
)

// DeviceType selects what a DeviceConfig builds.
type DeviceType string

// The supported device types. An empty type means DeviceTypeDevice.
const (
	DeviceTypeDevice = DeviceType("device")
	DeviceTypeCamera = DeviceType("camera")
)

// Config describes a rig of devices placed in a shared origin frame.
type Config struct {
	ConfigFilePath string         `json:"-"`
	Devices        []DeviceConfig `json:"devices"`
}

// Validate ensures all parts of the config are valid. Every invalid device is reported.
func (c *Config) Validate() error {
	var errs error
	for idx := range c.Devices {
		errs = multierr.Append(errs, c.Devices[idx].Validate(fmt.Sprintf("devices.%d", idx)))
	}
	return errs
}

// DeviceConfig describes one device or camera. Omitted fields fall back to defaults,
// while explicit zeros are kept.
type DeviceConfig struct {
	Name string     `json:"name"`
	Type DeviceType `json:"type,omitempty"`

	Translation []float64 `json:"translation,omitempty"`
	Rotation    []float64 `json:"rotation,omitempty"`
	// RotationDegrees marks Rotation as given in degrees rather than radians.
	RotationDegrees bool     `json:"rotation_degrees,omitempty"`
	Scale           *float64 `json:"scale,omitempty"`

	// Matrix is the row-major 3x3 intrinsic matrix. Matrix, Intrinsics and IntrinsicsFile are exclusive.
	Matrix     []float64                          `json:"matrix,omitempty"`
	Intrinsics *transform.PinholeCameraIntrinsics `json:"intrinsic_parameters,omitempty"`
	// IntrinsicsFile is a JSON file of pinhole parameters. FromReader resolves relative paths
	// against the directory of the config file.
	IntrinsicsFile string    `json:"intrinsics_file,omitempty"`
	Distortion     []float64 `json:"distortion,omitempty"`
}

// Validate ensures the device config is valid. path locates it in the enclosing config.
func (conf *DeviceConfig) Validate(path string) error {
	if conf.Name == "" {
		return goutils.NewConfigValidationFieldRequiredError(path, "name")
	}
	switch conf.Type {
	case "", DeviceTypeDevice:
		if conf.Matrix != nil || conf.Intrinsics != nil || conf.IntrinsicsFile != "" || conf.Distortion != nil {
			return goutils.NewConfigValidationError(path,
				errors.Errorf("device %q of type %q cannot have intrinsics or distortion", conf.Name, DeviceTypeDevice))
		}
	case DeviceTypeCamera:
		if conf.Scale != nil {
			return goutils.NewConfigValidationError(path, errors.Errorf("camera %q cannot be scaled", conf.Name))
		}
	default:
		return goutils.NewConfigValidationError(path, errors.Errorf("unknown device type %q", conf.Type))
	}
	if conf.Translation != nil && len(conf.Translation) != 3 {
		return goutils.NewConfigValidationError(path, errors.Errorf("translation must have 3 values, got %d", len(conf.Translation)))
	}
	if conf.Rotation != nil && len(conf.Rotation) != 3 {
		return goutils.NewConfigValidationError(path, errors.Errorf("rotation must have 3 values, got %d", len(conf.Rotation)))
	}
	if conf.Scale != nil && (!(*conf.Scale > 0) || math.IsInf(*conf.Scale, 1)) {
		return goutils.NewConfigValidationError(path, errors.Errorf("scale must be a positive number, got %v", *conf.Scale))
	}
	intrinsicSources := 0
	for _, given := range []bool{conf.Matrix != nil, conf.Intrinsics != nil, conf.IntrinsicsFile != ""} {
		if given {
			intrinsicSources++
		}
	}
	if intrinsicSources > 1 {
		return goutils.NewConfigValidationError(path,
			errors.New("only one of matrix, intrinsic_parameters and intrinsics_file may be set"))
	}
	if conf.Matrix != nil && len(conf.Matrix) != 9 {
		return goutils.NewConfigValidationError(path, errors.Errorf("matrix must have 9 values, got %d", len(conf.Matrix)))
	}
	if conf.Intrinsics != nil {
		if err := conf.Intrinsics.CheckValid(); err != nil {
			return goutils.NewConfigValidationError(path+".intrinsic_parameters", err)
		}
	}
	if conf.Distortion != nil && len(conf.Distortion) != 4 && len(conf.Distortion) != 5 {
		return goutils.NewConfigValidationError(path,
			errors.Errorf("distortion must have 4 or 5 values, got %d", len(conf.Distortion)))
	}
	return nil
}

// Options converts the config into construction options, loading the intrinsics file if one is named.
// The config must be valid.
func (conf *DeviceConfig) Options() ([]device.Option, error) {
	var opts []device.Option
	if conf.Translation != nil {
		translation, err := spatialmath.VectorFromSlice(conf.Translation)
		if err != nil {
			return nil, errors.Wrap(err, "translation")
		}
		opts = append(opts, device.WithTranslation(translation))
	}
	if conf.Rotation != nil {
		rotation, err := spatialmath.VectorFromSlice(conf.Rotation)
		if err != nil {
			return nil, errors.Wrap(err, "rotation")
		}
		if conf.RotationDegrees {
			rotation = utils.VectorDegToRad(rotation)
		}
		opts = append(opts, device.WithRotation(rotation))
	}
	if conf.Scale != nil {
		opts = append(opts, device.WithScale(*conf.Scale))
	}
	if conf.Matrix != nil {
		if len(conf.Matrix) != 9 {
			return nil, spatialmath.NewShapeError(1, len(conf.Matrix), 9)
		}
		opts = append(opts, device.WithMatrix(mat.NewDense(3, 3, conf.Matrix)))
	}
	if conf.Intrinsics != nil {
		opts = append(opts, device.WithIntrinsics(conf.Intrinsics))
	}
	if conf.IntrinsicsFile != "" {
		intrinsics, err := transform.NewPinholeCameraIntrinsicsFromJSONFile(conf.IntrinsicsFile)
		if err != nil {
			return nil, errors.Wrapf(err, "intrinsics_file %q", conf.IntrinsicsFile)
		}
		opts = append(opts, device.WithIntrinsics(intrinsics))
	}
	if conf.Distortion != nil {
		opts = append(opts, device.WithDistortion(conf.Distortion...))
	}
	return opts, nil
}
