package config

import (
	"github.com/pkg/errors"

	"go.viam.com/devicepose/device"
	"go.viam.com/devicepose/logging"
)

// BuildRegistry constructs every configured device, in order, into a new registry.
// Later devices replace earlier ones of the same name.
func BuildRegistry(cfg *Config, logger logging.Logger) (*device.Registry, error) {
	reg := device.NewRegistry(logger.Sublogger("registry"))
	for idx := range cfg.Devices {
		conf := &cfg.Devices[idx]
		opts, err := conf.Options()
		if err != nil {
			return nil, errors.Wrapf(err, "device %q", conf.Name)
		}
		opts = append(opts, device.WithRegistry(reg))

		var frame device.Frame
		if conf.Type == DeviceTypeCamera {
			frame, err = device.NewCamera(conf.Name, opts...)
		} else {
			frame, err = device.NewDevice(conf.Name, opts...)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build device %q", conf.Name)
		}
		logger.Debugw("built device",
			"name", frame.Name(),
			"type", conf.Type,
			"translation", frame.Translation(),
			"rotation", frame.Rotation(),
		)
	}
	logger.Infof("built %d devices", reg.Len())
	return reg, nil
}
