package config

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/devicepose/logging"
)

// Read reads a config from the given file, expanding environment variables first.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from. Relative intrinsics files
// are resolved against the directory of that file.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	cfg := Config{ConfigFilePath: originalPath}
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "failed to process Config")
	}
	if originalPath != "" {
		dir := filepath.Dir(originalPath)
		for idx := range cfg.Devices {
			conf := &cfg.Devices[idx]
			if conf.IntrinsicsFile != "" && !filepath.IsAbs(conf.IntrinsicsFile) {
				conf.IntrinsicsFile = filepath.Join(dir, conf.IntrinsicsFile)
			}
		}
	}
	logger.Debugw("read config", "path", originalPath, "devices", len(cfg.Devices))
	return &cfg, nil
}
