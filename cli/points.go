package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/devicepose/spatialmath"
)

// parsePoints turns "x,y,z" strings into an Nx3 point set.
func parsePoints(raw []string) (*mat.Dense, error) {
	vectors := make([]r3.Vector, 0, len(raw))
	for _, point := range raw {
		fields := strings.Split(point, ",")
		row := make([]float64, 0, len(fields))
		for _, field := range fields {
			value, err := cast.ToFloat64E(strings.TrimSpace(field))
			if err != nil {
				return nil, errors.Wrapf(err, "invalid point %q", point)
			}
			row = append(row, value)
		}
		v, err := spatialmath.VectorFromSlice(row)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid point %q", point)
		}
		vectors = append(vectors, v)
	}
	return spatialmath.PointsFromVectors(vectors...)
}
