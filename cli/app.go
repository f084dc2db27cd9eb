// Package cli contains all functionality needed to run the devicepose command line tool.
package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/devicepose/config"
	"go.viam.com/devicepose/device"
	"go.viam.com/devicepose/logging"
	"go.viam.com/devicepose/spatialmath"
	"go.viam.com/devicepose/utils"
)

const (
	flagConfig       = "config"
	flagDebug        = "debug"
	flagDevice       = "device"
	flagPoint        = "point"
	flagRotationOnly = "rotation-only"
	flagCameraFrame  = "camera-frame"
)

// NewApp returns the devicepose command line application writing its results to out.
func NewApp(out io.Writer) *cli.App {
	deviceFlag := &cli.StringFlag{
		Name:     flagDevice,
		Aliases:  []string{"d"},
		Usage:    "name of the configured device",
		Required: true,
	}
	pointFlag := &cli.StringSliceFlag{
		Name:     flagPoint,
		Aliases:  []string{"p"},
		Usage:    "point as x,y,z; repeat for several points",
		Required: true,
	}
	rotationOnlyFlag := &cli.BoolFlag{
		Name:  flagRotationOnly,
		Usage: "treat points as directions and skip the translation",
	}

	return &cli.App{
		Name:      "devicepose",
		Usage:     "map points between devices, cameras and the origin frame",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:     flagConfig,
				Aliases:  []string{"c"},
				Usage:    "load the rig from `FILE`",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "devices",
				Usage:  "list the configured devices and their poses",
				Action: listDevicesAction,
			},
			{
				Name:   "to-origin",
				Usage:  "map points from a device frame into the origin frame",
				Flags:  []cli.Flag{deviceFlag, pointFlag, rotationOnlyFlag},
				Action: toOriginAction,
			},
			{
				Name:   "to-self",
				Usage:  "map points from the origin frame into a device frame",
				Flags:  []cli.Flag{deviceFlag, pointFlag, rotationOnlyFlag},
				Action: toSelfAction,
			},
			{
				Name:   "project",
				Usage:  "project origin frame points onto a camera image",
				Flags:  []cli.Flag{deviceFlag, pointFlag},
				Action: projectAction,
			},
			{
				Name:  "ray",
				Usage: "back-project homogeneous image points u*w,v*w,w through a camera",
				Flags: []cli.Flag{
					deviceFlag, pointFlag,
					&cli.BoolFlag{
						Name:  flagCameraFrame,
						Usage: "report rays in the camera frame instead of the origin frame",
					},
				},
				Action: rayAction,
			},
		},
	}
}

func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(flagDebug) {
		return logging.NewDebugLogger("devicepose")
	}
	return logging.NewLogger("devicepose")
}

func loadRegistry(c *cli.Context) (*device.Registry, error) {
	logger := newLogger(c)
	cfg, err := config.Read(c.Path(flagConfig), logger)
	if err != nil {
		return nil, err
	}
	return config.BuildRegistry(cfg, logger)
}

func lookupFrame(c *cli.Context) (device.Frame, error) {
	reg, err := loadRegistry(c)
	if err != nil {
		return nil, err
	}
	name := c.String(flagDevice)
	frame, ok := reg.Get(name)
	if !ok {
		return nil, device.NewNotFoundError(name)
	}
	return frame, nil
}

func lookupCamera(c *cli.Context) (*device.Camera, error) {
	frame, err := lookupFrame(c)
	if err != nil {
		return nil, err
	}
	cam, ok := frame.(*device.Camera)
	if !ok {
		return nil, errors.Errorf("device %q is not a camera", frame.Name())
	}
	return cam, nil
}

func listDevicesAction(c *cli.Context) error {
	reg, err := loadRegistry(c)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(c.App.Writer)
	t.AppendHeader(table.Row{"name", "type", "translation", "rotation (deg)", "distortion", "id"})
	for _, item := range reg.Items() {
		kind, distortion := "device", ""
		if cam, ok := item.Value.(*device.Camera); ok {
			kind = "camera"
			distortion = fmt.Sprintf("%s %v", cam.DistortionModel(), cam.Distortion())
		}
		rotation := utils.VectorRadToDeg(item.Value.Rotation())
		translation := item.Value.Translation()
		t.AppendRow(table.Row{
			item.Key,
			kind,
			fmt.Sprintf("%.4g, %.4g, %.4g", translation.X, translation.Y, translation.Z),
			fmt.Sprintf("%.4g, %.4g, %.4g", rotation.X, rotation.Y, rotation.Z),
			distortion,
			item.Value.ID(),
		})
	}
	t.Render()
	return nil
}

func toOriginAction(c *cli.Context) error {
	return transformAction(c, device.Frame.VectorsToOrigin)
}

func toSelfAction(c *cli.Context) error {
	return transformAction(c, device.Frame.VectorsToSelf)
}

func transformAction(c *cli.Context, fn func(device.Frame, mat.Matrix, bool) (*mat.Dense, error)) error {
	points, err := parsePoints(c.StringSlice(flagPoint))
	if err != nil {
		return err
	}
	frame, err := lookupFrame(c)
	if err != nil {
		return err
	}
	out, err := fn(frame, points, !c.Bool(flagRotationOnly))
	if err != nil {
		return err
	}
	return renderPoints(c.App.Writer, out)
}

func projectAction(c *cli.Context) error {
	points, err := parsePoints(c.StringSlice(flagPoint))
	if err != nil {
		return err
	}
	cam, err := lookupCamera(c)
	if err != nil {
		return err
	}
	pixels, err := cam.ProjectVectors(points)
	if err != nil {
		return err
	}
	intrinsics := cam.Intrinsics()
	renderMatrix(c.App.Writer, table.Row{"u", "v", "in frame"}, pixels, func(row []float64) interface{} {
		return intrinsics.InFrame(row[0], row[1])
	})
	return nil
}

func rayAction(c *cli.Context) error {
	points, err := parsePoints(c.StringSlice(flagPoint))
	if err != nil {
		return err
	}
	cam, err := lookupCamera(c)
	if err != nil {
		return err
	}
	rays, err := cam.FindRayPoint(points, !c.Bool(flagCameraFrame))
	if err != nil {
		return err
	}
	return renderPoints(c.App.Writer, rays)
}

// renderPoints writes one x, y, z table row per point.
func renderPoints(out io.Writer, points mat.Matrix) error {
	vectors, err := spatialmath.VectorsFromPoints(points)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"x", "y", "z"})
	for _, v := range vectors {
		t.AppendRow(table.Row{fmt.Sprintf("%.6g", v.X), fmt.Sprintf("%.6g", v.Y), fmt.Sprintf("%.6g", v.Z)})
	}
	t.Render()
	return nil
}

// renderMatrix writes one table row per matrix row. extra, when set, appends a computed column.
func renderMatrix(out io.Writer, header table.Row, m *mat.Dense, extra func(row []float64) interface{}) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(header)
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		values := m.RawRowView(i)
		row := make(table.Row, 0, cols+1)
		for j := 0; j < cols; j++ {
			row = append(row, fmt.Sprintf("%.6g", values[j]))
		}
		if extra != nil {
			row = append(row, extra(values))
		}
		t.AppendRow(row)
	}
	t.Render()
}
