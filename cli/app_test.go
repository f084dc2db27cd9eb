package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/devicepose/device"
	"go.viam.com/devicepose/spatialmath"
)

const testRig = `{
	"devices": [
		{"name": "base", "translation": [1, 2, 3]},
		{"name": "eye", "type": "camera", "matrix": [2, 0, 10, 0, 2, 20, 0, 0, 1]},
		{"name": "blind", "type": "camera"}
	]
}`

func writeRig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rig.json")
	test.That(t, os.WriteFile(path, []byte(testRig), 0o600), test.ShouldBeNil)
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := NewApp(&out).Run(append([]string{"devicepose", "--config", writeRig(t)}, args...))
	return out.String(), err
}

// tableRows returns the cells of every rendered table row after the header.
func tableRows(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "|") {
			continue
		}
		var cells []string
		for _, cell := range strings.Split(strings.Trim(line, "|"), "|") {
			cells = append(cells, strings.TrimSpace(cell))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func TestDevicesCommand(t *testing.T) {
	out, err := runApp(t, "devices")
	test.That(t, err, test.ShouldBeNil)
	rows := tableRows(out)
	test.That(t, rows, test.ShouldHaveLength, 3)
	test.That(t, rows[0][:3], test.ShouldResemble, []string{"base", "device", "1, 2, 3"})
	test.That(t, rows[1][:2], test.ShouldResemble, []string{"blind", "camera"})
	test.That(t, rows[2][:2], test.ShouldResemble, []string{"eye", "camera"})
	test.That(t, rows[0][4], test.ShouldEqual, "")
	test.That(t, rows[2][4], test.ShouldEqual, "brown_conrady [0 0 0 0]")
}

func TestTransformCommands(t *testing.T) {
	out, err := runApp(t, "to-origin", "--device", "base", "--point", "1,1,1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tableRows(out), test.ShouldResemble, [][]string{{"2", "3", "4"}})

	out, err = runApp(t, "to-origin", "--device", "base", "--point", "1,1,1", "--rotation-only")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tableRows(out), test.ShouldResemble, [][]string{{"1", "1", "1"}})

	out, err = runApp(t, "to-self", "--device", "base", "--point", "1,2,3", "--point", "2,2,2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tableRows(out), test.ShouldResemble, [][]string{{"0", "0", "0"}, {"1", "0", "-1"}})

	_, err = runApp(t, "to-self", "--device", "missing", "--point", "1,2,3")
	test.That(t, device.IsNotFoundError(err), test.ShouldBeTrue)

	_, err = runApp(t, "to-self", "--device", "base", "--point", "1,2")
	test.That(t, spatialmath.IsShapeError(err), test.ShouldBeTrue)

	_, err = runApp(t, "to-self", "--device", "base", "--point", "1,x,2")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `invalid point "1,x,2"`)
}

func TestProjectAndRayCommands(t *testing.T) {
	out, err := runApp(t, "project", "--device", "eye", "--point", "1,2,2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tableRows(out), test.ShouldResemble, [][]string{{"11", "22", "true"}})

	out, err = runApp(t, "ray", "--device", "eye", "--point", "22,44,2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tableRows(out), test.ShouldResemble, [][]string{{"1", "2", "2"}})

	_, err = runApp(t, "ray", "--device", "blind", "--point", "1,1,1")
	test.That(t, spatialmath.IsSingularMatrixError(err), test.ShouldBeTrue)

	_, err = runApp(t, "project", "--device", "base", "--point", "1,1,1")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `device "base" is not a camera`)
}

func TestParsePoints(t *testing.T) {
	points, err := parsePoints([]string{"1, 2, 3", "-4,5.5,6e1"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, points.RawRowView(1), test.ShouldResemble, []float64{-4, 5.5, 60})

	_, err = parsePoints([]string{"1,2,3,4"})
	test.That(t, spatialmath.IsShapeError(err), test.ShouldBeTrue)

	_, err = parsePoints(nil)
	test.That(t, spatialmath.IsShapeError(err), test.ShouldBeTrue)
}
