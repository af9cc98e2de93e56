package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"data-digitizer/internal/calibrate"
	"data-digitizer/internal/export"
	"data-digitizer/internal/points"
	"data-digitizer/internal/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeSession(t *testing.T, dir string, withLimits bool) string {
	t.Helper()
	f := project.New()
	f.XBounds = calibrate.Bounds{Min: 0, Max: 10}
	f.YBounds = calibrate.Bounds{Min: 0, Max: 100}
	if withLimits {
		f.Points = append(f.Points,
			points.Point{Kind: points.XMin, Row: 10, Col: 0},
			points.Point{Kind: points.XMax, Row: 10, Col: 90},
			points.Point{Kind: points.YMin, Row: 0, Col: 10},
			points.Point{Kind: points.YMax, Row: 90, Col: 10},
		)
	}
	f.Points = append(f.Points,
		points.Point{Kind: points.Data, Row: 45, Col: 45},
		points.Point{Kind: points.Data, Row: 9, Col: 9},
	)
	path := filepath.Join(dir, "s"+project.Extension)
	require.NoError(t, f.Save(path))
	return path
}

func TestMeasureToStdout(t *testing.T) {
	path := writeSession(t, t.TempDir(), true)

	out, errOut, err := execute(t, "measure", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, export.Header, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1.0"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "5.0"), lines[2])
	assert.Contains(t, errOut, "2 data points")
}

func TestMeasureToFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeSession(t, dir, true)
	txt := filepath.Join(dir, "out.txt")
	xlsx := filepath.Join(dir, "out.xlsx")

	out, _, err := execute(t, "measure", path, "-o", txt, "--xlsx", xlsx)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.FileExists(t, txt)
	assert.FileExists(t, xlsx)
}

func TestMeasureMissingLimits(t *testing.T) {
	path := writeSession(t, t.TempDir(), false)
	_, _, err := execute(t, "measure", path)
	assert.ErrorIs(t, err, calibrate.ErrMissingLimits)
}

func TestTestplot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ll.png")
	stdout, _, err := execute(t, "testplot", "loglog", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "x in [1, 1000]")
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	_, _, err = execute(t, "testplot", "polar")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digitize "))
}
