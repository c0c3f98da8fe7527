package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nikolaydubina/go-grid-layout/internal/config"
)

const testGrid = `orientation: horizontal
columns: 2
cells:
  - name: label
    width: 50
    height: 30
    baseline: 20
  - name: field
    width: 70
    height: 40
    baseline: 10
  - width: 20
    height: 10
  - name: hidden
    width: 500
    height: 500
    gone: true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gridlayout dev\n", stdout)
}

func TestSolve_YAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "gridlayout.yaml", "output:\n  style: yaml\n")
	gridPath := writeFile(t, dir, "grid.yaml", testGrid)

	stdout, stderr, err := execute(t, "solve", gridPath, "--config", cfgPath, "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "solved 4 cells in 120x60\n", stderr)

	var got report
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))

	assert.Equal(t, report{
		Width:   120,
		Height:  60,
		Columns: axisReport{Minima: []int{0, 50, 120}, Lines: []int{0, 50, 120}},
		Rows:    axisReport{Minima: []int{0, 50, 60}, Lines: []int{0, 50, 60}},
		Cells: []cellReport{
			{Name: "label", Row: "0", Column: "0", X: 0, Y: 0, W: 50, H: 30},
			{Name: "field", Row: "0", Column: "1", X: 50, Y: 10, W: 70, H: 40},
			{Name: "#2", Row: "1", Column: "0", X: 0, Y: 50, W: 20, H: 10},
			{Name: "hidden", Row: "0", Column: "0", Gone: true},
		},
	}, got)
}

func TestSolve_TargetAndScale(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "gridlayout.yaml", "")
	gridPath := writeFile(t, dir, "grid.yaml", testGrid)

	stdout, _, err := execute(t, "solve", gridPath, "--config", cfgPath, "--no-color",
		"--width", "200", "--scale", "2", "--output", "yaml")
	require.NoError(t, err)

	var got report
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))

	assert.Equal(t, 400, got.Width)
	assert.Equal(t, 120, got.Height)
	assert.Equal(t, []int{0, 100, 240}, got.Columns.Minima)
	assert.Equal(t, []int{0, 100, 400}, got.Columns.Lines)
	assert.Equal(t, cellReport{Name: "field", Row: "0", Column: "1", X: 100, Y: 20, W: 140, H: 80}, got.Cells[1])
}

func TestSolve_Table(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "gridlayout.yaml", "")
	gridPath := writeFile(t, dir, "grid.yaml", testGrid)

	stdout, _, err := execute(t, "solve", gridPath, "--config", cfgPath, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, stdout, "columns min")
	assert.Contains(t, stdout, "rows")
	assert.Contains(t, stdout, "label")
	assert.Contains(t, stdout, "field")
	assert.Contains(t, stdout, "gone")
}

func TestSolve_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "gridlayout.yaml", "")
	gridPath := writeFile(t, dir, "grid.yaml", testGrid)
	badGrid := writeFile(t, dir, "bad.yaml", "cells:\n  - row_span: -1\n")

	_, _, err := execute(t, "solve", gridPath, "--config", cfgPath, "--output", "csv")
	require.ErrorIs(t, err, config.ErrInvalidOutputStyle)

	_, _, err = execute(t, "solve", filepath.Join(dir, "absent.yaml"), "--config", cfgPath)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, "solve", badGrid, "--config", cfgPath)
	require.Error(t, err)

	_, _, err = execute(t, "solve", gridPath, "--config", cfgPath, "--scale", "0")
	require.Error(t, err)

	_, _, err = execute(t, "solve")
	require.Error(t, err)
}

func TestGraph(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "gridlayout.yaml", "")
	gridPath := writeFile(t, dir, "grid.yaml", testGrid)

	stdout, _, err := execute(t, "graph", gridPath, "--config", cfgPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{
		`{"id":"columns/0","axis":"columns","line":0,"minimum":0}`,
		`{"id":"columns/1","axis":"columns","line":1,"minimum":50}`,
		`{"id":"columns/2","axis":"columns","line":2,"minimum":120}`,
		`{"from":"columns/0","to":"columns/1","value":50}`,
		`{"from":"columns/1","to":"columns/2","value":70}`,
		`{"id":"rows/0","axis":"rows","line":0,"minimum":0}`,
		`{"id":"rows/1","axis":"rows","line":1,"minimum":50}`,
		`{"id":"rows/2","axis":"rows","line":2,"minimum":60}`,
		`{"from":"rows/0","to":"rows/1","value":50}`,
		`{"from":"rows/1","to":"rows/2","value":10}`,
	}, lines)

	_, _, err = execute(t, "graph", filepath.Join(dir, "absent.yaml"), "--config", cfgPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSolve_InstallsDefaultLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "gridlayout.yaml", "log:\n  level: debug\n  format: json\n")
	gridPath := writeFile(t, dir, "grid.yaml", testGrid)

	var out, errOut bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"solve", gridPath, "--config", cfgPath, "--no-color"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, errOut.String(), `"msg":"grid constraints solved"`)

	slog.Debug("after solve")
	assert.Contains(t, errOut.String(), `"msg":"after solve"`)
}
