package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolaydubina/go-grid-layout/internal/config"
	"github.com/nikolaydubina/go-grid-layout/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gridlayout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, config.DefaultAlignmentMode, cfg.Layout.AlignmentMode)
	assert.False(t, cfg.Layout.RowOrderPreserved)
	assert.False(t, cfg.Layout.ColumnOrderPreserved)
	assert.Equal(t, config.StyleTable, cfg.Output.Style)
	assert.Equal(t, layout.AlignMargins, cfg.Layout.Mode())
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	content := `log:
  level: debug
  format: json
layout:
  alignment_mode: bounds
  row_order_preserved: true
output:
  style: yaml
`
	cfg, err := config.LoadConfig(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, layout.AlignBounds, cfg.Layout.Mode())
	assert.True(t, cfg.Layout.RowOrderPreserved)
	assert.False(t, cfg.Layout.ColumnOrderPreserved)
	assert.Equal(t, config.StyleYAML, cfg.Output.Style)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GRIDLAYOUT_LAYOUT_ALIGNMENT_MODE", "bounds")
	t.Setenv("GRIDLAYOUT_LAYOUT_COLUMN_ORDER_PRESERVED", "true")

	cfg, err := config.LoadConfig(writeConfig(t, "layout:\n  alignment_mode: margins\n"))
	require.NoError(t, err)

	assert.Equal(t, "bounds", cfg.Layout.AlignmentMode)
	assert.True(t, cfg.Layout.ColumnOrderPreserved)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "level", content: "log:\n  level: loud\n", wantErr: config.ErrInvalidLogLevel},
		{name: "format", content: "log:\n  format: xml\n", wantErr: config.ErrInvalidLogFormat},
		{name: "alignment mode", content: "layout:\n  alignment_mode: edges\n", wantErr: config.ErrInvalidAlignmentMode},
		{name: "output style", content: "output:\n  style: csv\n", wantErr: config.ErrInvalidOutputStyle},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogConfig_NewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := config.LogConfig{Level: "info", Format: "json"}.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "axis", "horizontal")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"axis":"horizontal"`)

	buf.Reset()

	logger = config.LogConfig{Level: "debug", Format: "text"}.NewLogger(&buf)
	logger.Debug("solved", "passes", 2)

	assert.Contains(t, buf.String(), "level=DEBUG msg=solved passes=2")
}
