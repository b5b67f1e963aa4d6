package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, FormatText, cfg.Report.Format)
	assert.Equal(t, 44, cfg.Report.Width)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "reports.jsonl", cfg.ReportLog.Path)
	assert.False(t, cfg.ReportLog.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileMetricsDefault(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"section absent", "batch:\n  workers: 2\n", true},
		{"key absent", "metrics: {}\n", true},
		{"explicitly disabled", "metrics:\n  enabled: false\n", false},
		{"explicitly enabled", "metrics:\n  enabled: true\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "metrics.yaml")
			writeFile(t, path, tt.content)

			cfg, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Metrics.Enabled)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, `
logging:
  debug: true
report:
  format: json
  human_readable: true
report_log:
  enabled: true
  path: /tmp/out.jsonl
batch:
  workers: 2
metrics:
  enabled: true
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "collectionmem: ", cfg.Logging.Prefix)
	assert.Equal(t, FormatJSON, cfg.Report.Format)
	assert.True(t, cfg.Report.HumanReadable)
	assert.Equal(t, 44, cfg.Report.Width)
	assert.True(t, cfg.ReportLog.Enabled)
	assert.Equal(t, "/tmp/out.jsonl", cfg.ReportLog.Path)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "report: [unterminated")
	_, err = LoadFile(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "report:\n  format: xml\n")
	_, err = LoadFile(invalid)
	assert.ErrorContains(t, err, "invalid report format")
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config", "staging.yml"), "report:\n  width: 60\n")
	writeFile(t, filepath.Join(root, "config", "prod.yaml"), "batch:\n  workers: 8\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	cfg, err := LoadConfig("staging")
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, 60, cfg.Report.Width)

	cfg, err = LoadConfig("prod")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Batch.Workers)

	_, err = LoadConfig("missing")
	assert.Error(t, err)
}
