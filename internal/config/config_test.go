package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns a valid configuration
// - Load() uses defaults when no config file exists
// - Load() merges .optdoc.yaml values over defaults
// - Environment variables override the config file
// - Load() returns an error for malformed YAML
// - Load() returns an error for invalid values
// - Validate() rejects bad formats, negative workers, empty replace keys
// - GenerateSchema() emits a JSON schema covering the config fields

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.NoError(t, Validate(cfg))

	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.Empty(t, cfg.Output.Path)
	assert.True(t, cfg.Output.Sort)
	assert.Equal(t, 0, cfg.Scan.Workers)
	assert.Contains(t, cfg.Scan.Exclude, ".git/**")
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.True(t, cfg.Output.Sort)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := `
output:
  format: json
  strip_prefix: options
scan:
  workers: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".optdoc.yaml"), []byte(yaml), 0644))

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "options", cfg.Output.StripPrefix)
	assert.Equal(t, 4, cfg.Scan.Workers)
	// Untouched fields keep their defaults.
	assert.True(t, cfg.Output.Sort)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "output:\n  format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".optdoc.yaml"), []byte(yaml), 0644))

	t.Setenv("OPTDOC_OUTPUT_FORMAT", "csv")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Output.Format)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".optdoc.yaml"), []byte("output: ["), 0644))

	_, err := NewLoader(dir).Load()
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	yaml := "output:\n  format: docx\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".optdoc.yaml"), []byte(yaml), 0644))

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "docx"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidFormat)

	cfg = Default()
	cfg.Scan.Workers = -1
	assert.ErrorIs(t, Validate(cfg), ErrInvalidWorkers)

	cfg = Default()
	cfg.Scan.Replace = map[string]string{" ": "x"}
	assert.ErrorIs(t, Validate(cfg), ErrInvalidReplace)
}

func TestValidate_CollectsMultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "docx"
	cfg.Scan.Workers = -1

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
	assert.Contains(t, err.Error(), "workers")
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "optdoc Configuration", schema["title"])
	assert.Contains(t, string(data), "output")
	assert.Contains(t, string(data), "interpolate_values")
}
