package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
typing:
  fatal: true
  rename_atoms: true
  match_bond_order: true
matching:
  hierarchical: true
plugins: [bonds, vdw1]
log:
  level: debug
  format: json
metrics:
  enabled: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gochemff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)
	assert.True(t, cfg.Typing.Fatal)
	assert.True(t, cfg.Typing.RenameAtoms)
	assert.False(t, cfg.Typing.RenameResidues)
	assert.True(t, cfg.Typing.MatchBondOrder)
	assert.True(t, cfg.Matching.Hierarchical)
	assert.Equal(t, []string{"bonds", "vdw1"}, cfg.Plugins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "typing: [unclosed\n"))
	assert.Error(t, err)
}

func TestLoad_ValidationFailure(t *testing.T) {
	_, err := Load(writeConfig(t, "log:\n  level: loud\n"))
	assert.ErrorContains(t, err, "validation failed")
	_, err = Load(writeConfig(t, "plugins: [bonds, bonds]\n"))
	assert.ErrorContains(t, err, "more than once")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "typing:\n  fatal: true\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, DefaultPlugins, cfg.Plugins)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GOCHEMFF_LOG_LEVEL", "warn")
	t.Setenv("GOCHEMFF_TYPING_FATAL", "false")
	t.Setenv("GOCHEMFF_METRICS_ENABLED", "true")
	cfg, err := Load(writeConfig(t, validConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Typing.Fatal)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromEnv_NoFile(t *testing.T) {
	t.Setenv("GOCHEMFF_MATCHING_HIERARCHICAL", "true")
	t.Setenv("GOCHEMFF_PLUGINS", "bonds,angles")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Matching.Hierarchical)
	assert.Equal(t, []string{"bonds", "angles"}, cfg.Plugins)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestMustLoad(t *testing.T) {
	assert.NotPanics(t, func() { MustLoad(writeConfig(t, validConfigYAML)) })
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yaml")) })
}

func TestApplyDefaults(t *testing.T) {
	ApplyDefaults(nil)
	cfg := &Config{Log: LogConfig{Level: "error"}}
	ApplyDefaults(cfg)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	cfg.Plugins[0] = "changed"
	assert.Equal(t, "bonds", DefaultPlugins[0])
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	assert.NoError(t, cfg.Validate())
	cfg.Log.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "log.format")
	cfg.Log.Format = "json"
	cfg.Plugins = []string{""}
	assert.ErrorContains(t, cfg.Validate(), "empty plugin name")
}
