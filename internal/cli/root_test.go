package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJob = "../../chemjson/testdata/formaldehyde.json"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gochemff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "gochemff", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["type"])
	assert.True(t, names["version"])
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}

func TestVersion(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gochemff 1.2.3 (commit: unknown, built: unknown)\n", out)
}

func TestType(t *testing.T) {
	cfg := writeConfig(t, "typing:\n  fatal: true\n  rename_atoms: true\nlog:\n  level: warn\n  format: json\n")
	out, errOut, err := run(t, "type", "--config", cfg, testJob)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	for _, h := range []string{"stretch_harm", "angle_harm", "improper_harm", "nonbonded", "virtual_lc2", "dihedral_trig", "pseudo virtual_lc2"} {
		assert.Contains(t, out, "[ "+h+" ]\n")
	}
	assert.Contains(t, out, "c_=_o")
	assert.Contains(t, out, "    5     1     2\n")

	out0, _, err := run(t, "type", "--config", cfg, "--one-based", "0", testJob)
	require.NoError(t, err)
	assert.Contains(t, out0, "    4     0     1\n")
}

func TestType_Metrics(t *testing.T) {
	cfg := writeConfig(t, "metrics:\n  enabled: true\nmatching:\n  hierarchical: true\nlog:\n  format: json\n")
	_, errOut, err := run(t, "type", "-c", cfg, testJob)
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"matcher statistics"`)
	assert.Contains(t, errOut, `"table":"stretch_harm"`)
	assert.Contains(t, errOut, `"job":"`+testJob+`"`)
}

func TestType_PluginsFromEnv(t *testing.T) {
	t.Setenv("GOCHEMFF_PLUGINS", "bonds")
	out, _, err := run(t, "type", testJob)
	require.NoError(t, err)
	assert.Contains(t, out, "[ stretch_harm ]\n")
	assert.NotContains(t, out, "[ angle_harm ]\n")
}

func TestType_Errors(t *testing.T) {
	_, _, err := run(t, "type")
	assert.Error(t, err)

	_, _, err = run(t, "type", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, _, err = run(t, "type", "--log-level", "loud", testJob)
	assert.ErrorContains(t, err, "--log-level")

	cfg := writeConfig(t, "plugins: [bonds, nope]\n")
	_, _, err = run(t, "type", "-c", cfg, testJob)
	assert.ErrorContains(t, err, `unknown plugin "nope"`)
}
