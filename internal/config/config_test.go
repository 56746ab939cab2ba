package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "clobd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_AppliesDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "1.0.0", cfg.SchemaVersion)
}

func TestLoad_ReadsInstrumentSeeds(t *testing.T) {
	path := writeConfigFile(t, `
schema_version: "1.2.0"
server:
  port: 9090
matching:
  instruments:
    - name: Example Corp
      ticker: EX
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	require.Len(t, cfg.Matching.Instruments, 1)
	assert.Equal(t, "EX", cfg.Matching.Instruments[0].Ticker)
}

func TestLoad_RejectsIncompatibleSchemaVersion(t *testing.T) {
	path := writeConfigFile(t, `schema_version: "2.0.0"`)

	_, err := Load(path)
	assert.Error(t, err)
}
