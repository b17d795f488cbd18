package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
environment: development
server:
  port: 9090
  read_timeout: 5s
data:
  price_csv: data/prices.csv
  gen_csv: data/gen.csv
log:
  level: debug
  format: json
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "data/prices.csv", cfg.Data.PriceCSV)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Defaults(t *testing.T) {
	minimal := `
data:
  price_csv: p.csv
  gen_csv: g.csv
`
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_MissingDataPaths(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: development\n"))
	assert.Error(t, err)
}

func TestLoad_BadLogFormat(t *testing.T) {
	cfg := `
data:
  price_csv: p.csv
  gen_csv: g.csv
log:
  format: xml
`
	_, err := Load(writeConfig(t, cfg))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadWithEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("PRICE_CSV", "other/prices.csv")

	cfg, err := LoadWithEnv(writeConfig(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "other/prices.csv", cfg.Data.PriceCSV)
	assert.Equal(t, "data/gen.csv", cfg.Data.GenCSV)
}

func TestLoadWithEnv_BadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := LoadWithEnv(writeConfig(t, validYAML))
	assert.Error(t, err)
}
