package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scango/visitorgate/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visitorgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validConfigYAML = `
site:
  host: localhost
  user: frappe
  database: _site
report:
  row_limit: 500
`

func TestLoadConfigAppliesOverrides(t *testing.T) {
	origCfg, origLevel, origRows := cfgFile, logLevel, rowLimit
	defer func() { cfgFile, logLevel, rowLimit = origCfg, origLevel, origRows }()

	cfgFile = writeConfig(t, validConfigYAML)
	logLevel = "debug"
	rowLimit = 100

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.Report.RowLimit)
	assert.Equal(t, "localhost", cfg.Site.Host)
	assert.Equal(t, config.DefaultCandidates(), cfg.Report.Candidates)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	origCfg, origRows := cfgFile, rowLimit
	defer func() { cfgFile, rowLimit = origCfg, origRows }()

	cfgFile = writeConfig(t, validConfigYAML)
	rowLimit = 5000

	_, err := loadConfig()
	require.Error(t, err)
	var verrs config.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "report.row_limit", verrs[0].Field)
}

func TestLoadConfigMissingFile(t *testing.T) {
	origCfg := cfgFile
	defer func() { cfgFile = origCfg }()

	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
