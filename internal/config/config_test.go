package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "lexboard.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "legal_data.db", cfg.DatabasePath)
	assert.Equal(t, "laws_import.xlsx", cfg.WorkbookPath)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, "/usr/local/bin/wkhtmltopdf", cfg.WkhtmltopdfPath)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexboard.yaml")
	yaml := `
database_path: /data/laws.db
export_dir: /tmp/exports
logging:
  verbose: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/laws.db", cfg.DatabasePath)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
	assert.True(t, cfg.Logging.Verbose)
	// Unset keys keep their defaults.
	assert.Equal(t, "laws_import.xlsx", cfg.WorkbookPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_path: from_file.db\n"), 0644))

	t.Setenv("LEXBOARD_DB", "from_env.db")
	t.Setenv("LEXBOARD_WKHTMLTOPDF", "/opt/wkhtmltopdf")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from_env.db", cfg.DatabasePath)
	assert.Equal(t, "/opt/wkhtmltopdf", cfg.WkhtmltopdfPath)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\t- broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.DatabasePath = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ExportDir = ""
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexboard.yaml")

	cfg := DefaultConfig()
	cfg.DatabasePath = "custom.db"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.db", loaded.DatabasePath)
}
