package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, info, err := LoadFile(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.False(t, info.Found)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_OverridesAndAliases(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[server]
port = 18080

[input]
encoding = "windows-874"

[export]
default_scope = "gaps"

[log]
level = "warn"

[schema.aliases]
job_title = ["หน้าที่", "role"]
`)

	cfg, info, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, info.Found)
	assert.Equal(t, 18080, cfg.Server.Port)
	assert.Equal(t, "windows-874", cfg.Input.Encoding)
	assert.Equal(t, 64, cfg.Input.MaxUploadMB, "unset keys keep defaults")
	assert.Equal(t, "gaps", cfg.Export.DefaultScope)
	assert.Equal(t, []string{"หน้าที่", "role"}, cfg.Schema.Aliases["job_title"])

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Parallel()

	_, _, err := LoadFile(writeConfig(t, "[server\nport = 1"))
	assert.ErrorContains(t, err, "parse config")

	_, _, err = LoadFile(writeConfig(t, `
[server]
port = 0
[export]
default_scope = "everything"
[log]
level = "loud"
`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "server.port")
	assert.ErrorContains(t, err, "export.default_scope")
	assert.ErrorContains(t, err, "log.level")
}

func TestLogLevel_DevModeForcesDebug(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Server.DevMode = true
	cfg.Log.Level = "error"

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)
}
