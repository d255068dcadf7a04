package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromReader(t *testing.T) {
	yamlContent := `
server:
  url: https://grid.example.com:11222
  timeout: 5s
security:
  mode: digest
  credentials:
    username: admin
    password: ${CONSOLE_TEST_PASSWORD:-changeme}
observability:
  logging:
    level: debug
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yamlContent))
	require.NoError(t, err)

	assert.Equal(t, "https://grid.example.com:11222", cfg.Server.URL)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout.Duration())
	assert.Equal(t, SecurityModeDigest, cfg.Security.Mode)
	assert.Equal(t, CredentialSourceStatic, cfg.Security.Credentials.Source)
	assert.Equal(t, "changeme", cfg.Security.Credentials.Password)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, DefaultNamespace, cfg.Observability.Metrics.Namespace)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfig_EnvSubstitution(t *testing.T) {
	t.Setenv("CONSOLE_TEST_URL", "http://10.0.0.7:11222")
	t.Setenv("CONSOLE_TEST_PASSWORD", "s3cret")

	dir := t.TempDir()
	path := filepath.Join(dir, "console.yaml")
	content := `
server:
  url: ${CONSOLE_TEST_URL}
security:
  mode: digest
  credentials:
    username: admin
    password: ${CONSOLE_TEST_PASSWORD:-changeme}
    vaultPath: "$$literal"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.7:11222", cfg.Server.URL)
	assert.Equal(t, "s3cret", cfg.Security.Credentials.Password)
	assert.Equal(t, "$literal", cfg.Security.Credentials.VaultPath)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfigFromReader(strings.NewReader("server: [unterminated"))
	assert.Error(t, err)

	_, err = LoadConfigFromReader(strings.NewReader("server:\n  timeout: soon\n"))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, DefaultServerURL, cfg.Server.URL)
	assert.Equal(t, DefaultServerTimeout, cfg.Server.Timeout.Duration())
	assert.Equal(t, SecurityModeNone, cfg.Security.Mode)
	assert.Equal(t, 1.0, cfg.Observability.Tracing.SamplingRate)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestDuration_JSON(t *testing.T) {
	t.Parallel()

	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"1m30s"`)))
	assert.Equal(t, 90*time.Second, d.Duration())

	require.NoError(t, d.UnmarshalJSON([]byte(`null`)))
	assert.Zero(t, d.Duration())

	assert.Error(t, d.UnmarshalJSON([]byte(`"later"`)))

	out, err := Duration(2 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2s"`, string(out))
}
