package liam

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLiamEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LIAM_API_KEY", "LIAM_PRIVATE_KEY", "LIAM_PRIVATE_KEY_PATH",
		"LIAM_BASE_URL", "LIAM_TIMEOUT", "LIAM_RATE_LIMIT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearLiamEnv(t)
	t.Setenv("LIAM_API_KEY", "env-key")
	t.Setenv("LIAM_BASE_URL", "https://staging.example.test/api")
	t.Setenv("LIAM_TIMEOUT", "10")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://staging.example.test/api", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	clearLiamEnv(t)

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLoadConfig_KeyMaterialFromEnv(t *testing.T) {
	clearLiamEnv(t)
	pair := testKeyPair(t)
	t.Setenv("LIAM_API_KEY", "env-key")
	t.Setenv("LIAM_PRIVATE_KEY", string(pair.PrivatePEM))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, pair.PrivatePEM, cfg.PrivateKeyPEM)

	c, err := New(cfg)
	require.NoError(t, err)
	defer c.Close()
	assert.True(t, c.Signed())
}

func TestLoadConfig_FileWithEnvOverride(t *testing.T) {
	clearLiamEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api_key: file-key\nbase_url: https://file.example.test/api\nrate_limit: 25\n",
	), 0o600))

	// Environment wins over the file.
	t.Setenv("LIAM_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://file.example.test/api", cfg.BaseURL)
	assert.Equal(t, 25.0, cfg.RateLimit)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearLiamEnv(t)
	t.Setenv("LIAM_API_KEY", "env-key")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestFromEnv(t *testing.T) {
	clearLiamEnv(t)
	t.Setenv("LIAM_API_KEY", "env-key")

	c, err := FromEnv()
	require.NoError(t, err)
	defer c.Close()
	assert.False(t, c.Signed())
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestFromEnv_Missing(t *testing.T) {
	clearLiamEnv(t)

	_, err := FromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}
