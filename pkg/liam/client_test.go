package liam

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/liam-go/pkg/signer"
)

func testKeyPair(t *testing.T) *signer.KeyPair {
	t.Helper()
	pair, err := signer.Generate()
	require.NoError(t, err)
	return pair
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNew_UnsignedMode(t *testing.T) {
	c, err := New(Config{APIKey: "key"})
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.Signed())
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestNew_SignedMode(t *testing.T) {
	pair := testKeyPair(t)

	c, err := New(Config{APIKey: "key", PrivateKeyPEM: pair.PrivatePEM})
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Signed())
}

func TestNew_MalformedKeyFailsFast(t *testing.T) {
	_, err := New(Config{APIKey: "key", PrivateKeyPEM: []byte("not a pem")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestNew_PrivateKeyPath(t *testing.T) {
	pair := testKeyPair(t)
	path := filepath.Join(t.TempDir(), "private_key.pem")
	require.NoError(t, os.WriteFile(path, pair.PrivatePEM, 0o600))

	c, err := New(Config{APIKey: "key", PrivateKeyPath: path})
	require.NoError(t, err)
	defer c.Close()
	assert.True(t, c.Signed())
}

func TestNew_PrivateKeyPathMissing(t *testing.T) {
	_, err := New(Config{APIKey: "key", PrivateKeyPath: filepath.Join(t.TempDir(), "nope.pem")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestNew_TrimsBaseURL(t *testing.T) {
	c, err := New(Config{APIKey: "key", BaseURL: "https://example.test/api/"})
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "https://example.test/api", c.BaseURL())
}

func TestNew_TimeoutApplied(t *testing.T) {
	c, err := New(Config{APIKey: "key", Timeout: 5 * time.Second})
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
}
