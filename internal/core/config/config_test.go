package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  http:
    port: 9090
jwt:
  secret: s3cret
  accessTokenTTLMin: 60
db:
  driver: sqlite
  dsn: file::memory:
storage:
  baseURL: http://localhost:9090/files
limits:
  perIPRPS: 5
`

func write(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestRead(t *testing.T) {
	c, err := Read(write(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.Equal(t, 8081, c.App.Admin.Port)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, "./data/files", c.Storage.Root)
	assert.Equal(t, 5.0, c.Limits.PerIPRPS)
	assert.Equal(t, time.Hour, c.JWT.TTL())
	assert.Equal(t, 30*time.Second, c.Cache.AccessTTL())
}

func TestReadEnvOverride(t *testing.T) {
	t.Setenv("APP_DB_DRIVER", "postgres")
	c, err := Read(write(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "postgres", c.DB.Driver)
}

func TestReadRequiresSecret(t *testing.T) {
	_, err := Read(write(t, "db:\n  driver: sqlite\n"))
	assert.ErrorContains(t, err, "jwt.secret")
}

func TestReadDefaultsStorageURL(t *testing.T) {
	c, err := Read(write(t, "app:\n  http:\n    port: 9090\njwt:\n  secret: s3cret\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9090/files", c.Storage.BaseURL)
	assert.Equal(t, "./data/files", c.Storage.Root)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
