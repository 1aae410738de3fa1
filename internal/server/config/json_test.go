package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_grpc": "www.example:9000",
		"endpoint_addr_http": "www.example:8000",
		"store_backend":      "s3",
		"database_dsn":       "postgres://db",
		"sqlite_path":        "/tmp/rm.db",
		"s3_bucket":          "bucket",
		"s3_region":          "region",
		"s3_base_endpoint":   "base_endpoint",
		"cookie_name":        "rm",
		"secret_length":      48,
		"hash_algorithm":     "blake2b-256",
		"expires_at":         "2030-01-01T00:00:00Z",
		"cookie_secure":      true,
		"cookie_httponly":    false,
		"shutdown_timeout":   "3s",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{CookieHTTPOnly: true, Table: "kept"}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "www.example:8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "s3", cfg.StoreBackend)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, "/tmp/rm.db", cfg.SQLitePath)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		assert.Equal(t, "rm", cfg.CookieName)
		assert.Equal(t, 48, cfg.SecretLength)
		assert.Equal(t, "blake2b-256", cfg.HashAlgorithm)
		assert.Equal(t, "2030-01-01T00:00:00Z", cfg.ExpiresAt)
		assert.True(t, cfg.CookieSecure)
		assert.False(t, cfg.CookieHTTPOnly, "explicit false overrides")
		assert.Equal(t, "kept", cfg.Table, "absent fields keep their value")
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg
		parseJson(cfg)

		assert.Equal(t, want, *cfg)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "missing.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
