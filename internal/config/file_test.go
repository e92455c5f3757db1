// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-http-core/internal/cors"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
app:
  debug: true
server:
  address: "127.0.0.1:9000"
  requestTimeout: 45s
access:
  log: true
  hidden: [password, secret]
  bodyLimit: 4096
cors:
  default:
    origin: ["https://app.example.com"]
    credentials: true
  groups:
    admin:
      origin: "https://admin.example.com"
      maxAge: 600
fault:
  maxDepth: 3
`)

	cfg, err := parseFile(path)

	require.NoError(t, err)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Access.Log)
	assert.Equal(t, []string{"password", "secret"}, cfg.Access.Hidden)
	assert.Equal(t, int64(4096), cfg.Access.BodyLimit)
	assert.Equal(t, 3, cfg.Fault.MaxDepth)

	set := cfg.CORS.PolicySet()
	assert.Equal(t, cors.OneOf("https://app.example.com"), set.Default.Origin)
	assert.True(t, set.Default.Credentials)

	admin := set.Resolve("admin")
	assert.Equal(t, cors.Exact("https://admin.example.com"), admin.Origin)
	assert.Equal(t, 600, admin.MaxAge)
	assert.True(t, admin.Credentials)
}

func TestParseFile_JSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{
  "server": {"address": "localhost:8081", "shutdownTimeout": "3s"},
  "notify": {"webhookUrl": "https://hooks.example.com", "timeout": "1s"},
  "cors": {"policyFile": "/etc/cors.json"}
}`)

	cfg, err := parseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "https://hooks.example.com", cfg.Notify.WebhookURL)
	assert.Equal(t, time.Second, cfg.Notify.Timeout)
	assert.Equal(t, "/etc/cors.json", cfg.CORS.PolicyFile)
	assert.Empty(t, cfg.FilePath)
}

func TestParseFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := parseFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("malformed content", func(t *testing.T) {
		path := writeTempConfig(t, "bad.yaml", "server: [unterminated")
		_, err := parseFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	t.Run("invalid duration", func(t *testing.T) {
		path := writeTempConfig(t, "bad.yaml", "server:\n  requestTimeout: soon\n")
		_, err := parseFile(path)
		assert.Error(t, err)
	})
}
