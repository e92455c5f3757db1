// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		errorMsg     string
		expectedAddr NetAddress
	}{
		{name: "valid localhost", input: "localhost:8080", expectedAddr: NetAddress{Host: "localhost", Port: 8080}},
		{name: "valid IPv4", input: "127.0.0.1:9090", expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "all interfaces", input: ":8081", expectedAddr: NetAddress{Port: 8081}},
		{name: "missing colon", input: "localhost8080", errorMsg: "need address in a form `host:port`"},
		{name: "multiple colons", input: "host:port:extra", errorMsg: "need address in a form `host:port`"},
		{name: "non-numeric port", input: "localhost:abc", errorMsg: "invalid syntax"},
		{name: "zero port", input: "localhost:0", errorMsg: "port number is a positive integer"},
		{name: "invalid IP address", input: "invalid.host:8080", errorMsg: "incorrect IP-address provided"},
		{name: "empty string", input: "", errorMsg: "need address in a form `host:port`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, *addr)
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "localhost:8080",
				"-c", "/path/to/config.yaml",
				"-debug",
				"-request-timeout", "30s",
				"-shutdown-timeout", "5s",
				"-metrics-path", "-",
				"-group", "admin",
				"-access-print",
				"-access-log",
				"-hidden", "password, token",
				"-body-limit", "512",
				"-cors-policy-file", "/etc/cors.yaml",
				"-sentry-dsn", "https://key@sentry.example.com/1",
				"-webhook-url", "https://hooks.example.com",
				"-fault-max-depth", "4",
				"-token-sign-key", "jwt_secret",
				"-token-issuer", "test_issuer",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
				assert.Equal(t, "/path/to/config.yaml", cfg.FilePath)
				assert.True(t, cfg.App.Debug)
				assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
				assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, "-", cfg.Server.MetricsPath)
				assert.Equal(t, "admin", cfg.Server.Group)
				assert.True(t, cfg.Access.Print)
				assert.True(t, cfg.Access.Log)
				assert.Equal(t, []string{"password", "token"}, cfg.Access.Hidden)
				assert.Equal(t, int64(512), cfg.Access.BodyLimit)
				assert.Equal(t, "/etc/cors.yaml", cfg.CORS.PolicyFile)
				assert.Equal(t, "https://key@sentry.example.com/1", cfg.Notify.SentryDSN)
				assert.Equal(t, "https://hooks.example.com", cfg.Notify.WebhookURL)
				assert.Equal(t, 4, cfg.Fault.MaxDepth)
				assert.Equal(t, "jwt_secret", cfg.Auth.TokenSignKey)
				assert.Equal(t, "test_issuer", cfg.Auth.TokenIssuer)
			},
		},
		{
			name: "config alias flag",
			args: []string{"-config", "/path/to/config.json"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.FilePath)
			},
		},
		{
			name: "repeated hidden flag accumulates",
			args: []string{"-hidden", "a", "-hidden", "b,c"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, []string{"a", "b", "c"}, cfg.Access.Hidden)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, StructuredConfig{}, *cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(newFlagSet(), tt.args)
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestParseFlags_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid server address format", args: []string{"-a", "invalid"}},
		{name: "invalid port in server address", args: []string{"-a", "localhost:abc"}},
		{name: "invalid duration", args: []string{"-request-timeout", "soon"}},
		{name: "unknown flag", args: []string{"-grpc-address", "localhost:9090"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(newFlagSet(), tt.args)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
