// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-http-core/internal/cors"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, an optional JSON or YAML file and finally
// the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
//   - yaml     : key in the configuration file (JSON files use the same keys).
type StructuredConfig struct {
	App    App    `envPrefix:"APP_" yaml:"app"`
	Server Server `envPrefix:"SERVER_" yaml:"server"`

	// Access configures the access auditor.
	Access Access `envPrefix:"ACCESS_" yaml:"access"`

	// Auth configures bearer token validation for authenticated routes and
	// for the user field of access records.
	Auth Auth `envPrefix:"AUTH_" yaml:"auth"`

	// Notify configures where handler failures are published.
	Notify Notify `envPrefix:"NOTIFY_" yaml:"notify"`

	CORS  CORS  `envPrefix:"CORS_" yaml:"cors"`
	Fault Fault `envPrefix:"FAULT_" yaml:"fault"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG" yaml:"-"`
}

type App struct {
	// Debug exposes failure details in client payloads and echoes failures
	// to the console.
	// Env: APP_DEBUG
	Debug bool `env:"DEBUG" yaml:"debug"`

	// Version is reported by /api/version when no build version was linked
	// into the binary.
	// Env: APP_VERSION
	Version string `env:"VERSION" yaml:"version"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" yaml:"address"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before its context is cancelled (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" yaml:"requestTimeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdownTimeout"`

	// MetricsPath is where Prometheus metrics are served. "-" disables them.
	// Env: SERVER_METRICS_PATH
	MetricsPath string `env:"METRICS_PATH" yaml:"metricsPath"`

	// Group pins every request to one endpoint group.
	// Env: SERVER_GROUP
	Group string `env:"GROUP" yaml:"group"`
}

type Access struct {
	// Env: ACCESS_PRINT
	Print bool `env:"PRINT" yaml:"print"`

	// Env: ACCESS_LOG
	Log bool `env:"LOG" yaml:"log"`

	// Hidden lists keys redacted in queries and payloads, comma separated.
	// Env: ACCESS_HIDDEN
	Hidden []string `env:"HIDDEN" envSeparator:"," yaml:"hidden"`

	// BodyLimit is the payload size in bytes above which bodies are not
	// logged.
	// Env: ACCESS_BODY_LIMIT
	BodyLimit int64 `env:"BODY_LIMIT" yaml:"bodyLimit"`
}

type Auth struct {
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY" yaml:"tokenSignKey"`

	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" yaml:"tokenIssuer"`
}

type Notify struct {
	// Env: NOTIFY_SENTRY_DSN
	SentryDSN string `env:"SENTRY_DSN" yaml:"sentryDsn"`

	// Environment tags published events.
	// Env: NOTIFY_ENVIRONMENT
	Environment string `env:"ENVIRONMENT" yaml:"environment"`

	// WebhookURL receives failures as JSON POST requests.
	// Env: NOTIFY_WEBHOOK_URL
	WebhookURL string `env:"WEBHOOK_URL" yaml:"webhookUrl"`

	// Env: NOTIFY_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" yaml:"timeout"`
}

// CORS holds the policies. Default and Groups can only be set in the
// configuration file; PolicyFile is loaded instead of them when set and is
// watched for changes.
type CORS struct {
	Default cors.PolicyConfig            `env:"-" yaml:"default"`
	Groups  map[string]cors.PolicyConfig `env:"-" yaml:"groups"`

	// Env: CORS_POLICY_FILE
	PolicyFile string `env:"POLICY_FILE" yaml:"policyFile"`
}

type Fault struct {
	// MaxDepth bounds the normalized cause chain.
	// Env: FAULT_MAX_DEPTH
	MaxDepth int `env:"MAX_DEPTH" yaml:"maxDepth"`
}

// PolicySet returns the configured CORS policies.
func (c CORS) PolicySet() cors.PolicySet {
	return cors.NewPolicySet(c.Default, c.Groups)
}

// GetStructuredConfig loads, merges, and validates the application
// configuration. For every field the first source that sets it wins:
//  1. Environment variables
//  2. Command-line flags
//  3. Configuration file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withFile().
		withDefaults().
		build()
}
