// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidServerConfigs indicates invalid server settings (for example,
	// an empty listen address or a negative timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAccessConfigs indicates invalid auditor settings.
	ErrInvalidAccessConfigs = errors.New("invalid access configuration")
	ErrInvalidFaultConfigs  = errors.New("invalid fault configuration")
	// ErrInvalidCORSConfigs wraps the policy validation error.
	ErrInvalidCORSConfigs = errors.New("invalid cors configuration")
)
