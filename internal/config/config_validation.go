// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Access.BodyLimit < 0 {
		return ErrInvalidAccessConfigs
	}

	if cfg.Fault.MaxDepth < 1 {
		return ErrInvalidFaultConfigs
	}

	if err := cfg.CORS.PolicySet().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCORSConfigs, err)
	}

	return nil
}
