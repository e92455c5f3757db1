// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-http-core/internal/audit"
	"github.com/MKhiriev/go-http-core/internal/fault"
)

// Defaults returns the values used for every field no source sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version: "N/A",
		},
		Server: Server{
			HTTPAddress:     ":8080",
			ShutdownTimeout: 10 * time.Second,
			MetricsPath:     "/metrics",
		},
		Access: Access{
			BodyLimit: audit.DefaultBodyLimit,
		},
		Notify: Notify{
			Environment: "production",
			Timeout:     5 * time.Second,
		},
		Fault: Fault{
			MaxDepth: fault.DefaultMaxDepth,
		},
	}
}
