// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-http-core/internal/config"
	"github.com/MKhiriev/go-http-core/internal/handler/http"
	"github.com/MKhiriev/go-http-core/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers enabled by cfg. The server
// settings override the matching fields of deps.
func NewHandlers(deps http.Deps, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		deps.Group = cfg.Group
		deps.RequestTimeout = cfg.RequestTimeout
		handlers.HTTP = http.NewHandler(deps, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
