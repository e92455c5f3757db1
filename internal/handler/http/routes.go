// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-http-core/internal/route"
	"github.com/MKhiriev/go-http-core/models"
)

// Endpoint groups. CORS policies are configured per group.
const (
	GroupAPI    = "api"
	GroupPublic = "public"
)

func (h *Handler) routes() (*chi.Mux, *route.Resolver) {
	router := chi.NewRouter()

	// routes without authorization
	router.Get("/health", h.endpoint(h.health))

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.endpoint(h.getServerVersion))
		r.Post("/echo", h.endpoint(h.echo))

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.endpoint(h.me))
		})
	})

	for _, e := range h.extra {
		router.Method(e.method, e.pattern, h.endpoint(e.endpoint))
	}

	router.NotFound(h.endpoint(func(*http.Request) (any, error) {
		return models.Failed(http.StatusText(http.StatusNotFound), http.StatusNotFound), nil
	}))
	router.MethodNotAllowed(h.endpoint(func(*http.Request) (any, error) {
		return models.Failed(http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed), nil
	}))

	resolver := route.NewResolver(router)
	resolver.Register(GroupPublic, "/")
	resolver.Register(GroupAPI, "/api")

	return router, resolver
}
