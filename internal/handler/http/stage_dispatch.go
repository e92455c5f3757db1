// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-http-core/internal/route"
)

// withDispatch resolves the route before any CORS or routing work, so that
// policy lookup and auditing know the endpoint group and whether the route
// exists.
func (h *Handler) withDispatch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := route.WithDispatched(r.Context(), h.resolver.Resolve(r))
		if h.group != "" {
			ctx = route.WithGroup(ctx, h.group)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
