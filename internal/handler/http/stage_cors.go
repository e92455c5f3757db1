// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-http-core/internal/cors"
	"github.com/MKhiriev/go-http-core/internal/route"
)

// withCORS negotiates CORS headers from the policy of the request's
// endpoint group. Preflight requests are answered here and never reach the
// router. For other requests Expose-Headers is computed after the handler,
// on the failure path too.
func (h *Handler) withCORS(next stage) stage {
	return func(w *Response, r *http.Request) error {
		if !cors.IsCorsRequest(r) {
			return next(w, r)
		}

		group := route.GroupFrom(r.Context())
		policy := h.policies.Resolve(group)
		cors.Negotiate(r, w.Header(), policy)

		if cors.IsPreflight(r) {
			cors.ExposeHeaders(w.Header(), policy)
			h.metrics.IncPreflight(group)
			return nil
		}

		err := next(w, r)
		cors.ExposeHeaders(w.Header(), policy)
		return err
	}
}
