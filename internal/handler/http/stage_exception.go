// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-http-core/internal/fault"
	"github.com/MKhiriev/go-http-core/internal/logger"
	"github.com/MKhiriev/go-http-core/internal/utils"
)

// withExceptions turns a handler failure into a 500 response. Whatever the
// handler had written is discarded; headers set so far, CORS headers
// included, are kept. The failure is returned unchanged.
func (h *Handler) withExceptions(next stage) stage {
	return func(w *Response, r *http.Request) error {
		err := next(w, r)
		if err == nil {
			return nil
		}

		rec := h.reporter.Report(r.Context(), err)
		h.metrics.IncFailure(rec.Kind)

		w.reset()
		if _, werr := utils.WriteJSON(w, fault.Envelope(rec, h.reporter.Debug()), fault.Status); werr != nil {
			logger.FromRequest(r).Err(werr).Msg("writing failure envelope")
		}

		return err
	}
}
