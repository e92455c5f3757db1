// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// stage is a pipeline step that can fail. A returned error is the handler
// failure that crosses the pipeline boundary.
type stage func(w *Response, r *http.Request) error

// keyRequest holds the request as seen by the innermost stage, carrying
// everything the outer stages attached to its context.
const keyRequest = "http-request"

// serve adapts the failing stages to an http.Handler. The failure and the
// final request are left in the scope for the scope stage.
func (h *Handler) serve(s stage) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		_ = h.store.SetIn(ctx, keyRequest, r)

		resp, ok := w.(*Response)
		if !ok {
			resp = newResponse(w)
			defer func() {
				if err := resp.flush(); err != nil {
					h.logger.Err(err).Msg("flushing response")
				}
			}()
		}

		if err := s(resp, r); err != nil {
			_ = h.store.SetFailure(ctx, err)
		}
	})
}
