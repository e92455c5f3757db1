// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// routeStage runs the router. A handler failure is whatever the endpoint
// recorded in the scope, a recovered panic, or the request context ending
// before the handler returned.
func (h *Handler) routeStage(w *Response, r *http.Request) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if p == http.ErrAbortHandler {
			panic(p)
		}
		err = errors.WithStack(&PanicError{Value: p})
	}()

	h.router.ServeHTTP(w, r)

	ctx := r.Context()
	if failure := h.store.Failure(ctx); failure != nil {
		return failure
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Wrap(errors.Join(ErrRequestAborted, ctxErr), "handler did not finish")
	}
	return nil
}
