// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/MKhiriev/go-http-core/internal/logger"
	"github.com/MKhiriev/go-http-core/internal/normalize"
	"github.com/MKhiriev/go-http-core/internal/utils"
	"github.com/MKhiriev/go-http-core/models"
)

// Endpoint is a request handler that returns its logical result instead of
// writing the response.
//
// A [models.DataBag] result controls the envelope code and message, and a
// failed bag is written with its code as the HTTP status. Any other result
// becomes the data of a successful envelope. A non-nil error is a handler
// failure and produces a 500 response.
type Endpoint func(r *http.Request) (any, error)

// endpoint adapts e to an http.HandlerFunc that serializes the result and
// records it in the response data registry.
func (h *Handler) endpoint(e Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := e(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.respond(w, r, result)
	}
}

// fail records err as the handler failure of the request.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if serr := h.store.SetFailure(r.Context(), err); serr != nil {
		// no scope: nothing downstream can pick the failure up
		logger.FromRequest(r).Err(err).Msg("endpoint failed outside the pipeline")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// respond writes result as an envelope. The registry receives the envelope
// for bags, the converted form for array-convertible values and the raw
// result otherwise. A result that cannot be encoded is a handler failure.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, result any) {
	status := http.StatusOK

	var (
		data     any
		envelope models.Envelope
	)
	switch v := result.(type) {
	case models.DataBag:
		envelope = v.Envelope()
		envelope.Data = normalize.Any(v.Data)
		data = envelope
		if v.IsFailed() {
			status = v.Code
		}
	case normalize.Arrayable:
		data = v.ToArray()
		envelope = models.Succeed(normalize.Any(data)).Envelope()
	default:
		data = result
		envelope = models.Succeed(normalize.Any(result)).Envelope()
	}

	body, err := utils.MarshalJSON(envelope)
	if err != nil {
		h.fail(w, r, errors.Wrap(err, "encoding result"))
		return
	}

	_ = h.registry.Set(r.Context(), data)

	w.Header().Set("Content-Type", utils.JSONContentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing response")
	}
}

// writeBag writes a bag outside the pipeline, where no scope exists.
func writeBag(w http.ResponseWriter, bag models.DataBag) {
	env := bag.Envelope()
	env.Data = normalize.Any(bag.Data)
	_, _ = utils.WriteJSON(w, env, bag.Code)
}
