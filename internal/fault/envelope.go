// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fault

import (
	"net/http"

	"github.com/MKhiriev/go-http-core/models"
)

// ProductionMessage replaces the failure message outside debug mode.
const ProductionMessage = "Internal Server Error."

// Status is the HTTP status of every failure response.
const Status = http.StatusInternalServerError

// Envelope returns the client payload for rec. Debug mode exposes the
// failure kind, location, trace and cause chain; production mode exposes
// only the code.
func Envelope(rec models.ErrorRecord, debug bool) any {
	if !debug {
		return models.Envelope{Code: envelopeCode(rec), Data: nil, Message: ProductionMessage}
	}
	return debugEnvelope(&rec)
}

func debugEnvelope(rec *models.ErrorRecord) *models.DebugErrorEnvelope {
	if rec == nil {
		return nil
	}

	trace := rec.TraceLines
	if trace == nil {
		trace = []string{}
	}
	return &models.DebugErrorEnvelope{
		Code:      envelopeCode(*rec),
		Data:      nil,
		Message:   rec.Message,
		Type:      rec.Kind,
		File:      rec.Location.File,
		Line:      rec.Location.Line,
		Trace:     trace,
		Previous:  debugEnvelope(rec.Cause),
		Truncated: rec.Truncated,
	}
}

func envelopeCode(rec models.ErrorRecord) int {
	if rec.Code != 0 {
		return rec.Code
	}
	return Status
}
