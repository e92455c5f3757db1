// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/MKhiriev/go-http-core/internal/normalize"
	"github.com/MKhiriev/go-http-core/models"
)

// maxEchoBody caps the payload echo reads.
const maxEchoBody = 1 << 20

// echo returns the JSON request body. Key order is preserved and integers
// outside the 32-bit range come back as strings.
func (h *Handler) echo(r *http.Request) (any, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxEchoBody+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading echo body")
	}
	if len(raw) > maxEchoBody {
		return models.Failed("request body too large", http.StatusRequestEntityTooLarge), nil
	}

	v, err := normalize.Parse(raw)
	if err != nil {
		return models.Failed("invalid JSON body", http.StatusBadRequest), nil
	}
	return v, nil
}
