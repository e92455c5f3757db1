// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-http-core/internal/logger"
	"github.com/MKhiriev/go-http-core/models"
)

type identityKey struct{}

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It resolves the bearer token in the "Authorization" header to an identity
// and stores it in the request context before delegating to the next
// handler. Requests without a header or with an invalid token are answered
// with a 401 envelope.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		if r.Header.Get("Authorization") == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			h.unauthorized(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		if h.identity == nil {
			log.Err(ErrUnauthorized).Msg("no identity provider configured")
			h.unauthorized(w, r, ErrUnauthorized)
			return
		}

		id, ok := h.identity.CurrentIdentity(r)
		if !ok {
			log.Err(ErrUnauthorized).Msg("token rejected")
			h.unauthorized(w, r, ErrUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	h.respond(w, r, models.Failed(err.Error(), http.StatusUnauthorized))
}

func identityFrom(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(models.Identity)
	return id, ok
}

func (h *Handler) me(r *http.Request) (any, error) {
	id, ok := identityFrom(r.Context())
	if !ok {
		return models.Failed(ErrUnauthorized.Error(), http.StatusUnauthorized), nil
	}
	return map[string]any{
		"subject":   id.Subject,
		"issuer":    id.Issuer,
		"expiresAt": id.ExpiresAt.Unix(),
	}, nil
}
