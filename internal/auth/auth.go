// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth resolves the authenticated caller of a request. It does not
// enforce access; the access auditor only uses it to attribute requests.
package auth

import (
	"net/http"

	"github.com/MKhiriev/go-http-core/internal/utils"
	"github.com/MKhiriev/go-http-core/models"
)

// JWTIdentity reads the caller from an HS256 bearer token.
type JWTIdentity struct {
	signKey string
	issuer  string
}

func NewJWTIdentity(signKey, issuer string) *JWTIdentity {
	return &JWTIdentity{signKey: signKey, issuer: issuer}
}

// CurrentIdentity returns the identity carried by the Authorization header.
// Missing, malformed, expired or foreign tokens yield no identity.
func (j *JWTIdentity) CurrentIdentity(r *http.Request) (models.Identity, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || j.signKey == "" {
		return models.Identity{}, false
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		return models.Identity{}, false
	}

	identity, err := utils.ValidateAndParseJWTToken(token, j.signKey, j.issuer)
	if err != nil {
		return models.Identity{}, false
	}
	return identity, true
}
