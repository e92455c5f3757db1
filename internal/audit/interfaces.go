// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package audit

//go:generate mockgen -source=interfaces.go -destination=../mock/audit_identity_mock.go -package=mock

import (
	"net/http"

	"github.com/MKhiriev/go-http-core/models"
)

// IdentityProvider resolves the authenticated caller of a request.
type IdentityProvider interface {
	CurrentIdentity(r *http.Request) (models.Identity, bool)
}
