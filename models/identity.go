// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Identity is the authenticated caller of a request as resolved by the
// authentication collaborator.
type Identity struct {
	// Subject identifies the caller, typically the "sub" claim of a token.
	Subject string

	// Issuer is the party that vouched for the identity.
	Issuer string

	// ExpiresAt is when the credential stops being valid. Zero if unknown.
	ExpiresAt time.Time
}
