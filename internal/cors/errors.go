// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cors

import "errors"

var (
	// ErrInvalidRule is returned when a rule is neither a string nor a list
	// of strings.
	ErrInvalidRule = errors.New("cors rule must be a string or a list of strings")

	// ErrNegativeMaxAge is returned by policy validation for max-age < 0.
	ErrNegativeMaxAge = errors.New("cors max age must not be negative")
)
