// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scope

import "errors"

var (
	// ErrUnknownScope is returned when a handle was never created or has
	// already been destroyed.
	ErrUnknownScope = errors.New("unknown request scope")

	// ErrNoScope is returned when a context carries no scope handle.
	ErrNoScope = errors.New("no request scope in context")
)
