// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
)

// Sentinel errors used by the pipeline and the authentication middleware.
// Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrUnauthorized is returned when the bearer token is malformed,
	// expired or signed with a different key.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRequestAborted marks a request whose context ended before the
	// handler finished.
	ErrRequestAborted = errors.New("request aborted")
)

// PanicError is the failure a recovered handler panic is converted into.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
