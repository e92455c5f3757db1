// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scope

import (
	"context"
	"time"
)

// Well-known scope keys.
const (
	KeyResponseData = "response-data"
	KeyFailure      = "handler-failure"
	KeyAcceptedAt   = "accepted-at"
	KeyRequestBody  = "request-body"
)

// RequestBody describes the request payload as seen by the pipeline before
// the handler consumed it.
type RequestBody struct {
	// Size is the payload size in bytes. For bodies larger than the buffering
	// limit it is the declared Content-Length or the number of bytes read.
	Size int64

	// Raw holds the payload when it was small enough to buffer.
	Raw []byte

	// ContentType is the request Content-Type header.
	ContentType string
}

// ResponseDataRegistry records the logical, pre-serialization result of a
// request under [KeyResponseData].
type ResponseDataRegistry struct {
	store *Store
}

func NewResponseDataRegistry(store *Store) *ResponseDataRegistry {
	return &ResponseDataRegistry{store: store}
}

// Set records data as the result of the request carried by ctx.
func (r *ResponseDataRegistry) Set(ctx context.Context, data any) error {
	return r.store.SetIn(ctx, KeyResponseData, data)
}

// Get returns the recorded result of the request carried by ctx.
func (r *ResponseDataRegistry) Get(ctx context.Context) (any, bool) {
	return r.store.GetFrom(ctx, KeyResponseData)
}

// SetFailure records the failure returned by the handler.
func (s *Store) SetFailure(ctx context.Context, err error) error {
	return s.SetIn(ctx, KeyFailure, err)
}

// Failure returns the failure recorded by the handler, if any.
func (s *Store) Failure(ctx context.Context) error {
	v, ok := s.GetFrom(ctx, KeyFailure)
	if !ok {
		return nil
	}
	err, _ := v.(error)
	return err
}

// AcceptedAt returns when processing of the request began.
func (s *Store) AcceptedAt(ctx context.Context) (time.Time, bool) {
	v, ok := s.GetFrom(ctx, KeyAcceptedAt)
	if !ok {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}

// Body returns the request body descriptor recorded for the request.
func (s *Store) Body(ctx context.Context) (RequestBody, bool) {
	v, ok := s.GetFrom(ctx, KeyRequestBody)
	if !ok {
		return RequestBody{}, false
	}
	b, ok := v.(RequestBody)
	return b, ok
}
