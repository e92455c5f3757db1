// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package scope

import "context"

type handleKey struct{}

// WithHandle returns a copy of ctx carrying h.
func WithHandle(ctx context.Context, h Handle) context.Context {
	return context.WithValue(ctx, handleKey{}, h)
}

// HandleFrom returns the scope handle carried by ctx.
func HandleFrom(ctx context.Context) (Handle, bool) {
	h, ok := ctx.Value(handleKey{}).(Handle)
	return h, ok && h != ""
}

// SetIn stores v under key in the scope carried by ctx.
func (s *Store) SetIn(ctx context.Context, key string, v any) error {
	h, ok := HandleFrom(ctx)
	if !ok {
		return ErrNoScope
	}
	return s.Set(h, key, v)
}

// GetFrom reads key from the scope carried by ctx.
func (s *Store) GetFrom(ctx context.Context, key string) (any, bool) {
	h, ok := HandleFrom(ctx)
	if !ok {
		return nil, false
	}
	return s.Get(h, key)
}
