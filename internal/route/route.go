// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package route resolves which registered route and endpoint group a
// request is dispatched to, before the router runs the handler.
package route

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Dispatched is the routing outcome for a request.
type Dispatched struct {
	// Found is true when a route matches both the path and the method.
	Found bool

	// Pattern is the matched chi route pattern, e.g. "/api/items/{id}".
	Pattern string

	// Group is the endpoint group owning the route, or "".
	Group string
}

type groupPrefix struct {
	name   string
	prefix string
}

// Resolver matches requests against a chi router without serving them.
type Resolver struct {
	mux    *chi.Mux
	groups []groupPrefix
}

func NewResolver(mux *chi.Mux) *Resolver {
	return &Resolver{mux: mux}
}

// Register maps every route under prefix to the named group. When prefixes
// nest, the longest one wins.
func (res *Resolver) Register(name, prefix string) {
	prefix = "/" + strings.Trim(prefix, "/")
	res.groups = append(res.groups, groupPrefix{name: name, prefix: prefix})
	slices.SortStableFunc(res.groups, func(a, b groupPrefix) int {
		return len(b.prefix) - len(a.prefix)
	})
}

// Resolve reports the route r would be dispatched to.
func (res *Resolver) Resolve(r *http.Request) Dispatched {
	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}
	if path == "" {
		path = "/"
	}

	pattern := res.mux.Find(chi.NewRouteContext(), r.Method, path)
	if pattern == "" {
		return Dispatched{}
	}

	return Dispatched{Found: true, Pattern: pattern, Group: res.groupOf(r.URL.Path)}
}

func (res *Resolver) groupOf(path string) string {
	for _, g := range res.groups {
		if g.prefix == "/" || path == g.prefix || strings.HasPrefix(path, g.prefix+"/") {
			return g.name
		}
	}
	return ""
}

type dispatchedKey struct{}

type groupKey struct{}

// WithDispatched stores the routing outcome in ctx.
func WithDispatched(ctx context.Context, d Dispatched) context.Context {
	return context.WithValue(ctx, dispatchedKey{}, d)
}

// DispatchedFrom returns the routing outcome stored in ctx.
func DispatchedFrom(ctx context.Context) (Dispatched, bool) {
	d, ok := ctx.Value(dispatchedKey{}).(Dispatched)
	return d, ok
}

// WithGroup pins the endpoint group for the request, overriding the group
// of the dispatched route.
func WithGroup(ctx context.Context, group string) context.Context {
	return context.WithValue(ctx, groupKey{}, group)
}

// GroupFrom returns the endpoint group of the request: an explicit group
// set with WithGroup, else the dispatched route's group.
func GroupFrom(ctx context.Context) string {
	if g, ok := ctx.Value(groupKey{}).(string); ok && g != "" {
		return g
	}
	d, _ := DispatchedFrom(ctx)
	return d.Group
}
