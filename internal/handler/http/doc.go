// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the request pipeline of the service.
//
// Every request passes through the same stages, outermost first:
//
//	scope     creates the request scope, buffers the body and the response,
//	          audits and destroys the scope on every exit path
//	trace ID  attaches a trace identifier and a request-scoped logger
//	dispatch  resolves the route and endpoint group before routing
//	exception converts a handler failure into a 500 envelope
//	cors      negotiates CORS headers and answers preflight requests
//	route     runs the chi router, recovers panics and collects failures
//
// Endpoints return their logical result instead of writing the response;
// see [Endpoint].
package http
