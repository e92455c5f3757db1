// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package scope implements request-scoped storage.
//
// A [Store] hands out a fresh [Handle] per in-flight request. Pipeline
// stages attach the handle to the request context and use it to exchange
// data about that request (the logical response, the handler failure, the
// acceptance time, the buffered request body). Values stored under one
// handle are never observable through another, and a handle is destroyed
// exactly once after the request has been answered and audited.
package scope
