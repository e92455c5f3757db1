// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cors computes CORS response headers from declarative policies.
//
// A [Policy] is resolved per endpoint group: every field falls back to the
// global default independently when the group does not set it. [Negotiate]
// writes the Allow-Origin, Allow-Methods, Allow-Headers, Allow-Credentials
// and Max-Age headers before the handler runs, and [ExposeHeaders] writes
// Access-Control-Expose-Headers against the final response headers, which
// the pipeline does on the failure path too.
//
// A header that is already present on the response is never overwritten.
// A policy that does not admit the request omits the header instead of
// rejecting the request; the browser enforces the outcome.
package cors
