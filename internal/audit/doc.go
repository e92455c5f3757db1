// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package audit emits one access record per routed request.
//
// The [Auditor] runs after the response has been determined. It prints a
// coloured console line and writes a structured record to the access log,
// each behind its own toggle. Structured records are written only for
// successful (2xx) responses of matched routes, carry the caller, query,
// request body and response body when present, redact configured keys at any
// depth and replace oversized payloads with a placeholder. The record's
// severity grows with the request duration.
package audit
