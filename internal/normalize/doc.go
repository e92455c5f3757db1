// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package normalize turns arbitrary handler results into JSON-safe values.
//
// Results are represented by the closed tagged variant [Value]. A Value is
// built from Go data with [From] or decoded from JSON with [Parse], then
// passed through [Normalize] before it is serialized into a response
// envelope or an access record:
//
//   - values implementing [Arrayable] are converted first;
//   - integers outside the signed 32-bit range become decimal strings so
//     that JavaScript clients never lose precision;
//   - maps keep their key order and sequences their element order.
//
// [Redact] replaces the values under configured keys with a placeholder,
// recursing through nested maps and sequences.
package normalize
