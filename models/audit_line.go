// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Placeholders written into audit records instead of the real payload.
const (
	EntityTooLarge = "<entity too large>"
	Ignored        = "<ignore>"
	Hidden         = "<hidden>"
	True           = "<true>"
	False          = "<false>"
)

// AuditLine is one structured access record. Query, RequestBody and
// ResponseBody hold JSON-encodable values (normalized maps, sequences or one
// of the placeholder strings) and are nil when the field is omitted.
type AuditLine struct {
	TimestampMs  int64   `json:"timestamp_ms"`
	DurationMs   float64 `json:"duration_ms"`
	Method       string  `json:"method"`
	Path         string  `json:"path"`
	User         *string `json:"user,omitempty"`
	Query        any     `json:"query,omitempty"`
	RequestBody  any     `json:"request_body,omitempty"`
	ResponseBody any     `json:"response_body,omitempty"`
}
