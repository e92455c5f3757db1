// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package audit

// Severity of an access record.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityNotice  Severity = "notice"
	SeverityWarning Severity = "warning"
)

// Duration thresholds in milliseconds.
const (
	noticeAfterMs  = 5000
	warningAfterMs = 10000
)

// SeverityFor maps a request duration to a record severity.
func SeverityFor(durationMs float64) Severity {
	switch {
	case durationMs > warningAfterMs:
		return SeverityWarning
	case durationMs > noticeAfterMs:
		return SeverityNotice
	default:
		return SeverityInfo
	}
}
