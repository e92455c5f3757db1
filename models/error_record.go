// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strconv"

// Location points at the source line a failure was raised from.
type Location struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// String renders the location as file:line. An unknown location renders
// as "unknown".
func (l Location) String() string {
	if l.File == "" {
		return "unknown"
	}
	return l.File + ":" + strconv.Itoa(l.Line)
}

// ErrorRecord is the normalized form of a failure and its causal
// predecessors. Records are values: they are built once by the fault
// normalizer and never mutated afterwards.
type ErrorRecord struct {
	// Kind is the concrete type name of the failure, e.g. "*fs.PathError".
	Kind string `json:"kind"`

	// Message is the failure text as returned by Error().
	Message string `json:"message"`

	// Code is the application code carried by the failure, or 0.
	Code int `json:"code"`

	// Location is the source position the failure was created at, if the
	// failure carries a stack.
	Location Location `json:"location"`

	// TraceLines is the formatted stack, innermost call first.
	TraceLines []string `json:"trace_lines"`

	// Cause is the failure this one was raised while handling.
	Cause *ErrorRecord `json:"cause"`

	// Truncated is set on the last record of a chain that was cut at the
	// configured depth.
	Truncated bool `json:"truncated,omitempty"`
}

// Depth returns the number of records in the chain starting at r.
func (r ErrorRecord) Depth() int {
	n := 0
	for cur := &r; cur != nil; cur = cur.Cause {
		n++
	}
	return n
}

// Chain flattens the cause chain into a slice, outermost first.
func (r ErrorRecord) Chain() []ErrorRecord {
	out := make([]ErrorRecord, 0, 4)
	for cur := &r; cur != nil; cur = cur.Cause {
		out = append(out, *cur)
	}
	return out
}
