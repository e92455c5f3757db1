// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the value types exchanged between the pipeline
// stages and returned to clients.
package models

// Envelope is the canonical client-facing response shape.
//
//	{"code": 200, "data": {...}, "message": "Success"}
type Envelope struct {
	// Code mirrors the application status of the response. For successful
	// results it is usually 200.
	Code int `json:"code"`

	// Data is the normalized result payload. It may be nil.
	Data any `json:"data"`

	// Message is a short human-readable description.
	Message string `json:"message"`
}

// DebugErrorEnvelope is the error variant of [Envelope] returned to clients
// when the service runs in debug mode. It exposes the failure kind, its
// source location, the formatted trace and the nested cause chain.
type DebugErrorEnvelope struct {
	Code     int                 `json:"code"`
	Data     any                 `json:"data"`
	Message  string              `json:"message"`
	Type     string              `json:"type"`
	File     string              `json:"file"`
	Line     int                 `json:"line"`
	Trace    []string            `json:"trace"`
	Previous *DebugErrorEnvelope `json:"previous"`

	// Truncated marks the last entry of a cause chain cut at the depth limit.
	Truncated bool `json:"truncated,omitempty"`
}
