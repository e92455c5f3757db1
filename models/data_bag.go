// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "net/http"

// Default messages used by the DataBag constructors.
const (
	MessageSuccess = "Success"
	MessageFailed  = "Failed"
)

// DataBag is the result type endpoints return when they need control over
// the envelope code and message. A bag whose code is outside [200, 300)
// is considered failed and is written with that code as the HTTP status.
type DataBag struct {
	Data    any
	Message string
	Code    int
}

// Succeed builds a successful bag carrying data.
func Succeed(data any) DataBag {
	return DataBag{Data: data, Message: MessageSuccess, Code: http.StatusOK}
}

// Message builds a successful bag with a custom message.
func Message(message string, data any) DataBag {
	return DataBag{Data: data, Message: message, Code: http.StatusOK}
}

// Failed builds a failed bag. A zero code defaults to 400 Bad Request.
func Failed(message string, code int) DataBag {
	if code == 0 {
		code = http.StatusBadRequest
	}
	if message == "" {
		message = MessageFailed
	}
	return DataBag{Message: message, Code: code}
}

// IsFailed reports whether the bag represents a failed result.
func (b DataBag) IsFailed() bool {
	return b.Code < http.StatusOK || b.Code >= http.StatusMultipleChoices
}

// Envelope converts the bag to its wire shape. Data is passed through as is;
// callers normalize it before serialization.
func (b DataBag) Envelope() Envelope {
	return Envelope{Code: b.Code, Data: b.Data, Message: b.Message}
}
