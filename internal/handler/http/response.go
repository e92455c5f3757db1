// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"strconv"
)

// Response buffers a response until the pipeline has finished with it.
//
// Headers, status and body stay mutable after the handler returns, so
// post-handler stages can add CORS headers or replace the body with a
// failure envelope. Nothing reaches the client before flush.
type Response struct {
	w http.ResponseWriter

	header http.Header

	// status is the code recorded on the first WriteHeader call.
	status int

	// wroteHeader reports whether WriteHeader has already been called.
	wroteHeader bool

	body bytes.Buffer

	flushed bool
}

func newResponse(w http.ResponseWriter) *Response {
	return &Response{w: w, header: make(http.Header)}
}

// Header returns the buffered header map.
func (w *Response) Header() http.Header {
	return w.header
}

// WriteHeader records the status code. Only the first call has effect.
func (w *Response) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
}

// Write appends b to the buffered body, implying a 200 status when none was
// written.
func (w *Response) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(b)
}

// Status returns the response status, 200 if none was written yet.
func (w *Response) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Size returns the number of buffered body bytes.
func (w *Response) Size() int64 {
	return int64(w.body.Len())
}

// Body returns the buffered body. The slice is valid until the next write.
func (w *Response) Body() []byte {
	return w.body.Bytes()
}

// Unwrap returns the underlying writer for [http.ResponseController].
func (w *Response) Unwrap() http.ResponseWriter {
	return w.w
}

// reset discards the status and body written so far. Headers are kept.
func (w *Response) reset() {
	w.status = 0
	w.wroteHeader = false
	w.body.Reset()
	w.header.Del("Content-Length")
}

// flush sends the buffered response. Subsequent calls are no-ops.
func (w *Response) flush() error {
	if w.flushed {
		return nil
	}
	w.flushed = true

	dst := w.w.Header()
	for k, v := range w.header {
		dst[k] = v
	}
	if w.body.Len() > 0 && dst.Get("Content-Length") == "" {
		dst.Set("Content-Length", strconv.Itoa(w.body.Len()))
	}

	w.w.WriteHeader(w.Status())
	if w.body.Len() == 0 {
		return nil
	}
	_, err := w.w.Write(w.body.Bytes())
	return err
}
