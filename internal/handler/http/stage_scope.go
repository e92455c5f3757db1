// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/MKhiriev/go-http-core/internal/audit"
	"github.com/MKhiriev/go-http-core/internal/logger"
	"github.com/MKhiriev/go-http-core/internal/route"
	"github.com/MKhiriev/go-http-core/internal/scope"
)

// withScope is the outermost stage. It owns the request scope and the
// buffered response: the response is flushed and audited after the inner
// stages return, and the scope is destroyed exactly once on every exit
// path. A panic escaping the route stage skips flushing and auditing.
func (h *Handler) withScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle := h.store.Create()
		defer func() {
			if err := h.store.Destroy(handle); err != nil {
				h.logger.Err(err).Msg("destroying request scope")
			}
		}()

		acceptedAt := h.now()
		_ = h.store.Set(handle, scope.KeyAcceptedAt, acceptedAt)

		ctx := scope.WithHandle(r.Context(), handle)
		if h.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.timeout)
			defer cancel()
		}
		r = r.WithContext(ctx)

		if h.auditor != nil && h.auditor.Enabled() {
			_ = h.store.Set(handle, scope.KeyRequestBody, h.bufferBody(r, h.auditor.BodyLimit()))
		}

		resp := newResponse(w)
		next.ServeHTTP(resp, r)

		if err := resp.flush(); err != nil {
			h.logger.Err(err).Msg("flushing response")
		}
		h.finish(r, resp, acceptedAt)
	})
}

// finish audits the request and records its outcome. The request the inner
// stages saw is preferred: it carries the dispatch result and trace ID.
func (h *Handler) finish(r *http.Request, resp *Response, acceptedAt time.Time) {
	if v, ok := h.store.GetFrom(r.Context(), keyRequest); ok {
		if inner, ok := v.(*http.Request); ok {
			r = inner
		}
	}
	ctx := r.Context()

	if h.auditor != nil {
		line, ok := h.auditor.Audit(r, audit.Response{
			Status: resp.Status(),
			Size:   resp.Size(),
			Body:   resp.Body(),
		})
		if ok {
			h.metrics.IncAuditRecord(string(audit.SeverityFor(line.DurationMs)))
		}
	}

	h.metrics.ObserveRequest(r.Method, route.GroupFrom(ctx), resp.Status(), h.now().Sub(acceptedAt))

	if err := h.store.Failure(ctx); err != nil {
		logger.FromContextOr(ctx, h.logger).Debug().
			Err(err).
			Int("status", resp.Status()).
			Msg("request failed")
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

// bufferBody reads up to limit+1 bytes of the request body so the auditor
// can inspect it, then restores the body for the handler. Bodies above
// limit are not kept; only their size is recorded.
func (h *Handler) bufferBody(r *http.Request, limit int64) scope.RequestBody {
	body := scope.RequestBody{
		Size:        max(r.ContentLength, 0),
		ContentType: r.Header.Get("Content-Type"),
	}
	if r.Body == nil || r.Body == http.NoBody {
		return body
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	r.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(buf), r.Body), Closer: r.Body}
	if err != nil {
		logger.FromContextOr(r.Context(), h.logger).Warn().Err(err).Msg("buffering request body")
		return body
	}

	if int64(len(buf)) > limit {
		body.Size = max(body.Size, int64(len(buf)))
		return body
	}

	body.Raw = buf
	body.Size = int64(len(buf))
	return body
}
