// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package audit

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-http-core/internal/logger"
	"github.com/MKhiriev/go-http-core/internal/route"
	"github.com/MKhiriev/go-http-core/internal/scope"
	"github.com/MKhiriev/go-http-core/internal/utils"
	"github.com/MKhiriev/go-http-core/models"
)

// DefaultBodyLimit is the payload size in bytes above which request and
// response bodies are replaced with [models.EntityTooLarge].
const DefaultBodyLimit = 1024

const consoleTimeLayout = "2006-01-02 15:04:05"

var (
	dateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	timingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	methodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Options toggles and tunes the auditor.
type Options struct {
	// Print enables the console line.
	Print bool
	// Log enables the structured access record.
	Log bool
	// Hidden lists keys whose values are replaced with "<hidden>".
	Hidden []string
	// BodyLimit caps logged payload sizes. Zero selects DefaultBodyLimit.
	BodyLimit int64
}

// Response is what the auditor needs to know about a sent response.
type Response struct {
	Status int
	Size   int64
	Body   []byte
}

// Auditor writes access records. It is safe for concurrent use.
type Auditor struct {
	opts     Options
	store    *scope.Store
	registry *scope.ResponseDataRegistry
	identity IdentityProvider
	log      *logger.Logger
	console  io.Writer
	now      func() time.Time
}

// NewAuditor wires an Auditor. identity may be nil when requests are never
// authenticated; console may be nil when Print is off.
func NewAuditor(opts Options, store *scope.Store, identity IdentityProvider, log *logger.Logger, console io.Writer) *Auditor {
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = DefaultBodyLimit
	}
	return &Auditor{
		opts:     opts,
		store:    store,
		registry: scope.NewResponseDataRegistry(store),
		identity: identity,
		log:      log,
		console:  console,
		now:      time.Now,
	}
}

// Enabled reports whether any output is switched on.
func (a *Auditor) Enabled() bool {
	return a.opts.Print || a.opts.Log
}

// BodyLimit returns the effective payload cap.
func (a *Auditor) BodyLimit() int64 {
	return a.opts.BodyLimit
}

// Audit records the request r, which must carry its scope, answered with
// resp. It returns the structured record and whether it was written.
// Requests that did not match a route produce no output at all.
func (a *Auditor) Audit(r *http.Request, resp Response) (models.AuditLine, bool) {
	if !a.Enabled() {
		return models.AuditLine{}, false
	}

	ctx := r.Context()
	dispatched, _ := route.DispatchedFrom(ctx)
	if !dispatched.Found {
		return models.AuditLine{}, false
	}

	now := a.now()
	acceptedAt, ok := a.store.AcceptedAt(ctx)
	if !ok {
		acceptedAt = now
	}
	durationMs := math.Round(float64(now.Sub(acceptedAt).Microseconds())/10) / 100

	if a.opts.Print && a.console != nil {
		a.print(r, now, durationMs)
	}

	if !a.opts.Log || resp.Status < http.StatusOK || resp.Status >= http.StatusMultipleChoices {
		return models.AuditLine{}, false
	}

	line := a.build(r, resp, acceptedAt, durationMs)
	a.write(r, resp, line)
	return line, true
}

func (a *Auditor) print(r *http.Request, now time.Time, durationMs float64) {
	fmt.Fprintln(a.console, strings.Join([]string{
		dateStyle.Render(now.Format(consoleTimeLayout)),
		timingStyle.Render("[" + formatMs(durationMs) + " ms]"),
		methodStyle.Render("[" + r.Method + "]"),
		r.URL.RequestURI(),
	}, " "))
}

func (a *Auditor) build(r *http.Request, resp Response, acceptedAt time.Time, durationMs float64) models.AuditLine {
	line := models.AuditLine{
		TimestampMs: acceptedAt.UnixMilli(),
		DurationMs:  durationMs,
		Method:      r.Method,
		Path:        normalizePath(r.URL.Path),
	}

	if a.identity != nil {
		if id, ok := a.identity.CurrentIdentity(r); ok && id.Subject != "" {
			subject := id.Subject
			line.User = &subject
		}
	}

	if q := loggable(queryValue(r.URL.Query()), a.opts.Hidden); !q.IsEmpty() {
		line.Query = q
	}

	if body, ok := a.store.Body(r.Context()); ok {
		if body.Size > a.opts.BodyLimit {
			line.RequestBody = models.EntityTooLarge
		} else if v := loggable(parsedBody(body), a.opts.Hidden); !v.IsEmpty() {
			line.RequestBody = v
		}
	}

	line.ResponseBody = a.response(r, resp)
	return line
}

func (a *Auditor) response(r *http.Request, resp Response) any {
	if resp.Size == 0 {
		return nil
	}
	if isIgnoredMethod(r.Method) {
		return models.Ignored
	}
	if resp.Size > a.opts.BodyLimit {
		return models.EntityTooLarge
	}

	data, ok := a.registry.Get(r.Context())
	if !ok {
		return nil
	}
	v, ok := responseValue(data, resp.Body, a.opts.Hidden)
	if !ok {
		return nil
	}
	return v
}

func (a *Auditor) write(r *http.Request, resp Response, line models.AuditLine) {
	severity := SeverityFor(line.DurationMs)

	var event *zerolog.Event
	if severity == SeverityWarning {
		event = a.log.Warn()
	} else {
		event = a.log.Info()
	}

	event = event.
		Str("severity", string(severity)).
		Int64("timestamp_ms", line.TimestampMs).
		Float64("duration_ms", line.DurationMs).
		Str("method", line.Method).
		Str("path", line.Path).
		Int("status", resp.Status)

	if traceID, ok := utils.GetTraceIDFromContext(r.Context()); ok {
		event = event.Str("trace_id", traceID)
	}

	parts := []string{"[" + formatMs(line.DurationMs) + " ms] [" + line.Method + "] " + line.Path}
	if line.User != nil {
		event = event.Str("user", *line.User)
		parts = append(parts, "USER "+*line.User)
	}
	if line.Query != nil {
		raw := rawJSON(line.Query)
		event = event.RawJSON("query", raw)
		parts = append(parts, "QUERY "+string(raw))
	}
	if line.RequestBody != nil {
		raw := rawJSON(line.RequestBody)
		event = event.RawJSON("request_body", raw)
		parts = append(parts, "BODY "+partText(line.RequestBody, raw))
	}
	if line.ResponseBody != nil {
		raw := rawJSON(line.ResponseBody)
		event = event.RawJSON("response_body", raw)
		parts = append(parts, "RESPONSE "+partText(line.ResponseBody, raw))
	}

	event.Msg(strings.Join(parts, "\n"))
}

// partText renders placeholders and plain bodies as is and structured
// values as JSON.
func partText(v any, raw []byte) string {
	if s, ok := v.(string); ok {
		return s
	}
	return string(raw)
}

func rawJSON(v any) []byte {
	b, err := utils.MarshalJSON(v)
	if err != nil {
		b, _ = utils.MarshalJSON(fmt.Sprint(v))
	}
	return b
}

func formatMs(ms float64) string {
	return strconv.FormatFloat(ms, 'f', -1, 64)
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if path[0] != '/' {
		return "/" + path
	}
	return path
}
