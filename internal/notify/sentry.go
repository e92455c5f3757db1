// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/MKhiriev/go-http-core/internal/utils"
	"github.com/MKhiriev/go-http-core/models"
)

const sentryFlushTimeout = 2 * time.Second

// SentryPublisher reports failures as Sentry error events.
type SentryPublisher struct {
	hub *sentry.Hub
}

// NewSentryPublisher builds a publisher with its own client and hub, so it
// never touches the global Sentry hub.
func NewSentryPublisher(options sentry.ClientOptions) (*SentryPublisher, error) {
	client, err := sentry.NewClient(options)
	if err != nil {
		return nil, fmt.Errorf("create sentry client: %w", err)
	}
	return &SentryPublisher{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Publish captures rec. The cause chain becomes the exception list, root
// cause first as Sentry expects.
func (p *SentryPublisher) Publish(ctx context.Context, rec models.ErrorRecord) error {
	event := sentry.NewEvent()
	event.Level = sentry.LevelError
	event.Message = rec.Message

	chain := rec.Chain()
	event.Exception = make([]sentry.Exception, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		event.Exception = append(event.Exception, exception(chain[i]))
	}

	event.Tags = map[string]string{"kind": rec.Kind}
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		event.Tags["trace_id"] = traceID
	}
	if rec.Code != 0 {
		event.Extra["code"] = rec.Code
	}
	if chain[len(chain)-1].Truncated {
		event.Extra["truncated"] = true
	}

	if id := p.hub.CaptureEvent(event); id == nil {
		return ErrEventDropped
	}
	return nil
}

// Close flushes buffered events.
func (p *SentryPublisher) Close() {
	p.hub.Flush(sentryFlushTimeout)
}

func exception(rec models.ErrorRecord) sentry.Exception {
	ex := sentry.Exception{Type: rec.Kind, Value: rec.Message}
	if rec.Location.File != "" {
		ex.Stacktrace = &sentry.Stacktrace{Frames: []sentry.Frame{{
			AbsPath:  rec.Location.File,
			Filename: filepath.Base(rec.Location.File),
			Lineno:   rec.Location.Line,
			InApp:    true,
		}}}
	}
	return ex
}
